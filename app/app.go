// Package app wires the catalog, engine, stores and logger into a single
// application context shared by the command line and the interactive shell.
package app

import (
	"go.uber.org/zap"

	"github.com/sambeau/unitconv/config"
	"github.com/sambeau/unitconv/favorites"
	"github.com/sambeau/unitconv/history"
	"github.com/sambeau/unitconv/pkg/display"
	"github.com/sambeau/unitconv/pkg/units"
)

// App owns every long-lived component.
type App struct {
	Config    *config.Config
	Catalog   *units.Catalog
	Resolver  *units.Resolver
	Engine    *units.Engine
	History   *history.History
	Favorites *favorites.Store
	Styles    display.Styles
	Logger    *zap.Logger
}

// New builds the application from a loaded configuration. Storage problems
// are not fatal: an unusable history backend degrades to an in-memory log.
func New(cfg *config.Config, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	cat := units.DefaultCatalog()
	resolver := units.NewResolver(cat)

	return &App{
		Config:   cfg,
		Catalog:  cat,
		Resolver: resolver,
		Engine: units.NewEngine(resolver,
			units.WithLogger(logger.Named("engine")),
			units.WithMagnitudeLimit(cfg.Engine.MagnitudeWarning)),
		History:   openHistory(cfg, logger.Named("history")),
		Favorites: favorites.Open(cfg.Favorites.File, cfg.Favorites.MaxEntries, resolver, logger.Named("favorites")),
		Styles:    display.NewStyles(cfg.Shell.Color),
		Logger:    logger,
	}
}

func openHistory(cfg *config.Config, logger *zap.Logger) *history.History {
	var backend history.Backend
	switch cfg.History.Backend {
	case "sqlite":
		db, err := history.OpenSQLite(cfg.History.SQLite, cfg.History.MaxEntries)
		if err != nil {
			logger.Warn("history database unavailable, keeping history in memory",
				zap.String("path", cfg.History.SQLite), zap.Error(err))
			break
		}
		backend = db
	default:
		backend = history.NewFileBackend(cfg.History.File, logger)
	}
	return history.Open(backend, cfg.History.MaxEntries, history.WithLogger(logger))
}

// Convert runs a conversion within scope and records it. A failed history
// write does not fail the conversion; it is reported in c.Warnings.
func (a *App) Convert(value float64, from, to, scope string) (units.Conversion, error) {
	c, err := a.Engine.Convert(value, from, to, scope)
	if err != nil {
		return units.Conversion{}, err
	}
	return a.record(c), nil
}

// ConvertAny runs a conversion without a preselected category and records it.
func (a *App) ConvertAny(value float64, from, to string) (units.Conversion, error) {
	c, err := a.Engine.ConvertAny(value, from, to)
	if err != nil {
		return units.Conversion{}, err
	}
	return a.record(c), nil
}

// ConvertUnits converts between resolved units and records the result.
func (a *App) ConvertUnits(value float64, from, to units.Unit) (units.Conversion, error) {
	c, err := a.Engine.ConvertUnits(value, from, to)
	if err != nil {
		return units.Conversion{}, err
	}
	return a.record(c), nil
}

func (a *App) record(c units.Conversion) units.Conversion {
	if _, err := a.History.Record(c.From.Symbol, c.To.Symbol, c.Value, c.Result); err != nil {
		c.Warnings = append(c.Warnings, "history not saved: "+err.Error())
	}
	return c
}

// Base returns the base unit of u's category, or u itself for temperature.
func (a *App) Base(u units.Unit) units.Unit {
	if base, ok := a.Catalog.Base(u.Category); ok {
		return base
	}
	return u
}

// Close releases the stores.
func (a *App) Close() error {
	return a.History.Close()
}
