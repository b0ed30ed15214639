package units

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/sambeau/unitconv/pkg/errors"
)

// DefaultMagnitudeLimit is the absolute value above which a conversion
// carries a precision warning.
const DefaultMagnitudeLimit = 1e15

// Conversion is the outcome of a successful conversion.
type Conversion struct {
	Value    float64
	Result   float64
	From     Unit
	To       Unit
	Warnings []string
}

// Engine converts values between resolved units.
type Engine struct {
	resolver       *Resolver
	logger         *zap.Logger
	magnitudeLimit float64
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the logger used for debug traces and warnings.
func WithLogger(logger *zap.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithMagnitudeLimit sets the magnitude warning threshold. Non-positive
// values disable the warning.
func WithMagnitudeLimit(limit float64) EngineOption {
	return func(e *Engine) {
		e.magnitudeLimit = limit
	}
}

// NewEngine creates an engine over a resolver.
func NewEngine(r *Resolver, opts ...EngineOption) *Engine {
	e := &Engine{
		resolver:       r,
		logger:         zap.NewNop(),
		magnitudeLimit: DefaultMagnitudeLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Resolver returns the engine's resolver.
func (e *Engine) Resolver() *Resolver {
	return e.resolver
}

// Convert resolves both tokens within scope and converts value.
func (e *Engine) Convert(value float64, from, to, scope string) (Conversion, error) {
	src, ok := e.resolver.Resolve(from, scope)
	if !ok {
		return Conversion{}, e.unknown(from, scope)
	}
	dst, ok := e.resolver.Resolve(to, scope)
	if !ok {
		return Conversion{}, e.unknown(to, scope)
	}
	return e.ConvertUnits(value, src, dst)
}

// ConvertAny converts without a preselected category. The source token is
// resolved across all categories and the target inside the source's
// category. When the pair only matches in another category that holds both
// tokens (kB and MiB are both Data units) that category is used instead.
func (e *Engine) ConvertAny(value float64, from, to string) (Conversion, error) {
	src, ok := e.resolver.Resolve(from, ScopeAll)
	if !ok {
		return Conversion{}, e.unknown(from, ScopeAll)
	}
	if dst, ok := e.resolver.Resolve(to, src.Category); ok {
		return e.ConvertUnits(value, src, dst)
	}
	for _, c := range e.resolver.catalog.categories {
		s, okFrom := e.resolver.Resolve(from, c)
		d, okTo := e.resolver.Resolve(to, c)
		if okFrom && okTo {
			return e.ConvertUnits(value, s, d)
		}
	}
	if dst, ok := e.resolver.Resolve(to, ScopeAll); ok {
		return e.ConvertUnits(value, src, dst)
	}
	return Conversion{}, e.unknown(to, src.Category)
}

// ConvertUnits performs the arithmetic on two resolved units.
func (e *Engine) ConvertUnits(value float64, from, to Unit) (Conversion, error) {
	if from.Temperature != to.Temperature {
		return Conversion{}, errors.MixedTemperature(from.Symbol, to.Symbol)
	}
	if from.Category != to.Category {
		return Conversion{}, errors.IncompatibleUnits(from.Symbol, from.Category, to.Symbol, to.Category)
	}

	c := Conversion{Value: value, From: from, To: to}
	switch {
	case from.Symbol == to.Symbol:
		c.Result = value
	case from.Temperature:
		celsius, err := toCelsius(value, from.Symbol)
		if err != nil {
			return Conversion{}, err
		}
		c.Result, err = fromCelsius(celsius, to.Symbol)
		if err != nil {
			return Conversion{}, err
		}
	default:
		c.Result = value * from.Factor / to.Factor
	}

	if e.magnitudeLimit > 0 && math.Abs(value) > e.magnitudeLimit {
		msg := fmt.Sprintf("value %g exceeds %g; float64 precision may be lost", value, e.magnitudeLimit)
		c.Warnings = append(c.Warnings, msg)
		e.logger.Debug("large conversion magnitude",
			zap.Float64("value", value),
			zap.String("from", from.Symbol),
			zap.String("to", to.Symbol))
	}

	e.logger.Debug("converted",
		zap.Float64("value", value),
		zap.String("from", from.Symbol),
		zap.String("to", to.Symbol),
		zap.String("category", from.Category),
		zap.Float64("result", c.Result))
	return c, nil
}

func (e *Engine) unknown(token, scope string) error {
	return errors.UnknownUnit(Trim(token), scope, e.resolver.Candidates(scope))
}

func toCelsius(v float64, symbol string) (float64, error) {
	switch symbol {
	case Celsius:
		return v, nil
	case Fahrenheit:
		return (v - 32) * 5 / 9, nil
	case Kelvin:
		return v - 273.15, nil
	}
	return 0, errors.UnsupportedScale(symbol)
}

func fromCelsius(c float64, symbol string) (float64, error) {
	switch symbol {
	case Celsius:
		return c, nil
	case Fahrenheit:
		return c*9/5 + 32, nil
	case Kelvin:
		return c + 273.15, nil
	}
	return 0, errors.UnsupportedScale(symbol)
}
