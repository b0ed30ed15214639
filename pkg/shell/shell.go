// Package shell implements the interactive menu-driven converter.
package shell

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sambeau/unitconv/app"
	"github.com/sambeau/unitconv/favorites"
	"github.com/sambeau/unitconv/history"
	"github.com/sambeau/unitconv/pkg/display"
	"github.com/sambeau/unitconv/pkg/errors"
	"github.com/sambeau/unitconv/pkg/units"
)

var (
	errQuit            = stderrors.New("quit")
	errTooManyAttempts = stderrors.New("too many invalid attempts")
)

// Main menu entries that follow the categories
const (
	itemFavorites = "Favorites"
	itemQuick     = "Quick conversion"
	itemBatch     = "Batch conversion"
	itemHistory   = "History"
	itemInfo      = "Unit info"
	itemHelp      = "Help"
	itemQuit      = "Quit"
)

var extraItems = []string{itemFavorites, itemQuick, itemBatch, itemHistory, itemInfo, itemHelp, itemQuit}

// Keyword shortcuts accepted at the main menu
var shortcuts = map[string]string{
	"fav":       itemFavorites,
	"favorites": itemFavorites,
	"quick":     itemQuick,
	"batch":     itemBatch,
	"history":   itemHistory,
	"info":      itemInfo,
	"help":      itemHelp,
	"?":         itemHelp,
	"q":         itemQuit,
	"quit":      itemQuit,
	"exit":      itemQuit,
}

// Shell runs the interactive menus over a LineReader.
type Shell struct {
	app         *app.App
	in          LineReader
	out         io.Writer
	styles      display.Styles
	logger      *zap.Logger
	maxAttempts int
	clearScreen bool
	color       bool
	now         func() time.Time
}

// New creates a shell. Settings come from the application config.
func New(a *app.App, in LineReader, out io.Writer) *Shell {
	attempts := a.Config.Shell.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &Shell{
		app:         a,
		in:          in,
		out:         out,
		styles:      a.Styles,
		logger:      a.Logger.Named("shell"),
		maxAttempts: attempts,
		clearScreen: a.Config.Shell.ClearScreen,
		color:       a.Config.Shell.Color,
		now:         time.Now,
	}
}

// Completer returns a tab-completion function over unit symbols and
// aliases. Only the last word of the line is completed.
func Completer(r *units.Resolver) func(string) []string {
	candidates := r.Candidates(units.ScopeAll)
	return func(line string) []string {
		start := strings.LastIndexAny(line, " \t") + 1
		head, word := line[:start], line[start:]
		// Skip a leading number so "10k" completes "km"
		i := 0
		for i < len(word) && (word[i] >= '0' && word[i] <= '9' || word[i] == '.' || word[i] == '-' || word[i] == '+') {
			i++
		}
		head, word = head+word[:i], word[i:]
		if word == "" {
			return nil
		}
		lower := strings.ToLower(word)
		var out []string
		for _, c := range candidates {
			if strings.HasPrefix(strings.ToLower(c), lower) {
				out = append(out, head+c)
			}
		}
		return out
	}
}

// Run shows the main menu until the user quits, input ends or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	s.logger.Debug("shell started")
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.clear()
		fmt.Fprint(s.out, s.styles.Menu("Unit Converter", s.menuItems()))

		line, err := s.in.Prompt("Choose an option: ")
		switch {
		case stderrors.Is(err, io.EOF):
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		case stderrors.Is(err, ErrAborted):
			continue
		case err != nil:
			return err
		}
		s.in.AppendHistory(line)

		err = s.dispatch(strings.TrimSpace(line))
		switch {
		case err == nil, stderrors.Is(err, errTooManyAttempts):
		case stderrors.Is(err, ErrAborted):
			fmt.Fprintln(s.out)
		case stderrors.Is(err, errQuit), stderrors.Is(err, io.EOF):
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		default:
			return err
		}
		s.pause()
	}
}

func (s *Shell) menuItems() []string {
	return append(s.app.Catalog.Categories(), extraItems...)
}

func (s *Shell) dispatch(choice string) error {
	if choice == "" {
		return nil
	}
	item := ""
	items := s.menuItems()
	if n, err := strconv.Atoi(choice); err == nil {
		if n >= 1 && n <= len(items) {
			item = items[n-1]
		}
	} else if name, ok := shortcuts[strings.ToLower(choice)]; ok {
		item = name
	} else if cat, ok := s.app.Catalog.Category(choice); ok && cat != units.ScopeAll {
		item = cat
	}

	switch item {
	case "":
		s.printError(fmt.Errorf("invalid choice %q", choice))
		return nil
	case itemFavorites:
		return s.favoritesMenu()
	case itemQuick:
		return s.quickConversion()
	case itemBatch:
		return s.batchConversion()
	case itemHistory:
		return s.historyMenu()
	case itemInfo:
		return s.unitInfo()
	case itemHelp:
		fmt.Fprint(s.out, renderHelp(s.color))
		return nil
	case itemQuit:
		return errQuit
	}
	return s.categoryConversion(item)
}

// ask prompts until accept succeeds, at most maxAttempts times. Input
// errors (EOF, abort) are returned unchanged.
func (s *Shell) ask(prompt string, accept func(line string) error) error {
	for range s.maxAttempts {
		line, err := s.in.Prompt(prompt)
		if err != nil {
			return err
		}
		s.in.AppendHistory(line)
		if err := accept(strings.TrimSpace(line)); err != nil {
			s.printError(err)
			continue
		}
		return nil
	}
	fmt.Fprintln(s.out, s.styles.Warning.Render("Too many invalid attempts, returning to the menu."))
	return errTooManyAttempts
}

func (s *Shell) categoryConversion(category string) error {
	r := s.app.Resolver
	fmt.Fprintln(s.out, s.styles.Title.Render(category+" Conversion"))
	fmt.Fprintln(s.out, s.styles.UnitTable(s.app.Catalog.InCategory(category)))

	var (
		value    float64
		from, to units.Unit
	)
	known := r.Known(category)
	err := s.ask("Enter value and unit (e.g. 10 km): ", func(line string) error {
		v, token, err := units.ParseQuantity(line, known)
		if err != nil {
			return err
		}
		if token == "" {
			return fmt.Errorf("missing unit after %s", display.FormatNumber(v))
		}
		u, ok := r.Resolve(token, category)
		if !ok {
			return errors.UnknownUnit(token, category, r.Candidates(category))
		}
		value, from = v, u
		return nil
	})
	if err != nil {
		return err
	}

	err = s.ask("Convert to: ", func(line string) error {
		u, ok := r.Resolve(line, category)
		if !ok {
			return errors.UnknownUnit(line, category, r.Candidates(category))
		}
		to = u
		return nil
	})
	if err != nil {
		return err
	}

	c, err := s.app.ConvertUnits(value, from, to)
	if err != nil {
		s.printError(err)
		return nil
	}
	s.showResult(c)
	return s.offerFavorite(from, to, category)
}

func (s *Shell) offerFavorite(from, to units.Unit, category string) error {
	line, err := s.in.Prompt("Save as favorite? [y/N]: ")
	if err != nil {
		return err
	}
	if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
		return nil
	}
	fav, err := s.app.Favorites.Add(favorites.Favorite{From: from.Symbol, To: to.Symbol, Category: category})
	if err != nil {
		s.printError(err)
		return nil
	}
	fmt.Fprintln(s.out, s.styles.Success.Render("Saved favorite "+fav.String()))
	return nil
}

func (s *Shell) quickConversion() error {
	r := s.app.Resolver
	return s.ask("Conversion (e.g. 10 km to mi): ", func(line string) error {
		left, right, ok := splitQuick(line)
		if !ok {
			return fmt.Errorf("expected '<value> <unit> to <unit>'")
		}
		v, token, err := units.ParseQuantity(left, r.Known(units.ScopeAll))
		if err != nil {
			return err
		}
		if token == "" {
			return fmt.Errorf("missing unit after %s", display.FormatNumber(v))
		}
		c, err := s.app.ConvertAny(v, token, right)
		if err != nil {
			return err
		}
		s.showResult(c)
		return nil
	})
}

// splitQuick splits "10 km to mi" at the last "->", " to " or " in ".
func splitQuick(line string) (string, string, bool) {
	lower := strings.ToLower(line)
	for _, sep := range []string{"->", " to ", " in "} {
		if i := strings.LastIndex(lower, sep); i > 0 {
			left := strings.TrimSpace(line[:i])
			right := strings.TrimSpace(line[i+len(sep):])
			if left != "" && right != "" {
				return left, right, true
			}
		}
	}
	return "", "", false
}

func (s *Shell) batchConversion() error {
	r := s.app.Resolver
	fmt.Fprintln(s.out, s.styles.Title.Render("Batch Conversion"))

	var fromToken string
	err := s.ask("From unit: ", func(line string) error {
		if _, ok := r.Resolve(line, units.ScopeAll); !ok {
			return errors.UnknownUnit(line, units.ScopeAll, r.Candidates(units.ScopeAll))
		}
		fromToken = line
		return nil
	})
	if err != nil {
		return err
	}

	var from, to units.Unit
	err = s.ask("To unit: ", func(line string) error {
		pair, err := s.app.Engine.ConvertAny(1, fromToken, line)
		if err != nil {
			return err
		}
		from, to = pair.From, pair.To
		return nil
	})
	if err != nil {
		return err
	}

	limit := s.app.Config.Batch.MaxValues
	fmt.Fprintf(s.out, "Enter values in %s, one per line. A blank line finishes (max %d).\n", from.Symbol, limit)
	count := 0
	for count < limit {
		line, err := s.in.Prompt("> ")
		if err != nil {
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		v, err := units.ParseValue(line)
		if err != nil {
			s.printError(err)
			continue
		}
		c, err := s.app.ConvertUnits(v, from, to)
		if err != nil {
			s.printError(err)
			continue
		}
		s.showResult(c)
		count++
	}
	if count == limit {
		fmt.Fprintf(s.out, "Reached the limit of %d values.\n", limit)
	}
	fmt.Fprintf(s.out, "Converted %s.\n", display.Count(count, "value", "values"))
	return nil
}

func (s *Shell) favoritesMenu() error {
	store := s.app.Favorites
	for {
		fmt.Fprintln(s.out, s.styles.Title.Render("Favorites"))
		if favs := store.List(); len(favs) == 0 {
			fmt.Fprintln(s.out, "No favorites yet.")
		} else {
			fmt.Fprintln(s.out, s.styles.FavoritesTable(favs))
		}

		line, err := s.in.Prompt("Number to use, a to add, e N to edit, r N to remove, Enter to go back: ")
		if err != nil {
			return err
		}
		cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
		switch strings.ToLower(cmd) {
		case "":
			return nil
		case "a", "add":
			err = s.addFavorite()
		case "e", "edit":
			err = s.withIndex(arg, s.editFavorite)
		case "r", "remove":
			err = s.withIndex(arg, func(i int) error {
				fav, err := store.Remove(i)
				if err != nil {
					s.printError(err)
					return nil
				}
				fmt.Fprintln(s.out, "Removed "+fav.String())
				return nil
			})
		default:
			err = s.withIndex(cmd, s.useFavorite)
		}
		if err != nil && !stderrors.Is(err, errTooManyAttempts) {
			return err
		}
	}
}

// withIndex parses a 1-based favorite number and calls fn with the
// zero-based index.
func (s *Shell) withIndex(arg string, fn func(int) error) error {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 || n > s.app.Favorites.Len() {
		s.printError(fmt.Errorf("no favorite %q", arg))
		return nil
	}
	return fn(n - 1)
}

func (s *Shell) addFavorite() error {
	if s.app.Favorites.Len() >= s.app.Favorites.Cap() {
		s.printError(favorites.ErrFull)
		return nil
	}
	cat := s.app.Catalog
	r := s.app.Resolver

	var category string
	err := s.ask("Category: ", func(line string) error {
		name, ok := cat.Category(line)
		if !ok || name == units.ScopeAll {
			return errors.UnknownCategory(line, cat.Categories())
		}
		category = name
		return nil
	})
	if err != nil {
		return err
	}

	var from, to string
	unitIn := func(dst *string) func(string) error {
		return func(line string) error {
			u, ok := r.Resolve(line, category)
			if !ok {
				return errors.UnknownUnit(line, category, r.Candidates(category))
			}
			*dst = u.Symbol
			return nil
		}
	}
	if err := s.ask("From unit: ", unitIn(&from)); err != nil {
		return err
	}
	if err := s.ask("To unit: ", unitIn(&to)); err != nil {
		return err
	}

	fav, err := s.app.Favorites.Add(favorites.Favorite{From: from, To: to, Category: category})
	if err != nil {
		s.printError(err)
		return nil
	}
	fmt.Fprintln(s.out, s.styles.Success.Render("Saved favorite "+fav.String()))
	return nil
}

func (s *Shell) editFavorite(i int) error {
	cur, err := s.app.Favorites.Get(i)
	if err != nil {
		s.printError(err)
		return nil
	}
	var next favorites.Favorite
	fields := []struct {
		label string
		value string
		dst   *string
	}{
		{"Category", cur.Category, &next.Category},
		{"From unit", cur.From, &next.From},
		{"To unit", cur.To, &next.To},
	}
	for _, f := range fields {
		line, err := s.in.Prompt(fmt.Sprintf("%s [%s]: ", f.label, f.value))
		if err != nil {
			return err
		}
		*f.dst = strings.TrimSpace(line)
	}
	fav, err := s.app.Favorites.Edit(i, next)
	if err != nil {
		s.printError(err)
		return nil
	}
	fmt.Fprintln(s.out, s.styles.Success.Render("Updated favorite "+fav.String()))
	return nil
}

func (s *Shell) useFavorite(i int) error {
	fav, err := s.app.Favorites.Get(i)
	if err != nil {
		s.printError(err)
		return nil
	}
	return s.ask(fmt.Sprintf("Value in %s: ", fav.From), func(line string) error {
		v, err := units.ParseValue(line)
		if err != nil {
			return err
		}
		c, err := s.app.Convert(v, fav.From, fav.To, fav.Category)
		if err != nil {
			return err
		}
		s.showResult(c)
		return nil
	})
}

func (s *Shell) historyMenu() error {
	h := s.app.History
	fmt.Fprintln(s.out, s.styles.Title.Render("Conversion History"))
	entries := h.Entries()
	if len(entries) == 0 {
		fmt.Fprintln(s.out, "No conversions yet.")
		return nil
	}
	fmt.Fprintln(s.out, s.styles.HistoryTable(entries, s.now()))
	fmt.Fprintf(s.out, "%s (max %d)\n", display.Count(len(entries), "entry", "entries"), h.Cap())

	line, err := s.in.Prompt("c to clear, x [file] to export, Enter to go back: ")
	if err != nil {
		return err
	}
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	switch strings.ToLower(cmd) {
	case "c", "clear":
		if err := h.Clear(); err != nil {
			s.printError(err)
			return nil
		}
		fmt.Fprintln(s.out, "History cleared.")
	case "x", "export":
		path := strings.TrimSpace(arg)
		if path == "" {
			path = history.DefaultExportFile
		}
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		if err := history.ExportFile(path, entries); err != nil {
			s.printError(err)
			return nil
		}
		fmt.Fprintf(s.out, "Exported %s to %s\n", display.Count(len(entries), "entry", "entries"), path)
	}
	return nil
}

func (s *Shell) unitInfo() error {
	r := s.app.Resolver
	return s.ask("Unit: ", func(line string) error {
		u, ok := r.Lookup(line)
		if !ok {
			return errors.UnknownUnit(line, units.ScopeAll, r.Candidates(units.ScopeAll))
		}
		fmt.Fprint(s.out, s.styles.UnitInfo(u, s.app.Base(u)))
		return nil
	})
}

func (s *Shell) showResult(c units.Conversion) {
	fmt.Fprintln(s.out, s.styles.Result.Render(display.Result(c)))
	for _, w := range c.Warnings {
		fmt.Fprintln(s.out, s.styles.Warning.Render("warning: "+w))
	}
}

func (s *Shell) printError(err error) {
	var ce *errors.ConversionError
	if stderrors.As(err, &ce) {
		fmt.Fprintln(s.out, s.styles.Error.Render(ce.PrettyString()))
		return
	}
	fmt.Fprintln(s.out, s.styles.Error.Render("Error: "+err.Error()))
}

func (s *Shell) clear() {
	if s.clearScreen {
		fmt.Fprint(s.out, "\033[H\033[2J")
	}
}

// pause waits for Enter when the screen is about to be cleared.
func (s *Shell) pause() {
	if s.clearScreen {
		s.in.Prompt("Press Enter to continue...")
	}
}
