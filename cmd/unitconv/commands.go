package main

import (
	"bufio"
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sambeau/unitconv/favorites"
	"github.com/sambeau/unitconv/history"
	"github.com/sambeau/unitconv/pkg/display"
	"github.com/sambeau/unitconv/pkg/errors"
	"github.com/sambeau/unitconv/pkg/shell"
	"github.com/sambeau/unitconv/pkg/units"
)

// convert runs a single direct conversion.
func (c *cli) convert(value, from, to string) error {
	v, err := units.ParseValue(value)
	if err != nil {
		return err
	}
	conv, err := c.app.ConvertAny(v, from, to)
	if err != nil {
		var ce *errors.ConversionError
		if stderrors.As(err, &ce) && stderrors.Is(err, errors.ErrUnknownUnit) {
			err = ce.WithHints("run 'unitconv units' to list categories and units")
		}
		return fail(err)
	}
	c.printResult(conv)
	return nil
}

func (c *cli) printResult(conv units.Conversion) {
	fmt.Fprintln(c.stdout, display.Result(conv))
	for _, w := range conv.Warnings {
		fmt.Fprintln(c.stderr, "warning: "+w)
	}
}

func (c *cli) shellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start the interactive menus (default with no arguments)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runShell(cmd.Context())
		},
	}
}

func (c *cli) runShell(ctx context.Context) error {
	var in shell.LineReader
	if f, ok := c.stdin.(*os.File); ok && f == os.Stdin && shell.TerminalSupported() {
		in = shell.NewTerminalReader(c.app.Config.Shell.LineHistory, shell.Completer(c.app.Resolver))
	} else {
		in = shell.NewScriptReader(c.stdin, c.stdout)
	}
	defer in.Close()
	return fail(shell.New(c.app, in, c.stdout).Run(ctx))
}

func (c *cli) unitsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "units [category]",
		Short: "List categories, or the units of one category",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := c.app.Catalog
			styles := c.app.Styles
			if len(args) == 0 {
				var rows [][]string
				for _, name := range cat.Categories() {
					base, _ := cat.Base(name)
					rows = append(rows, []string{name, strconv.Itoa(len(cat.InCategory(name))), base.Symbol})
				}
				fmt.Fprintln(c.stdout, styles.Table([]string{"Category", "Units", "Base"}, rows))
				return nil
			}
			name, ok := cat.Category(args[0])
			if !ok {
				return fail(errors.UnknownCategory(args[0], cat.Categories()))
			}
			list := cat.InCategory(name)
			if name == units.ScopeAll {
				list = cat.Units()
			}
			fmt.Fprintln(c.stdout, styles.Title.Render(name))
			fmt.Fprintln(c.stdout, styles.UnitTable(list))
			return nil
		},
	}
}

func (c *cli) infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <unit>",
		Short: "Show details for a unit symbol, alias or name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := c.app.Resolver
			token := strings.Join(args, " ")
			u, ok := r.Lookup(token)
			if !ok {
				return fail(errors.UnknownUnit(token, units.ScopeAll, r.Candidates(units.ScopeAll)))
			}
			fmt.Fprint(c.stdout, c.app.Styles.UnitInfo(u, c.app.Base(u)))
			return nil
		},
	}
}

func (c *cli) batchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "batch <from> <to> [values...]",
		Short: "Convert many values between two units",
		Long: `Convert each value from one unit to another. Values come from the
arguments or, when none are given, from standard input one per line until a
blank line or end of input. Invalid numbers are skipped.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			pair, err := c.app.Engine.ConvertAny(1, args[0], args[1])
			if err != nil {
				return fail(err)
			}
			values := args[2:]
			if len(values) == 0 {
				scanner := bufio.NewScanner(c.stdin)
				for scanner.Scan() {
					line := strings.TrimSpace(scanner.Text())
					if line == "" {
						break
					}
					values = append(values, line)
				}
				if err := scanner.Err(); err != nil {
					return fail(fmt.Errorf("reading values: %w", err))
				}
			}

			limit := c.app.Config.Batch.MaxValues
			count := 0
			for _, s := range values {
				if count == limit {
					fmt.Fprintf(c.stderr, "warning: stopped after %d values\n", limit)
					break
				}
				v, err := units.ParseValue(s)
				if err != nil {
					fmt.Fprintln(c.stderr, "warning: skipping "+err.Error())
					continue
				}
				conv, err := c.app.ConvertUnits(v, pair.From, pair.To)
				if err != nil {
					return fail(err)
				}
				c.printResult(conv)
				count++
			}
			return nil
		},
	}
}

func (c *cli) historyCmd() *cobra.Command {
	var (
		since string
		limit int
		out   string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent conversions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			entries := c.app.History.Last(limit)
			if since != "" {
				t, err := history.ParseSince(since, now, time.Local)
				if err != nil {
					return err
				}
				entries = c.app.History.Since(t)
				if limit > 0 && len(entries) > limit {
					entries = entries[len(entries)-limit:]
				}
			}
			if len(entries) == 0 {
				fmt.Fprintln(c.stdout, "No conversions yet.")
				return nil
			}
			fmt.Fprintln(c.stdout, c.app.Styles.HistoryTable(entries, now))
			return nil
		},
	}
	cmd.Flags().StringVar(&since, "since", "", "only entries after TIME (1h, 7d, yesterday, 2024-05-01)")
	cmd.Flags().IntVar(&limit, "limit", 0, "show at most N entries")

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.app.History.Clear(); err != nil {
				return fail(err)
			}
			fmt.Fprintln(c.stdout, "History cleared.")
			return nil
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export history as CSV, gzipped CSV (.gz) or a spreadsheet (.xlsx)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := c.app.History.Entries()
			if err := history.ExportFile(out, entries); err != nil {
				return fail(err)
			}
			fmt.Fprintf(c.stdout, "Exported %s to %s\n", display.Count(len(entries), "entry", "entries"), out)
			return nil
		},
	}
	exportCmd.Flags().StringVarP(&out, "out", "o", history.DefaultExportFile, "output file")

	cmd.AddCommand(clearCmd, exportCmd)
	return cmd
}

func (c *cli) favoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "List and manage favorite unit pairs",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			favs := c.app.Favorites.List()
			if len(favs) == 0 {
				fmt.Fprintln(c.stdout, "No favorites yet.")
				return nil
			}
			fmt.Fprintln(c.stdout, c.app.Styles.FavoritesTable(favs))
			return nil
		},
	}

	addCmd := &cobra.Command{
		Use:   "add <from> <to> <category>",
		Short: "Save a unit pair",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			fav, err := c.app.Favorites.Add(favorites.Favorite{From: args[0], To: args[1], Category: args[2]})
			if err != nil {
				return fail(err)
			}
			fmt.Fprintln(c.stdout, "Saved favorite "+fav.String())
			return nil
		},
	}

	removeCmd := &cobra.Command{
		Use:   "remove <n>",
		Short: "Delete favorite n",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := favoriteIndex(args[0])
			if err != nil {
				return err
			}
			fav, err := c.app.Favorites.Remove(i)
			if err != nil {
				return fail(err)
			}
			fmt.Fprintln(c.stdout, "Removed "+fav.String())
			return nil
		},
	}

	var edit favorites.Favorite
	editCmd := &cobra.Command{
		Use:   "edit <n>",
		Short: "Change favorite n; omitted fields keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := favoriteIndex(args[0])
			if err != nil {
				return err
			}
			fav, err := c.app.Favorites.Edit(i, edit)
			if err != nil {
				return fail(err)
			}
			fmt.Fprintln(c.stdout, "Updated favorite "+fav.String())
			return nil
		},
	}
	editCmd.Flags().StringVar(&edit.From, "from", "", "source unit")
	editCmd.Flags().StringVar(&edit.To, "to", "", "target unit")
	editCmd.Flags().StringVar(&edit.Category, "category", "", "category")

	useCmd := &cobra.Command{
		Use:   "use <n> <value>",
		Short: "Convert a value with favorite n",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := favoriteIndex(args[0])
			if err != nil {
				return err
			}
			v, err := units.ParseValue(args[1])
			if err != nil {
				return err
			}
			fav, err := c.app.Favorites.Get(i)
			if err != nil {
				return fail(err)
			}
			conv, err := c.app.Convert(v, fav.From, fav.To, fav.Category)
			if err != nil {
				return fail(err)
			}
			c.printResult(conv)
			return nil
		},
	}

	cmd.AddCommand(addCmd, removeCmd, editCmd, useCmd)
	return cmd
}

// favoriteIndex parses a 1-based favorite number.
func favoriteIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid favorite number %q", s)
	}
	return n - 1, nil
}
