package shell

import (
	"github.com/charmbracelet/glamour"
)

const helpText = `# unitconv

## Menus

Pick a category by number or name, then enter a **value and unit** such as
` + "`10 km`" + `, ` + "`2.5kg`" + ` or ` + "`-40 C`" + `, and the unit to convert to.
Metric prefixes work on any unit: ` + "`2kft`" + ` is 2000 feet.

* **Favorites**: saved unit pairs. Enter a number to use one, ` + "`a`" + ` to add,
  ` + "`e N`" + ` to edit and ` + "`r N`" + ` to remove.
* **Quick conversion**: one line, ` + "`10 km to mi`" + ` (also ` + "`in`" + ` or ` + "`->`" + `).
* **Batch conversion**: pick two units, then enter values one per line.
  A blank line finishes.
* **History**: recent conversions. ` + "`c`" + ` clears, ` + "`x [file]`" + ` exports CSV
  (` + "`.gz`" + ` compresses, ` + "`.xlsx`" + ` writes a spreadsheet).
* **Unit info**: details for a unit symbol, alias or name.

## Keys

| Key | Action |
|-----|--------|
| Tab | complete a unit symbol |
| Up/Down | previous input |
| Ctrl-C | cancel the current prompt |
| Ctrl-D | leave unitconv |

## Units

Symbols are matched without regard to case, except where case carries meaning:
` + "`b`" + ` is a bit and ` + "`B`" + ` a byte, ` + "`mW`" + ` a milliwatt and ` + "`MW`" + ` a megawatt.
Digital Storage uses binary multiples (1 KB = 1024 B); Data uses decimal
multiples (1 kB = 1000 B) alongside KiB, MiB, GiB and TiB.
`

// renderHelp renders the help page. Plain output skips styling; a
// rendering failure falls back to the raw markdown.
func renderHelp(color bool) string {
	style := glamour.WithStandardStyle("notty")
	if color {
		style = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(80))
	if err != nil {
		return helpText
	}
	out, err := r.Render(helpText)
	if err != nil {
		return helpText
	}
	return out
}
