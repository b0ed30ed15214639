// Package units implements the unit catalog, name normalization, unit
// resolution, the conversion engine and the metric prefix parser.
package units

import (
	"fmt"
	"strings"
)

// ScopeAll is the pseudo-category that matches every category.
const ScopeAll = "All"

// Temperature scale symbols. Temperature units are linked through Celsius.
const (
	Celsius    = "C"
	Fahrenheit = "F"
	Kelvin     = "K"
)

// Unit describes one measurement unit.
type Unit struct {
	Name          string   // Human-readable label, unique within its category
	Symbol        string   // Canonical short token, primary lookup key
	Factor        float64  // Ratio to the category base unit; unused for temperature
	Category      string   // One of the catalog categories
	Temperature   bool     // Selects the affine conversion path
	CaseSensitive bool     // Compare symbol and aliases verbatim
	Aliases       []string // Alternate tokens, matched in declared order
	Description   string
}

// IsBase reports whether u is the base unit of a linear category.
func (u Unit) IsBase() bool {
	return !u.Temperature && u.Factor == 1
}

func (u Unit) clone() Unit {
	u.Aliases = append([]string(nil), u.Aliases...)
	return u
}

// Catalog is the read-only table of units and categories.
type Catalog struct {
	categories []string
	units      []Unit
}

// NewCatalog validates and builds a catalog. The slices are copied.
func NewCatalog(categories []string, units []Unit) (*Catalog, error) {
	var errs []string

	declared := make(map[string]bool, len(categories))
	for _, c := range categories {
		if c == "" || c == ScopeAll {
			errs = append(errs, fmt.Sprintf("invalid category name %q", c))
			continue
		}
		if declared[c] {
			errs = append(errs, fmt.Sprintf("duplicate category %q", c))
		}
		declared[c] = true
	}

	bases := make(map[string]int)
	names := make(map[string]bool)
	for i, u := range units {
		if u.Symbol == "" {
			errs = append(errs, fmt.Sprintf("units[%d]: symbol is required", i))
		}
		if !declared[u.Category] {
			errs = append(errs, fmt.Sprintf("units[%d] %s: undeclared category %q", i, u.Symbol, u.Category))
		}
		key := u.Category + "/" + u.Name
		if names[key] {
			errs = append(errs, fmt.Sprintf("units[%d]: duplicate name %q in %s", i, u.Name, u.Category))
		}
		names[key] = true

		if u.Temperature {
			switch u.Symbol {
			case Celsius, Fahrenheit, Kelvin:
			default:
				errs = append(errs, fmt.Sprintf("units[%d]: unsupported temperature scale %q", i, u.Symbol))
			}
			continue
		}
		if u.Factor <= 0 {
			errs = append(errs, fmt.Sprintf("units[%d] %s: factor must be positive, got %g", i, u.Symbol, u.Factor))
		}
		if u.Factor == 1 {
			bases[u.Category]++
		}
	}

	for _, c := range categories {
		linear, temp := 0, 0
		for _, u := range units {
			if u.Category != c {
				continue
			}
			if u.Temperature {
				temp++
			} else {
				linear++
			}
		}
		if linear > 0 && temp > 0 {
			errs = append(errs, fmt.Sprintf("category %s mixes temperature and linear units", c))
		}
		if linear > 0 && bases[c] != 1 {
			errs = append(errs, fmt.Sprintf("category %s must have exactly one base unit, found %d", c, bases[c]))
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("catalog errors:\n  - %s", strings.Join(errs, "\n  - "))
	}

	cat := &Catalog{
		categories: append([]string(nil), categories...),
		units:      make([]Unit, len(units)),
	}
	for i, u := range units {
		cat.units[i] = u.clone()
	}
	return cat, nil
}

// Units returns every unit in catalog order.
func (c *Catalog) Units() []Unit {
	out := make([]Unit, len(c.units))
	for i, u := range c.units {
		out[i] = u.clone()
	}
	return out
}

// Categories returns the category names in menu order.
func (c *Catalog) Categories() []string {
	return append([]string(nil), c.categories...)
}

// InCategory returns the units of one category in catalog order.
func (c *Catalog) InCategory(category string) []Unit {
	var out []Unit
	for _, u := range c.units {
		if u.Category == category {
			out = append(out, u.clone())
		}
	}
	return out
}

// Category matches a user-typed category name ("digital storage", "LENGTH")
// and returns its canonical spelling. "All" is accepted as well.
func (c *Catalog) Category(token string) (string, bool) {
	n := Normalize(token)
	if n == "" {
		return "", false
	}
	if n == Normalize(ScopeAll) {
		return ScopeAll, true
	}
	for _, name := range c.categories {
		if Normalize(name) == n {
			return name, true
		}
	}
	return "", false
}

// Base returns the base unit of a linear category.
func (c *Catalog) Base(category string) (Unit, bool) {
	for _, u := range c.units {
		if u.Category == category && u.IsBase() {
			return u, true
		}
	}
	return Unit{}, false
}

func (c *Catalog) inScope(u Unit, scope string) bool {
	return scope == ScopeAll || u.Category == scope
}
