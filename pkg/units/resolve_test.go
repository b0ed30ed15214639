package units

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	return NewResolver(DefaultCatalog())
}

func TestResolve(t *testing.T) {
	r := newTestResolver(t)
	tests := []struct {
		name       string
		token      string
		scope      string
		wantSymbol string
		wantCat    string
	}{
		{"symbol", "km", ScopeAll, "km", CategoryLength},
		{"upper symbol", "KM", ScopeAll, "km", CategoryLength},
		{"padded", "  ft ", CategoryLength, "ft", CategoryLength},
		{"alias", "metre", ScopeAll, "m", CategoryLength},
		{"alias upper", "METRE", CategoryLength, "m", CategoryLength},
		{"alias with space", "nautical mile", ScopeAll, "nmi", CategoryLength},
		{"bit", "b", ScopeAll, "b", CategoryDigitalStorage},
		{"byte", "B", ScopeAll, "B", CategoryDigitalStorage},
		{"byte in data", "B", CategoryData, "B", CategoryData},
		{"megabit", "Mb", ScopeAll, "Mb", CategoryDigitalStorage},
		{"megabyte", "MB", ScopeAll, "MB", CategoryDigitalStorage},
		{"megabyte folded", "mb", ScopeAll, "MB", CategoryDigitalStorage},
		{"petabyte folded", "pb", ScopeAll, "PB", CategoryDigitalStorage},
		{"gigabyte folded in data", "gb", CategoryData, "GB", CategoryData},
		{"milliwatt", "mW", ScopeAll, "mW", CategoryPower},
		{"megawatt", "MW", ScopeAll, "MW", CategoryPower},
		{"megawatt alias upper", "MEGAWATT", ScopeAll, "MW", CategoryPower},
		{"storage wins under all", "KB", ScopeAll, "KB", CategoryDigitalStorage},
		{"decimal in data", "KB", CategoryData, "kB", CategoryData},
		{"micro sign", "µm", ScopeAll, "µm", CategoryLength},
		{"micro ascii", "um", ScopeAll, "µm", CategoryLength},
		{"celsius lower", "c", ScopeAll, "C", CategoryTemperature},
		{"degree symbol", "°F", ScopeAll, "F", CategoryTemperature},
		{"acre", "acre", CategoryArea, "ac", CategoryArea},
		{"kph", "KPH", ScopeAll, "km/h", CategorySpeed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, ok := r.Resolve(tt.token, tt.scope)
			require.True(t, ok, "Resolve(%q, %q) not found", tt.token, tt.scope)
			assert.Equal(t, tt.wantSymbol, u.Symbol)
			assert.Equal(t, tt.wantCat, u.Category)
		})
	}
}

func TestResolveNotFound(t *testing.T) {
	r := newTestResolver(t)
	tests := []struct {
		token string
		scope string
	}{
		{"", ScopeAll},
		{"   ", ScopeAll},
		{"xyz", ScopeAll},
		{"km", CategoryMass},
		{"mw", ScopeAll},
		{"b", CategoryData},
		{"km", "Nowhere"},
	}
	for _, tt := range tests {
		t.Run(tt.token+"/"+tt.scope, func(t *testing.T) {
			_, ok := r.Resolve(tt.token, tt.scope)
			assert.False(t, ok)
		})
	}
}

func TestResolveIgnoresCase(t *testing.T) {
	r := newTestResolver(t)
	for _, u := range DefaultCatalog().Units() {
		if u.CaseSensitive {
			continue
		}
		for _, variant := range []string{u.Symbol, strings.ToUpper(u.Symbol), strings.ToLower(u.Symbol)} {
			got, ok := r.Resolve(variant, u.Category)
			if assert.True(t, ok, "%s: %q did not resolve", u.Name, variant) {
				assert.Equal(t, u.Symbol, got.Symbol, "%s: %q", u.Name, variant)
			}
		}
	}
}

func TestResolveAliases(t *testing.T) {
	r := newTestResolver(t)
	for _, u := range DefaultCatalog().Units() {
		for _, alias := range u.Aliases {
			got, ok := r.Resolve(alias, u.Category)
			if assert.True(t, ok, "%s: alias %q did not resolve", u.Name, alias) {
				assert.Equal(t, u.Symbol, got.Symbol, "%s: alias %q", u.Name, alias)
			}
		}
	}
}

func TestResolveMatchesLinearScan(t *testing.T) {
	cat := DefaultCatalog()
	r := NewResolver(cat)

	scan := func(token, scope string) (Unit, bool) {
		raw := Trim(token)
		if raw == "" {
			return Unit{}, false
		}
		for _, u := range cat.Units() {
			if !cat.inScope(u, scope) || !u.CaseSensitive {
				continue
			}
			if u.Symbol == raw {
				return u, true
			}
			for _, a := range u.Aliases {
				if a == raw {
					return u, true
				}
			}
		}
		n := Normalize(raw)
		for _, u := range cat.Units() {
			if !cat.inScope(u, scope) {
				continue
			}
			if !u.CaseSensitive && Normalize(u.Symbol) == n {
				return u, true
			}
			for _, a := range u.Aliases {
				if Normalize(a) == n {
					return u, true
				}
			}
		}
		return Unit{}, false
	}

	tokens := append(r.Candidates(ScopeAll), "xyz", "MB", "mb", "kb", "Kb", "B", "b", "MW", "mw", "M", "T")
	scopes := append([]string{ScopeAll}, cat.Categories()...)
	for _, scope := range scopes {
		for _, tok := range tokens {
			want, wantOK := scan(tok, scope)
			got, gotOK := r.Resolve(tok, scope)
			require.Equal(t, wantOK, gotOK, "Resolve(%q, %q)", tok, scope)
			assert.Equal(t, want.Symbol, got.Symbol, "Resolve(%q, %q)", tok, scope)
			assert.Equal(t, want.Category, got.Category, "Resolve(%q, %q)", tok, scope)
		}
	}
}

func TestLookup(t *testing.T) {
	r := newTestResolver(t)
	tests := []struct {
		token string
		want  string
	}{
		{"km", "km"},
		{"Kilometer", "km"},
		{"square foot", "ft2"},
		{"Meter per Second", "m/s"},
		{"torr", "torr"},
	}
	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			u, ok := r.Lookup(tt.token)
			require.True(t, ok)
			assert.Equal(t, tt.want, u.Symbol)
		})
	}

	_, ok := r.Lookup("flux capacitor")
	assert.False(t, ok)
}

func TestCandidates(t *testing.T) {
	r := newTestResolver(t)

	power := r.Candidates(CategoryPower)
	assert.Contains(t, power, "mW")
	assert.Contains(t, power, "horsepower")
	assert.NotContains(t, power, "km")

	all := r.Candidates(ScopeAll)
	seen := make(map[string]bool)
	for _, c := range all {
		assert.False(t, seen[c], "duplicate candidate %q", c)
		seen[c] = true
	}
	assert.Equal(t, "m", all[0])
}

func TestKnown(t *testing.T) {
	known := newTestResolver(t).Known(CategoryLength)
	assert.True(t, known("mm"))
	assert.True(t, known("Feet"))
	assert.False(t, known("kg"))
}
