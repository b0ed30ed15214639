package units

// Resolver maps user-typed tokens to catalog units.
//
// Resolution runs two passes. The first compares the trimmed token verbatim
// with the symbols and aliases of case-sensitive units. The second compares
// the normalized token with the normalized symbols and aliases of the other
// units, plus the aliases of case-sensitive units (their symbols never fold).
// Within a pass the first unit in catalog order wins.
type Resolver struct {
	catalog *Catalog
	exact   map[string][]int // verbatim key -> unit positions, ascending
	folded  map[string][]int // normalized key -> unit positions, ascending
	names   map[string][]int // normalized unit name -> unit positions
}

// NewResolver indexes the catalog.
func NewResolver(cat *Catalog) *Resolver {
	r := &Resolver{
		catalog: cat,
		exact:   make(map[string][]int),
		folded:  make(map[string][]int),
		names:   make(map[string][]int),
	}
	for i, u := range cat.units {
		if u.CaseSensitive {
			addKey(r.exact, Trim(u.Symbol), i)
			for _, a := range u.Aliases {
				addKey(r.exact, Trim(a), i)
				addKey(r.folded, Normalize(a), i)
			}
		} else {
			addKey(r.folded, Normalize(u.Symbol), i)
			for _, a := range u.Aliases {
				addKey(r.folded, Normalize(a), i)
			}
		}
		addKey(r.names, Normalize(u.Name), i)
	}
	return r
}

// addKey records position i under key once. Positions arrive in ascending
// order, so only the tail needs checking.
func addKey(index map[string][]int, key string, i int) {
	if key == "" {
		return
	}
	pos := index[key]
	if n := len(pos); n > 0 && pos[n-1] == i {
		return
	}
	index[key] = append(pos, i)
}

// Catalog returns the catalog the resolver was built from.
func (r *Resolver) Catalog() *Catalog {
	return r.catalog
}

// Resolve finds the unit named by token within scope (a category name or
// ScopeAll). An empty or unknown token reports false.
func (r *Resolver) Resolve(token, scope string) (Unit, bool) {
	raw := Trim(token)
	if raw == "" {
		return Unit{}, false
	}
	if u, ok := r.first(r.exact[raw], scope); ok {
		return u, true
	}
	return r.first(r.folded[Normalize(raw)], scope)
}

func (r *Resolver) first(positions []int, scope string) (Unit, bool) {
	for _, i := range positions {
		u := r.catalog.units[i]
		if r.catalog.inScope(u, scope) {
			return u.clone(), true
		}
	}
	return Unit{}, false
}

// Lookup resolves token in every category, then falls back to matching the
// unit's full name ("Kilometer", "nautical mile").
func (r *Resolver) Lookup(token string) (Unit, bool) {
	if u, ok := r.Resolve(token, ScopeAll); ok {
		return u, true
	}
	return r.first(r.names[Normalize(token)], ScopeAll)
}

// Known returns a predicate reporting whether a token names a unit in scope.
func (r *Resolver) Known(scope string) func(string) bool {
	return func(token string) bool {
		_, ok := r.Resolve(token, scope)
		return ok
	}
}

// Candidates lists the symbols and aliases of the units in scope, in catalog
// order without duplicates. Used for completion and "did you mean" hints.
func (r *Resolver) Candidates(scope string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(s string) {
		if s != "" && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, u := range r.catalog.units {
		if !r.catalog.inScope(u, scope) {
			continue
		}
		add(u.Symbol)
		for _, a := range u.Aliases {
			add(a)
		}
	}
	return out
}
