package display

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sambeau/unitconv/favorites"
	"github.com/sambeau/unitconv/history"
	"github.com/sambeau/unitconv/pkg/units"
)

func TestUnitTable(t *testing.T) {
	s := NewStyles(false)
	out := s.UnitTable(units.DefaultCatalog().InCategory(units.CategoryPower))
	for _, want := range []string{"Symbol", "Name", "Aliases", "mW", "Milliwatt", "horsepower"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Kilometer")
}

func TestHistoryTable(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	entries := []history.Entry{
		{From: "m", To: "km", Value: 1000, Result: 1, Time: now.Add(-2 * time.Hour)},
		{From: "hp", To: "W", Value: 1, Result: 745.7, Time: now.Add(-30 * time.Second)},
	}
	out := NewStyles(false).HistoryTable(entries, now)

	assert.Contains(t, out, "1000 m = 1 km")
	assert.Contains(t, out, "1 hp = 745.7 W")
	assert.Contains(t, out, "2 hours ago")
	assert.Less(t, strings.Index(out, "745.7"), strings.Index(out, "1000 m"), "newest first")
}

func TestFavoritesTable(t *testing.T) {
	out := NewStyles(false).FavoritesTable([]favorites.Favorite{
		{From: "C", To: "F", Category: "Temperature"},
	})
	assert.Contains(t, out, "Temperature")
	assert.Contains(t, out, "Category")
}

func TestMenu(t *testing.T) {
	out := NewStyles(false).Menu("Main Menu", []string{"Length", "Mass"})
	assert.Equal(t, "Main Menu\n  1. Length\n  2. Mass\n", out)
}

func TestUnitInfo(t *testing.T) {
	cat := units.DefaultCatalog()
	r := units.NewResolver(cat)
	s := NewStyles(false)

	km, _ := r.Resolve("km", units.ScopeAll)
	base, _ := cat.Base(km.Category)
	out := s.UnitInfo(km, base)
	assert.Contains(t, out, "Kilometer")
	assert.Contains(t, out, "1 km = 1000 m")
	assert.Contains(t, out, "kilometre")

	c, _ := r.Resolve("C", units.ScopeAll)
	assert.Contains(t, s.UnitInfo(c, units.Unit{}), "through Celsius")

	mw, _ := r.Resolve("mW", units.ScopeAll)
	pbase, _ := cat.Base(mw.Category)
	assert.Contains(t, s.UnitInfo(mw, pbase), "case-sensitive")

	m, _ := r.Resolve("m", units.ScopeAll)
	assert.Contains(t, s.UnitInfo(m, m), "base unit")
}

func TestCount(t *testing.T) {
	assert.Equal(t, "1 entry", Count(1, "entry", "entries"))
	assert.Equal(t, "1,024 entries", Count(1024, "entry", "entries"))
}
