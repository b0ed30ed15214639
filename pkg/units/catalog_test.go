package units

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	cat := DefaultCatalog()

	want := []string{
		"Length", "Temperature", "Digital Storage", "Mass", "Time", "Volume",
		"Area", "Speed", "Energy", "Power", "Pressure", "Data",
	}
	if diff := cmp.Diff(want, cat.Categories()); diff != "" {
		t.Errorf("Categories() mismatch (-want +got):\n%s", diff)
	}

	assert.Greater(t, len(cat.Units()), 75)

	for _, c := range cat.Categories() {
		units := cat.InCategory(c)
		require.NotEmpty(t, units, "category %s has no units", c)
		if c == CategoryTemperature {
			continue
		}
		base, ok := cat.Base(c)
		require.True(t, ok, "category %s has no base", c)
		assert.Equal(t, 1.0, base.Factor)
	}
}

func TestCatalogUnitsIsACopy(t *testing.T) {
	cat := DefaultCatalog()
	units := cat.Units()
	units[0].Symbol = "changed"
	units[0].Aliases[0] = "changed"
	assert.Equal(t, "m", cat.Units()[0].Symbol)
	assert.Equal(t, "metre", cat.Units()[0].Aliases[0])
}

func TestCatalogCategoryLookup(t *testing.T) {
	cat := DefaultCatalog()
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"length", "Length", true},
		{"DIGITAL STORAGE", "Digital Storage", true},
		{"digitalstorage", "Digital Storage", true},
		{"all", ScopeAll, true},
		{"", "", false},
		{"Weight", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := cat.Category(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewCatalogValidation(t *testing.T) {
	tests := []struct {
		name       string
		categories []string
		units      []Unit
		wantErr    string
	}{
		{
			name:       "two bases",
			categories: []string{"Length"},
			units: []Unit{
				{Name: "Meter", Symbol: "m", Factor: 1, Category: "Length"},
				{Name: "Other", Symbol: "o", Factor: 1, Category: "Length"},
			},
			wantErr: "exactly one base unit, found 2",
		},
		{
			name:       "no base",
			categories: []string{"Length"},
			units:      []Unit{{Name: "Kilometer", Symbol: "km", Factor: 1000, Category: "Length"}},
			wantErr:    "exactly one base unit, found 0",
		},
		{
			name:       "undeclared category",
			categories: []string{"Length"},
			units:      []Unit{{Name: "Gram", Symbol: "g", Factor: 1, Category: "Mass"}},
			wantErr:    `undeclared category "Mass"`,
		},
		{
			name:       "negative factor",
			categories: []string{"Length"},
			units: []Unit{
				{Name: "Meter", Symbol: "m", Factor: 1, Category: "Length"},
				{Name: "Bad", Symbol: "bad", Factor: -2, Category: "Length"},
			},
			wantErr: "factor must be positive",
		},
		{
			name:       "unknown temperature scale",
			categories: []string{"Temperature"},
			units:      []Unit{{Name: "Rankine", Symbol: "R", Category: "Temperature", Temperature: true}},
			wantErr:    `unsupported temperature scale "R"`,
		},
		{
			name:       "reserved category",
			categories: []string{"All"},
			wantErr:    `invalid category name "All"`,
		},
		{
			name:       "duplicate name",
			categories: []string{"Length"},
			units: []Unit{
				{Name: "Meter", Symbol: "m", Factor: 1, Category: "Length"},
				{Name: "Meter", Symbol: "mtr", Factor: 2, Category: "Length"},
			},
			wantErr: `duplicate name "Meter"`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.categories, tt.units)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "catalog errors:")
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewCatalogCollectsAllErrors(t *testing.T) {
	_, err := NewCatalog([]string{"Length"}, []Unit{
		{Name: "A", Symbol: "", Factor: 0, Category: "Nowhere"},
	})
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "symbol is required")
	assert.Contains(t, msg, "undeclared category")
	assert.Contains(t, msg, "factor must be positive")
}
