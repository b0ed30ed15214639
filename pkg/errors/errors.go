// Package errors provides structured error types for unit conversion.
//
// This package defines ConversionError, a single error type that carries the
// failure kind, a stable code, the offending token and optional hints, so that
// the interactive shell can re-prompt and the command line can report and exit.
package errors

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// Kind categorizes errors for matching with errors.Is.
type Kind string

const (
	KindUnknownUnit        Kind = "unknown_unit"        // Token does not resolve in scope
	KindUnknownCategory    Kind = "unknown_category"    // Category name not in the catalog
	KindIncompatibleUnits  Kind = "incompatible_units"  // Category or temperature mismatch
	KindInvalidValue       Kind = "invalid_value"       // Unparseable numeric literal
	KindStorageUnavailable Kind = "storage_unavailable" // History/favorites file I/O
)

// ConversionError represents any failure reported by the converter.
type ConversionError struct {
	Kind    Kind           `json:"kind"`            // Error category
	Code    string         `json:"code"`            // Error code (e.g., "UNIT-0001")
	Message string         `json:"message"`         // Human-readable message
	Token   string         `json:"token,omitempty"` // Offending user input, if any
	Hints   []string       `json:"hints,omitempty"` // Suggestions for fixing
	Data    map[string]any `json:"data,omitempty"`  // Template variables
	Err     error          `json:"-"`               // Underlying cause
}

// Sentinels for errors.Is. Only the Kind is compared.
var (
	ErrUnknownUnit        = &ConversionError{Kind: KindUnknownUnit}
	ErrUnknownCategory    = &ConversionError{Kind: KindUnknownCategory}
	ErrIncompatibleUnits  = &ConversionError{Kind: KindIncompatibleUnits}
	ErrInvalidValue       = &ConversionError{Kind: KindInvalidValue}
	ErrStorageUnavailable = &ConversionError{Kind: KindStorageUnavailable}
)

// Error implements the error interface.
func (e *ConversionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *ConversionError) Unwrap() error {
	return e.Err
}

// Is reports whether target is a ConversionError of the same kind.
func (e *ConversionError) Is(target error) bool {
	t, ok := target.(*ConversionError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// PrettyString returns a multi-line string for terminal display.
func (e *ConversionError) PrettyString() string {
	var sb strings.Builder
	sb.WriteString("Error: ")
	sb.WriteString(e.Error())
	for i, hint := range e.Hints {
		sb.WriteString("\n  ")
		if i == 0 {
			sb.WriteString("hint: ")
		} else {
			sb.WriteString("  or: ")
		}
		sb.WriteString(hint)
	}
	return sb.String()
}

// WithHints returns a copy of the error with extra hints appended.
func (e *ConversionError) WithHints(hints ...string) *ConversionError {
	copy := *e
	copy.Hints = append(append([]string(nil), e.Hints...), hints...)
	return &copy
}

// ErrorDef defines an error in the catalog.
type ErrorDef struct {
	Kind     Kind     // Error category
	Template string   // Message template with {{.placeholders}}
	Hints    []string // Hint templates (may use {{.placeholders}})
}

// ErrorCatalog maps error codes to their definitions.
var ErrorCatalog = map[string]ErrorDef{
	"UNIT-0001": {
		Kind:     KindUnknownUnit,
		Template: "unknown unit '{{.Token}}'",
	},
	"UNIT-0002": {
		Kind:     KindUnknownUnit,
		Template: "unknown unit '{{.Token}}' in category {{.Scope}}",
	},
	"UNIT-0003": {
		Kind:     KindIncompatibleUnits,
		Template: "cannot convert {{.From}} ({{.FromCategory}}) to {{.To}} ({{.ToCategory}})",
		Hints:    []string{"pick two units from the same category"},
	},
	"UNIT-0004": {
		Kind:     KindIncompatibleUnits,
		Template: "cannot mix temperature and linear units: {{.From}} and {{.To}}",
	},
	"UNIT-0005": {
		Kind:     KindIncompatibleUnits,
		Template: "unsupported temperature scale '{{.Token}}'",
	},
	"UNIT-0006": {
		Kind:     KindUnknownCategory,
		Template: "unknown category '{{.Token}}'",
		Hints:    []string{"run 'unitconv units' to list categories"},
	},
	"VALUE-0001": {
		Kind:     KindInvalidValue,
		Template: "invalid number '{{.Token}}'",
		Hints:    []string{"enter a number such as 10, -3.5 or 1e6"},
	},
	"STORE-0001": {
		Kind:     KindStorageUnavailable,
		Template: "cannot {{.Op}} {{.Path}}",
	},
}

// New creates a ConversionError from the catalog using the given code and data.
// Unknown codes produce an error whose message names the code.
func New(code string, data map[string]any) *ConversionError {
	def, ok := ErrorCatalog[code]
	if !ok {
		return &ConversionError{Code: code, Message: "unknown error code " + code, Data: data}
	}

	e := &ConversionError{
		Kind:    def.Kind,
		Code:    code,
		Message: renderTemplate(def.Template, data),
		Data:    data,
	}
	if tok, ok := data["Token"].(string); ok {
		e.Token = tok
	}
	for _, h := range def.Hints {
		e.Hints = append(e.Hints, renderTemplate(h, data))
	}
	return e
}

// UnknownUnit reports a token that did not resolve. When candidates are given
// and one is close enough, a "did you mean" hint is attached.
func UnknownUnit(token, scope string, candidates []string) *ConversionError {
	code := "UNIT-0001"
	if scope != "" && scope != "All" {
		code = "UNIT-0002"
	}
	e := New(code, map[string]any{"Token": token, "Scope": scope})
	if suggestion := FindClosestMatch(token, candidates); suggestion != "" {
		e.Hints = append(e.Hints, fmt.Sprintf("did you mean '%s'?", suggestion))
	}
	return e
}

// UnknownCategory reports a category name that is not in the catalog.
func UnknownCategory(token string, categories []string) *ConversionError {
	e := New("UNIT-0006", map[string]any{"Token": token})
	if suggestion := FindClosestMatch(token, categories); suggestion != "" {
		e.Hints = append([]string{fmt.Sprintf("did you mean '%s'?", suggestion)}, e.Hints...)
	}
	return e
}

// IncompatibleUnits reports two units from different categories.
func IncompatibleUnits(from, fromCategory, to, toCategory string) *ConversionError {
	return New("UNIT-0003", map[string]any{
		"From": from, "FromCategory": fromCategory,
		"To": to, "ToCategory": toCategory,
	})
}

// MixedTemperature reports a temperature unit paired with a linear unit.
func MixedTemperature(from, to string) *ConversionError {
	return New("UNIT-0004", map[string]any{"From": from, "To": to})
}

// UnsupportedScale reports a temperature unit whose symbol has no formula.
func UnsupportedScale(symbol string) *ConversionError {
	return New("UNIT-0005", map[string]any{"Token": symbol})
}

// InvalidValue reports an input that holds no numeric literal.
func InvalidValue(input string) *ConversionError {
	return New("VALUE-0001", map[string]any{"Token": input})
}

// StorageUnavailable wraps an I/O failure on a history or favorites file.
func StorageUnavailable(op, path string, err error) *ConversionError {
	e := New("STORE-0001", map[string]any{"Op": op, "Path": path})
	e.Err = err
	return e
}

// renderTemplate executes a template string with the given data.
func renderTemplate(tmplStr string, data map[string]any) string {
	tmpl, err := template.New("error").Option("missingkey=zero").Parse(tmplStr)
	if err != nil {
		return tmplStr
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return tmplStr
	}
	return strings.ReplaceAll(buf.String(), "<no value>", "")
}

// levenshteinDistance computes the edit distance between two strings.
func levenshteinDistance(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

// FindClosestMatch finds the closest match to the given string from candidates.
// Returns the best match if the distance is within the threshold, otherwise empty string.
// Comparison ignores case; the candidate is returned in its original case.
func FindClosestMatch(input string, candidates []string) string {
	if len(input) == 0 || len(candidates) == 0 {
		return ""
	}

	inputLower := strings.ToLower(input)

	var bestMatch string
	bestDistance := -1

	for _, candidate := range candidates {
		dist := levenshteinDistance(inputLower, strings.ToLower(candidate))
		if bestDistance == -1 || dist < bestDistance {
			bestDistance = dist
			bestMatch = candidate
		}
	}

	// Short words (1-3): max 1 edit
	// Medium words (4-6): max 2 edits
	// Longer words (7+): max 3 edits
	threshold := 1
	if len(input) >= 4 && len(input) <= 6 {
		threshold = 2
	} else if len(input) >= 7 {
		threshold = 3
	}

	// A zero distance only helps when the case differs (mw -> mW)
	if bestDistance < 0 || bestDistance > threshold || bestMatch == input {
		return ""
	}

	return bestMatch
}
