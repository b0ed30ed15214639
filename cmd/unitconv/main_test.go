package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type result struct {
	code   int
	stdout string
	stderr string
}

// testEnv returns a getenv rooted at a fresh config directory.
func testEnv(t *testing.T) func(string) string {
	t.Helper()
	dir := t.TempDir()
	vars := map[string]string{"XDG_CONFIG_HOME": dir, "HOME": dir}
	return func(key string) string { return vars[key] }
}

func runWith(getenv func(string) string, stdin string, args ...string) result {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	code := run(context.Background(), args, strings.NewReader(stdin), stdout, stderr, getenv)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestRunVersion(t *testing.T) {
	r := runWith(testEnv(t), "", "--version")
	if r.code != exitOK {
		t.Fatalf("exit %d: %s", r.code, r.stderr)
	}
	if !strings.Contains(r.stdout, "unitconv version "+Version) {
		t.Errorf("expected version output, got %q", r.stdout)
	}
}

func TestRunHelp(t *testing.T) {
	r := runWith(testEnv(t), "", "--help")
	if r.code != exitOK {
		t.Fatalf("exit %d: %s", r.code, r.stderr)
	}
	for _, want := range []string{"Convert between units", "--config", "history", "favorites"} {
		if !strings.Contains(r.stdout, want) {
			t.Errorf("expected %q in help, got %q", want, r.stdout)
		}
	}
}

func TestRunDirectConversion(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"10", "km", "mi"}, "10 km = 6.21371 mi\n"},
		{[]string{"-40", "C", "F"}, "-40 C = -40 F\n"},
		{[]string{"-40", "C", "F", "--verbose"}, "-40 C = -40 F\n"},
		{[]string{"1", "GiB", "MB"}, "1 GiB = 1073.74 MB\n"},
		{[]string{"1", "KB", "B"}, "1 KB = 1024 B\n"},
		{[]string{"1e-9", "m", "m"}, "1e-09 m = 1e-09 m\n"},
		{[]string{"1", "hp", "W"}, "1 hp = 745.7 W\n"},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			r := runWith(testEnv(t), "", tt.args...)
			if r.code != exitOK {
				t.Fatalf("exit %d: %s", r.code, r.stderr)
			}
			if r.stdout != tt.want {
				t.Errorf("got %q, want %q", r.stdout, tt.want)
			}
		})
	}
}

func TestRunDirectConversionErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
		want string
	}{
		{"too few arguments", []string{"10", "km"}, exitUsage, "usage: unitconv"},
		{"too many arguments", []string{"10", "km", "mi", "ft"}, exitUsage, "usage: unitconv"},
		{"bad value", []string{"abc", "km", "mi"}, exitUsage, "invalid number 'abc'"},
		{"value overflows", []string{"1e400", "m", "km"}, exitUsage, "invalid number '1e400'"},
		{"value underflows", []string{"1e-400", "m", "km"}, exitUsage, "invalid number '1e-400'"},
		{"unknown flag", []string{"--bogus"}, exitUsage, "unknown flag"},
		{"unknown unit", []string{"10", "km", "parsec"}, exitFailure, "unknown unit 'parsec'"},
		{"unknown unit hint", []string{"10", "kmm", "mi"}, exitFailure, "run 'unitconv units'"},
		{"incompatible", []string{"1", "m", "kg"}, exitFailure, "cannot convert m (Length) to kg (Mass)"},
		{"temperature and linear", []string{"1", "C", "m"}, exitFailure, "cannot mix temperature and linear units"},
		{"missing config", []string{"--config", "/nonexistent/unitconv.yaml", "1", "m", "ft"}, exitFailure, "config file not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := runWith(testEnv(t), "", tt.args...)
			if r.code != tt.code {
				t.Errorf("exit %d, want %d (stderr %q)", r.code, tt.code, r.stderr)
			}
			if !strings.Contains(r.stderr, tt.want) {
				t.Errorf("expected %q in stderr, got %q", tt.want, r.stderr)
			}
			if r.stdout != "" {
				t.Errorf("expected no output, got %q", r.stdout)
			}
		})
	}
}

func TestRunMagnitudeWarning(t *testing.T) {
	r := runWith(testEnv(t), "", "2e15", "m", "km")
	if r.code != exitOK {
		t.Fatalf("exit %d: %s", r.code, r.stderr)
	}
	if r.stdout != "2e+15 m = 2e+12 km\n" {
		t.Errorf("got %q", r.stdout)
	}
	if n := strings.Count(r.stderr, "precision may be lost"); n != 1 {
		t.Errorf("expected the warning once, got %d in %q", n, r.stderr)
	}
	if strings.Contains(r.stderr, "large conversion magnitude") {
		t.Errorf("warning should not also be logged at the default level: %q", r.stderr)
	}
}

func TestRunHistory(t *testing.T) {
	env := testEnv(t)
	for _, args := range [][]string{{"10", "km", "mi"}, {"1", "hp", "W"}} {
		if r := runWith(env, "", args...); r.code != exitOK {
			t.Fatalf("exit %d: %s", r.code, r.stderr)
		}
	}

	r := runWith(env, "", "history")
	if !strings.Contains(r.stdout, "10 km = 6.21371 mi") || !strings.Contains(r.stdout, "1 hp = 745.7 W") {
		t.Errorf("history missing conversions: %q", r.stdout)
	}
	if !strings.Contains(r.stdout, "ago") && !strings.Contains(r.stdout, "now") {
		t.Errorf("expected relative times, got %q", r.stdout)
	}

	r = runWith(env, "", "history", "--limit", "1")
	if strings.Contains(r.stdout, "10 km") || !strings.Contains(r.stdout, "1 hp") {
		t.Errorf("limit should keep only the newest entry: %q", r.stdout)
	}

	r = runWith(env, "", "history", "--since", "1h")
	if !strings.Contains(r.stdout, "1 hp") {
		t.Errorf("since 1h should include recent entries: %q", r.stdout)
	}

	r = runWith(env, "", "history", "--since", "not a time at all")
	if r.code != exitUsage {
		t.Errorf("bad --since: exit %d, want %d", r.code, exitUsage)
	}

	out := filepath.Join(t.TempDir(), "history.csv")
	r = runWith(env, "", "history", "export", "--out", out)
	if r.code != exitOK {
		t.Fatalf("export: exit %d: %s", r.code, r.stderr)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 || lines[0] != "From,To,Value,Result,Timestamp" {
		t.Errorf("unexpected export: %q", data)
	}

	r = runWith(env, "", "history", "clear")
	if !strings.Contains(r.stdout, "History cleared.") {
		t.Errorf("got %q", r.stdout)
	}
	r = runWith(env, "", "history")
	if !strings.Contains(r.stdout, "No conversions yet.") {
		t.Errorf("expected empty history, got %q", r.stdout)
	}
}

func TestRunUnits(t *testing.T) {
	env := testEnv(t)

	r := runWith(env, "", "units")
	for _, want := range []string{"Length", "Digital Storage", "Pressure", "Data"} {
		if !strings.Contains(r.stdout, want) {
			t.Errorf("expected %q in category list", want)
		}
	}

	r = runWith(env, "", "units", "length")
	if !strings.Contains(r.stdout, "Kilometer") || strings.Contains(r.stdout, "Kilogram") {
		t.Errorf("unexpected unit table: %q", r.stdout)
	}

	r = runWith(env, "", "units", "Lenght")
	if r.code != exitFailure || !strings.Contains(r.stderr, "did you mean 'Length'?") {
		t.Errorf("exit %d, stderr %q", r.code, r.stderr)
	}
}

func TestRunInfo(t *testing.T) {
	env := testEnv(t)
	r := runWith(env, "", "info", "square", "foot")
	if r.code != exitOK || !strings.Contains(r.stdout, "ft2") {
		t.Errorf("exit %d, stdout %q", r.code, r.stdout)
	}

	r = runWith(env, "", "info", "kmm")
	if r.code != exitFailure || !strings.Contains(r.stderr, "did you mean") {
		t.Errorf("exit %d, stderr %q", r.code, r.stderr)
	}
}

func TestRunBatch(t *testing.T) {
	env := testEnv(t)

	r := runWith(env, "", "batch", "C", "F", "0", "100", "oops", "-40")
	want := "0 C = 32 F\n100 C = 212 F\n-40 C = -40 F\n"
	if diff := cmp.Diff(want, r.stdout); diff != "" {
		t.Errorf("batch output mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(r.stderr, "skipping invalid number 'oops'") {
		t.Errorf("expected skip warning, got %q", r.stderr)
	}

	r = runWith(env, "1\n2\n\n3\n", "batch", "m", "ft")
	want = "1 m = 3.28084 ft\n2 m = 6.56168 ft\n"
	if diff := cmp.Diff(want, r.stdout); diff != "" {
		t.Errorf("stdin batch mismatch (-want +got):\n%s", diff)
	}

	r = runWith(env, "", "batch", "m", "kg", "1")
	if r.code != exitFailure {
		t.Errorf("incompatible batch: exit %d", r.code)
	}
}

func TestRunFavorites(t *testing.T) {
	env := testEnv(t)

	steps := []struct {
		args []string
		code int
		want string
	}{
		{[]string{"favorites"}, exitOK, "No favorites yet."},
		{[]string{"favorites", "add", "metre", "FT", "length"}, exitOK, "Saved favorite m -> ft (Length)"},
		{[]string{"favorites", "use", "1", "10"}, exitOK, "10 m = 32.8084 ft"},
		{[]string{"favorites", "use", "1", "-10"}, exitOK, "-10 m = -32.8084 ft"},
		{[]string{"favorites", "edit", "1", "--to", "in"}, exitOK, "Updated favorite m -> in (Length)"},
		{[]string{"favorites"}, exitOK, "in"},
		{[]string{"favorites", "add", "m", "kg", "Length"}, exitFailure, ""},
		{[]string{"favorites", "remove", "5"}, exitFailure, ""},
		{[]string{"favorites", "remove", "x"}, exitUsage, ""},
		{[]string{"favorites", "remove", "1"}, exitOK, "Removed m -> in (Length)"},
		{[]string{"favorites"}, exitOK, "No favorites yet."},
	}
	for _, s := range steps {
		r := runWith(env, "", s.args...)
		if r.code != s.code {
			t.Errorf("%v: exit %d, want %d (stderr %q)", s.args, r.code, s.code, r.stderr)
		}
		if !strings.Contains(r.stdout, s.want) {
			t.Errorf("%v: expected %q, got %q", s.args, s.want, r.stdout)
		}
	}
}

func TestRunShell(t *testing.T) {
	r := runWith(testEnv(t), "quick\n10 km to mi\nq\n")
	if r.code != exitOK {
		t.Fatalf("exit %d: %s", r.code, r.stderr)
	}
	if !strings.Contains(r.stdout, "10 km = 6.21371 mi") || !strings.Contains(r.stdout, "Goodbye!") {
		t.Errorf("unexpected shell output: %q", r.stdout)
	}
}

func TestRunWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "unitconv.yaml")
	config := `data_dir: data
history:
  backend: sqlite
  max_entries: 2
`
	if err := os.WriteFile(path, []byte(config), 0644); err != nil {
		t.Fatal(err)
	}
	env := testEnv(t)

	for _, v := range []string{"1", "2", "3"} {
		if r := runWith(env, "", "--config", path, v, "m", "ft"); r.code != exitOK {
			t.Fatalf("exit %d: %s", r.code, r.stderr)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "data", "history.db")); err != nil {
		t.Errorf("expected sqlite history in data dir: %v", err)
	}

	r := runWith(env, "", "--config", path, "history")
	if strings.Contains(r.stdout, "1 m =") || !strings.Contains(r.stdout, "3 m =") {
		t.Errorf("history should hold the newest 2 entries: %q", r.stdout)
	}
}

func TestNormalizeArgs(t *testing.T) {
	tests := []struct {
		in   []string
		want []string
	}{
		{[]string{"10", "km", "mi"}, []string{"10", "km", "mi"}},
		{[]string{"-40", "C", "F"}, []string{"--", "-40", "C", "F"}},
		{[]string{"-40", "C", "F", "-v"}, []string{"-v", "--", "-40", "C", "F"}},
		{[]string{"--config", "x.yaml", "-.5", "m", "ft"}, []string{"--config", "x.yaml", "--", "-.5", "m", "ft"}},
		{[]string{"batch", "C", "F", "-40", "0"}, []string{"batch", "C", "F", "--", "-40", "0"}},
		{[]string{"favorites", "use", "1", "-3"}, []string{"favorites", "use", "1", "--", "-3"}},
		{[]string{"--", "-40", "C", "F"}, []string{"--", "-40", "C", "F"}},
		{[]string{"--verbose", "history"}, []string{"--verbose", "history"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, normalizeArgs(tt.in)); diff != "" {
			t.Errorf("normalizeArgs(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestRunOutOfRangeValueIsNotRecorded(t *testing.T) {
	env := testEnv(t)
	if r := runWith(env, "", "1e400", "m", "km"); r.code != exitUsage {
		t.Fatalf("exit %d, want %d", r.code, exitUsage)
	}
	r := runWith(env, "", "history")
	if !strings.Contains(r.stdout, "No conversions yet.") {
		t.Errorf("expected empty history, got %q", r.stdout)
	}
}
