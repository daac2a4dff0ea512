package main

// Notes:
// - runMain: we test dispatch and exit codes. Conversion details live in
//   convert_test.go.
// - The real main() is not tested: it only calls os.Exit(runMain(...)).
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"path/filepath"
	"strings"
	"testing"

	csvblocks "github.com/alnah/go-csvblocks"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// ---------------------------------------------------------------------------
// TestRunMain - Command dispatch
// ---------------------------------------------------------------------------

func TestRunMain_Dispatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		args       []string
		wantCode   int
		wantStdout string
		wantStderr string
	}{
		{name: "no command", args: []string{"csvblocks"}, wantCode: ExitUsage, wantStderr: "Usage: csvblocks"},
		{name: "unknown command", args: []string{"csvblocks", "frobnicate"}, wantCode: ExitUsage, wantStderr: "Unknown command: frobnicate"},
		{name: "version", args: []string{"csvblocks", "version"}, wantCode: ExitSuccess, wantStdout: "csvblocks " + Version},
		{name: "version flag", args: []string{"csvblocks", "--version"}, wantCode: ExitSuccess, wantStdout: "csvblocks "},
		{name: "help", args: []string{"csvblocks", "help"}, wantCode: ExitSuccess, wantStdout: "Commands:"},
		{name: "help convert", args: []string{"csvblocks", "help", "convert"}, wantCode: ExitSuccess, wantStdout: "--mapping"},
		{name: "help sample", args: []string{"csvblocks", "help", "sample"}, wantCode: ExitSuccess, wantStdout: "csvblocks sample"},
		{name: "help doctor", args: []string{"csvblocks", "help", "doctor"}, wantCode: ExitSuccess, wantStdout: "csvblocks doctor"},
		{name: "help completion", args: []string{"csvblocks", "help", "completion"}, wantCode: ExitSuccess, wantStdout: "csvblocks completion"},
		{name: "doctor bad flag", args: []string{"csvblocks", "doctor", "--nope"}, wantCode: ExitUsage, wantStderr: "nope"},
		{name: "help unknown", args: []string{"csvblocks", "help", "nope"}, wantCode: ExitUsage, wantStderr: "Unknown command: nope"},
		{name: "convert help flag", args: []string{"csvblocks", "convert", "--help"}, wantCode: ExitSuccess, wantStderr: "Usage: csvblocks convert"},
		{name: "convert bad flag", args: []string{"csvblocks", "convert", "--no-such-flag"}, wantCode: ExitUsage, wantStderr: "no-such-flag"},
		{name: "convert missing file", args: []string{"csvblocks", "convert", "/nonexistent/a.csv"}, wantCode: ExitIO, wantStderr: "error:"},
		{name: "sample extra args", args: []string{"csvblocks", "sample", "extra"}, wantCode: ExitUsage, wantStderr: "unexpected arguments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv()
			code := runMain(tt.args, env)

			if code != tt.wantCode {
				t.Errorf("runMain() = %d, want %d (stderr: %s)", code, tt.wantCode, stderr)
			}
			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout = %q, want substring %q", stdout, tt.wantStdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want substring %q", stderr, tt.wantStderr)
			}
		})
	}
}

func TestRunMain_ImplicitConvert(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	in := writeTestFile(t, filepath.Join(dir, "blocks.csv"), csvblocks.SampleCSV)

	env, stdout, stderr := testEnv()
	if code := runMain([]string{"csvblocks", in}, env); code != ExitSuccess {
		t.Fatalf("runMain() = %d, want %d (stderr: %s)", code, ExitSuccess, stderr)
	}
	if !strings.Contains(stdout.String(), "Created "+filepath.Join(dir, "blocks.html")) {
		t.Errorf("stdout = %q, want Created line", stdout)
	}
}

// ---------------------------------------------------------------------------
// TestRunSample - Sample command
// ---------------------------------------------------------------------------

func TestRunSample_CSV(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv()
	if code := runMain([]string{"csvblocks", "sample"}, env); code != ExitSuccess {
		t.Fatalf("runMain() = %d", code)
	}

	got := strings.TrimSuffix(stdout.String(), "\n")
	if got != csvblocks.SampleCSV {
		t.Errorf("sample output differs from SampleCSV:\n%s", cmp.Diff(csvblocks.SampleCSV, got))
	}
	if n := len(csvblocks.Classify(csvblocks.Tokenize(got), csvblocks.DefaultMapping())); n != 2 {
		t.Errorf("sample classifies into %d sections, want 2", n)
	}
}

func TestRunSample_Mapping(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv()
	if code := runMain([]string{"csvblocks", "sample", "--mapping"}, env); code != ExitSuccess {
		t.Fatalf("runMain() = %d", code)
	}

	got, err := csvblocks.ParseMapping(stdout.Bytes())
	if err != nil {
		t.Fatalf("printed mapping does not parse: %v\n%s", err, stdout)
	}
	if diff := cmp.Diff(csvblocks.DefaultMapping(), got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("printed mapping mismatch (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// TestIsCommand / TestLooksLikeInput
// ---------------------------------------------------------------------------

func TestIsCommand(t *testing.T) {
	t.Parallel()

	for _, c := range []string{"convert", "sample", "doctor", "completion", "version", "help"} {
		if !isCommand(c) {
			t.Errorf("isCommand(%q) = false", c)
		}
	}
	for _, c := range []string{"", "conv", "data.csv", "--help"} {
		if isCommand(c) {
			t.Errorf("isCommand(%q) = true", c)
		}
	}
}

func TestLooksLikeInput(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"a.csv":        true,
		"A.CSV":        true,
		"dir/b.xlsx":   true,
		"c.xlsm":       true,
		"notes.md":     false,
		"convert":      false,
		"archive.xls":  false,
		"csv":          false,
		"report.csv.z": false,
	}
	for arg, want := range tests {
		if got := looksLikeInput(arg); got != want {
			t.Errorf("looksLikeInput(%q) = %v, want %v", arg, got, want)
		}
	}
}

func TestVersion(t *testing.T) {
	t.Parallel()

	if Version == "" {
		t.Error("Version should not be empty")
	}
}
