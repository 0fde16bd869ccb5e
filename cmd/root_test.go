// Package cmd provides tests for CLI command handlers.
package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/nibzard/todoapp/internal/session"
	"github.com/nibzard/todoapp/internal/todo"
)

// testEnv isolates config lookup and transcripts in temp dirs.
func testEnv(t *testing.T) (project, logDir string) {
	t.Helper()
	home := t.TempDir()
	project = t.TempDir()
	logDir = filepath.Join(t.TempDir(), "logs")
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	for _, env := range os.Environ() {
		if name, _, ok := strings.Cut(env, "="); ok && strings.HasPrefix(name, "TODOAPP_") {
			t.Setenv(name, "")
		}
	}
	t.Setenv("TODOAPP_LOG_DIR", logDir)
	t.Chdir(project)
	return project, logDir
}

type result struct {
	out, err string
	runErr   error
}

func runCLI(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	err := run(context.Background(), args, streams{in: strings.NewReader(stdin), out: &out, err: &errOut})
	return result{out: out.String(), err: errOut.String(), runErr: err}
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

// TestRun tests the main dispatch.
func TestRun(t *testing.T) {
	testEnv(t)

	t.Run("help flag", func(t *testing.T) {
		for _, arg := range []string{"--help", "-h", "help"} {
			r := runCLI(t, "", arg)
			if r.runErr != nil {
				t.Fatalf("%s: %v", arg, r.runErr)
			}
			if !strings.Contains(r.out, "Commands:") || !strings.Contains(r.out, "add <text>") {
				t.Errorf("%s: usage missing sections:\n%s", arg, r.out)
			}
		}
	})

	t.Run("version", func(t *testing.T) {
		for _, arg := range []string{"--version", "-v", "version"} {
			r := runCLI(t, "", arg)
			if r.runErr != nil {
				t.Fatalf("%s: %v", arg, r.runErr)
			}
			if r.out != "todoapp version dev\n" {
				t.Errorf("%s: got %q", arg, r.out)
			}
		}
	})

	t.Run("unknown command", func(t *testing.T) {
		r := runCLI(t, "", "frobnicate")
		if r.runErr == nil || !strings.Contains(r.runErr.Error(), "unknown command") {
			t.Errorf("expected unknown command error, got %v", r.runErr)
		}
		if !strings.Contains(r.err, "Unknown command: frobnicate") {
			t.Errorf("stderr: %q", r.err)
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		r := runCLI(t, "", "--console-max-lines", "-3", "schema")
		if r.runErr == nil || !strings.Contains(r.runErr.Error(), "console_max_lines") {
			t.Errorf("expected config error, got %v", r.runErr)
		}
	})

	t.Run("schema", func(t *testing.T) {
		r := runCLI(t, "", "schema")
		if r.runErr != nil {
			t.Fatal(r.runErr)
		}
		var schema map[string]interface{}
		if err := json.Unmarshal([]byte(r.out), &schema); err != nil {
			t.Fatalf("schema is not JSON: %v", err)
		}
		if _, ok := schema["properties"]; !ok {
			t.Error("schema has no properties")
		}
	})
}

func TestReplDefaultsWithoutTerminal(t *testing.T) {
	testEnv(t)
	r := runCLI(t, "add buy milk\nlist\nbogus\nquit\nadd never\n", "--show-tips=false")
	if r.runErr != nil {
		t.Fatalf("repl failed: %v", r.runErr)
	}
	want := strings.Join([]string{
		"> Welcome to To-Do Apps!",
		"> Click any button above to get started.",
		"> Task added successfully!",
		`> Added: "buy milk"`,
		"> -----------------",
		"> 0: [ ] buy milk",
		"> -----------------",
		"> App closed successfully!",
	}, "\n") + "\n"
	if r.out != want {
		t.Errorf("stdout:\n%s\nwant:\n%s", r.out, want)
	}
	wantErr := "> Unknown command: bogus (try help)\n> Closing app...\n"
	if r.err != wantErr {
		t.Errorf("stderr: got %q, want %q", r.err, wantErr)
	}
}

func TestReplStopsOnCancel(t *testing.T) {
	testEnv(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	pr, pw, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer pw.Close()
	defer pr.Close()

	var out, errOut bytes.Buffer
	err = run(ctx, []string{"repl"}, streams{in: pr, out: &out, err: &errOut})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunScripts(t *testing.T) {
	project, _ := testEnv(t)
	first := writeFile(t, filepath.Join(project, "a.todo"), "# setup\nadd buy milk\nadd call mom\n")
	second := writeFile(t, filepath.Join(project, "b.todo"), "done 1\nrm 0\nadd   \n")

	r := runCLI(t, "", "run", first, "--json", second)
	if r.runErr != nil {
		t.Fatalf("run failed: %v\nstderr: %s", r.runErr, r.err)
	}

	var snap todo.Snapshot
	if err := json.Unmarshal([]byte(r.out), &snap); err != nil {
		t.Fatalf("stdout is not a snapshot: %v\n%s", err, r.out)
	}
	if snap.SchemaVersion != todo.SchemaVersion {
		t.Errorf("schema_version: got %d", snap.SchemaVersion)
	}
	if len(snap.Tasks) != 1 || snap.Tasks[0].Text != "call mom" || !snap.Tasks[0].Done || snap.Tasks[0].Index != 0 {
		t.Errorf("tasks: got %+v", snap.Tasks)
	}
	if snap.Stats != (todo.Stats{Total: 1, Completed: 1, Pending: 0}) {
		t.Errorf("stats: got %+v", snap.Stats)
	}
	for _, want := range []string{"Task added successfully!", "status=ok", "Please enter a task!", "failures"} {
		if !strings.Contains(r.err, want) {
			t.Errorf("stderr missing %q:\n%s", want, r.err)
		}
	}
}

func TestRunStrict(t *testing.T) {
	project, _ := testEnv(t)
	script := writeFile(t, filepath.Join(project, "s.todo"), "add a\ndone 4\nadd b\n")

	r := runCLI(t, "", "run", "--strict", "--json", script)
	if r.runErr == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(r.runErr, todo.ErrIndexOutOfRange) {
		t.Errorf("error should wrap ErrIndexOutOfRange: %v", r.runErr)
	}
	if !strings.Contains(r.runErr.Error(), "s.todo:2:") {
		t.Errorf("error should name the line: %v", r.runErr)
	}
	if r.out != "" {
		t.Errorf("no snapshot expected on failure, got %q", r.out)
	}
}

func TestRunFromStdin(t *testing.T) {
	testEnv(t)
	r := runCLI(t, "add from stdin\nstats\n", "run", "-")
	if r.runErr != nil {
		t.Fatal(r.runErr)
	}
	if !strings.Contains(r.out, "> Total: 1 | Completed: 0 | Pending: 1") {
		t.Errorf("stdout: %q", r.out)
	}
}

func TestRunRequiresScript(t *testing.T) {
	testEnv(t)
	if r := runCLI(t, "", "run"); r.runErr == nil {
		t.Error("expected error without scripts")
	}
	if r := runCLI(t, "", "run", "missing.todo"); r.runErr == nil {
		t.Error("expected error for missing script")
	}
}

func TestSeed(t *testing.T) {
	project, _ := testEnv(t)
	seed := writeFile(t, filepath.Join(project, "seed.json"),
		`{"schema_version": 1, "tasks": [{"text": "seeded"}, {"text": "finished", "done": true}]}`)
	script := writeFile(t, filepath.Join(project, "s.todo"), "list\n")

	r := runCLI(t, "", "--seed", seed, "run", "--json", script)
	if r.runErr != nil {
		t.Fatalf("run failed: %v\n%s", r.runErr, r.err)
	}
	var snap todo.Snapshot
	if err := json.Unmarshal([]byte(r.out), &snap); err != nil {
		t.Fatal(err)
	}
	if snap.Stats != (todo.Stats{Total: 2, Completed: 1, Pending: 1}) {
		t.Errorf("stats: got %+v", snap.Stats)
	}

	t.Run("invalid seed", func(t *testing.T) {
		bad := writeFile(t, filepath.Join(project, "bad.json"), `{"schema_version": 1, "tasks": [{"text": "  "}]}`)
		r := runCLI(t, "", "--seed", bad, "run", script)
		if r.runErr == nil || !strings.Contains(r.runErr.Error(), "tasks[0].text") {
			t.Errorf("expected seed validation error, got %v", r.runErr)
		}
	})

	t.Run("check", func(t *testing.T) {
		r := runCLI(t, "", "check", seed)
		if r.runErr != nil {
			t.Fatal(r.runErr)
		}
		if !strings.Contains(r.out, "ok (2 tasks)") {
			t.Errorf("stdout: %q", r.out)
		}

		bad := writeFile(t, filepath.Join(project, "bad2.json"), `{"schema_version": 2, "tasks": []}`)
		r = runCLI(t, "", "check", bad)
		if r.runErr == nil {
			t.Fatal("expected validation failure")
		}
		if !strings.Contains(r.out, "schema_version") {
			t.Errorf("stdout should list the error: %q", r.out)
		}
	})

	t.Run("check without file", func(t *testing.T) {
		if r := runCLI(t, "", "check"); r.runErr == nil {
			t.Error("expected error")
		}
	})
}

func TestTranscriptTailAndLs(t *testing.T) {
	testEnv(t)

	r := runCLI(t, "", "ls")
	if r.runErr != nil || !strings.Contains(r.out, "No transcripts found.") {
		t.Fatalf("empty ls: %v %q", r.runErr, r.out)
	}

	if r := runCLI(t, "add first\nquit\n", "repl"); r.runErr != nil {
		t.Fatal(r.runErr)
	}

	r = runCLI(t, "", "ls")
	if r.runErr != nil {
		t.Fatal(r.runErr)
	}
	if lines := strings.Split(strings.TrimSpace(r.out), "\n"); len(lines) != 1 || !strings.Contains(lines[0], ".jsonl") {
		t.Errorf("ls output: %q", r.out)
	}

	r = runCLI(t, "", "tail", "-n", "2")
	if r.runErr != nil {
		t.Fatal(r.runErr)
	}
	lines := strings.Split(strings.TrimSpace(r.out), "\n")
	if len(lines) != 2 {
		t.Fatalf("tail lines: got %d\n%s", len(lines), r.out)
	}
	var rec struct {
		Level   string `json:"level"`
		Message string `json:"message"`
		Session string `json:"session"`
	}
	if err := json.Unmarshal([]byte(lines[1]), &rec); err != nil {
		t.Fatalf("transcript line is not JSON: %v", err)
	}
	if rec.Message != "App closed successfully!" || rec.Level != "success" || rec.Session == "" {
		t.Errorf("last record: %+v", rec)
	}
}

func TestTranscriptDisabled(t *testing.T) {
	testEnv(t)
	if r := runCLI(t, "quit\n", "--transcript=false", "repl"); r.runErr != nil {
		t.Fatal(r.runErr)
	}
	r := runCLI(t, "", "ls")
	if !strings.Contains(r.out, "No transcripts found.") {
		t.Errorf("transcript written while disabled: %q", r.out)
	}
}

func TestConfigCommand(t *testing.T) {
	project, _ := testEnv(t)
	writeFile(t, filepath.Join(project, "todoapp.toml"), "confirm_quit = false\n")

	r := runCLI(t, "", "--show-tips=false", "config")
	if r.runErr != nil {
		t.Fatal(r.runErr)
	}
	for _, want := range []string{"todoapp.toml", "confirm_quit", "(project file)", "(flag)", "(environment)"} {
		if !strings.Contains(r.out, want) {
			t.Errorf("config output missing %q:\n%s", want, r.out)
		}
	}

	r = runCLI(t, "", "config", "--example")
	if r.runErr != nil || !strings.Contains(r.out, "[keys]") {
		t.Errorf("example: %v %q", r.runErr, r.out)
	}
}

func TestTUIRequiresTerminal(t *testing.T) {
	testEnv(t)
	r := runCLI(t, "", "tui")
	if r.runErr == nil || !strings.Contains(r.runErr.Error(), "TTY") {
		t.Errorf("expected TTY error, got %v", r.runErr)
	}
}

func TestParseInterspersed(t *testing.T) {
	tests := []struct {
		args []string
		want []string
		json bool
	}{
		{[]string{"a", "b"}, []string{"a", "b"}, false},
		{[]string{"--json", "a"}, []string{"a"}, true},
		{[]string{"a", "--json", "b"}, []string{"a", "b"}, true},
		{[]string{"-", "--json"}, []string{"-"}, true},
		{[]string{"a", "--", "--json"}, []string{"a", "--json"}, false},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			asJSON := fs.Bool("json", false, "")
			got, err := parseInterspersed(fs, tt.args)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, tt.want) || *asJSON != tt.json {
				t.Errorf("got %v json=%v, want %v json=%v", got, *asJSON, tt.want, tt.json)
			}
		})
	}
}

func TestCommandHelpMatchesSession(t *testing.T) {
	if !reflect.DeepEqual(commandHelp(), session.CommandHelp) {
		t.Error("usage and session help diverged")
	}
}
