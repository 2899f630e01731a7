package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"taskcli/internal/cli"
	"taskcli/internal/commands"
	"taskcli/internal/config"
	"taskcli/internal/exitcode"
	"taskcli/internal/service"
	"taskcli/internal/task"
	"taskcli/internal/testutil"
)

var fixedNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.Local)

// isolate keeps the user's config and environment out of the test.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv(config.EnvFile, "")
	t.Setenv(config.EnvLogLevel, "")
	t.Setenv(config.EnvGoogleList, "")
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	appDir := filepath.Join(dir, config.AppName)
	if err := os.MkdirAll(appDir, 0700); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	return appDir
}

// testFactory creates a store factory that returns the given FakeStore.
func testFactory(st *testutil.FakeStore) cli.StoreFactory {
	return func(cfg *config.Config) (service.Store, error) {
		return st, nil
	}
}

func run(t *testing.T, d *cli.Dispatcher, args ...string) (stdout, stderr string, code int) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	code = d.Run(context.Background(), args, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestDispatcher_UnknownCommand(t *testing.T) {
	isolate(t)
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeStore()))

	_, stderr, code := run(t, d, "unknowncmd")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: unknowncmd\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_FlagBeforeCommand(t *testing.T) {
	isolate(t)
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeStore()))

	_, stderr, code := run(t, d, "--quiet")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown command: --quiet\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_UnknownFlag(t *testing.T) {
	dir := isolate(t)
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeStore()))

	_, stderr, code := run(t, d, "list", "--config", dir, "--bogus")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	expected := "error: unknown flag: -bogus\n"
	if stderr != expected {
		t.Errorf("expected %q, got %q", expected, stderr)
	}
}

func TestDispatcher_MissingFlagValue(t *testing.T) {
	isolate(t)
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeStore()))

	_, stderr, code := run(t, d, "list", "--file")

	if code != exitcode.UserError {
		t.Errorf("expected exit code %d, got %d", exitcode.UserError, code)
	}
	if !strings.HasPrefix(stderr, "error: flag needs an argument: ") {
		t.Errorf("expected missing value error, got %q", stderr)
	}
}

func TestDispatcher_HelpCommand(t *testing.T) {
	isolate(t)
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeStore()))

	stdout, stderr, code := run(t, d, "help")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if !strings.Contains(stdout, "Usage:") {
		t.Error("expected help output to contain 'Usage:'")
	}
}

func TestDispatcher_NoArgsListsTasks(t *testing.T) {
	isolate(t)
	st := testutil.NewFakeStore(task.Task{ID: 1, Description: "write spec", Status: task.StatusTodo, CreatedAt: fixedNow, UpdatedAt: fixedNow})
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(st))

	stdout, stderr, code := run(t, d)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if !strings.Contains(stdout, "ID: 1 | Status: TODO | Description: write spec") {
		t.Errorf("expected task line, got %q", stdout)
	}
}

func TestDispatcher_MalformedConfig(t *testing.T) {
	dir := isolate(t)
	os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte("file = "), 0644)
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeStore()))

	_, stderr, code := run(t, d, "list", "--config", dir)

	if code != exitcode.AuthError {
		t.Errorf("expected exit code %d, got %d", exitcode.AuthError, code)
	}
	if !strings.Contains(stderr, "loading config file") {
		t.Errorf("expected config error, got %q", stderr)
	}
}

func TestDispatcher_DebugLogsToStderr(t *testing.T) {
	dir := isolate(t)
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(testutil.NewFakeStore()))

	stdout, stderr, code := run(t, d, "list", "--config", dir, "--debug")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stdout != "No tasks found\n" {
		t.Errorf("expected %q, got %q", "No tasks found\n", stdout)
	}
	if !strings.Contains(stderr, "dispatch") {
		t.Errorf("expected debug record on stderr, got %q", stderr)
	}
}

func TestDispatcher_Scenario(t *testing.T) {
	dir := isolate(t)
	file := filepath.Join(dir, "tasks.json")
	d := cli.NewDispatcher(commands.DefaultRegistry, cli.JSONFileStore)
	d.SetClock(func() time.Time { return fixedNow })
	common := []string{"--config", dir, "--file", file}

	stdout, stderr, code := run(t, d, append([]string{"add"}, append(common, "write", "spec")...)...)
	if code != exitcode.Success || stderr != "" {
		t.Fatalf("add: code %d, stderr %q", code, stderr)
	}
	if stdout != "Task added successfully (ID: 1)\n" {
		t.Errorf("expected %q, got %q", "Task added successfully (ID: 1)\n", stdout)
	}

	stdout, _, _ = run(t, d, append([]string{"mark-done"}, append(common, "1")...)...)
	if stdout != "Task 1 marked as done\n" {
		t.Errorf("expected %q, got %q", "Task 1 marked as done\n", stdout)
	}

	stdout, _, _ = run(t, d, append([]string{"list"}, append(common, "DONE")...)...)
	lines := strings.Split(strings.TrimSuffix(stdout, "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %q", stdout)
	}
	if !strings.Contains(lines[0], "ID: 1") || !strings.Contains(lines[0], "Description: write spec") {
		t.Errorf("unexpected list line %q", lines[0])
	}

	stdout, _, _ = run(t, d, append([]string{"delete"}, append(common, "1")...)...)
	if stdout != "Task 1 deleted successfully\n" {
		t.Errorf("expected %q, got %q", "Task 1 deleted successfully\n", stdout)
	}

	stdout, _, _ = run(t, d, append([]string{"list"}, common...)...)
	if stdout != "No tasks found\n" {
		t.Errorf("expected %q, got %q", "No tasks found\n", stdout)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "[]\n" {
		t.Errorf("expected empty array on disk, got %q", data)
	}
}

func TestDispatcher_FileFromConfigToml(t *testing.T) {
	dir := isolate(t)
	file := filepath.Join(dir, "from-config.json")
	os.WriteFile(filepath.Join(dir, config.ConfigFile), []byte("file = \""+file+"\"\n"), 0644)
	d := cli.NewDispatcher(commands.DefaultRegistry, nil)

	_, stderr, code := run(t, d, "add", "--config", dir, "--quiet", "from", "config")

	if code != exitcode.Success {
		t.Fatalf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if _, err := os.Stat(file); err != nil {
		t.Errorf("expected task file at %s: %v", file, err)
	}
}

func TestDispatcher_ZeroIDIsNotFound(t *testing.T) {
	dir := isolate(t)
	st := testutil.NewFakeStore(task.Task{ID: 1, Description: "write spec", Status: task.StatusTodo, CreatedAt: fixedNow, UpdatedAt: fixedNow})
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(st))

	for _, args := range [][]string{{"delete", "0"}, {"mark-done", "0"}, {"update", "0", "x"}} {
		argv := append([]string{args[0], "--config", dir}, args[1:]...)
		stdout, stderr, code := run(t, d, argv...)

		if code != exitcode.Success {
			t.Errorf("%v: expected exit code %d, got %d (stderr %q)", args, exitcode.Success, code, stderr)
		}
		if stdout != "Task 0 not found\n" {
			t.Errorf("%v: expected %q, got %q", args, "Task 0 not found\n", stdout)
		}
	}
	if st.Saves != 0 {
		t.Errorf("expected no saves, got %d", st.Saves)
	}
}

func TestDispatcher_AddEmptyDescription(t *testing.T) {
	dir := isolate(t)
	st := testutil.NewFakeStore()
	d := cli.NewDispatcher(commands.DefaultRegistry, testFactory(st))

	stdout, stderr, code := run(t, d, "add", "--config", dir, "")

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d (stderr %q)", exitcode.Success, code, stderr)
	}
	if stdout != "Task added successfully (ID: 1)\n" {
		t.Errorf("expected %q, got %q", "Task added successfully (ID: 1)\n", stdout)
	}
	if tasks := st.Tasks(); len(tasks) != 1 || tasks[0].Description != "" {
		t.Errorf("expected one task with empty description, got %+v", tasks)
	}
}

func TestDispatcher_ExportRefusesTaskFile(t *testing.T) {
	dir := isolate(t)
	file := filepath.Join(dir, "tasks.json")
	d := cli.NewDispatcher(commands.DefaultRegistry, cli.JSONFileStore)
	d.SetClock(func() time.Time { return fixedNow })

	run(t, d, "add", "--config", dir, "--file", file, "--quiet", "keep me")
	before, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	for _, output := range []string{file, filepath.Join(dir, ".", "tasks.json")} {
		_, stderr, code := run(t, d, "export", "--config", dir, "--file", file, "--format", "csv", "--output", output)

		if code != exitcode.UserError {
			t.Errorf("%s: expected exit code %d, got %d", output, exitcode.UserError, code)
		}
		if !strings.HasPrefix(stderr, "error: --output must not be the task file") {
			t.Errorf("%s: unexpected stderr %q", output, stderr)
		}
	}

	after, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Errorf("expected task file untouched, got %q", after)
	}
}
