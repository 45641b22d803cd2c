package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harrisonrobin/dayblock/pkg/config"
	"github.com/harrisonrobin/dayblock/pkg/model"
	"github.com/harrisonrobin/dayblock/pkg/scheduler"
	"github.com/harrisonrobin/dayblock/pkg/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func runCLI(t *testing.T, dir, stdin string, args ...string) result {
	t.Helper()
	var out, errOut bytes.Buffer
	args = append([]string{"--config-dir", dir}, args...)
	code := run(context.Background(), args, strings.NewReader(stdin), &out, &errOut)
	return result{code: code, stdout: out.String(), stderr: errOut.String()}
}

func signIn(t *testing.T, dir string) {
	t.Helper()
	res := runCLI(t, dir, "", "signin", "--first", " Ada ", "--surname", "Lovelace", "--email", "ada@example.com")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Welcome, Ada!")
}

func storedSchedule(t *testing.T, dir string) *model.Schedule {
	t.Helper()
	repo := storage.NewRepository(storage.NewFileStore(dir))
	s, err := repo.Schedule(context.Background())
	require.NoError(t, err)
	require.NotNil(t, s)
	return s
}

func TestSignInValidation(t *testing.T) {
	dir := t.TempDir()
	res := runCLI(t, dir, "", "signin", "--first", "Ada", "--surname", "Lovelace", "--email", "not-an-email")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "Please enter a valid email address")
	assert.Contains(t, res.stderr, "Hint:")

	res = runCLI(t, dir, "", "whoami")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "not signed in")
}

func TestSignInThenWhoAmI(t *testing.T) {
	dir := t.TempDir()
	signIn(t, dir)

	res := runCLI(t, dir, "", "whoami")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "Ada Lovelace <ada@example.com>\n", res.stdout)
}

func TestGenerateRequiresSignIn(t *testing.T) {
	res := runCLI(t, t.TempDir(), "Write report\n", "generate")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "dayblock signin")
}

func TestGenerateFromStdin(t *testing.T) {
	dir := t.TempDir()
	signIn(t, dir)

	res := runCLI(t, dir, "Urgent: finish deadline report\n\nGrocery shopping\n", "generate")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "08:00-09:30")
	assert.Contains(t, res.stdout, "Grocery shopping")

	s := storedSchedule(t, dir)
	require.Len(t, s.Tasks, 2)
	assert.Equal(t, model.Date(time.Now()), s.Date)
	assert.Contains(t, scheduler.Quotes[:], s.Quote)
	assert.Equal(t, "09:45", s.Tasks[1].TimeStart)
}

func TestGenerateBlankInput(t *testing.T) {
	dir := t.TempDir()
	signIn(t, dir)

	res := runCLI(t, dir, "  \n\n", "generate")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "no tasks to schedule")
}

func TestGenerateBlankInputKeepsSettings(t *testing.T) {
	dir := t.TempDir()
	signIn(t, dir)

	res := runCLI(t, dir, " \n", "generate", "--start", "06:15", "--mode", "pomodoro")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "no tasks to schedule")

	res = runCLI(t, dir, "", "settings")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Start time:      08:00")
	assert.Contains(t, res.stdout, "Focus mode:      normal")
}

func TestGenerateFlagsUpdateSettings(t *testing.T) {
	dir := t.TempDir()
	signIn(t, dir)

	res := runCLI(t, dir, "", "generate", "--mode", "pomodoro", "--start", "07:30", "Write proposal", "Call the bank")
	require.Equal(t, 0, res.code, res.stderr)

	s := storedSchedule(t, dir)
	require.Len(t, s.Tasks, 2)
	assert.Equal(t, "07:30", s.Tasks[0].TimeStart)
	assert.Equal(t, "07:55", s.Tasks[0].TimeEnd)
	assert.Equal(t, "08:00", s.Tasks[1].TimeStart)

	res = runCLI(t, dir, "", "settings")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "07:30")
	assert.Contains(t, res.stdout, "pomodoro")
}

func TestGenerateFromFileAndOrg(t *testing.T) {
	dir := t.TempDir()
	signIn(t, dir)

	tasks := filepath.Join(t.TempDir(), "tasks.txt")
	require.NoError(t, os.WriteFile(tasks, []byte("Clean desk\nRead chapter 3\n"), 0600))
	res := runCLI(t, dir, "", "generate", "--file", tasks)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Len(t, storedSchedule(t, dir).Tasks, 2)

	org := filepath.Join(t.TempDir(), "todo.org")
	require.NoError(t, os.WriteFile(org, []byte("* TODO [#A] Finish deadline report :work:\n* DONE Old thing\n* TODO Water plants :home:\n"), 0600))
	res = runCLI(t, dir, "", "generate", "--org", org, "--org-tag", "work")
	require.Equal(t, 0, res.code, res.stderr)
	s := storedSchedule(t, dir)
	require.Len(t, s.Tasks, 1)
	assert.Equal(t, "Finish deadline report", s.Tasks[0].Title)
	assert.Equal(t, model.PriorityHigh, s.Tasks[0].Priority)
}

func TestShowAndDone(t *testing.T) {
	dir := t.TempDir()
	signIn(t, dir)

	res := runCLI(t, dir, "", "show")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "dayblock generate")

	require.Equal(t, 0, runCLI(t, dir, "Write report\nClean desk\n", "generate").code)
	s := storedSchedule(t, dir)

	res = runCLI(t, dir, "", "done", s.Tasks[0].ID)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "Write report: done\n", res.stdout)

	res = runCLI(t, dir, "", "show", "--raw")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "# Daily Schedule")
	assert.Contains(t, res.stdout, "Ada Lovelace")
	assert.Contains(t, res.stdout, "1 of 2 tasks completed.")

	res = runCLI(t, dir, "", "status")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "1 of 2 tasks done")

	res = runCLI(t, dir, "", "done", s.Tasks[0].ID)
	require.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "Write report: not done\n", res.stdout)

	res = runCLI(t, dir, "", "done", "task-missing")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "dayblock show")
}

func TestQuoteUpdatesStoredSchedule(t *testing.T) {
	dir := t.TempDir()
	signIn(t, dir)
	require.Equal(t, 0, runCLI(t, dir, "Write report\n", "generate").code)
	before := storedSchedule(t, dir)

	res := runCLI(t, dir, "", "quote")
	require.Equal(t, 0, res.code, res.stderr)
	quote := strings.TrimSpace(res.stdout)
	assert.Contains(t, scheduler.Quotes[:], quote)

	after := storedSchedule(t, dir)
	assert.Equal(t, quote, after.Quote)
	assert.Equal(t, before.Tasks, after.Tasks)
}

func TestSettingsRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()

	res := runCLI(t, dir, "", "settings", "--start", "25:00")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "HH:MM")

	res = runCLI(t, dir, "", "settings", "--mode", "sprint")
	assert.Equal(t, 1, res.code)

	res = runCLI(t, dir, "", "settings")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "08:00")
	assert.Contains(t, res.stdout, "normal")
	assert.Contains(t, res.stdout, "Email reminders: off")

	res = runCLI(t, dir, "", "settings", "--email-reminders")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Email reminders: on")
	assert.Contains(t, res.stdout, "08:00")
}

func TestExportJSONAndFile(t *testing.T) {
	dir := t.TempDir()
	signIn(t, dir)
	require.Equal(t, 0, runCLI(t, dir, "Write report\nClean desk\n", "generate").code)

	res := runCLI(t, dir, "", "export", "--format", "json")
	require.Equal(t, 0, res.code, res.stderr)
	var s model.Schedule
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &s))
	assert.Equal(t, storedSchedule(t, dir), &s)

	out := filepath.Join(t.TempDir(), "plan.yaml")
	res = runCLI(t, dir, "", "export", "--format", "yaml", "-o", out)
	require.Equal(t, 0, res.code, res.stderr)
	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Write report")

	res = runCLI(t, dir, "", "export", "--format", "pdf")
	assert.Equal(t, 1, res.code)
	assert.Contains(t, res.stderr, "unknown export format")
}

func TestResetConfirmation(t *testing.T) {
	dir := t.TempDir()
	signIn(t, dir)

	res := runCLI(t, dir, "n\n", "reset")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "Aborted.")
	assert.Equal(t, 0, runCLI(t, dir, "", "whoami").code)

	res = runCLI(t, dir, "", "reset", "--yes")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "All data cleared.")
	assert.Equal(t, 1, runCLI(t, dir, "", "whoami").code)
}

func TestConfigSetCalendar(t *testing.T) {
	dir := t.TempDir()
	res := runCLI(t, dir, "", "config", "set-calendar", "Deep Work")
	require.Equal(t, 0, res.code, res.stderr)

	cfg, err := config.LoadFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, "Deep Work", cfg.Calendar)
}

func TestSQLiteBackend(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DAYBLOCK_BACKEND", "sqlite")

	signIn(t, dir)
	res := runCLI(t, dir, "", "whoami")
	require.Equal(t, 0, res.code, res.stderr)
	assert.Contains(t, res.stdout, "ada@example.com")

	_, err := os.Stat(filepath.Join(dir, "dayblock.db"))
	assert.NoError(t, err)
}
