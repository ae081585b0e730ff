package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justin0804nitsuj/memo/models"
	pkgerrors "github.com/justin0804nitsuj/memo/pkg/errors"
	"github.com/justin0804nitsuj/memo/pkg/preview"
)

type testEnv struct {
	dir    string
	db     string
	opened []string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", dir)

	env := &testEnv{dir: dir, db: filepath.Join(dir, "memo", "my_files.db")}
	launcher = preview.LauncherFunc(func(path string) error {
		env.opened = append(env.opened, path)
		return nil
	})
	t.Cleanup(func() { launcher = nil })

	resetFlags(t, rootCmd)
	return env
}

// resetFlags puts every flag of cmd and its subcommands back to its default,
// undoing values left by earlier runs of the shared rootCmd.
func resetFlags(t *testing.T, cmd *cobra.Command) {
	t.Helper()
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			require.NoError(t, sv.Replace(nil))
		} else {
			require.NoError(t, f.Value.Set(f.DefValue))
		}
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(t, c)
	}
}

// exec runs memo with args against the test database and returns stdout.
func (e *testEnv) exec(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := run(context.Background(), append([]string{"--db", e.db, "--log-level", "error"}, args...))
	return out.String(), err
}

func (e *testEnv) entries(t *testing.T) []models.FileEntry {
	t.Helper()
	out, err := e.exec(t, "list", "-o", "json")
	require.NoError(t, err)

	var entries []models.FileEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	return entries
}

func (e *testEnv) write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestInit(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.exec(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "memo initialized successfully")
	assert.FileExists(t, env.db)
	assert.FileExists(t, filepath.Join(env.dir, ".memo", "config.yaml"))
}

func TestInit_WritesExplicitConfig(t *testing.T) {
	env := newTestEnv(t)
	path := filepath.Join(env.dir, "fresh", "config.yaml")

	out, err := env.exec(t, "--config", path, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote config: "+path)
	assert.FileExists(t, path)

	out, err = env.exec(t, "--config", path, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Config exists: "+path)
}

func TestFlagsDoNotLeakBetweenRuns(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.exec(t, "--config", filepath.Join(env.dir, "custom.yaml"), "list", "-o", "yaml", "-v")
	require.NoError(t, err)

	resetFlags(t, rootCmd)
	assert.Empty(t, cfgFile)
	assert.False(t, verbose)
	assert.False(t, rootCmd.PersistentFlags().Changed("output"))
	assert.Equal(t, "", rootCmd.PersistentFlags().Lookup("output").Value.String())

	_, err = env.exec(t, "list")
	require.NoError(t, err)
	assert.Empty(t, settings.GetString("output"))
	assert.Equal(t, "error", settings.GetString("log.level"))
}

func TestAddListShow(t *testing.T) {
	env := newTestEnv(t)
	report := env.write(t, "docs/report.txt", "hello")

	out, err := env.exec(t, "add", report, "-d", "Q1 notes", "-o", "json")
	require.NoError(t, err)
	var added []models.FileEntry
	require.NoError(t, json.Unmarshal([]byte(out), &added))
	require.Len(t, added, 1)
	assert.Equal(t, "report.txt", added[0].FileName)
	assert.Equal(t, models.FileTypeText, added[0].FileType)

	entries := env.entries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, report, entries[0].FilePath)
	assert.Equal(t, "Q1 notes", entries[0].Description)

	out, err = env.exec(t, "show", "1", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "report.txt")
	assert.Contains(t, out, "Q1 notes")
}

func TestShow_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.exec(t, "show", "7", "-o", "json")
	assert.True(t, pkgerrors.IsNotFound(err))

	_, err = env.exec(t, "show", "abc", "-o", "json")
	assert.True(t, pkgerrors.IsValidationError(err))
}

func TestSearch(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.exec(t, "add", env.write(t, "holiday.jpg", "x"), "-o", "json")
	require.NoError(t, err)
	_, err = env.exec(t, "add", env.write(t, "notes.md", "x"), "-d", "holiday plans", "-o", "json")
	require.NoError(t, err)
	_, err = env.exec(t, "add", env.write(t, "budget.xlsx", "x"), "-d", "", "-o", "json")
	require.NoError(t, err)

	out, err := env.exec(t, "search", "holiday", "-o", "json")
	require.NoError(t, err)
	var found []models.FileEntry
	require.NoError(t, json.Unmarshal([]byte(out), &found))
	require.Len(t, found, 2)
	assert.Equal(t, "holiday.jpg", found[0].FileName)
	assert.Equal(t, "notes.md", found[1].FileName)

	out, err = env.exec(t, "search", "-o", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &found))
	assert.Len(t, found, 3)

	// Only the empty keyword lists everything; whitespace is searched as-is.
	out, err = env.exec(t, "search", " ", "-o", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &found))
	require.Len(t, found, 1)
	assert.Equal(t, "notes.md", found[0].FileName)
}

func TestDescribeAndDelete(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.exec(t, "add", env.write(t, "a.txt", "a"), env.write(t, "b.txt", "b"), "-o", "json")
	require.NoError(t, err)

	_, err = env.exec(t, "describe", "1", "first", "file")
	require.NoError(t, err)
	assert.Equal(t, "first file", env.entries(t)[0].Description)

	_, err = env.exec(t, "describe", "1")
	require.NoError(t, err)
	assert.Empty(t, env.entries(t)[0].Description)

	_, err = env.exec(t, "describe", "99", "ignored")
	require.NoError(t, err)

	out, err := env.exec(t, "delete", "1", "99")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted")
	entries := env.entries(t)
	require.Len(t, entries, 1)
	assert.Equal(t, "b.txt", entries[0].FileName)
}

func TestPreview(t *testing.T) {
	env := newTestEnv(t)
	text := env.write(t, "note.txt", "hello memo")
	video := env.write(t, "clip.mp4", "x")
	_, err := env.exec(t, "add", text, video, "-o", "json")
	require.NoError(t, err)

	out, err := env.exec(t, "preview", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "hello memo")

	out, err = env.exec(t, "preview", "2")
	require.NoError(t, err)
	assert.Contains(t, out, preview.NoticeVideo)
	assert.Equal(t, []string{video}, env.opened)

	_, err = env.exec(t, "preview", "3")
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestPreview_MissingVideo(t *testing.T) {
	env := newTestEnv(t)
	missing := filepath.Join(env.dir, "gone.mp4")
	_, err := env.exec(t, "add", missing, "-o", "json")
	require.NoError(t, err)

	_, err = env.exec(t, "preview", "1")
	assert.True(t, pkgerrors.IsIO(err))
	assert.Empty(t, env.opened)
}

func TestStats(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.exec(t, "add", env.write(t, "a.png", "x"), env.write(t, "b.png", "x"), env.write(t, "c.txt", "x"), "-o", "json")
	require.NoError(t, err)

	out, err := env.exec(t, "stats", "-o", "json")
	require.NoError(t, err)
	var counts []models.TypeCount
	require.NoError(t, json.Unmarshal([]byte(out), &counts))

	byType := map[models.FileType]int64{}
	for _, c := range counts {
		byType[c.FileType] = c.Count
	}
	assert.Equal(t, int64(2), byType[models.FileTypeImage])
	assert.Equal(t, int64(1), byType[models.FileTypeText])
}

func TestScanAndDedupe(t *testing.T) {
	env := newTestEnv(t)
	env.write(t, "tree/one.txt", "1")
	env.write(t, "tree/sub/two.png", "2")

	out, err := env.exec(t, "scan", filepath.Join(env.dir, "tree"), "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "Added 2 file(s)")

	_, err = env.exec(t, "scan", filepath.Join(env.dir, "tree"), "-o", "json")
	require.NoError(t, err)
	require.Len(t, env.entries(t), 4)

	out, err = env.exec(t, "dedupe")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 2 duplicated path(s), 2 extra record(s)")
	assert.Contains(t, out, "--confirm")
	require.Len(t, env.entries(t), 4)

	out, err = env.exec(t, "dedupe", "--confirm")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 2 record(s)")

	entries := env.entries(t)
	require.Len(t, entries, 2)
	assert.Equal(t, uint(1), entries[0].ID)
	assert.Equal(t, uint(2), entries[1].ID)
}

func TestInvalidOutputFormat(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.exec(t, "list", "-o", "xml")
	assert.Error(t, err)
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir for older toolchains).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(old)) })
}
