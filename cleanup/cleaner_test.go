package cleanup_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/cassdoc"
	"github.com/fwojciec/cassdoc/cleanup"
	"github.com/fwojciec/cassdoc/fs"
	"github.com/fwojciec/cassdoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rawPage = "Skip to main content\nSign Up / Sign In\nSearch\nClear\nHome\nFCA Handbook\n" +
	"Breadcrumbs\nCASS 6\nCustody rules\nCASS 6.1 Application\n" +
	"Previous Chapter\nNext Chapter\nAccessibility\nTerms & Conditions"

const cleanPage = "CASS 6\nCustody rules\nCASS 6.1 Application"

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(b)
}

func TestCleaner_Run(t *testing.T) {
	t.Parallel()

	t.Run("rewrites every text file in place", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{
			"cass6.txt": rawPage,
			"cass7.txt": "garbage\nCASS 7\nbody",
			"notes.md":  rawPage,
		})
		c := &cleanup.Cleaner{Files: fs.NewDir(dir)}

		result, err := c.Run(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, &cleanup.Result{Total: 2, Cleaned: 2, Changed: 2}, result)
		assert.Equal(t, cleanPage, readFile(t, filepath.Join(dir, "cass6.txt")))
		assert.Equal(t, "CASS 7\nbody", readFile(t, filepath.Join(dir, "cass7.txt")))
		assert.Equal(t, rawPage, readFile(t, filepath.Join(dir, "notes.md")))
	})

	t.Run("second run leaves files unchanged", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{"cass6.txt": rawPage})
		c := &cleanup.Cleaner{Files: fs.NewDir(dir)}

		_, err := c.Run(context.Background(), nil)
		require.NoError(t, err)
		once := readFile(t, filepath.Join(dir, "cass6.txt"))

		result, err := c.Run(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Cleaned)
		assert.Equal(t, 0, result.Changed)
		assert.Equal(t, once, readFile(t, filepath.Join(dir, "cass6.txt")))
	})

	t.Run("missing directory aborts without writing", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "fca_handbook_cass")
		c := &cleanup.Cleaner{Files: fs.NewDir(dir)}

		result, err := c.Run(context.Background(), nil)

		require.Error(t, err)
		assert.Nil(t, result)
		assert.Equal(t, cassdoc.ENOTFOUND, cassdoc.ErrorCode(err))
		_, statErr := os.Stat(dir)
		assert.True(t, os.IsNotExist(statErr), "directory must not be created")
	})

	t.Run("undecodable file does not stop later files", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{
			"cass1.txt": string([]byte{0xff, 0xfe, 0xfd}),
			"cass2.txt": rawPage,
		})
		var events []cleanup.ProgressEvent
		c := &cleanup.Cleaner{Files: fs.NewDir(dir)}

		result, err := c.Run(context.Background(), func(e cleanup.ProgressEvent) {
			events = append(events, e)
		})

		require.NoError(t, err)
		assert.Equal(t, 2, result.Total)
		assert.Equal(t, 1, result.Cleaned)
		assert.Equal(t, 1, result.Failed)
		assert.Equal(t, cleanPage, readFile(t, filepath.Join(dir, "cass2.txt")))

		require.Len(t, events, 3)
		assert.Equal(t, cleanup.ProgressFailed, events[0].Type)
		assert.Equal(t, "cass1.txt", events[0].Name)
		assert.Equal(t, cassdoc.EINVALID, cassdoc.ErrorCode(events[0].Error))
		assert.Equal(t, cleanup.ProgressCleaned, events[1].Type)
		assert.True(t, events[1].Changed)
		assert.Equal(t, cleanup.ProgressFinished, events[2].Type)
	})

	t.Run("write failure is counted and processing continues", func(t *testing.T) {
		t.Parallel()

		written := map[string]string{}
		files := &mock.PageFiles{
			ListTextFilesFn: func(ctx context.Context) ([]string, error) {
				return []string{"cass1.txt", "cass2.txt", "cass3.txt"}, nil
			},
			ReadFileFn: func(ctx context.Context, name string) (string, error) {
				return rawPage, nil
			},
			WriteFileFn: func(ctx context.Context, name string, content string) error {
				if name == "cass2.txt" {
					return errors.New("read-only file system")
				}
				written[name] = content
				return nil
			},
		}
		c := &cleanup.Cleaner{Files: files}

		result, err := c.Run(context.Background(), nil)

		require.NoError(t, err)
		assert.Equal(t, &cleanup.Result{Total: 3, Cleaned: 2, Changed: 2, Failed: 1}, result)
		assert.Equal(t, map[string]string{"cass1.txt": cleanPage, "cass3.txt": cleanPage}, written)
	})

	t.Run("processes files in listed order", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFiles(t, dir, map[string]string{
			"cass2.txt":  "a",
			"cass10.txt": "b",
			"cass1.txt":  "c",
		})
		var order []string
		c := &cleanup.Cleaner{Files: fs.NewDir(dir)}

		_, err := c.Run(context.Background(), func(e cleanup.ProgressEvent) {
			if e.Type == cleanup.ProgressCleaned {
				order = append(order, e.Name)
			}
		})

		require.NoError(t, err)
		assert.Equal(t, []string{"cass1.txt", "cass10.txt", "cass2.txt"}, order)
	})
}

func TestCleaner_CleanFile(t *testing.T) {
	t.Parallel()

	t.Run("uses custom clean function", func(t *testing.T) {
		t.Parallel()

		var written string
		files := &mock.PageFiles{
			ReadFileFn: func(ctx context.Context, name string) (string, error) {
				return "abc", nil
			},
			WriteFileFn: func(ctx context.Context, name string, content string) error {
				written = content
				return nil
			},
		}
		c := &cleanup.Cleaner{Files: files, Clean: func(s string) string { return s + "!" }}

		changed, err := c.CleanFile(context.Background(), "cass1.txt")

		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, "abc!", written)
	})

	t.Run("rewrites file even when unchanged", func(t *testing.T) {
		t.Parallel()

		writes := 0
		files := &mock.PageFiles{
			ReadFileFn: func(ctx context.Context, name string) (string, error) {
				return cleanPage, nil
			},
			WriteFileFn: func(ctx context.Context, name string, content string) error {
				writes++
				return nil
			},
		}
		c := &cleanup.Cleaner{Files: files}

		changed, err := c.CleanFile(context.Background(), "cass6.txt")

		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, 1, writes)
	})

	t.Run("wraps read error with file name", func(t *testing.T) {
		t.Parallel()

		files := &mock.PageFiles{
			ReadFileFn: func(ctx context.Context, name string) (string, error) {
				return "", os.ErrPermission
			},
		}
		c := &cleanup.Cleaner{Files: files}

		_, err := c.CleanFile(context.Background(), "cass4.txt")

		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrPermission)
		assert.Contains(t, err.Error(), "cass4.txt")
	})
}
