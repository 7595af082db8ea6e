package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/cassdoc"
	"github.com/fwojciec/cassdoc/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDir_ImplementsInterfaces(t *testing.T) {
	t.Parallel()

	var _ cassdoc.PageStore = &fs.Dir{}
	var _ cassdoc.PageFiles = &fs.Dir{}
}

func TestDir_SavePage(t *testing.T) {
	t.Parallel()

	t.Run("creates directory and writes named file", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "fca_handbook_cass")
		d := fs.NewDir(dir)

		err := d.SavePage(context.Background(), &cassdoc.Page{ID: "7a", Text: "CASS 7a body"})

		require.NoError(t, err)
		content, err := os.ReadFile(filepath.Join(dir, "cass7a.txt"))
		require.NoError(t, err)
		assert.Equal(t, "CASS 7a body", string(content))
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		d := fs.NewDir(dir)
		require.NoError(t, d.SavePage(context.Background(), &cassdoc.Page{ID: "1", Text: "first version"}))

		err := d.SavePage(context.Background(), &cassdoc.Page{ID: "1", Text: "second"})

		require.NoError(t, err)
		content, err := os.ReadFile(filepath.Join(dir, "cass1.txt"))
		require.NoError(t, err)
		assert.Equal(t, "second", string(content))
	})

	t.Run("rejects page without ID", func(t *testing.T) {
		t.Parallel()

		d := fs.NewDir(t.TempDir())

		err := d.SavePage(context.Background(), &cassdoc.Page{Text: "orphan"})

		require.Error(t, err)
		assert.Equal(t, cassdoc.EINVALID, cassdoc.ErrorCode(err))
	})
}

func TestDir_ListTextFiles(t *testing.T) {
	t.Parallel()

	t.Run("returns sorted text files only", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		for _, name := range []string{"cass2.txt", "cass10.txt", "cass1.txt", "notes.md"} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
		}
		require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.txt"), 0755))

		names, err := fs.NewDir(dir).ListTextFiles(context.Background())

		require.NoError(t, err)
		assert.Equal(t, []string{"cass1.txt", "cass10.txt", "cass2.txt"}, names)
	})

	t.Run("missing directory is not found", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewDir(filepath.Join(t.TempDir(), "missing")).ListTextFiles(context.Background())

		require.Error(t, err)
		assert.Equal(t, cassdoc.ENOTFOUND, cassdoc.ErrorCode(err))
	})

	t.Run("empty directory returns no names", func(t *testing.T) {
		t.Parallel()

		names, err := fs.NewDir(t.TempDir()).ListTextFiles(context.Background())

		require.NoError(t, err)
		assert.Empty(t, names)
	})
}

func TestDir_ReadWriteFile(t *testing.T) {
	t.Parallel()

	t.Run("round trips content", func(t *testing.T) {
		t.Parallel()

		d := fs.NewDir(t.TempDir())
		ctx := context.Background()

		require.NoError(t, d.WriteFile(ctx, "cass3.txt", "CASS 3 – client assets"))
		got, err := d.ReadFile(ctx, "cass3.txt")

		require.NoError(t, err)
		assert.Equal(t, "CASS 3 – client assets", got)
	})

	t.Run("rejects invalid UTF-8", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.txt"), []byte{0xff, 0xfe, 'x'}, 0644))

		_, err := fs.NewDir(dir).ReadFile(context.Background(), "bad.txt")

		require.Error(t, err)
		assert.Equal(t, cassdoc.EINVALID, cassdoc.ErrorCode(err))
	})

	t.Run("rejects path traversal", func(t *testing.T) {
		t.Parallel()

		d := fs.NewDir(t.TempDir())

		err := d.WriteFile(context.Background(), "../escape.txt", "bad")

		require.Error(t, err)
		assert.Equal(t, cassdoc.EINVALID, cassdoc.ErrorCode(err))
	})

	t.Run("missing file returns error", func(t *testing.T) {
		t.Parallel()

		_, err := fs.NewDir(t.TempDir()).ReadFile(context.Background(), "cass9.txt")

		assert.Error(t, err)
	})
}
