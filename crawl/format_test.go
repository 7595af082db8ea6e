package crawl_test

import (
	"testing"

	"github.com/fwojciec/cassdoc/crawl"
	"github.com/stretchr/testify/assert"
)

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	t.Run("formats bytes as B", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "512 B", crawl.FormatBytes(512))
	})

	t.Run("formats kilobytes as KB", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "1.5 KB", crawl.FormatBytes(1536))
	})

	t.Run("formats megabytes as MB", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "2.0 MB", crawl.FormatBytes(2*1024*1024))
	})
}

func TestPageLabel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "CASS7a", crawl.PageLabel("7a"))
	assert.Equal(t, "CASSsch1", crawl.PageLabel("sch1"))
}
