package mime

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByExtension(t *testing.T) {
	for path, want := range map[string]MIME{
		"index.html":         HTML,
		"/static/STYLE.CSS":  CSS,
		"a/b/c/app.min.js":   JS,
		"image.backup.png":   PNG,
		"/deeply/nested.txt": Plain,
	} {
		got, found := ByExtension(path)
		require.True(t, found, path)
		require.Equal(t, want, got, path)
	}

	for _, path := range []string{"Makefile", "archive.tar.unknown", "dir/", ".hidden"} {
		_, found := ByExtension(path)
		require.False(t, found, path)
	}
}
