package mime

import (
	"path/filepath"
	"strings"
)

var Extension = map[string]MIME{
	".avif":  AVIF,
	".css":   CSS,
	".csv":   CSV,
	".gif":   GIF,
	".htm":   HTML,
	".html":  HTML,
	".ico":   ICO,
	".jpeg":  JPEG,
	".jpg":   JPEG,
	".js":    JS,
	".mjs":   JS,
	".json":  JSON,
	".md":    Markdown,
	".mp3":   MP3,
	".mp4":   MP4,
	".pdf":   PDF,
	".png":   PNG,
	".svg":   SVG,
	".txt":   Plain,
	".wasm":  WASM,
	".webp":  WEBP,
	".woff":  WOFF,
	".woff2": WOFF2,
	".xml":   XML,
	".yaml":  YAML,
	".yml":   YAML,
	".gz":    GZIP,
	".zip":   ZIP,
	".bin":   OctetStream,
}

// ByExtension returns the MIME registered for the file extension of the path. Extensions
// are matched case-insensitively. The bool is false if the extension is unknown.
func ByExtension(path string) (MIME, bool) {
	mime, found := Extension[strings.ToLower(filepath.Ext(path))]
	return mime, found
}
