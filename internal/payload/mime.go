package payload

import "strings"

// DefaultMIMEType is sent for files whose extension is not in the table.
const DefaultMIMEType = "application/octet-stream"

// mimeTypes maps lower-case filename extensions to upload MIME types.
// The type is derived from the name only, never sniffed from content.
var mimeTypes = map[string]string{
	"pdf":  "application/pdf",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"tiff": "image/tiff",
	"tif":  "image/tiff",
	"gif":  "image/gif",
	"webp": "image/webp",
	"bmp":  "image/bmp",
}

// MIMETypeFor resolves the upload MIME type for a filename. Matching is
// case-insensitive on the last dot-separated segment; unknown extensions
// resolve to DefaultMIMEType.
func MIMETypeFor(filename string) string {
	ext := strings.ToLower(filename)
	if i := strings.LastIndex(ext, "."); i >= 0 {
		ext = ext[i+1:]
	}
	if mt, ok := mimeTypes[ext]; ok {
		return mt
	}
	return DefaultMIMEType
}
