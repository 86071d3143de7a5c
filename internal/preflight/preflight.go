// Package preflight inspects documents locally before they are uploaded
// to the coding service.
package preflight

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/carlosmlribeiro/ai-coding-fe/internal/payload"
)

// allowedExtensions mirrors the upload surface. The MIME table accepts more
// types than this; the uploader is stricter.
var allowedExtensions = map[string]bool{
	"pdf":  true,
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"tiff": true,
	"bmp":  true,
}

// Report describes a document that passed preflight checks.
type Report struct {
	Name      string
	Size      int64
	MIMEType  string
	PageCount int // PDFs only, zero otherwise
}

// Check inspects the file at path and reports whether it is suitable for upload.
func Check(path string) (*Report, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("document not found: %s", path)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("not a document: %s", path)
	}

	name := filepath.Base(path)
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if !allowedExtensions[ext] {
		return nil, fmt.Errorf("unsupported document type: %s", name)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("document is empty: %s", name)
	}

	report := &Report{
		Name:     name,
		Size:     info.Size(),
		MIMEType: payload.MIMETypeFor(name),
	}

	if ext == "pdf" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open PDF: %w", err)
		}
		pageCount, err := api.PageCount(f, nil)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to get page count: %w", err)
		}
		report.PageCount = pageCount
	}

	return report, nil
}
