// Package inspect reads document metadata the OCR grid shows and checks the
// files the OCR tool produces.
package inspect

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrNotPDF is returned when a PDF operation is asked of another file type
var ErrNotPDF = errors.New("not a PDF file")

var disableConfigDir sync.Once

// Inspector reads PDFs with pdfcpu using relaxed validation
type Inspector struct {
	conf *model.Configuration
}

// New creates an Inspector. pdfcpu's on-disk config directory is never used.
func New() *Inspector {
	disableConfigDir.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Inspector{conf: conf}
}

// IsPDF reports whether path has a .pdf extension
func IsPDF(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// IsImage reports whether path is one of the raster formats the tool accepts
func IsImage(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff", ".gif":
		return true
	}
	return false
}

// PageCount returns the number of pages in path. Images count as one page.
func (i *Inspector) PageCount(path string) (int, error) {
	if IsImage(path) {
		if _, err := os.Stat(path); err != nil {
			return 0, err
		}
		return 1, nil
	}
	if !IsPDF(path) {
		return 0, fmt.Errorf("%w: %s", ErrNotPDF, filepath.Base(path))
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	n, err := api.PageCount(f, i.conf)
	if err != nil {
		return 0, fmt.Errorf("failed to count pages of %s: %w", filepath.Base(path), err)
	}
	return n, nil
}

// Verify checks that path exists, is non-empty and parses as a PDF
func (i *Inspector) Verify(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("output missing: %w", err)
	}
	if info.Size() == 0 {
		return fmt.Errorf("output %s is empty", filepath.Base(path))
	}
	if !IsPDF(path) {
		return nil
	}
	if err := api.ValidateFile(path, i.conf); err != nil {
		return fmt.Errorf("output %s is not a valid PDF: %w", filepath.Base(path), err)
	}
	return nil
}
