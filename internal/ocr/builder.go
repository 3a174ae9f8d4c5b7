package ocr

import (
	"strconv"

	"ocrdesk/internal/config"
	"ocrdesk/internal/domain"
)

// OutputPath derives the output file for an input path
func OutputPath(cfg config.OCRConfig, input string) string {
	return domain.PathEntry{Path: input}.OutputPath(cfg.Suffix, cfg.OutputExt)
}

// BuildArgs constructs the argument slice (without the binary) for one file
func BuildArgs(cfg config.OCRConfig, input, output string) []string {
	args := make([]string, 0, 6+len(cfg.ExtraArgs))

	if cfg.ForceOCR {
		args = append(args, "--force-ocr")
	}
	if cfg.ImageDPI > 0 {
		args = append(args, "--image-dpi", strconv.Itoa(cfg.ImageDPI))
	}
	args = append(args, cfg.ExtraArgs...)

	return append(args, input, output)
}
