// Package ocr runs the external OCR tool over a list of selected files.
//
// Invoker.Run processes entries one at a time in list order and returns one
// domain.JobResult per entry; a failing entry never aborts the rest of the
// batch. Queue wraps an Invoker with a single worker goroutine; callers submit
// a batch and receive per-job events through the event bus.
//
// The argument skeleton is:
//
//	<binary> [--force-ocr] [--image-dpi N] [extra args...] <input> <output>
//
// where output is the input's directory, stem, configured suffix and
// output extension (".pdf"), e.g. scan.jpeg → scan_ocr.pdf.
package ocr
