package extract

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	MIMEPDF  = "application/pdf"
	MIMEDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MIMEDOC  = "application/msword"
)

// Extractor dispatches to a format handler based on the MIME hint or the
// source filename extension, in that priority order. Unrecognized content
// falls back to a lossy plain-text decode.
type Extractor struct {
	logger *slog.Logger
}

func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

type handler struct {
	format  Format
	matches func(mimeType, ext string) bool
	extract func(data []byte) (string, error)
}

// Ordered dispatch table. Adding a format means adding one entry.
var handlers = []handler{
	{
		format: FormatPDF,
		matches: func(mt, ext string) bool {
			return mt == MIMEPDF || ext == ".pdf"
		},
		extract: extractPDF,
	},
	{
		format: FormatDOCX,
		matches: func(mt, ext string) bool {
			return mt == MIMEDOCX || mt == MIMEDOC || ext == ".docx" || ext == ".doc"
		},
		extract: extractDOCX,
	},
}

func (e *Extractor) Extract(data []byte, mimeTypeHint, sourceNameHint string) (Result, error) {
	mt := normalizeMIME(mimeTypeHint)
	ext := strings.ToLower(filepath.Ext(sourceNameHint))

	for _, h := range handlers {
		if !h.matches(mt, ext) {
			continue
		}
		text, err := h.extract(data)
		if err != nil {
			e.logger.Warn("extract.failed", "format", string(h.format), "error", err)
			return Result{Format: h.format}, err
		}
		return Result{Text: strings.TrimSpace(text), Format: h.format}, nil
	}

	// Sniff the content before settling for a lossy decode, but only when
	// the caller gave us nothing usable: a format-specific hint or a
	// filename extension always wins. A generic binary hint (e.g. a blob
	// store declaring application/octet-stream) names no format, so it
	// does not suppress sniffing.
	if isGenericMIME(mt) && ext == "" {
		if sniffed := mimetype.Detect(data); sniffed != nil {
			for _, h := range handlers {
				if !sniffed.Is(mimeForFormat(h.format)) {
					continue
				}
				text, err := h.extract(data)
				if err != nil {
					return Result{Format: h.format}, err
				}
				return Result{Text: strings.TrimSpace(text), Format: h.format}, nil
			}
		}
	}

	format := FormatPlain
	if !isValidUTF8(data) {
		format = FormatUnknown
	}
	return Result{Text: decodePlain(data), Format: format}, nil
}

func normalizeMIME(hint string) string {
	// strip any parameters, e.g. "application/pdf; charset=binary"
	if i := strings.IndexByte(hint, ';'); i >= 0 {
		hint = hint[:i]
	}
	return strings.ToLower(strings.TrimSpace(hint))
}

func isGenericMIME(mt string) bool {
	switch mt {
	case "", "application/octet-stream", "binary/octet-stream", "application/binary":
		return true
	}
	return false
}

func mimeForFormat(f Format) string {
	switch f {
	case FormatPDF:
		return MIMEPDF
	case FormatDOCX:
		return MIMEDOCX
	default:
		return ""
	}
}
