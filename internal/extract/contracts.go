package extract

// Format is the detected source format of a document.
type Format string

const (
	FormatPDF     Format = "PDF"
	FormatDOCX    Format = "DOCX"
	FormatPlain   Format = "PLAIN"
	FormatUnknown Format = "UNKNOWN"
)

// Result is the outcome of a text extraction. Text is always trimmed of
// leading and trailing whitespace; empty Text with a nil error means the
// document was well-formed but carried no extractable characters.
type Result struct {
	Text   string
	Format Format
}

// TextExtractor turns raw document bytes into plain text. Implementations
// are pure: no I/O beyond parsing the bytes they are given.
type TextExtractor interface {
	Extract(data []byte, mimeTypeHint, sourceNameHint string) (Result, error)
}
