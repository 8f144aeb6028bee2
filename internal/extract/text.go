package extract

import (
	"strings"
	"unicode/utf8"
)

// decodePlain decodes raw bytes as text, dropping invalid byte sequences
// instead of failing. It never errors; undecodable input yields "".
func decodePlain(data []byte) string {
	return strings.TrimSpace(strings.ToValidUTF8(string(data), ""))
}

func isValidUTF8(data []byte) bool {
	return utf8.Valid(data)
}
