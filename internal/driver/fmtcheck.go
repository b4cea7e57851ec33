package driver

import (
	"bytes"
	"fmt"

	"spicy/internal/format"
)

// Format разбирает файл и печатает его каноничную форму.
func Format(path string, maxDiagnostics int) ([]byte, *ParseResult, error) {
	parsed, err := Parse(path, maxDiagnostics)
	if err != nil {
		return nil, nil, err
	}
	if parsed.Bag.HasErrors() {
		return nil, parsed, nil
	}
	out, err := format.FormatFile(parsed.Builder, parsed.FileID, format.Options{})
	if err != nil {
		return nil, parsed, err
	}
	return out, parsed, nil
}

// RunFmtCheck проверяет round-trip: parse → print-canonical → parse →
// print-canonical. Канон обязан быть неподвижной точкой, а повторный
// разбор — чистым.
func RunFmtCheck(name string, content []byte, maxDiagnostics int) (bool, string, error) {
	first, err := ParseVirtual(name, content, maxDiagnostics)
	if err != nil {
		return false, "", err
	}
	if first.Bag.HasErrors() {
		return false, "fmt-check: initial parse failed", nil
	}
	printed, err := format.FormatFile(first.Builder, first.FileID, format.Options{})
	if err != nil {
		return false, "", err
	}

	second, err := ParseVirtual(name, printed, maxDiagnostics)
	if err != nil {
		return false, "", err
	}
	if second.Bag.HasErrors() {
		return false, fmt.Sprintf("fmt-check: canonical form does not re-parse:\n%s", printed), nil
	}
	reprinted, err := format.FormatFile(second.Builder, second.FileID, format.Options{})
	if err != nil {
		return false, "", err
	}

	if !bytes.Equal(printed, reprinted) {
		return false, "fmt-check: canonical form is not a fixed point", nil
	}
	return true, "", nil
}
