package diagfmt

import (
	"encoding/json"
	"io"

	"spicy/internal/diag"
	"spicy/internal/source"
)

// DiagnosticJSON — плоская форма диагностики.
type DiagnosticJSON struct {
	Severity string `json:"severity"`
	Code     string `json:"code"`
	ID       string `json:"id"`
	Message  string `json:"message"`
	File     string `json:"file"`
	Line     uint32 `json:"line"`
	Col      uint32 `json:"col"`
	Notes    []struct {
		Message string `json:"message"`
		Line    uint32 `json:"line"`
		Col     uint32 `json:"col"`
	} `json:"notes,omitempty"`
}

// DumpDiagnostics конвертирует bag в сериализуемую форму.
func DumpDiagnostics(bag *diag.Bag, fs *source.FileSet) []DiagnosticJSON {
	out := make([]DiagnosticJSON, 0, bag.Len())
	for _, d := range bag.Items() {
		start, _ := fs.Resolve(d.Primary)
		entry := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.Title(),
			ID:       d.Code.ID(),
			Message:  d.Message,
			File:     fs.Get(d.Primary.File).Path,
			Line:     start.Line,
			Col:      start.Col,
		}
		for _, note := range d.Notes {
			noteStart, _ := fs.Resolve(note.Span)
			entry.Notes = append(entry.Notes, struct {
				Message string `json:"message"`
				Line    uint32 `json:"line"`
				Col     uint32 `json:"col"`
			}{Message: note.Msg, Line: noteStart.Line, Col: noteStart.Col})
		}
		out = append(out, entry)
	}
	return out
}

// JSON кодирует произвольный дамп с отступами.
func JSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
