package diagfmt

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	ShowNotes bool // -v: печатать note-фреймы
	NoSnippet bool // без строки исходника с кареткой
}

// DumpFormat selects the encoding of token/AST dumps.
type DumpFormat uint8

const (
	// DumpText — человекочитаемый текст.
	DumpText DumpFormat = iota
	// DumpJSON — encoding/json.
	DumpJSON
	// DumpMsgpack — бинарный дамп msgpack.
	DumpMsgpack
)

// ParseDumpFormat maps a CLI flag value onto a DumpFormat.
func ParseDumpFormat(s string) (DumpFormat, bool) {
	switch s {
	case "", "text":
		return DumpText, true
	case "json":
		return DumpJSON, true
	case "msgpack":
		return DumpMsgpack, true
	default:
		return DumpText, false
	}
}
