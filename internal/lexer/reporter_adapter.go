package lexer

import (
	"spicy/internal/diag"
	"spicy/internal/source"
)

// ReporterAdapter адаптирует diag.Reporter для использования в лексере.
type ReporterAdapter struct {
	Bag *diag.Bag
}

// Reporter returns a lexer.Reporter that maps lexical error kinds onto
// diag codes and stores them in the adapter's bag.
func (r *ReporterAdapter) Reporter() Reporter {
	return &bagReporter{bag: r.Bag}
}

type bagReporter struct {
	bag *diag.Bag
}

func (r *bagReporter) Report(kind string, sp source.Span, msg string) {
	if r.bag == nil {
		return
	}
	code := diag.UnknownCode
	switch kind {
	case ErrUnterminatedString:
		code = diag.LexUnterminatedString
	case ErrInvalidNumber:
		code = diag.LexInvalidNumber
	case ErrStrayCharacter:
		code = diag.LexStrayCharacter
	}
	r.bag.Add(diag.NewError(code, sp, msg))
}
