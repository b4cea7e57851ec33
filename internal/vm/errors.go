package vm

import (
	"fmt"

	"spicy/internal/diag"
	"spicy/internal/source"
)

// RuntimeError — ошибка исполнения с привязкой к спану исходника.
// Непойманная ошибка завершает программу диагностикой backend-таксономии.
type RuntimeError struct {
	Code diag.Code
	Msg  string
	Span source.Span
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code.Title(), e.Msg)
}

// Diagnostic converts the runtime error into a reportable diagnostic.
func (e *RuntimeError) Diagnostic() diag.Diagnostic {
	return diag.NewError(e.Code, e.Span, e.Msg)
}

func newError(code diag.Code, span source.Span, format string, args ...any) *RuntimeError {
	return &RuntimeError{Code: code, Msg: fmt.Sprintf(format, args...), Span: span}
}

func typeError(span source.Span, format string, args ...any) *RuntimeError {
	return newError(diag.RunTypeError, span, format, args...)
}

func valueError(span source.Span, format string, args ...any) *RuntimeError {
	return newError(diag.RunValueError, span, format, args...)
}

func attributeError(span source.Span, format string, args ...any) *RuntimeError {
	return newError(diag.RunAttributeError, span, format, args...)
}

func indexError(span source.Span, format string, args ...any) *RuntimeError {
	return newError(diag.RunIndexError, span, format, args...)
}

func nameError(span source.Span, format string, args ...any) *RuntimeError {
	return newError(diag.RunNameError, span, format, args...)
}

func zeroDivision(span source.Span) *RuntimeError {
	return newError(diag.RunZeroDivision, span, "division by zero")
}
