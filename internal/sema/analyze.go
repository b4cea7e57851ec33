package sema

import (
	"spicy/internal/ast"
	"spicy/internal/diag"
	"spicy/internal/source"
	"spicy/internal/symbols"
)

// Result is the outcome of semantic analysis for one file: the symbol
// table and the immutable type graph with precomputed MRO and override
// tables. Диагностики уходят в reporter по ходу проходов.
type Result struct {
	Graph *Graph
	Table *symbols.Table
}

type analysis struct {
	builder  *ast.Builder
	fileID   ast.FileID
	graph    *Graph
	table    *symbols.Table
	reporter diag.Reporter
}

type nopReporter struct{}

func (nopReporter) Report(diag.Code, diag.Severity, source.Span, string, []diag.Note) {}

// Analyze runs the declaration collector, the inheritance linker and the
// modifier checker over a parsed file. Работает и на частично разобранном
// AST: дыры от ошибок парсинга просто пропускаются.
func Analyze(builder *ast.Builder, fileID ast.FileID, reporter diag.Reporter) *Result {
	if reporter == nil {
		reporter = nopReporter{}
	}
	fileSpan := builder.Files.Get(fileID).Span
	a := &analysis{
		builder:  builder,
		fileID:   fileID,
		graph:    NewGraph(),
		table:    symbols.NewTable(builder.StringsInterner, fileSpan),
		reporter: reporter,
	}

	a.collect()
	a.link()
	a.check()

	return &Result{
		Graph: a.graph,
		Table: a.table,
	}
}
