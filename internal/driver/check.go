package driver

import (
	"os"

	"spicy/internal/diag"
	"spicy/internal/sema"
	"spicy/internal/trace"
)

type CheckResult struct {
	*ParseResult
	Sema *sema.Result
}

// Check — пайплайн до Modifier Checker включительно: lex → parse →
// collect → link → check. Дальше фаз нет; исполнение — отдельный шаг.
func Check(path string, maxDiagnostics int) (*CheckResult, error) {
	tracer := trace.New(os.Stderr, trace.FromEnv())

	tracer.Phase("parse " + path)
	parsed, err := Parse(path, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	tracer.Detail("items=%d diagnostics=%d", len(parsed.Builder.Files.Get(parsed.FileID).Items), parsed.Bag.Len())

	// Пайплайн останавливается рано, только если нет ни одного валидного
	// top-level объявления.
	if len(parsed.Builder.Files.Get(parsed.FileID).Items) == 0 {
		parsed.Bag.Sort()
		return &CheckResult{ParseResult: parsed}, nil
	}

	tracer.Phase("sema")
	reporter := diag.NewDedupReporter(&diag.BagReporter{Bag: parsed.Bag})
	semaResult := sema.Analyze(parsed.Builder, parsed.FileID, reporter)
	tracer.Detail("types=%d symbols=%d diagnostics=%d", semaResult.Graph.Len()-1, semaResult.Table.Len()-1, parsed.Bag.Len())

	parsed.Bag.Sort()
	return &CheckResult{
		ParseResult: parsed,
		Sema:        semaResult,
	}, nil
}

// CheckVirtual — Check по содержимому из памяти.
func CheckVirtual(name string, content []byte, maxDiagnostics int) (*CheckResult, error) {
	parsed, err := ParseVirtual(name, content, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	if len(parsed.Builder.Files.Get(parsed.FileID).Items) == 0 {
		parsed.Bag.Sort()
		return &CheckResult{ParseResult: parsed}, nil
	}
	reporter := diag.NewDedupReporter(&diag.BagReporter{Bag: parsed.Bag})
	semaResult := sema.Analyze(parsed.Builder, parsed.FileID, reporter)
	parsed.Bag.Sort()
	return &CheckResult{ParseResult: parsed, Sema: semaResult}, nil
}
