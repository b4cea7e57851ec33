package driver

import (
	"io"
	"os"

	"spicy/internal/trace"
	"spicy/internal/vm"
)

type RunResult struct {
	*CheckResult
	// RuntimeErr — непойманная ошибка исполнения; добавлена и в Bag.
	RuntimeErr *vm.RuntimeError
}

// Run компилирует, проверяет и исполняет программу. Исполнение
// начинается только с чистым (без ошибок) Bag.
func Run(path string, maxDiagnostics int, out io.Writer) (*RunResult, error) {
	checked, err := Check(path, maxDiagnostics)
	if err != nil {
		return nil, err
	}
	result := &RunResult{CheckResult: checked}
	if checked.Bag.HasErrors() || checked.Sema == nil {
		return result, nil
	}

	tracer := trace.New(os.Stderr, trace.FromEnv())
	tracer.Phase("run")

	machine := vm.New(checked.Builder, checked.Sema.Graph, checked.FileSet, out)
	if runtimeErr := machine.Run(checked.FileID); runtimeErr != nil {
		result.RuntimeErr = runtimeErr
		checked.Bag.Add(runtimeErr.Diagnostic())
		checked.Bag.Sort()
	}
	return result, nil
}
