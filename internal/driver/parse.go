package driver

import (
	"fortio.org/safecast"

	"spicy/internal/ast"
	"spicy/internal/diag"
	"spicy/internal/lexer"
	"spicy/internal/parser"
	"spicy/internal/source"
)

type ParseResult struct {
	FileSet *source.FileSet
	File    *source.File
	Builder *ast.Builder
	FileID  ast.FileID
	Bag     *diag.Bag
}

func Parse(path string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return parseLoaded(fs, fileID, maxDiagnostics)
}

// ParseVirtual разбирает содержимое из памяти (тесты, stdin).
func ParseVirtual(name string, content []byte, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return parseLoaded(fs, fileID, maxDiagnostics)
}

func parseLoaded(fs *source.FileSet, fileID source.FileID, maxDiagnostics int) (*ParseResult, error) {
	file := fs.Get(fileID)

	bag := diag.NewBag(maxDiagnostics)
	reporterAdapter := &lexer.ReporterAdapter{Bag: bag}
	lx := lexer.New(file, lexer.Options{Reporter: reporterAdapter.Reporter()})
	builder := ast.NewBuilder(ast.Hints{}, nil)

	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		return nil, err
	}

	opts := parser.Options{
		Reporter:  &diag.BagReporter{Bag: bag},
		MaxErrors: maxErrors,
	}

	result := parser.ParseFile(fs, lx, builder, opts)

	return &ParseResult{
		FileSet: fs,
		File:    file,
		Builder: builder,
		FileID:  result.File,
		Bag:     bag,
	}, nil
}
