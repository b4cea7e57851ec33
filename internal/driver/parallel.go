package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"spicy/internal/diag"
	"spicy/internal/pipeline"
)

// FileReport — итог проверки одного файла при фан-ауте по директории.
type FileReport struct {
	Path   string
	Result *CheckResult
	Err    error // I/O-ошибка чтения файла
}

// DiscoverFiles собирает *.spc под корнем; если root — файл, он и
// возвращается.
func DiscoverFiles(root string) ([]string, error) {
	stat, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !stat.IsDir() {
		return []string{root}, nil
	}

	var files []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".spc") {
			files = append(files, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	sort.Strings(files)
	return files, nil
}

// CheckMany проверяет файлы конкурентно; каждая единица компиляции
// остаётся однопоточной, параллелизм только между файлами. События
// прогресса уходят в events (может быть nil).
func CheckMany(ctx context.Context, paths []string, maxDiagnostics int, events chan<- pipeline.Event) ([]FileReport, error) {
	reports := make([]FileReport, len(paths))

	emit := func(ev pipeline.Event) {
		if events == nil {
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
		}
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range paths {
		g.Go(func() error {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			emit(pipeline.Event{Path: path, Stage: pipeline.StageParse})
			result, err := Check(path, maxDiagnostics)
			if err != nil {
				reports[i] = FileReport{Path: path, Err: err}
				emit(pipeline.Event{Path: path, Stage: pipeline.StageFailed, Errors: 1})
				return nil // I/O-ошибка одного файла не валит остальные
			}
			reports[i] = FileReport{Path: path, Result: result}
			stage := pipeline.StageDone
			errorCount := 0
			for _, d := range result.Bag.Items() {
				if d.Severity >= diag.SevError {
					errorCount++
				}
			}
			if result.Bag.HasErrors() {
				stage = pipeline.StageFailed
			}
			emit(pipeline.Event{Path: path, Stage: stage, Errors: errorCount})
			return nil
		})
	}

	err := g.Wait()
	if events != nil {
		close(events)
	}
	return reports, err
}
