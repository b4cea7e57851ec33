package driver_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"spicy/internal/driver"
	"spicy/internal/pipeline"
)

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunCleanProgram(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "ok.spc", `
abstract class A { abstract def m(self) -> int; }
class B extends A { def m(self) -> int { return 1; } }
print(B().m());`)

	var out bytes.Buffer
	result, err := driver.Run(path, 100, &out)
	if err != nil {
		t.Fatal(err)
	}
	if result.Bag.HasErrors() {
		t.Fatalf("diagnostics: %+v", result.Bag.Items())
	}
	if out.String() != "1\n" {
		t.Fatalf("output: %q", out.String())
	}
}

func TestRunStopsOnCheckerErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "bad.spc", `
final class F {}
class G extends F {}
print("must not run");`)

	var out bytes.Buffer
	result, err := driver.Run(path, 100, &out)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Bag.HasErrors() {
		t.Fatalf("want checker errors")
	}
	if out.Len() != 0 {
		t.Fatalf("program must not execute with errors, got %q", out.String())
	}
}

func TestTokenizeCollectsLexErrors(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "lex.spc", "x = \"unterminated\n")

	result, err := driver.Tokenize(path, 100)
	if err != nil {
		t.Fatal(err)
	}
	if !result.Bag.HasErrors() {
		t.Fatalf("want lexical error in bag")
	}
}

func TestCheckManyFansOut(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "a.spc", "print(1);")
	writeSource(t, dir, "b.spc", "final class F {}\nclass G extends F {}")
	writeSource(t, dir, "c.spc", "print(3);")

	files, err := driver.DiscoverFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 3 {
		t.Fatalf("discover: got %d files", len(files))
	}

	events := make(chan pipeline.Event, 32)
	collected := make(chan []pipeline.Event, 1)
	go func() {
		var all []pipeline.Event
		for ev := range events {
			all = append(all, ev)
		}
		collected <- all
	}()

	reports, err := driver.CheckMany(context.Background(), files, 100, events)
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != 3 {
		t.Fatalf("reports: got %d", len(reports))
	}

	clean, dirty := 0, 0
	for _, report := range reports {
		if report.Err != nil {
			t.Fatalf("unexpected I/O error: %v", report.Err)
		}
		if report.Result.Bag.HasErrors() {
			dirty++
		} else {
			clean++
		}
	}
	if clean != 2 || dirty != 1 {
		t.Fatalf("clean=%d dirty=%d", clean, dirty)
	}

	all := <-collected
	done := 0
	for _, ev := range all {
		if ev.Stage == pipeline.StageDone || ev.Stage == pipeline.StageFailed {
			done++
		}
	}
	if done != 3 {
		t.Fatalf("terminal events: got %d", done)
	}
}

func TestDiscoverSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "one.spc", "print(1);")
	files, err := driver.DiscoverFiles(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 || files[0] != path {
		t.Fatalf("got %v", files)
	}
}
