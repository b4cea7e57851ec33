package diagfmt_test

import (
	"bytes"
	"strings"
	"testing"

	"spicy/internal/diag"
	"spicy/internal/diagfmt"
	"spicy/internal/source"
)

func TestPrettyFormat(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("demo.spc", []byte("final class F {}\nclass G extends F {}\n"))

	bag := diag.NewBag(10)
	// span на "F" в строке 2 (extends F)
	bag.Add(diag.NewError(diag.SemaExtendsFinalClass, source.Span{File: id, Start: 33, End: 34},
		"cannot extend final class 'F'"))
	bag.Sort()

	var buf bytes.Buffer
	diagfmt.Pretty(&buf, bag, fs, diagfmt.PrettyOpts{})

	out := buf.String()
	if !strings.Contains(out, "demo.spc:2:17: error[ExtendsFinalClass]: cannot extend final class 'F'") {
		t.Fatalf("header format wrong:\n%s", out)
	}
	if !strings.Contains(out, "class G extends F {}") {
		t.Fatalf("snippet line missing:\n%s", out)
	}
	if !strings.Contains(out, "^") {
		t.Fatalf("caret missing:\n%s", out)
	}
}

func TestPrettyNotesOnlyWhenVerbose(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("demo.spc", []byte("class A {}\n"))

	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.ResDuplicateDeclaration, source.Span{File: id, Start: 6, End: 7}, "dup").
		WithNote(source.Span{File: id, Start: 6, End: 7}, "previous declaration is here"))

	var quiet, verbose bytes.Buffer
	diagfmt.Pretty(&quiet, bag, fs, diagfmt.PrettyOpts{})
	diagfmt.Pretty(&verbose, bag, fs, diagfmt.PrettyOpts{ShowNotes: true})

	if strings.Contains(quiet.String(), "note") {
		t.Fatalf("notes must be hidden without -v:\n%s", quiet.String())
	}
	if !strings.Contains(verbose.String(), "previous declaration is here") {
		t.Fatalf("notes must appear with -v:\n%s", verbose.String())
	}
}

func TestDumpDiagnosticsJSONShape(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("demo.spc", []byte("x\n"))
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.ResUndefinedName, source.Span{File: id, Start: 0, End: 1}, "nope"))

	dumps := diagfmt.DumpDiagnostics(bag, fs)
	if len(dumps) != 1 {
		t.Fatalf("want 1 dump, got %d", len(dumps))
	}
	d := dumps[0]
	if d.Code != "UndefinedName" || d.ID != "SEM3003" || d.Line != 1 || d.Col != 1 {
		t.Fatalf("dump mismatch: %+v", d)
	}
}
