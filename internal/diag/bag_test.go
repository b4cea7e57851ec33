package diag_test

import (
	"testing"

	"spicy/internal/diag"
	"spicy/internal/source"
)

func span(file source.FileID, start, end uint32) source.Span {
	return source.Span{File: file, Start: start, End: end}
}

func TestBagLimit(t *testing.T) {
	bag := diag.NewBag(2)
	if !bag.Add(diag.NewError(diag.LexStrayCharacter, span(0, 0, 1), "a")) {
		t.Fatalf("first add must succeed")
	}
	if !bag.Add(diag.NewError(diag.LexStrayCharacter, span(0, 1, 2), "b")) {
		t.Fatalf("second add must succeed")
	}
	if bag.Add(diag.NewError(diag.LexStrayCharacter, span(0, 2, 3), "c")) {
		t.Fatalf("cap must reject the third diagnostic")
	}
	if bag.Len() != 2 {
		t.Fatalf("len: got %d", bag.Len())
	}
}

func TestBagSortStable(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.SemaExtendsFinalClass, span(0, 40, 41), "later"))
	bag.Add(diag.NewWarning(diag.SemaMissingSuperInit, span(0, 10, 12), "warning early"))
	bag.Add(diag.NewError(diag.SemaAbstractInstantiation, span(0, 10, 12), "error same span"))
	bag.Sort()

	items := bag.Items()
	if items[0].Primary.Start != 10 || items[0].Severity != diag.SevError {
		t.Fatalf("error must sort before warning at the same span: %+v", items[0])
	}
	if items[2].Primary.Start != 40 {
		t.Fatalf("diagnostics must be ordered by span start")
	}
}

func TestBagDedup(t *testing.T) {
	bag := diag.NewBag(10)
	d := diag.NewError(diag.ResUndefinedName, span(0, 5, 8), "dup")
	bag.Add(d)
	bag.Add(d)
	bag.Dedup()
	if bag.Len() != 1 {
		t.Fatalf("dedup: got %d", bag.Len())
	}
}

func TestHasErrorsAndWarnings(t *testing.T) {
	bag := diag.NewBag(10)
	bag.Add(diag.NewWarning(diag.SemaMissingSuperInit, span(0, 0, 1), "w"))
	if bag.HasErrors() {
		t.Fatalf("warning is not an error")
	}
	if !bag.HasWarnings() {
		t.Fatalf("warning must be visible")
	}
	bag.Add(diag.NewError(diag.RunTypeError, span(0, 0, 1), "e"))
	if !bag.HasErrors() {
		t.Fatalf("error must be visible")
	}
}

func TestCodeTitlesStable(t *testing.T) {
	cases := map[diag.Code]string{
		diag.LexUnterminatedString:               "UnterminatedString",
		diag.SynExpectedToken:                    "ExpectedToken",
		diag.ResDuplicateDeclaration:             "DuplicateDeclaration",
		diag.SemaInheritanceCycle:                "InheritanceCycle",
		diag.SemaAbstractInstantiation:           "AbstractInstantiation",
		diag.SemaConcreteClassHasAbstractMembers: "ConcreteClassHasAbstractMembers",
		diag.SemaOverrideOfFinalMethod:           "OverrideOfFinalMethod",
		diag.SemaOverrideSignatureMismatch:       "OverrideSignatureMismatch",
		diag.RunZeroDivision:                     "ZeroDivision",
	}
	for code, want := range cases {
		if code.Title() != want {
			t.Errorf("title of %v: got %q, want %q", code.ID(), code.Title(), want)
		}
	}
	if diag.LexUnterminatedString.ID() != "LEX1001" {
		t.Errorf("ID: got %q", diag.LexUnterminatedString.ID())
	}
}

type sliceReporter struct {
	got []diag.Code
}

func (r *sliceReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.got = append(r.got, code)
}

func TestDedupReporter(t *testing.T) {
	var inner sliceReporter
	reporter := diag.NewDedupReporter(&inner)
	sp := span(0, 3, 4)
	reporter.Report(diag.ResUndefinedName, diag.SevError, sp, "x", nil)
	reporter.Report(diag.ResUndefinedName, diag.SevError, sp, "x", nil)
	reporter.Report(diag.ResUndefinedName, diag.SevError, sp, "y", nil)
	if len(inner.got) != 2 {
		t.Fatalf("dedup reporter: got %d reports", len(inner.got))
	}
}
