package sema_test

import (
	"testing"

	"spicy/internal/ast"
	"spicy/internal/diag"
	"spicy/internal/lexer"
	"spicy/internal/parser"
	"spicy/internal/sema"
	"spicy/internal/source"
)

// analyze прогоняет parse + sema и возвращает только sema-диагностики.
func analyze(t *testing.T, input string) (*sema.Result, *diag.Bag) {
	res, bag, _ := analyzeFull(t, input)
	return res, bag
}

func analyzeFull(t *testing.T, input string) (*sema.Result, *diag.Bag, *ast.Builder) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.spc", []byte(input))
	file := fs.Get(fileID)

	parseBag := diag.NewBag(100)
	lx := lexer.New(file, lexer.Options{})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	result := parser.ParseFile(fs, lx, builder, parser.Options{
		Reporter: &diag.BagReporter{Bag: parseBag},
	})
	if parseBag.HasErrors() {
		t.Fatalf("parse errors: %+v", parseBag.Items())
	}

	semaBag := diag.NewBag(100)
	res := sema.Analyze(builder, result.File, &diag.BagReporter{Bag: semaBag})
	semaBag.Sort()
	return res, semaBag, builder
}

func codes(bag *diag.Bag) []diag.Code {
	out := make([]diag.Code, 0, bag.Len())
	for _, d := range bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func TestAbstractOverrideIsClean(t *testing.T) {
	_, bag := analyze(t, `
abstract class A { abstract def m(self) -> int; }
class B extends A { def m(self) -> int { return 1; } }
B().m();`)
	if bag.HasErrors() {
		t.Fatalf("want zero diagnostics, got %v", codes(bag))
	}
}

func TestConcreteClassMissingAbstractMember(t *testing.T) {
	_, bag := analyze(t, `
abstract class A { abstract def m(self) -> int; }
class B extends A {}
B();`)
	if !hasCode(bag, diag.SemaConcreteClassHasAbstractMembers) {
		t.Fatalf("want ConcreteClassHasAbstractMembers, got %v", codes(bag))
	}
	// B конкретен (хоть и невалиден) — AbstractInstantiation не репортим
	if hasCode(bag, diag.SemaAbstractInstantiation) {
		t.Fatalf("AbstractInstantiation must be elided for concrete B, got %v", codes(bag))
	}
}

func TestAbstractInstantiation(t *testing.T) {
	_, bag := analyze(t, `
abstract class A { abstract def m(self) -> int; }
A();`)
	if !hasCode(bag, diag.SemaAbstractInstantiation) {
		t.Fatalf("want AbstractInstantiation, got %v", codes(bag))
	}
}

func TestExtendsFinalClass(t *testing.T) {
	_, bag := analyze(t, `
final class F {}
class G extends F {}`)
	if !hasCode(bag, diag.SemaExtendsFinalClass) {
		t.Fatalf("want ExtendsFinalClass, got %v", codes(bag))
	}
}

func TestOverrideOfFinalMethod(t *testing.T) {
	_, bag := analyze(t, `
class P { final def m(self) -> int { return 1; } }
class C extends P { def m(self) -> int { return 2; } }`)
	if !hasCode(bag, diag.SemaOverrideOfFinalMethod) {
		t.Fatalf("want OverrideOfFinalMethod, got %v", codes(bag))
	}
}

func TestInterfaceSignatureMismatch(t *testing.T) {
	_, bag := analyze(t, `
interface I { def f() -> int; }
class K implements I { def f(self) -> str { return "x"; } }`)
	if !hasCode(bag, diag.SemaOverrideSignatureMismatch) {
		t.Fatalf("want OverrideSignatureMismatch, got %v", codes(bag))
	}
}

func TestInterfaceSatisfiedThroughAncestor(t *testing.T) {
	_, bag := analyze(t, `
interface I { def f() -> int; }
class Base { def f(self) -> int { return 1; } }
class K extends Base implements I {}`)
	if bag.HasErrors() {
		t.Fatalf("inherited implementation should satisfy interface, got %v", codes(bag))
	}
}

func TestInterfaceExtendsUnion(t *testing.T) {
	_, bag := analyze(t, `
interface A { def a() -> int; }
interface B extends A { def b() -> int; }
class K implements B { def b(self) -> int { return 1; } }`)
	if !hasCode(bag, diag.SemaConcreteClassHasAbstractMembers) {
		t.Fatalf("requirements must compose through interface extends, got %v", codes(bag))
	}
}

func TestInheritanceCycle(t *testing.T) {
	res, bag := analyze(t, `
class A extends B {}
class B extends A {}`)
	if !hasCode(bag, diag.SemaInheritanceCycle) {
		t.Fatalf("want InheritanceCycle, got %v", codes(bag))
	}
	// после разрыва цикла MRO конечны
	for _, id := range res.Graph.All() {
		info := res.Graph.Get(id)
		if len(info.MRO) > res.Graph.Len() {
			t.Fatalf("MRO not finite after cycle break")
		}
	}
}

func TestDuplicateDeclaration(t *testing.T) {
	_, bag := analyze(t, `
class A {}
class A {}`)
	if !hasCode(bag, diag.ResDuplicateDeclaration) {
		t.Fatalf("want DuplicateDeclaration, got %v", codes(bag))
	}
}

func TestUnresolvedBase(t *testing.T) {
	_, bag := analyze(t, `class A extends Missing {}`)
	if !hasCode(bag, diag.ResUnresolvedBase) {
		t.Fatalf("want UnresolvedBase, got %v", codes(bag))
	}
}

func TestExtendsNonClassAndImplementsNonInterface(t *testing.T) {
	_, bag := analyze(t, `
interface I {}
class C {}
class X extends I {}
class Y implements C {}`)
	if !hasCode(bag, diag.SemaExtendsNonClass) {
		t.Fatalf("want ExtendsNonClass, got %v", codes(bag))
	}
	if !hasCode(bag, diag.SemaImplementsNonInterface) {
		t.Fatalf("want ImplementsNonInterface, got %v", codes(bag))
	}
}

func TestAbstractAndFinal(t *testing.T) {
	_, bag := analyze(t, `
abstract class A { abstract final def m(self) -> int; }`)
	if !hasCode(bag, diag.SemaAbstractAndFinal) {
		t.Fatalf("want AbstractAndFinal, got %v", codes(bag))
	}
}

func TestStaticCannotBeAbstract(t *testing.T) {
	_, bag := analyze(t, `
abstract class A { static abstract def m() -> int; }`)
	if !hasCode(bag, diag.SemaStaticCannotBeAbstract) {
		t.Fatalf("want StaticCannotBeAbstract, got %v", codes(bag))
	}
}

func TestStaticUsesSelf(t *testing.T) {
	_, bag := analyze(t, `
class A {
    static def m() -> int { return self.x; }
}`)
	if !hasCode(bag, diag.SemaStaticUsesSelf) {
		t.Fatalf("want StaticUsesSelf, got %v", codes(bag))
	}
}

func TestAbstractOutsideAbstractClass(t *testing.T) {
	_, bag := analyze(t, `
class A { abstract def m(self) -> int; }`)
	if !hasCode(bag, diag.SemaAbstractOutsideAbstractClass) {
		t.Fatalf("want AbstractOutsideAbstractClass, got %v", codes(bag))
	}
}

func TestMissingSuperInitSeverity(t *testing.T) {
	// родительский конструктор с аргументами → error
	_, bag := analyze(t, `
class P { def __init__(self, x) { self.x = x; } }
class C extends P { def __init__(self) { self.y = 1; } }`)
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SemaMissingSuperInit && d.Severity == diag.SevError {
			found = true
		}
	}
	if !found {
		t.Fatalf("want MissingSuperInit error, got %v", codes(bag))
	}

	// родительский конструктор без аргументов → warning
	_, bag = analyze(t, `
class P { def __init__(self) { self.x = 0; } }
class C extends P { def __init__(self) { self.y = 1; } }`)
	foundWarning := false
	for _, d := range bag.Items() {
		if d.Code == diag.SemaMissingSuperInit && d.Severity == diag.SevWarning {
			foundWarning = true
		}
	}
	if !foundWarning {
		t.Fatalf("want MissingSuperInit warning, got %v", codes(bag))
	}
}

func TestSuperInitFirstStatementAccepted(t *testing.T) {
	_, bag := analyze(t, `
class P { def __init__(self, x) { self.x = x; } }
class C extends P { def __init__(self) { super(1); self.y = 2; } }`)
	if hasCode(bag, diag.SemaMissingSuperInit) {
		t.Fatalf("super(...) first must satisfy the rule, got %v", codes(bag))
	}
}

func TestConstructorBadModifier(t *testing.T) {
	_, bag := analyze(t, `
class A { static def __init__(self) { pass; } }`)
	if !hasCode(bag, diag.SemaConstructorBadModifier) {
		t.Fatalf("want ConstructorBadModifier, got %v", codes(bag))
	}
}

func TestOverrideSignatureMismatchOnClassChain(t *testing.T) {
	_, bag := analyze(t, `
class P { def m(self, a: int) -> int { return a; } }
class C extends P { def m(self, a: str) -> int { return 1; } }`)
	if !hasCode(bag, diag.SemaOverrideSignatureMismatch) {
		t.Fatalf("want OverrideSignatureMismatch, got %v", codes(bag))
	}
}

func TestCheckingIsIdempotent(t *testing.T) {
	input := `
final class F {}
class G extends F {}
abstract class A { abstract def m(self) -> int; }
class B extends A {}
A();`

	_, first := analyze(t, input)
	_, second := analyze(t, input)
	if first.Len() != second.Len() {
		t.Fatalf("idempotency broken: %d vs %d", first.Len(), second.Len())
	}
	for i := range first.Items() {
		a, b := first.Items()[i], second.Items()[i]
		if a.Code != b.Code || a.Primary != b.Primary || a.Message != b.Message {
			t.Fatalf("diagnostic %d differs: %+v vs %+v", i, a, b)
		}
	}
}

func TestMonotonicDiagnostics(t *testing.T) {
	base := `
final class F {}
class G extends F {}`
	_, before := analyze(t, base)

	extended := base + `
class H { abstract def m(self) -> int; }`
	_, after := analyze(t, extended)

	if after.Len() < before.Len() {
		t.Fatalf("adding a bad class removed diagnostics: %d -> %d", before.Len(), after.Len())
	}
	for _, d := range before.Items() {
		if !hasCode(after, d.Code) {
			t.Fatalf("diagnostic %v lost after extension", d.Code)
		}
	}
}

func TestStillAbstractSetOnGraph(t *testing.T) {
	res, _, builder := analyzeFull(t, `
interface I { def f() -> int; def g() -> int; }
abstract class A implements I { def f(self) -> int { return 1; } }`)
	id, ok := res.Graph.ByName(builder.StringsInterner.Intern("A"))
	if !ok {
		t.Fatalf("class A not in graph")
	}
	info := res.Graph.Get(id)
	if len(info.StillAbstract) != 1 {
		t.Fatalf("still-abstract: got %d entries", len(info.StillAbstract))
	}
	if _, stillAbstract := info.StillAbstract[builder.StringsInterner.Intern("g")]; !stillAbstract {
		t.Fatalf("'g' must remain in the still-abstract set")
	}
}
