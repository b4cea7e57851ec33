package parser_test

import (
	"testing"

	"spicy/internal/ast"
	"spicy/internal/diag"
	"spicy/internal/lexer"
	"spicy/internal/parser"
	"spicy/internal/source"
)

// parseSource — разбор строки с отдельным FileSet и Bag.
func parseSource(t *testing.T, input string) (*ast.Builder, ast.FileID, *diag.Bag, *source.FileSet) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.spc", []byte(input))
	file := fs.Get(fileID)

	bag := diag.NewBag(100)
	lx := lexer.New(file, lexer.Options{})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	result := parser.ParseFile(fs, lx, builder, parser.Options{
		Reporter: &diag.BagReporter{Bag: bag},
	})
	return builder, result.File, bag, fs
}

func items(builder *ast.Builder, fileID ast.FileID) []ast.ItemID {
	return builder.Files.Get(fileID).Items
}

func TestParseInterface(t *testing.T) {
	builder, fileID, bag, _ := parseSource(t, `
interface Printable extends Base1, Base2 {
    def describe() -> str;
    def severity() -> int;
}`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	all := items(builder, fileID)
	if len(all) != 1 {
		t.Fatalf("want 1 item, got %d", len(all))
	}
	data, ok := builder.Items.Interface(all[0])
	if !ok {
		t.Fatalf("item is not an interface")
	}
	if builder.Name(data.Name) != "Printable" {
		t.Errorf("name: got %q", builder.Name(data.Name))
	}
	if len(data.Extends) != 2 {
		t.Errorf("extends: got %d", len(data.Extends))
	}
	if len(data.Methods) != 2 {
		t.Errorf("methods: got %d", len(data.Methods))
	}
	sig := builder.Items.Sig(data.Methods[0])
	if builder.Name(sig.Name) != "describe" || builder.Name(sig.Return) != "str" {
		t.Errorf("first signature: %q -> %q", builder.Name(sig.Name), builder.Name(sig.Return))
	}
}

func TestParseClassWithModifiers(t *testing.T) {
	builder, fileID, bag, _ := parseSource(t, `
abstract class Shape extends Base implements Printable, Comparable {
    count = 0;
    static total = 0;

    abstract def area(self) -> float;
    final def describe(self) -> str { return "shape"; }
    static def kind() -> str { return "shape"; }
}`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	data, ok := builder.Items.Class(items(builder, fileID)[0])
	if !ok {
		t.Fatalf("item is not a class")
	}
	if data.Mod != ast.ClassModAbstract {
		t.Errorf("modifier: got %v", data.Mod)
	}
	if builder.Name(data.Extends.Name) != "Base" {
		t.Errorf("extends: got %q", builder.Name(data.Extends.Name))
	}
	if len(data.Implements) != 2 {
		t.Errorf("implements: got %d", len(data.Implements))
	}
	if len(data.Members) != 5 {
		t.Fatalf("members: got %d", len(data.Members))
	}

	area := builder.Items.Member(data.Members[2])
	if !area.Mods.Has(ast.MemberModAbstract) || area.Body.IsValid() {
		t.Errorf("area should be abstract without body")
	}
	describe := builder.Items.Member(data.Members[3])
	if !describe.Mods.Has(ast.MemberModFinal) || !describe.Body.IsValid() {
		t.Errorf("describe should be final with body")
	}
	kind := builder.Items.Member(data.Members[4])
	if !kind.Mods.Has(ast.MemberModStatic) {
		t.Errorf("kind should be static")
	}
	total := builder.Items.Member(data.Members[1])
	if total.Kind != ast.MemberField || !total.Mods.Has(ast.MemberModStatic) {
		t.Errorf("total should be a static field")
	}
}

func TestParseControlFlow(t *testing.T) {
	_, _, bag, _ := parseSource(t, `
def classify(n: int) -> str {
    if n < 0 {
        return "negative";
    } elif n == 0 {
        return "zero";
    } else {
        return "positive";
    }
}

def walk(items) {
    for i, v in items {
        while v > 0 {
            v -= 1;
            if v == 2 {
                break;
            }
            continue;
        }
    }
    pass;
}`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
}

func TestParseExpressions(t *testing.T) {
	_, _, bag, _ := parseSource(t, `
x = 1 + 2 * 3 ** 2 % 4;
ok = not a and b or c in d and e not in f;
same = a is b;
diff = a is not b;
items = [1, 2, 3][1:-1];
pair = (1, "two");
empty = ();
table = {"a": 1, "b": 2};
chained = 0 < x < 10;
nested = data[0][1].field.method(1, 2);
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
}

func TestParseFStringParts(t *testing.T) {
	builder, fileID, bag, _ := parseSource(t, `msg = f"Area: {area:.2f} of {name}!";`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	stmtID, _ := builder.Items.StmtItem(items(builder, fileID)[0])
	assign, ok := builder.Stmts.Assign(stmtID)
	if !ok {
		t.Fatalf("want assignment")
	}
	fstr, ok := builder.Exprs.FString(assign.Value)
	if !ok {
		t.Fatalf("value is not an f-string")
	}
	// "Area: ", {area:.2f}, " of ", {name}, "!"
	if len(fstr.Parts) != 5 {
		t.Fatalf("parts: got %d", len(fstr.Parts))
	}
	if builder.Name(fstr.Parts[0].Lit) != "Area: " {
		t.Errorf("chunk 0: %q", builder.Name(fstr.Parts[0].Lit))
	}
	if !fstr.Parts[1].Expr.IsValid() || builder.Name(fstr.Parts[1].Spec) != ".2f" {
		t.Errorf("part 1 should be an expression with spec .2f, got %q", builder.Name(fstr.Parts[1].Spec))
	}
	if !fstr.Parts[3].Expr.IsValid() || fstr.Parts[3].Spec != source.NoStringID {
		t.Errorf("part 3 should be a bare expression")
	}
}

func TestRecoveryContinuesAfterError(t *testing.T) {
	builder, fileID, bag, _ := parseSource(t, `
x = ;
y = 2;
class Ok {}
`)
	if !bag.HasErrors() {
		t.Fatalf("want a syntax error")
	}
	// после panic-mode должны выжить и присваивание, и класс
	all := items(builder, fileID)
	if len(all) < 2 {
		t.Fatalf("recovery lost items: got %d", len(all))
	}
}

func TestInterfaceFieldRejected(t *testing.T) {
	_, _, bag, _ := parseSource(t, `
interface I {
    count = 0;
    def f() -> int;
}`)
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SemaInterfaceHasField {
			found = true
		}
	}
	if !found {
		t.Fatalf("want InterfaceHasField, got %+v", bag.Items())
	}
}

func TestUnclosedBlockRejected(t *testing.T) {
	// незакрытый for внутри метода: консервативно отвергаем
	_, _, bag, _ := parseSource(t, `
class Exporter {
    def export(self) {
        for row in self.rows {
            for cell in row {
                print(cell);
    }
}`)
	if !bag.HasErrors() {
		t.Fatalf("want ExpectedToken for missing '}'")
	}
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.SynExpectedToken {
			found = true
		}
	}
	if !found {
		t.Fatalf("want ExpectedToken, got %+v", bag.Items())
	}
}

func TestMaxErrorsCap(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.spc", []byte("= ; = ; = ; = ; = ;"))
	file := fs.Get(fileID)
	bag := diag.NewBag(100)
	lx := lexer.New(file, lexer.Options{})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	parser.ParseFile(fs, lx, builder, parser.Options{
		Reporter:  &diag.BagReporter{Bag: bag},
		MaxErrors: 2,
	})
	if bag.Len() > 2 {
		t.Fatalf("error cap not honored: %d diagnostics", bag.Len())
	}
}
