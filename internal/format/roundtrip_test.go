package format_test

import (
	"bytes"
	"testing"

	"spicy/internal/ast"
	"spicy/internal/diag"
	"spicy/internal/format"
	"spicy/internal/lexer"
	"spicy/internal/parser"
	"spicy/internal/source"
)

func parseBytes(t *testing.T, content []byte) (*ast.Builder, ast.FileID, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.spc", content)
	file := fs.Get(fileID)

	bag := diag.NewBag(100)
	lx := lexer.New(file, lexer.Options{})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	result := parser.ParseFile(fs, lx, builder, parser.Options{
		Reporter: &diag.BagReporter{Bag: bag},
	})
	return builder, result.File, bag
}

// roundtrip: parse → print → parse → print; канон — неподвижная точка.
func roundtrip(t *testing.T, src string) {
	t.Helper()
	builder, fileID, bag := parseBytes(t, []byte(src))
	if bag.HasErrors() {
		t.Fatalf("initial parse: %+v", bag.Items())
	}
	printed, err := format.FormatFile(builder, fileID, format.Options{})
	if err != nil {
		t.Fatal(err)
	}

	builder2, fileID2, bag2 := parseBytes(t, printed)
	if bag2.HasErrors() {
		t.Fatalf("canonical form does not re-parse:\n%s\n%+v", printed, bag2.Items())
	}
	reprinted, err := format.FormatFile(builder2, fileID2, format.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(printed, reprinted) {
		t.Fatalf("canonical form is not a fixed point:\n--- first\n%s\n--- second\n%s", printed, reprinted)
	}
}

func TestRoundtripDeclarations(t *testing.T) {
	roundtrip(t, `
interface Printable extends Base {
    def describe() -> str;
}

abstract class Shape implements Printable {
    count = 0;
    static total = 0;

    abstract def area(self) -> float;

    final def describe(self) -> str {
        return "shape";
    }

    static def kind() -> str {
        return "shape";
    }
}

final class Square extends Shape {
    def __init__(self, side: float) {
        super();
        self.side = side;
    }

    def area(self) -> float {
        return self.side ** 2;
    }
}`)
}

func TestRoundtripStatements(t *testing.T) {
	roundtrip(t, `
def classify(n: int) -> str {
    if n < 0 {
        return "negative";
    } elif n == 0 {
        return "zero";
    } else {
        return "positive";
    }
}

def walk(rows) {
    total = 0;
    for i, row in rows {
        while i > 0 {
            i -= 1;
            if i == 2 {
                break;
            }
            continue;
        }
        total += sum(row);
    }
    raise ValueError("done");
}

import os.path;
from math import pi, tau;
pass;`)
}

func TestRoundtripExpressions(t *testing.T) {
	roundtrip(t, `
x = 1 + 2 * 3 ** 2 % 4;
ok = not a and b or c in d and e not in f;
same = a is b and a is not c;
items = [1, 2, 3][1:-1];
strides = data[::2];
pair = (1, "two");
single = (1,);
table = {"a": 1, "b": 2};
chained = 0 < x < 10;
nested = data[0][1].field.method(1, 2);
msg = f"Area: {area:.2f} of {name}! {{escaped}}";
quoted = "line\nwith\ttabs and \"quotes\"";
`)
}
