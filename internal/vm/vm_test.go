package vm_test

import (
	"bytes"
	"strings"
	"testing"

	"spicy/internal/diag"
	"spicy/internal/driver"
	"spicy/internal/vm"
)

// runProgram — полный пайплайн: parse → sema → исполнение.
func runProgram(t *testing.T, src string) (string, *vm.RuntimeError) {
	t.Helper()
	checked, err := driver.CheckVirtual("test.spc", []byte(src), 100)
	if err != nil {
		t.Fatalf("pipeline error: %v", err)
	}
	if checked.Bag.HasErrors() {
		t.Fatalf("diagnostics: %+v", checked.Bag.Items())
	}

	var out bytes.Buffer
	machine := vm.New(checked.Builder, checked.Sema.Graph, checked.FileSet, &out)
	runtimeErr := machine.Run(checked.FileID)
	return out.String(), runtimeErr
}

func expectOutput(t *testing.T, src, want string) {
	t.Helper()
	got, runtimeErr := runProgram(t, src)
	if runtimeErr != nil {
		t.Fatalf("runtime error: %v", runtimeErr)
	}
	if got != want {
		t.Fatalf("output mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestAbstractOverrideRuns(t *testing.T) {
	expectOutput(t, `
abstract class A { abstract def m(self) -> int; }
class B extends A { def m(self) -> int { return 1; } }
print(B().m());`, "1\n")
}

func TestArithmeticAndPrecedence(t *testing.T) {
	expectOutput(t, `
print(1 + 2 * 3);
print(2 ** 3 ** 2);
print(7 % 3);
print(-7 % 3);
print(7 / 2);
print(2 * (3 + 4));`, "7\n512\n1\n2\n3.5\n14\n")
}

func TestFStringFormatting(t *testing.T) {
	expectOutput(t, `
area = 78.53981633974483;
rate = 0.6666666;
print(f"Area: {area:.2f}");
print(f"rate: {rate:.1%}");
print(f"bare: {1 + 2}");
print(f"brace: {{literal}}");`,
		"Area: 78.54\nrate: 66.7%\nbare: 3\nbrace: {literal}\n")
}

func TestSuperChain(t *testing.T) {
	expectOutput(t, `
class Base {
    def __init__(self, name) {
        self.name = name;
    }
    def describe(self) -> str {
        return self.name;
    }
}
class Child extends Base {
    def __init__(self) {
        super("child");
    }
    def describe(self) -> str {
        return "<" + super.describe() + ">";
    }
}
print(Child().describe());`, "<child>\n")
}

func TestStaticCounter(t *testing.T) {
	expectOutput(t, `
class Counter {
    def __init__(self) {
        if not hasattr(Counter, "_count") {
            Counter._count = 0;
        }
        Counter._count += 1;
    }
}
Counter();
Counter();
Counter();
print(Counter._count);`, "3\n")
}

func TestDeclaredStaticFieldAndMethod(t *testing.T) {
	expectOutput(t, `
class Config {
    static retries = 3;
    static def describe() -> str {
        return "config";
    }
}
print(Config.retries);
print(Config.describe());`, "3\nconfig\n")
}

func TestStaticShadowingThroughSubclassName(t *testing.T) {
	expectOutput(t, `
class P { static label = "p"; }
class C extends P {}
print(C.label);
C.label = "c";
print(C.label);
print(P.label);`, "p\nc\np\n")
}

func TestIsinstanceClassAndInterface(t *testing.T) {
	expectOutput(t, `
interface Drawable { def draw() -> str; }
interface Printable extends Drawable {}
class Shape implements Printable {
    def draw(self) -> str { return "shape"; }
}
class Blob {}
s = Shape();
b = Blob();
print(isinstance(s, Shape));
print(isinstance(s, Drawable));
print(isinstance(s, Printable));
print(isinstance(b, Drawable));`, "True\nTrue\nTrue\nFalse\n")
}

func TestListsSlicesAndMethods(t *testing.T) {
	expectOutput(t, `
xs = [1, 2, 3, 4, 5];
print(xs[0]);
print(xs[-1]);
print(xs[1:3]);
print(xs[:-1]);
print(xs[::2]);
copy = xs.copy();
copy.append(6);
copy.remove(1);
print(copy);
print(xs);
print(len(xs));
print(sum(xs));`,
		"1\n5\n[2, 3]\n[1, 2, 3, 4]\n[1, 3, 5]\n[2, 3, 4, 5, 6]\n[1, 2, 3, 4, 5]\n5\n15\n")
}

func TestStringMethods(t *testing.T) {
	expectOutput(t, `
s = "  Hello World  ";
print(s.strip());
print(s.strip().lower());
print("a,b,c".split(","));
print("-".join(["x", "y"]));
print("hello"[1]);
print("hello"[-1]);
print("hello"[1:4]);`,
		"Hello World\nhello world\n['a', 'b', 'c']\nx-y\ne\no\nell\n")
}

func TestDictsAndTuples(t *testing.T) {
	expectOutput(t, `
d = {"a": 1, "b": 2};
print(d["a"]);
print(d.get("missing", 0));
print(len(d));
for k in d {
    print(k);
}
pair = (1, "two");
print(pair[1]);
for k, v in d.items() {
    print(f"{k}={v}");
}`,
		"1\n0\n2\na\nb\ntwo\na=1\nb=2\n")
}

func TestControlFlow(t *testing.T) {
	expectOutput(t, `
total = 0;
for i in range(10) {
    if i % 2 == 0 {
        continue;
    }
    if i > 7 {
        break;
    }
    total += i;
}
print(total);

n = 3;
if n < 0 {
    print("neg");
} elif n == 0 {
    print("zero");
} else {
    print("pos");
}

while n > 0 {
    n -= 1;
}
print(n);`, "16\npos\n0\n")
}

func TestComparisonChaining(t *testing.T) {
	expectOutput(t, `
x = 5;
print(0 < x < 10);
print(0 < x < 3);
print("a" in "cat");
print(2 in [1, 2]);
print(3 not in [1, 2]);
print(None is None);`,
		"True\nFalse\nTrue\nTrue\nTrue\nTrue\n")
}

func TestRaiseTerminates(t *testing.T) {
	_, runtimeErr := runProgram(t, `
def fail() {
    raise ValueError("bad input");
}
fail();`)
	if runtimeErr == nil {
		t.Fatalf("want runtime error")
	}
	if runtimeErr.Code != diag.RunValueError {
		t.Fatalf("want ValueError, got %v", runtimeErr.Code.Title())
	}
	if !strings.Contains(runtimeErr.Msg, "bad input") {
		t.Fatalf("message lost: %q", runtimeErr.Msg)
	}
}

func TestZeroDivision(t *testing.T) {
	_, runtimeErr := runProgram(t, `x = 1 / 0;`)
	if runtimeErr == nil || runtimeErr.Code != diag.RunZeroDivision {
		t.Fatalf("want ZeroDivision, got %v", runtimeErr)
	}
}

func TestIndexError(t *testing.T) {
	_, runtimeErr := runProgram(t, `xs = [1]; print(xs[5]);`)
	if runtimeErr == nil || runtimeErr.Code != diag.RunIndexError {
		t.Fatalf("want IndexError, got %v", runtimeErr)
	}
}

func TestAttributeError(t *testing.T) {
	_, runtimeErr := runProgram(t, `
class A {}
a = A();
print(a.missing);`)
	if runtimeErr == nil || runtimeErr.Code != diag.RunAttributeError {
		t.Fatalf("want AttributeError, got %v", runtimeErr)
	}
}

func TestRecursionLimit(t *testing.T) {
	_, runtimeErr := runProgram(t, `
def loop() { return loop(); }
loop();`)
	if runtimeErr == nil || runtimeErr.Code != diag.RunRecursionLimit {
		t.Fatalf("want RecursionLimit, got %v", runtimeErr)
	}
}

func TestFieldInitializersAcrossChain(t *testing.T) {
	expectOutput(t, `
class P {
    kind = "parent";
    tag = 1;
}
class C extends P {
    kind = "child";
}
c = C();
print(c.kind);
print(c.tag);`, "child\n1\n")
}

func TestDynamicDispatchThroughBase(t *testing.T) {
	expectOutput(t, `
abstract class Shape {
    abstract def area(self) -> float;
    def describe(self) -> str {
        return f"area={self.area():.2f}";
    }
}
class Circle extends Shape {
    def __init__(self, r) {
        self.r = r;
    }
    def area(self) -> float {
        return 3.141592653589793 * self.r ** 2;
    }
}
print(Circle(5).describe());`, "area=78.54\n")
}
