package sema

import (
	"testing"

	"gul/internal/diag"
	"gul/internal/types"
)

func TestCleanProgram(t *testing.T) {
	src := `fn add(a: borrow int, b: int) -> int:
    return a + b
struct Point:
    x: float
    y: float
    fn norm(self) -> float:
        return self.x * self.x + self.y * self.y
enum Color:
    Red
    Green
mn:
    let p = Point(1.0, 2.0)
    var total = 0
    for i in range(10):
        total += add(i, 1)
    let c = Color.Red
    match c:
        Color.Red => print("red")
        _ => pass
    print(p.norm(), total)
`
	checkClean(t, src)
}

func TestShadowingResolvesInnermost(t *testing.T) {
	c := checkClean(t, `let x = 1
if true:
    let x = "s"
    let y: str = x
let z: int = x
`)
	if got := c.letType(t, 2); got != "int" {
		t.Fatalf("z = %s, want int", got)
	}
}

func TestForwardReferencedFunction(t *testing.T) {
	checkClean(t, `mn:
    print(later(2))
fn later(n: int) -> int:
    return n * 2
`)
}

func TestInferredTypes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"int", "let x = 1 + 2\n", "int"},
		{"float promotion", "let x = 1 + 2.5\n", "float"},
		{"string concat", "let x = \"a\" + \"b\"\n", "str"},
		{"comparison", "let x = 1 < 2\n", "bool"},
		{"list join", "let x = [1, 2.5]\n", "list[float]"},
		{"dict", "let x = {\"a\": 1}\n", "dict[str, int]"},
		{"set", "let x = {1, 2}\n", "set[int]"},
		{"tuple", "let x = (1, \"a\")\n", "tuple[int, str]"},
		{"ctor", "let x = @int(\"3\")\n", "int"},
		{"typed list ctor", "let x = @list[1, 2]\n", "list[int]"},
		{"list conversion", "let x = @list(0..3)\n", "list[int]"},
		{"index", "let x = [1, 2][0]\n", "int"},
		{"slice", "let x = [1, 2][0..1]\n", "list[int]"},
		{"range", "let x = 0..10\n", "range[int]"},
		{"match", "let x = match 1:\n    1 => 10\n    _ => 20\n", "int"},
		{"lambda", "let f = fn(a: int) => a * 2\n", "fn(int) -> int"},
		{"dict get", "let d = {\"a\": 1}\nlet x = d.get(\"a\")\n", "int"},
		{"dict keys", "let d = {\"a\": 1}\nlet x = d.keys()\n", "list[str]"},
		{"string split", "let s = \"a b\"\nlet x = s.split(\" \")\n", "list[str]"},
		{"list contains", "let xs = [1]\nlet x = xs.contains(1)\n", "bool"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := checkClean(t, tt.src)
			if got := c.letType(t, len(c.file.Stmts)-1); got != tt.want {
				t.Fatalf("type = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestReturnTypeInference(t *testing.T) {
	c := checkClean(t, `fn double(n: int):
    return n * 2
fn nothing():
    pass
let y = double(3)
`)
	double := c.res.Signatures[c.file.Stmts[0]]
	if double == nil || types.Label(c.res.TypeInterner, double.Result) != "int" {
		t.Fatalf("double result = %+v", double)
	}
	nothing := c.res.Signatures[c.file.Stmts[1]]
	if nothing == nil || nothing.Result != c.res.TypeInterner.Builtins().Unit {
		t.Fatalf("nothing result = %+v", nothing)
	}
	if got := c.letType(t, 2); got != "int" {
		t.Fatalf("y = %s, want int", got)
	}
}

func TestUntypedParamRefinedAtCallSite(t *testing.T) {
	c := checkClean(t, `fn greet(name):
    print(name)
greet("bob")
`)
	sig := c.res.Signatures[c.file.Stmts[0]]
	if sig == nil || len(sig.Params) != 1 {
		t.Fatalf("signature = %+v", sig)
	}
	if got := types.Label(c.res.TypeInterner, sig.Params[0].Type); got != "str" {
		t.Fatalf("name refined to %s, want str", got)
	}
	if sig.Params[0].Annotated {
		t.Fatalf("refined param must stay unannotated")
	}
}

func TestCallTargetsRecorded(t *testing.T) {
	c := checkClean(t, `fn f() -> int:
    return 1
let x = f()
`)
	if len(c.res.CallTargets) != 1 {
		t.Fatalf("call targets = %d", len(c.res.CallTargets))
	}
	for _, sig := range c.res.CallTargets {
		if c.builder.Name(sig.Name) != "f" {
			t.Fatalf("target = %s", c.builder.Name(sig.Name))
		}
	}
}

func TestSemanticErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"undefined name", "print(y)\n", diag.SemaUndefinedName},
		{"undefined assign target", "y = 1\n", diag.SemaUndefinedName},
		{"let mismatch", "let x: int = \"a\"\n", diag.SemaTypeMismatch},
		{"binary mismatch", "let x = 1 + \"a\"\n", diag.SemaTypeMismatch},
		{"condition", "if 1:\n    pass\n", diag.SemaTypeMismatch},
		{"unary operand", "let x = not 1\n", diag.SemaInvalidOperand},
		{"arity", "fn add(a: int, b: int) -> int:\n    return a + b\nadd(1)\n", diag.SemaArityMismatch},
		{"builtin arity", "let n = len()\n", diag.SemaArityMismatch},
		{"argument type", "fn f(a: int):\n    pass\nf(\"s\")\n", diag.SemaTypeMismatch},
		{"return type", "fn f() -> int:\n    return \"s\"\n", diag.SemaTypeMismatch},
		{"break outside loop", "break\n", diag.SemaBreakOutsideLoop},
		{"continue in fn outside loop", "while true:\n    fn f():\n        continue\n", diag.SemaBreakOutsideLoop},
		{"return outside fn", "return 1\n", diag.SemaReturnOutsideFn},
		{"await outside async", "fn g() -> int:\n    return 1\nfn f():\n    let x = await g()\n", diag.SemaAwaitOutsideAsync},
		{"not callable", "let x = 1\nx()\n", diag.SemaNotCallable},
		{"unknown type", "let x: widget = 1\n", diag.SemaUnknownType},
		{"unknown field", "struct P:\n    x: int\nlet p = P(1)\nlet z = p.z\n", diag.SemaUnknownMember},
		{"unknown variant", "enum C:\n    Red\nlet c = C.Blue\n", diag.SemaUnknownMember},
		{"ctor arity", "struct P:\n    x: int\nlet p = P(1, 2)\n", diag.SemaArityMismatch},
		{"duplicate fn", "fn a():\n    pass\nfn a():\n    pass\n", diag.SemaDuplicateDecl},
		{"method clashes with field", "struct P:\n    x: int\n    fn x(self) -> int:\n        return 1\n", diag.SemaDuplicateMember},
		{"match arm types", "let v = match 1:\n    1 => 10\n    _ => \"a\"\n", diag.SemaTypeMismatch},
		{"iterate int", "for i in 5:\n    pass\n", diag.SemaTypeMismatch},
		{"method arity", "var xs = [1]\nxs.append(1, 2)\n", diag.SemaArityMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkSource(t, tt.src).expectOnly(t, tt.code)
		})
	}
}

func TestImportDeclaresModule(t *testing.T) {
	c := checkClean(t, "@imp std.http\nlet r = http.get(\"x\")\n")
	if got := c.letType(t, 1); got != "any" {
		t.Fatalf("r = %s, want any", got)
	}
}

func TestAsyncAwait(t *testing.T) {
	checkClean(t, `async fn fetch(url: str) -> str:
    return url
async fn main_task():
    let body = await fetch("x")
    print(body)
`)
}
