package codegen

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gul/internal/ast"
	"gul/internal/diag"
	"gul/internal/lexer"
	"gul/internal/parser"
	"gul/internal/sema"
	"gul/internal/source"
)

type generated struct {
	out Output
	bag *diag.Bag
}

// generate runs the front end over input, requiring it to be error free,
// and translates the result.
func generate(t *testing.T, input string) generated {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.gul", []byte(input))
	file := fs.Get(fileID)

	front := diag.NewBag(100)
	reporter := diag.BagReporter{Bag: front}
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	builder := ast.NewBuilder(ast.Hints{}, nil)
	parsed := parser.ParseFile(fs, lx, builder, parser.Options{MaxErrors: 100, Reporter: reporter})
	res := sema.Check(context.Background(), builder, parsed.File, sema.Options{Reporter: reporter})
	require.Zero(t, front.Len(), "front end diagnostics: %s", summary(front))

	bag := diag.NewBag(100)
	out := Generate(builder, parsed.File, &res, Options{Reporter: diag.BagReporter{Bag: bag}})
	return generated{out: out, bag: bag}
}

func summary(bag *diag.Bag) string {
	lines := make([]string, 0, bag.Len())
	for _, d := range bag.Items() {
		lines = append(lines, fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message))
	}
	return strings.Join(lines, "; ")
}

func (g generated) codes() []diag.Code {
	out := make([]diag.Code, 0, g.bag.Len())
	for _, d := range g.bag.Items() {
		out = append(out, d.Code)
	}
	return out
}

func TestHeaderAndMain(t *testing.T) {
	g := generate(t, "print(1 + 2)\n")
	src := g.out.Source
	assert.True(t, strings.HasPrefix(src, "// Code generated by gul (crate main). DO NOT EDIT.\n"), src)
	assert.Contains(t, src, "use std::collections::{HashMap, HashSet};\n")
	assert.Contains(t, src, "fn main() {\n    println!(\"{}\", 1 + 2);\n}\n")
	assert.Zero(t, g.bag.Len(), summary(g.bag))
}

func TestEntryBlockIsInlined(t *testing.T) {
	g := generate(t, "mn:\n    let x = 1\n    print(x)\n")
	assert.Contains(t, g.out.Source, "fn main() {\n    let x = 1;\n    println!(\"{}\", x);\n}\n")
}

func TestStatements(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"declared float", "let x: float = 1\n", "    let x: f64 = 1.0;\n"},
		{"mixed arithmetic", "let y = 1 + 2.5\n", "    let y = 1.0 + 2.5;\n"},
		{"int power", "let p = 2 ** 10\n", "    let p = i64::pow(2, 10 as u32);\n"},
		{"power of bindings", "let a = 2\nlet b = 3\nlet c = 2\nlet p = a ^ b ^ c\n",
			"    let p = i64::pow(a, i64::pow(b, c as u32) as u32);\n"},
		{"float power", "let f = 2.0\nlet r = f ** 2\n", "    let r = f64::powf(f, 2.0);\n"},
		{"membership", "let xs = [1, 2]\nlet ok = 1 in xs\n", "    let ok = xs.contains(&1);\n"},
		{"string concat", "let s = \"a\" + \"b\"\n", "    let s = format!(\"{}{}\", String::from(\"a\"), String::from(\"b\"));\n"},
		{"var", "var n = 0\nn += 1\n", "    let mut n = 0;\n    n += 1;\n"},
		{"dict store", "var d = {\"a\": 1}\nd[\"b\"] = 2\n",
			"    let mut d = HashMap::from([(String::from(\"a\"), 1)]);\n    d.insert(String::from(\"b\"), 2);\n"},
		{"list copy", "let xs = [1, 2]\nlet ys = xs\n", "    let ys = xs.clone();\n"},
		{"for over list", "let xs = [1, 2]\nfor x in xs:\n    print(x)\n",
			"    for x in xs.clone() {\n        println!(\"{}\", x);\n    }\n"},
		{"if else", "let a = 1\nif a > 0:\n    print(a)\nelse:\n    print(0)\n",
			"    if a > 0 {\n        println!(\"{}\", a);\n    } else {\n        println!(\"{}\", 0);\n    }\n"},
		{"valued match", "let x = 1\nlet y = match x:\n    1 => 10\n    _ => 20\n",
			"    let y = match x {\n        1 => 10,\n        _ => 20,\n    };\n"},
		{"len", "let xs = [1]\nlet n = len(xs)\n", "    let n = (xs.len() as i64);\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := generate(t, tt.input)
			assert.Contains(t, g.out.Source, tt.want)
		})
	}
}

func TestRefArgument(t *testing.T) {
	g := generate(t, `fn bump(ref n: int):
    n += 1
mn:
    var x = 1
    bump(x)
`)
	src := g.out.Source
	assert.Contains(t, src, "fn bump(n: &mut i64) {\n    *n += 1;\n}\n")
	assert.Contains(t, src, "    bump(&mut x);\n")
}

func TestContainerMethods(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"append", "var xs = [1]\nxs.append(2)\n", "    xs.push(2);\n"},
		{"append float", "var xs = [1.5]\nxs.append(2)\n", "    xs.push(2.0);\n"},
		{"pop", "var xs = [1]\nlet x = xs.pop()\n", "    let x = xs.pop().unwrap();\n"},
		{"insert", "var xs = [1]\nxs.insert(0, 5)\n", "    xs.insert(0, 5);\n"},
		{"sort floats", "var xs = [2.5, 1.0]\nxs.sort()\n", "    xs.sort_by(|a, b| a.partial_cmp(b).unwrap());\n"},
		{"list len", "let xs = [1]\nlet n = xs.len()\n", "    let n = (xs.len() as i64);\n"},
		{"set add", "var s = {1}\ns.add(2)\n", "    s.insert(2);\n"},
		{"set discard", "var s = {1}\ns.discard(1)\n", "    s.remove(&1);\n"},
		{"dict get", "let d = {\"a\": 1}\nlet v = d.get(\"a\", 0)\n",
			"    let v = d.get(&String::from(\"a\")).cloned().unwrap_or(0);\n"},
		{"dict keys", "let d = {\"a\": 1}\nlet ks = d.keys()\n", "    let ks = d.keys().cloned().collect::<Vec<_>>();\n"},
		{"string upper", "let s = \"a\"\nlet u = s.upper()\n", "    let u = s.to_uppercase();\n"},
		{"string split", "let s = \"a b\"\nlet ws = s.split(\" \")\n",
			"    let ws = s.split(\" \").map(String::from).collect::<Vec<_>>();\n"},
		{"string startswith", "let s = \"ab\"\nlet ok = s.startswith(\"a\")\n", "    let ok = s.starts_with(\"a\");\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := generate(t, tt.input)
			assert.Contains(t, g.out.Source, tt.want)
			assert.Empty(t, g.codes())
		})
	}
}

func TestAppendThroughRefParam(t *testing.T) {
	g := generate(t, `fn push_one(ref xs: list[int], v: int):
    xs.append(v)
mn:
    var ys = [1]
    push_one(ys, 2)
`)
	src := g.out.Source
	assert.Contains(t, src, "fn push_one(xs: &mut Vec<i64>, v: i64) {\n    xs.push(v);\n}\n")
	assert.Contains(t, src, "    push_one(&mut ys, 2);\n")
	assert.Empty(t, g.codes())
}

func TestUnmappedMethodWarns(t *testing.T) {
	g := generate(t, "let xs = [3, 1]\nlet n = xs.frobnicate()\n")
	assert.Contains(t, g.out.Source, "xs.frobnicate()")
	require.Equal(t, []diag.Code{diag.GenUnmappedConstruct}, g.codes())
	assert.Contains(t, g.bag.Items()[0].Message, "method 'frobnicate' on list")
}

func TestEmptyCollectionLiterals(t *testing.T) {
	unused := generate(t, "let d = {}\nlet s: list[str] = []\n")
	assert.Contains(t, unused.out.Source, "    let d: HashMap<i64, i64> = HashMap::new();\n")
	assert.Contains(t, unused.out.Source, "    let s: Vec<String> = Vec::new();\n")
	require.Equal(t, []diag.Code{diag.GenApproximation}, unused.codes())
	assert.Contains(t, unused.bag.Items()[0].Message, "unused 'd'")

	used := generate(t, "var xs = []\nxs.append(1)\n")
	assert.Contains(t, used.out.Source, "    let mut xs = Vec::new();\n    xs.push(1);\n")
	require.Equal(t, []diag.Code{diag.GenApproximation}, used.codes())
	assert.Contains(t, used.bag.Items()[0].Message, "annotate it")
}

func TestBorrowParamReadsThroughDeref(t *testing.T) {
	g := generate(t, `fn add(a: borrow int, b: int) -> int:
    return a + b
mn:
    let x = 1
    print(add(x, 2))
`)
	src := g.out.Source
	assert.Contains(t, src, "fn add(a: &i64, b: i64) -> i64 {\n    return *a + b;\n}\n")
	assert.Contains(t, src, "println!(\"{}\", add(&x, 2));")
}

func TestKeptArgumentIsCloned(t *testing.T) {
	g := generate(t, `fn keep(kept s: str):
    print(s)
mn:
    let s = "a"
    keep(s)
    print(s)
`)
	src := g.out.Source
	assert.Contains(t, src, "fn keep(mut s: String) {")
	assert.Contains(t, src, "    keep(s.clone());\n")
}

func TestMovedArgumentIsNotCloned(t *testing.T) {
	g := generate(t, `fn consume(s: move str):
    print(s)
mn:
    let s = "hi"
    consume(s)
`)
	assert.Contains(t, g.out.Source, "    consume(s);\n")
}

func TestStructWithMethods(t *testing.T) {
	g := generate(t, `struct Point:
    x: int
    y: int
    fn sum(self) -> int:
        return self.x + self.y
    fn shift(ref self, d: int):
        self.x += d
mn:
    var p = Point(1, 2)
    p.shift(3)
    print(p.sum())
`)
	src := g.out.Source
	assert.Contains(t, src, `#[derive(Debug, Clone, PartialEq)]
pub struct Point {
    pub x: i64,
    pub y: i64,
}

impl Point {
    pub fn sum(&self) -> i64 {
        return self.x + self.y;
    }

    pub fn shift(&mut self, d: i64) {
        self.x += d;
    }
}
`)
	assert.Contains(t, src, "    let mut p = Point { x: 1, y: 2 };\n")
	assert.Contains(t, src, "    p.shift(3);\n")
	assert.Contains(t, src, "println!(\"{}\", p.sum());")
}

func TestEnumAndMatch(t *testing.T) {
	g := generate(t, `enum Color:
    Red
    Green
mn:
    let c = Color.Red
    match c:
        Color.Red => print("r")
        _ => print("other")
`)
	src := g.out.Source
	assert.Contains(t, src, "#[derive(Debug, Clone, Copy, PartialEq, Eq, Hash)]\npub enum Color {\n    Red,\n    Green,\n}\n")
	assert.Contains(t, src, "    let c = Color::Red;\n")
	assert.Contains(t, src, `    match c {
        Color::Red => println!("{}", String::from("r")),
        _ => println!("{}", String::from("other")),
    };
`)
}

func TestNonExhaustiveMatchGetsFallbackArm(t *testing.T) {
	g := generate(t, "let x = 1\nmatch x:\n    1 => print(\"one\")\n")
	assert.Contains(t, g.out.Source, "        _ => {}\n    };\n")
}

func TestUserMainIsRenamed(t *testing.T) {
	g := generate(t, "fn main():\n    print(1)\nprint(2)\n")
	src := g.out.Source
	assert.Contains(t, src, "fn gul_main() {\n")
	assert.Contains(t, src, "fn main() {\n    println!(\"{}\", 2);\n    gul_main();\n}\n")
}

func TestUserMainOnly(t *testing.T) {
	g := generate(t, "fn main():\n    print(1)\n")
	src := g.out.Source
	assert.Equal(t, 1, strings.Count(src, "fn main()"))
	assert.NotContains(t, src, "gul_main")
}

func TestImports(t *testing.T) {
	g := generate(t, "@imp std.io\n@imp net{http, tcp}\n")
	src := g.out.Source
	assert.Contains(t, src, "use gul_runtime::std::io;\n")
	assert.Contains(t, src, "use gul_runtime::net::{http, tcp};\n")
}

func TestForeignBlocks(t *testing.T) {
	g := generate(t, "@rust:\n    fn helper() -> i64 {\n        42\n    }\n@python:\n    import os\n    print(os.name)\n")
	src := g.out.Source
	assert.Contains(t, src, "// @rust begin\nfn helper() -> i64 {\n    42\n}\n// @rust end\n")
	assert.Contains(t, src, "    gul_runtime::foreign!(\"python\", r#\"import os\nprint(os.name)\"#);\n")

	require.Len(t, g.out.Foreign, 2)
	assert.Equal(t, "rust", g.out.Foreign[0].Tag)
	assert.Equal(t, "python", g.out.Foreign[1].Tag)
	assert.Equal(t, "import os\nprint(os.name)", g.out.Foreign[1].Body)
}

func TestUntypedParamWarns(t *testing.T) {
	g := generate(t, "fn show(x):\n    print(x)\n")
	assert.Contains(t, g.out.Source, "fn show(x: i64) {")
	assert.Contains(t, g.codes(), diag.GenUntypedParam)
}

func TestUntypedParamRefinedFromCall(t *testing.T) {
	g := generate(t, "fn show(x):\n    print(x)\nshow(\"hi\")\n")
	assert.Contains(t, g.out.Source, "fn show(x: String) {")
	assert.NotContains(t, g.codes(), diag.GenUntypedParam)
}

func TestTryIsApproximated(t *testing.T) {
	g := generate(t, "try:\n    print(1)\ncatch e:\n    print(e)\nfinally:\n    print(2)\n")
	src := g.out.Source
	assert.Contains(t, src, "std::panic::catch_unwind(std::panic::AssertUnwindSafe(|| {\n")
	assert.Contains(t, src, "let e: String = ")
	assert.Equal(t, []diag.Code{diag.GenApproximation}, g.codes())
}

func TestModuleCaptureWarnsOncePerFunction(t *testing.T) {
	g := generate(t, "let limit = 3\nfn over(n: int) -> bool:\n    return n > limit or n > limit * 2\n")
	assert.Equal(t, []diag.Code{diag.GenModuleCapture}, g.codes())
}

func TestKeywordNamesAreEscaped(t *testing.T) {
	g := generate(t, "let type = 1\nprint(type)\n")
	assert.Contains(t, g.out.Source, "    let r#type = 1;\n")
}

func TestIndentWidthOption(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("w.gul", []byte("print(1)\n")))
	builder := ast.NewBuilder(ast.Hints{}, nil)
	parsed := parser.ParseFile(fs, lexer.New(file, lexer.Options{}), builder, parser.Options{})
	res := sema.Check(context.Background(), builder, parsed.File, sema.Options{})
	out := Generate(builder, parsed.File, &res, Options{IndentWidth: 2, CrateName: "demo", SourcePath: "w.gul"})
	assert.Contains(t, out.Source, "// Code generated by gul from w.gul (crate demo). DO NOT EDIT.\n")
	assert.Contains(t, out.Source, "fn main() {\n  println!(\"{}\", 1);\n}\n")
}
