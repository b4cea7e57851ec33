package source_test

import (
	"os"
	"testing"

	"spicy/internal/source"
)

func writeFile(path string, content []byte) error {
	return os.WriteFile(path, content, 0o644)
}

func TestResolveLineCol(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.spc", []byte("abc\ndef\nghi"))

	cases := []struct {
		offset uint32
		line   uint32
		col    uint32
	}{
		{0, 1, 1},
		{2, 1, 3},
		{4, 2, 1},
		{8, 3, 1},
		{10, 3, 3},
	}
	for _, c := range cases {
		start, _ := fs.Resolve(source.Span{File: id, Start: c.offset, End: c.offset})
		if start.Line != c.line || start.Col != c.col {
			t.Errorf("offset %d: got %d:%d, want %d:%d", c.offset, start.Line, start.Col, c.line, c.col)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.spc", []byte("first\nsecond\nthird"))
	file := fs.Get(id)

	if got := file.GetLine(2); got != "second" {
		t.Errorf("line 2: got %q", got)
	}
	if got := file.GetLine(3); got != "third" {
		t.Errorf("line 3: got %q", got)
	}
	if got := file.GetLine(4); got != "" {
		t.Errorf("line 4 must be empty, got %q", got)
	}
}

func TestBOMAndCRLFNormalization(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/bom.spc"
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("x = 1;\r\ny = 2;\r\n")...)
	if err := writeFile(path, content); err != nil {
		t.Fatal(err)
	}

	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	file := fs.Get(id)
	if file.Flags&source.FileHadBOM == 0 {
		t.Errorf("BOM flag not set")
	}
	if file.Flags&source.FileNormalizedCRLF == 0 {
		t.Errorf("CRLF flag not set")
	}
	if string(file.Content) != "x = 1;\ny = 2;\n" {
		t.Errorf("content not normalized: %q", string(file.Content))
	}
}

func TestInterner(t *testing.T) {
	in := source.NewInterner()
	a := in.Intern("hello")
	b := in.Intern("hello")
	c := in.Intern("world")
	if a != b {
		t.Errorf("same string must intern to same ID")
	}
	if a == c {
		t.Errorf("different strings must intern to different IDs")
	}
	if in.MustLookup(a) != "hello" {
		t.Errorf("lookup mismatch")
	}
	if in.Intern("") != source.NoStringID {
		t.Errorf("empty string must map to NoStringID")
	}
}

func TestSpanCover(t *testing.T) {
	a := source.Span{File: 0, Start: 5, End: 10}
	b := source.Span{File: 0, Start: 2, End: 7}
	c := a.Cover(b)
	if c.Start != 2 || c.End != 10 {
		t.Errorf("cover: got %v", c)
	}
}
