package lexer

import (
	"testing"

	"bajzel/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.fuzl", []byte(content))
	return fs.Get(id)
}

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))

	for _, want := range []byte("a\nb") {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Peek(); got != want {
			t.Fatalf("Peek = %q, want %q", got, want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump = %q, want %q", got, want)
		}
	}
	if !cursor.EOF() {
		t.Fatal("expected EOF")
	}
	if cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Error("reads past EOF must return 0")
	}
}

func TestMarkResetSpan(t *testing.T) {
	cursor := NewCursor(createFile("abcdef"))
	cursor.Bump()
	m := cursor.Mark()
	cursor.Advance(3)

	sp := cursor.SpanFrom(m)
	if sp.Start != 1 || sp.End != 4 {
		t.Fatalf("SpanFrom = %v, want 1..4", sp)
	}
	cursor.Reset(m)
	if cursor.Off != 1 {
		t.Fatalf("Reset: Off = %d, want 1", cursor.Off)
	}
	if !cursor.Eat('b') || cursor.Eat('x') {
		t.Error("Eat mismatch")
	}
	if cursor.PeekAt(1) != 'd' || cursor.PeekAt(10) != 0 {
		t.Error("PeekAt mismatch")
	}
	cursor.Advance(100)
	if !cursor.EOF() || len(cursor.Rest()) != 0 {
		t.Error("Advance must clamp to end of input")
	}
}
