package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"bajzel/internal/diag"
	"bajzel/internal/source"
)

type palette struct {
	err, warn, info, code, path, gutter, caret, note *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Bold),
		path:   color.New(color.FgWhite, color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.path, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее).
// Для каждого diag печатает:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	p := newPalette(opts.Color)
	for _, d := range bag.Items() {
		sev := p.severity(d.Severity)
		if located(fs, d.Code, d.Primary) {
			f := fs.Get(d.Primary.File)
			start, _ := fs.Resolve(d.Primary)
			fmt.Fprintf(w, "%s: %s %s: %s\n",
				p.path.Sprintf("%s:%d:%d", formatPath(f, opts.PathMode, opts.BaseDir), start.Line, start.Col),
				sev.Sprint(d.Severity), p.code.Sprint(d.Code.ID()), d.Message)
			writeSnippet(w, p, fs, d.Primary)
		} else {
			fmt.Fprintf(w, "%s %s: %s\n", sev.Sprint(d.Severity), p.code.Sprint(d.Code.ID()), d.Message)
		}
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			if located(fs, d.Code, n.Span) {
				f := fs.Get(n.Span.File)
				start, _ := fs.Resolve(n.Span)
				fmt.Fprintf(w, "  %s %s: %s\n", p.note.Sprint("note:"),
					formatPath(f, opts.PathMode, opts.BaseDir)+fmt.Sprintf(":%d:%d", start.Line, start.Col), n.Msg)
				continue
			}
			fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("note:"), n.Msg)
		}
	}
}

// writeSnippet prints the first line of sp with a caret underline.
// Multi-line spans are underlined up to the end of their first line.
func writeSnippet(w io.Writer, p palette, fs *source.FileSet, sp source.Span) {
	f := fs.Get(sp.File)
	start, end := fs.Resolve(sp)
	line := f.GetLine(start.Line)
	if line == "" && start.Col <= 1 {
		return
	}

	from := min(int(start.Col-1), len(line))
	to := len(line)
	if end.Line == start.Line {
		to = min(int(end.Col-1), len(line))
	}

	gutter := fmt.Sprintf("%4d | ", start.Line)
	blank := strings.Repeat(" ", len(gutter)-2) + "| "
	fmt.Fprintf(w, "%s%s\n", p.gutter.Sprint(gutter), line)

	width := max(runewidth.StringWidth(line[from:to]), 1)
	mark := "^" + strings.Repeat("~", width-1)
	fmt.Fprintf(w, "%s%s%s\n", p.gutter.Sprint(blank), caretIndent(line[:from]), p.caret.Sprint(mark))
}

// caretIndent reproduces the display width of prefix, keeping tabs.
func caretIndent(prefix string) string {
	var sb strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			sb.WriteByte('\t')
			continue
		}
		sb.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return sb.String()
}
