package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"spicy/internal/diag"
	"spicy/internal/source"
)

// Pretty форматирует диагностики в человекочитаемый вид.
// Идёт по bag.Items() (ожидается bag.Sort() заранее). Для каждой:
//
//	<path>:<line>:<col>: <severity>[<CODE>]: <message>
//	    <строка исходника>
//	    ^~~~
//
// затем Notes в том же формате, если ShowNotes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		printDiagnostic(w, d, fs, opts)
	}
}

func printDiagnostic(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	start, _ := fs.Resolve(d.Primary)
	file := fs.Get(d.Primary.File)

	sev := d.Severity.String()
	codePart := fmt.Sprintf("%s[%s]", sev, d.Code.Title())
	if opts.Color {
		codePart = severityColor(d.Severity).Sprintf("%s[%s]", sev, d.Code.Title())
	}

	fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", file.Path, start.Line, start.Col, codePart, d.Message)

	if !opts.NoSnippet {
		printSnippet(w, file, d.Primary, start, opts)
	}

	if opts.ShowNotes {
		for _, note := range d.Notes {
			noteStart, _ := fs.Resolve(note.Span)
			noteFile := fs.Get(note.Span.File)
			label := "note"
			if opts.Color {
				label = color.New(color.FgCyan).Sprint("note")
			}
			fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", noteFile.Path, noteStart.Line, noteStart.Col, label, note.Msg)
			if !opts.NoSnippet {
				printSnippet(w, noteFile, note.Span, noteStart, opts)
			}
		}
	}
}

// printSnippet печатает строку исходника и каретку ^~~~ под спаном.
// Ширина префикса считается через runewidth: табы и широкие руны не
// ломают выравнивание.
func printSnippet(w io.Writer, file *source.File, span source.Span, start source.LineCol, opts PrettyOpts) {
	line := file.GetLine(start.Line)
	if line == "" {
		return
	}
	line = strings.ReplaceAll(line, "\t", "    ")
	fmt.Fprintf(w, "    %s\n", line)

	col := int(start.Col) - 1
	if col > len(line) {
		col = len(line)
	}
	prefix := expandTabs(file.GetLine(start.Line), col)
	pad := runewidth.StringWidth(prefix)

	width := int(span.Len())
	if width < 1 {
		width = 1
	}
	if pad+width > len(line)+1 {
		width = len(line) + 1 - pad
		if width < 1 {
			width = 1
		}
	}

	marker := "^" + strings.Repeat("~", width-1)
	if opts.Color {
		marker = color.New(color.FgGreen, color.Bold).Sprint(marker)
	}
	fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", pad), marker)
}

// expandTabs возвращает префикс строки до байтовой колонки col с табами,
// развёрнутыми так же, как в печати.
func expandTabs(line string, col int) string {
	if col > len(line) {
		col = len(line)
	}
	return strings.ReplaceAll(line[:col], "\t", "    ")
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold)
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}
