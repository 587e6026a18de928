package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"pyrite/internal/diag"
	"pyrite/internal/source"
)

// Pretty formats diagnostics for humans, one block per diagnostic:
//
//	<path>:<line>:<col>: ERROR SEM4001: unresolved name 'm'
//	    3 |     return m + 1
//	      |            ^~~~
//
// It walks bag.Items() in order; call bag.Sort() and bag.Dedup() first.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	p := prettyPrinter{w: w, fs: fs, opts: opts}
	count := 0
	for _, d := range bag.Items() {
		if opts.Max > 0 && count >= opts.Max {
			fmt.Fprintf(w, "... and %d more\n", bag.Len()-count)
			return
		}
		p.print(d)
		count++
	}
}

type prettyPrinter struct {
	w    io.Writer
	fs   *source.FileSet
	opts PrettyOpts
}

func (p *prettyPrinter) print(d diag.Diagnostic) {
	p.printHead(d.Severity, d.Code, d.Message, d.Primary)
	p.printContext(d.Primary)
	if p.opts.ShowNotes {
		for _, note := range d.Notes {
			p.printHead(diag.SevInfo, d.Code, "note: "+note.Msg, note.Span)
			p.printContext(note.Span)
		}
	}
}

func (p *prettyPrinter) printHead(sev diag.Severity, code diag.Code, msg string, span source.Span) {
	loc := p.location(span)
	if loc != "" {
		fmt.Fprintf(p.w, "%s: ", loc)
	}
	fmt.Fprintf(p.w, "%s %s: %s\n", p.severity(sev), code.ID(), msg)
}

// printContext renders the source line with a caret run under the span.
// Widths are measured with runewidth so the caret stays aligned under
// wide runes.
func (p *prettyPrinter) printContext(span source.Span) {
	if spanless(span) {
		return
	}
	file := p.fs.Get(span.File)
	start, end := p.fs.Resolve(span)
	line := file.GetLine(start.Line)
	if line == "" {
		return
	}

	gutter := fmt.Sprintf("%5d", start.Line)
	fmt.Fprintf(p.w, "%s | %s\n", gutter, line)

	startCol := int(start.Col) - 1
	if startCol > len(line) {
		startCol = len(line)
	}
	pad := runewidth.StringWidth(line[:startCol])

	width := 1
	if end.Line == start.Line && end.Col > start.Col {
		endCol := int(end.Col) - 1
		if endCol > len(line) {
			endCol = len(line)
		}
		width = runewidth.StringWidth(line[startCol:endCol])
		if width < 1 {
			width = 1
		}
	}
	caret := "^" + strings.Repeat("~", width-1)
	if p.opts.Color {
		caret = color.New(color.FgRed, color.Bold).Sprint(caret)
	}
	fmt.Fprintf(p.w, "%s | %s%s\n", strings.Repeat(" ", len(gutter)), strings.Repeat(" ", pad), caret)
}

func (p *prettyPrinter) location(span source.Span) string {
	if spanless(span) {
		return ""
	}
	start, _ := p.fs.Resolve(span)
	return fmt.Sprintf("%s:%d:%d", formatPath(p.fs.Get(span.File), p.fs, p.opts.PathMode), start.Line, start.Col)
}

func (p *prettyPrinter) severity(sev diag.Severity) string {
	if !p.opts.Color {
		return sev.String()
	}
	switch sev {
	case diag.SevError:
		return color.New(color.FgRed, color.Bold).Sprint(sev.String())
	case diag.SevWarning:
		return color.New(color.FgYellow, color.Bold).Sprint(sev.String())
	default:
		return color.New(color.FgCyan).Sprint(sev.String())
	}
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return f.FormatPath("absolute", "")
	case PathModeRelative:
		return f.FormatPath("relative", fs.BaseDir())
	case PathModeBasename:
		return f.FormatPath("basename", "")
	default:
		return f.FormatPath("auto", "")
	}
}

// spanless reports a zero-value span, used by diagnostics with no source
// location (I/O failures).
func spanless(span source.Span) bool {
	return span == source.Span{}
}
