package lexer

import (
	"pyrite/internal/diag"
	"pyrite/internal/source"
)

// Options configures a Lexer. Reporter may be nil; scanning continues
// either way, producing Invalid tokens for unscannable input.
type Options struct {
	Reporter diag.Reporter
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil, nil)
	}
}
