package diagfmt

import (
	"fmt"
	"io"

	"pyrite/internal/diag"
	"pyrite/internal/source"
)

// Short formats diagnostics one per line, grep-friendly:
//
//	<path>:<line>:<col>: ERROR SEM4001: unresolved name 'm'
func Short(w io.Writer, bag *diag.Bag, fs *source.FileSet, pathMode PathMode) {
	for _, d := range bag.Items() {
		loc := ""
		if !spanless(d.Primary) {
			start, _ := fs.Resolve(d.Primary)
			loc = fmt.Sprintf("%s:%d:%d: ", formatPath(fs.Get(d.Primary.File), fs, pathMode), start.Line, start.Col)
		}
		fmt.Fprintf(w, "%s%s %s: %s\n", loc, d.Severity, d.Code.ID(), d.Message)
	}
}
