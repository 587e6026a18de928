package ast

import (
	"pyrite/internal/source"
)

// File is one parsed source file: an ordered sequence of top-level items.
type File struct {
	Span  source.Span
	Items []ItemID
}

// Files manages allocation of parsed files.
type Files struct {
	Arena *Arena[File]
}

func NewFiles(capHint uint) *Files {
	if capHint == 0 {
		capHint = 1 << 3
	}
	return &Files{Arena: NewArena[File](capHint)}
}

// New allocates an empty file node.
func (f *Files) New(span source.Span) FileID {
	return FileID(f.Arena.Allocate(File{Span: span}))
}

// Get returns the file for id.
func (f *Files) Get(id FileID) *File {
	return f.Arena.Get(uint32(id))
}
