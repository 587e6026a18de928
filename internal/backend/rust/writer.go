package rust

// writer accumulates generated Rust text with indentation-aware line
// starts. Output is deterministic: identical write sequences produce
// byte-identical buffers.
type writer struct {
	buf         []byte
	indentLevel int
	atLineStart bool
}

func newWriter() *writer {
	return &writer{buf: make([]byte, 0, 1<<10), atLineStart: true}
}

func (w *writer) Bytes() []byte {
	return w.buf
}

func (w *writer) String() string {
	return string(w.buf)
}

func (w *writer) writeIndent() {
	if !w.atLineStart {
		return
	}
	for range w.indentLevel * 4 {
		w.buf = append(w.buf, ' ')
	}
	w.atLineStart = false
}

// WriteString writes a string, applying pending indentation first.
func (w *writer) WriteString(s string) {
	if s == "" {
		return
	}
	w.writeIndent()
	w.buf = append(w.buf, s...)
	w.atLineStart = s[len(s)-1] == '\n'
}

// Line writes a full line followed by a newline.
func (w *writer) Line(s string) {
	w.WriteString(s)
	w.Newline()
}

// Newline terminates the current line.
func (w *writer) Newline() {
	w.buf = append(w.buf, '\n')
	w.atLineStart = true
}

// BlankLine emits an empty separator line.
func (w *writer) BlankLine() {
	if !w.atLineStart {
		w.Newline()
	}
	w.buf = append(w.buf, '\n')
	w.atLineStart = true
}

func (w *writer) Indent() {
	w.indentLevel++
}

func (w *writer) Dedent() {
	if w.indentLevel == 0 {
		panic("rust: negative indent")
	}
	w.indentLevel--
}
