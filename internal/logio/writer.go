package logio

import "bytes"

// Writer logs each line written to it through Logf, as in
// `log.SetOutput(&logio.Writer{Logf: t.Logf})`.
// It is not safe for concurrent use.
type Writer struct {
	Logf func(string, ...interface{})

	partial []byte
}

// Write logs every complete line in p, holding any trailing partial line
// until a later Write or Close.
func (lw *Writer) Write(p []byte) (int, error) {
	rest := p
	for {
		line, tail, found := bytes.Cut(rest, []byte{'\n'})
		if !found {
			break
		}
		if len(lw.partial) > 0 {
			line = append(lw.partial, line...)
			lw.partial = lw.partial[:0]
		}
		lw.Logf("%s", line)
		rest = tail
	}
	lw.partial = append(lw.partial, rest...)
	return len(p), nil
}

// Close logs any held partial line.
func (lw *Writer) Close() error {
	if len(lw.partial) > 0 {
		lw.Logf("%s", lw.partial)
		lw.partial = lw.partial[:0]
	}
	return nil
}
