package conn

import (
	"bufio"
	"bytes"
	"io"
)

// LineMode selects how ReadLine recognizes a terminator.
type LineMode int

const (
	// LineCRLF ends a line at the first "\r\n" pair. The default.
	LineCRLF LineMode = iota

	// LineLoose ends a line once two marker bytes ('\r' or '\n', in any
	// combination and not necessarily adjacent) have been seen. A bare
	// marker inside the line body therefore shortens it by one byte;
	// the mode exists for peers that already rely on that behavior.
	LineLoose
)

// scanLine looks for a terminator in buf. end is the byte count up to
// and including the terminator; the line itself is buf[:end-2].
func scanLine(buf []byte, mode LineMode) (end int, ok bool) {
	if mode == LineLoose {
		eol := 0
		for i, c := range buf {
			if c == '\r' || c == '\n' {
				if eol++; eol == 2 {
					return i + 1, true
				}
			}
		}
		return 0, false
	}
	if i := bytes.Index(buf, []byte(LineEnd)); i >= 0 {
		return i + 2, true
	}
	return 0, false
}

// readLine pulls one line out of the reader's window. It re-scans the
// buffered bytes after every fill and blocks for more data until a
// terminator appears or the window is exhausted. On success it consumes
// exactly the line and its terminator, leaving everything after them
// buffered. A stream that ends cleanly before the first byte reports
// io.EOF; one that ends mid-line reports ErrLineNotFound.
func readLine(br *bufio.Reader, mode LineMode) (string, error) {
	for {
		buffered := br.Buffered()
		if buffered > 0 {
			window, _ := br.Peek(buffered)
			if end, ok := scanLine(window, mode); ok {
				line := string(window[:end-2])
				if _, err := br.Discard(end); err != nil {
					return "", err
				}
				return line, nil
			}
			if buffered >= LookaheadWindow {
				return "", ErrLineNotFound
			}
		}
		if _, err := br.Peek(buffered + 1); err != nil {
			if err == io.EOF && buffered > 0 {
				return "", ErrLineNotFound
			}
			if err == bufio.ErrBufferFull {
				return "", ErrLineNotFound
			}
			return "", err
		}
	}
}
