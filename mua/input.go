package mua

import (
	"bufio"
	"io"
	"strings"
)

// LineSource is the sequential text input shared by the statement driver
// and the read/readlist builtins. ReadLine returns one line without its
// terminator, or io.EOF once the input is exhausted.
type LineSource interface {
	ReadLine() (string, error)
}

// LineReader adapts an io.Reader into a LineSource.
type LineReader struct {
	sc *bufio.Scanner
}

// NewLineReader wraps r. Lines may be up to 1 MiB long.
func NewLineReader(r io.Reader) *LineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	return &LineReader{sc: sc}
}

func (lr *LineReader) ReadLine() (string, error) {
	if !lr.sc.Scan() {
		if err := lr.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSuffix(lr.sc.Text(), "\r"), nil
}

// noInput is the source used when an interpreter has none configured.
type noInput struct{}

func (noInput) ReadLine() (string, error) { return "", io.EOF }
