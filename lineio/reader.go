// Package lineio reads line-oriented textual inputs such as exclusion lists
// and manifest description files.
package lineio

import (
	"bufio"
	"io"
	"strings"
)

// Option flags controlling how lines are produced.
type Option uint32

const (
	// TrimLeft strips leading whitespace from every line.
	TrimLeft Option = 1 << iota
	// TrimRight strips trailing whitespace from every line.
	TrimRight
	// SkipEmpty silently drops lines that are empty after trimming.
	SkipEmpty

	// Trim combines TrimLeft and TrimRight.
	Trim = TrimLeft | TrimRight
)

// Reader produces one line at a time from a byte stream, tracking line
// numbers for diagnostics. A trailing "\r" (Windows line endings) is always
// removed before trimming.
type Reader struct {
	name    string
	br      *bufio.Reader
	opts    Option
	lineNum int
}

// NewReader wraps r. The name is reported alongside line numbers by callers
// producing diagnostics.
func NewReader(r io.Reader, name string, opts Option) *Reader {
	return &Reader{name: name, br: bufio.NewReader(r), opts: opts}
}

// Name returns the stream name given at construction.
func (r *Reader) Name() string {
	return r.name
}

// LineNum returns the 1-based number of the last line returned by ReadLine.
func (r *Reader) LineNum() int {
	return r.lineNum
}

// ReadLine returns the next line, without its terminator. At the end of the
// stream it returns io.EOF; a final line without a trailing newline is still
// returned first.
func (r *Reader) ReadLine() (string, error) {
	for {
		line, err := r.br.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", err
		}
		atEOF := err == io.EOF
		if atEOF && line == "" {
			return "", io.EOF
		}
		r.lineNum++
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")
		if r.opts&TrimLeft != 0 {
			line = strings.TrimLeft(line, " \t\v\f")
		}
		if r.opts&TrimRight != 0 {
			line = strings.TrimRight(line, " \t\v\f")
		}
		if line == "" && r.opts&SkipEmpty != 0 {
			if atEOF {
				return "", io.EOF
			}
			continue
		}
		return line, nil
	}
}

// ReadAll collects all remaining lines.
func (r *Reader) ReadAll() ([]string, error) {
	var lines []string
	for {
		line, err := r.ReadLine()
		if err == io.EOF {
			return lines, nil
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
}
