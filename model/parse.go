package model

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/juju/errors"
)

// lineReader walks a whitespace-separated instance file line by line,
// skipping blank lines and '#' comments.
type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func newLineReader(r io.Reader) *lineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	return &lineReader{sc: sc}
}

// next returns the fields of the next non-empty line; io.EOF when exhausted.
func (lr *lineReader) next() ([]string, error) {
	for lr.sc.Scan() {
		lr.line++
		text := lr.sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		if fields := strings.Fields(text); len(fields) > 0 {
			return fields, nil
		}
	}
	if err := lr.sc.Err(); err != nil {
		return nil, errors.Trace(err)
	}

	return nil, io.EOF
}

// ints reads the next line and parses exactly want integers (any count when want < 0).
func (lr *lineReader) ints(what string, want int) ([]int, error) {
	fields, err := lr.next()
	if err == io.EOF {
		return nil, errors.NotValidf("%s: unexpected end of input after line %d", what, lr.line)
	}
	if err != nil {
		return nil, err
	}
	if want >= 0 && len(fields) != want {
		return nil, errors.NotValidf("%s on line %d: %d fields, expected %d", what, lr.line, len(fields), want)
	}
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.NotValidf("%s on line %d: %q is not an integer", what, lr.line, f)
		}
		out[i] = v
	}

	return out, nil
}

// floats reads the next line and parses exactly want numbers.
func (lr *lineReader) floats(what string, want int) ([]float64, error) {
	fields, err := lr.next()
	if err == io.EOF {
		return nil, errors.NotValidf("%s: unexpected end of input after line %d", what, lr.line)
	}
	if err != nil {
		return nil, err
	}
	if len(fields) != want {
		return nil, errors.NotValidf("%s on line %d: %d fields, expected %d", what, lr.line, len(fields), want)
	}
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, errors.NotValidf("%s on line %d: %q is not a number", what, lr.line, f)
		}
		out[i] = v
	}

	return out, nil
}

// done fails when non-empty lines remain.
func (lr *lineReader) done() error {
	_, err := lr.next()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return err
	}

	return errors.NotValidf("trailing data on line %d", lr.line)
}
