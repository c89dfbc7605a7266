package scanner

import (
	"bufio"
	"bytes"
)

type delimState int

const (
	seekDelimiter delimState = iota // before the first delimiter line or right at one
	inSegment                       // inside a segment
	finished                        // past the close delimiter
)

// Delimited splits a multipart body on its delimiter lines. A delimiter line
// starts with the delimiter (e.g. "--boundary") and carries nothing else but
// an optional "--" and whitespace. The preamble before the first delimiter
// line and everything after the close delimiter are skipped. Each token is
// the raw text of one segment, including the line break that precedes the
// next delimiter line.
//
// A body whose last segment is never closed still yields that segment.
type Delimited struct {
	delim []byte
	state delimState

	// Found is set once a delimiter line has been seen.
	Found bool

	// Closed is set once the close delimiter has been seen.
	Closed bool
}

// NewDelimited returns a splitter for the given delimiter.
func NewDelimited(delim string) *Delimited {
	return &Delimited{delim: []byte(delim)}
}

// SplitFunc returns the bufio.SplitFunc to install on a bufio.Scanner.
func (d *Delimited) SplitFunc() bufio.SplitFunc {
	return MakeSplitFuncExitByAdvance(d.split)
}

// lineEnd returns the index just past the line break that ends the line
// containing data[from:], or -1 if the line is not yet complete.
func lineEnd(data []byte, from int, atEOF bool) int {
	i := bytes.IndexAny(data[from:], "\r\n")
	if i < 0 {
		if atEOF {
			return len(data)
		}
		return -1
	}

	i += from
	if data[i] == '\r' {
		if i+1 == len(data) && !atEOF {
			return -1
		}
		if i+1 < len(data) && data[i+1] == '\n' {
			return i + 2
		}
	}
	return i + 1
}

// isDelimiterLine checks that data[at:] starts a delimiter line. The line
// must be complete. It reports whether it is one, whether it closes the body
// and where the line ends. end is -1 when more data is needed to decide.
func (d *Delimited) isDelimiterLine(data []byte, at int, atEOF bool) (ok, closing bool, end int) {
	if !bytes.HasPrefix(data[at:], d.delim) {
		return false, false, 0
	}

	end = lineEnd(data, at, atEOF)
	if end < 0 {
		return false, false, -1
	}

	rest := bytes.TrimRight(data[at+len(d.delim):end], " \t\r\n")
	switch {
	case len(rest) == 0:
		return true, false, end
	case bytes.Equal(rest, []byte("--")):
		return true, true, end
	default:
		return false, false, end
	}
}

// findDelimiterLine returns the start of the first delimiter line in data
// along with the isDelimiterLine results. pos is -1 if there is none and -2
// if more data is needed to decide.
func (d *Delimited) findDelimiterLine(data []byte, atEOF bool) (pos int, closing bool, end int) {
	for at := 0; at < len(data); {
		i := bytes.Index(data[at:], d.delim)
		if i < 0 {
			break
		}
		i += at

		if i == 0 || data[i-1] == '\n' || data[i-1] == '\r' {
			ok, closing, end := d.isDelimiterLine(data, i, atEOF)
			if end < 0 {
				return -2, false, 0
			}
			if ok {
				return i, closing, end
			}
		}

		at = i + 1
	}

	if !atEOF {
		return -2, false, 0
	}
	return -1, false, 0
}

func (d *Delimited) split(data []byte, atEOF bool) (int, []byte, error) {
	if len(data) == 0 {
		return 0, nil, nil
	}

	switch d.state {
	case finished:
		return len(data), nil, nil

	case seekDelimiter:
		pos, closing, end := d.findDelimiterLine(data, atEOF)
		switch pos {
		case -2:
			return 0, nil, nil
		case -1:
			return len(data), nil, nil
		}

		d.Found = true
		if closing {
			d.Closed = true
			d.state = finished
			return len(data), nil, nil
		}

		d.state = inSegment
		return end, nil, ErrContinue

	default: // inSegment
		pos, _, _ := d.findDelimiterLine(data, atEOF)
		switch pos {
		case -2:
			return 0, nil, nil
		case -1:
			d.state = finished
			return len(data), data, nil
		}

		d.state = seekDelimiter
		return pos, data[:pos], nil
	}
}
