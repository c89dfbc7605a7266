// Package scanner holds bufio.Scanner helpers used to split message bodies.
package scanner

import (
	"bufio"
	"errors"
)

var (
	// ErrContinue is a special SplitFunc signal that says to avoid returning
	// when the modified scanner loop might otherwise do so. It lets a split
	// func consume input, such as a preamble, without producing a token.
	ErrContinue = errors.New("split func continue")
)

// MakeSplitFuncExitByAdvance wraps a bufio.SplitFunc so the scanner only
// stops when the split func returns an error or has consumed all of the data.
//
// A plain SplitFunc ends the scan when it returns a nil token at EOF, even if
// it advanced past data it simply did not want to return. That forces every
// split func to carry its own inner loop to find the next valuable token. This
// wrapper provides that loop: the split func may advance without a token (or
// return ErrContinue) and will be called again on the remaining data.
func MakeSplitFuncExitByAdvance(split bufio.SplitFunc) bufio.SplitFunc {
	return func(data []byte, atEOF bool) (int, []byte, error) {
		totalAdvance := 0
		for {
			advance, token, err := split(data, atEOF)

			// Return on a token, on a request for more data (advance == 0),
			// once the data is used up, or on a real error. Advances made on
			// earlier passes through the loop are added in so the scanner
			// moves by the right amount.
			if !errors.Is(err, ErrContinue) && (token != nil || advance == 0 || len(data)-advance <= 0 || err != nil) {
				return totalAdvance + advance, token, err
			}

			data = data[advance:]
			totalAdvance += advance
		}
	}
}
