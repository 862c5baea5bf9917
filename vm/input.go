package vm

import "bufio"

// tokenReader lazily tokenises an input stream on whitespace, the way
// rdv/rdc/rds expect: each read call consumes exactly one token,
// regardless of how many live on one line.
type tokenReader struct {
	scanner *bufio.Scanner
}

func newTokenReader(r *bufio.Scanner) *tokenReader {
	r.Split(bufio.ScanWords)
	return &tokenReader{scanner: r}
}

// next returns the next whitespace-delimited token, or false if the
// input is exhausted.
func (t *tokenReader) next() (string, bool) {
	if !t.scanner.Scan() {
		return "", false
	}
	return t.scanner.Text(), true
}
