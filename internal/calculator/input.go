package calculator

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"unicode"
)

// tokenReader reads whitespace-delimited tokens and whole lines from the
// same stream. A token read leaves its trailing delimiter unread, so a
// following DiscardLine consumes the rest of that line.
type tokenReader struct {
	r *bufio.Reader
}

func newTokenReader(r io.Reader) *tokenReader {
	return &tokenReader{r: bufio.NewReader(r)}
}

// Token skips leading whitespace, including newlines, and returns the next
// token. It returns io.EOF only when no token remains.
func (t *tokenReader) Token() (string, error) {
	var b strings.Builder
	for {
		ch, _, err := t.r.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) && b.Len() > 0 {
				return b.String(), nil
			}
			return "", err
		}
		if unicode.IsSpace(ch) {
			if b.Len() == 0 {
				continue
			}
			if err := t.r.UnreadRune(); err != nil {
				return "", err
			}
			return b.String(), nil
		}
		b.WriteRune(ch)
	}
}

// Line returns the rest of the current line without its line terminator.
func (t *tokenReader) Line() (string, error) {
	line, err := t.r.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) || line == "" {
			return "", err
		}
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// DiscardLine drops everything up to and including the next newline.
func (t *tokenReader) DiscardLine() error {
	_, err := t.Line()
	return err
}
