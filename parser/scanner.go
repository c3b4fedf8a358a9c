package parser

import (
	"fmt"
	"strings"
)

// Scanner is a view onto a window of an input text. Slicing and skipping
// produce new views over the same text, so offsets always refer to the
// original input.
type Scanner struct {
	src         *source // the text the scanner is drawing from
	sliceStart  int     // the start of the visible window, based on the original text
	sliceLength int     // the length of the visible window
}

type source struct {
	origin string // the entire input text
	f      string // the name of the file the text came from (or empty if none)
}

func NewScanner(str string) *Scanner {
	return &Scanner{&source{origin: str}, 0, len(str)}
}

func NewScannerWithFilename(str, filename string) *Scanner {
	return &Scanner{&source{origin: str, f: filename}, 0, len(str)}
}

// The name of the file from which the input is derived (or empty if none).
func (s Scanner) Filename() string {
	if s.src == nil {
		return ""
	}
	return s.src.f
}

func (s Scanner) String() string {
	if s.src == nil {
		return ""
	}
	return s.slice()
}

func (s Scanner) IsNil() bool {
	return s.src == nil
}

func (s Scanner) Format(state fmt.State, c rune) {
	if c == 'q' {
		_, _ = fmt.Fprintf(state, "%q", s.String())
	} else {
		_, _ = state.Write([]byte(s.String()))
	}
}

var (
	NoLimit      = -1
	DefaultLimit = 1
)

// Context renders the visible window highlighted within its surrounding
// lines, limited to limitLines above and below (or NoLimit).
func (s Scanner) Context(limitLines int) string {
	end := s.sliceStart + s.sliceLength
	lineno, colno := s.Position()

	above := s.src.origin[:s.sliceStart]
	below := s.src.origin[end:]
	if limitLines != NoLimit {
		if a := strings.Split(above, "\n"); len(a) > limitLines+1 {
			above = strings.Join(a[len(a)-limitLines-1:], "\n")
		}
		if b := strings.Split(below, "\n"); len(b) > limitLines {
			below = strings.Join(b[:limitLines], "\n")
		}
	}

	return fmt.Sprintf("\n\033[1;37m%s:%d:%d:\033[0m\n%s\033[1;31m%s\033[0m%s",
		s.Filename(),
		lineno,
		colno,
		above,
		s.slice(),
		below,
	)
}

// The position of the start of the scanner within the original input.
func (s Scanner) Offset() int {
	return s.sliceStart
}

// The 1-indexed line and column number of the start of the scanner within the original input.
func (s Scanner) Position() (int, int) {
	return lineColumn(s.src.origin, s.sliceStart)
}

// Len is the number of bytes visible to the scanner.
func (s Scanner) Len() int {
	return s.sliceLength
}

func (s Scanner) slice() string {
	return s.src.origin[s.sliceStart : s.sliceStart+s.sliceLength]
}

// Slice returns the view [a, b) relative to the start of s.
func (s Scanner) Slice(a, b int) *Scanner {
	return &Scanner{s.src, s.sliceStart + a, b - a}
}

func (s Scanner) Skip(i int) *Scanner {
	return &Scanner{s.src, s.sliceStart + i, s.sliceLength - i}
}

// Seek returns a view from the absolute offset to the end of the input.
func (s Scanner) Seek(offset int) *Scanner {
	n := len(s.src.origin)
	if offset < 0 || offset > n {
		panic(fmt.Errorf("seek offset %d outside input of length %d", offset, n))
	}
	return &Scanner{s.src, offset, n - offset}
}

// Eat returns a scanner containing the next i bytes and advances s past them.
func (s *Scanner) Eat(i int, eaten *Scanner) *Scanner {
	eaten.src = s.src
	eaten.sliceStart = s.sliceStart
	eaten.sliceLength = i
	*s = *s.Skip(i)
	return s
}

// EatString eats str if the visible window starts with it.
func (s *Scanner) EatString(str string, eaten *Scanner) bool {
	if strings.HasPrefix(s.slice(), str) {
		s.Eat(len(str), eaten)
		return true
	}
	return false
}

// The 1-indexed line and column number of the given position within the given string.
func lineColumn(str string, pos int) (line, col int) {
	prefix := str[:pos]
	line = strings.Count(prefix, "\n") + 1
	col = pos - strings.LastIndex(prefix, "\n")
	return
}
