package parser

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// memoEntry is the cached outcome of matching a term at an offset. A nil
// match records a failure.
type memoEntry struct {
	match *Match
	end   int
	hits  int
}

// Stats reports memo table activity. It is diagnostic only.
type Stats struct {
	Entries     int // memo entries stored
	Hits        int // lookups answered from the memo table
	Invocations int // times a term's own matching step ran
}

// Cursor holds all mutable state of a single match attempt: the current
// offset into the input and the memo table. A cursor must not be shared
// between goroutines or reused for another attempt.
type Cursor struct {
	input    Scanner
	memo     map[Term]map[int]*memoEntry
	memoize  bool
	filename string
	log      *logrus.Logger
	tracing  bool
	aborted  bool
	depth    int
	rules    []Rule
	stats    Stats
}

// Option configures a Cursor.
type Option func(c *Cursor)

// Memoize turns the memo table on or off. It is on by default. Turning it off
// never changes a result, only how much work is done to find it.
func Memoize(b bool) Option {
	return func(c *Cursor) {
		c.memoize = b
	}
}

// Logger sets the logger that receives trace output. Tracing happens only when
// the logger's level is logrus.TraceLevel.
func Logger(log *logrus.Logger) Option {
	return func(c *Cursor) {
		c.log = log
	}
}

// Filename names the input in error messages.
func Filename(name string) Option {
	return func(c *Cursor) {
		c.filename = name
	}
}

func NewCursor(input string, opts ...Option) *Cursor {
	c := &Cursor{
		memo:    map[Term]map[int]*memoEntry{},
		memoize: true,
		log:     logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.input = *NewScannerWithFilename(input, c.filename)
	c.tracing = c.log.IsLevelEnabled(logrus.TraceLevel)
	return c
}

// Offset is the cursor's current position in the input.
func (c *Cursor) Offset() int {
	return c.input.Offset()
}

// Seek moves the cursor to an absolute offset.
func (c *Cursor) Seek(offset int) {
	c.input = *c.input.Seek(offset)
}

// Rest is the input from the current offset to the end.
func (c *Cursor) Rest() Scanner {
	return c.input
}

func (c *Cursor) Stats() Stats {
	return c.stats
}

// Hits reports how many times the memo entry for term at offset was reused.
func (c *Cursor) Hits(term Term, offset int) (int, bool) {
	if e, has := c.memo[term][offset]; has {
		return e.hits, true
	}
	return 0, false
}

// Apply matches term at the current offset. On success the cursor is left
// after the match. On failure it returns nil and the cursor is left wherever
// the failed attempt stopped; callers that retry must Seek back themselves.
//
// Each (term, offset) pair is matched at most once; later visits replay the
// recorded result and end offset.
//
// A grammar fault, such as a reference to an undefined rule, panics out of
// Apply. Use Match to receive it as an error instead.
func (c *Cursor) Apply(term Term) (out *Match) {
	start := c.Offset()
	var tr *tracer
	if c.tracing {
		tr = c.enterf("%v @%d", term, start)
		defer tr.exitf(&out)
	}

	if c.memoize {
		if e, has := c.memo[term][start]; has {
			tr.replayed()
			e.hits++
			c.stats.Hits++
			c.Seek(e.end)
			return e.match
		}
	}

	c.stats.Invocations++
	out = term.match(c)

	if c.memoize {
		byOffset := c.memo[term]
		if byOffset == nil {
			byOffset = map[int]*memoEntry{}
			c.memo[term] = byOffset
		}
		byOffset[start] = &memoEntry{match: out, end: c.Offset()}
		c.stats.Entries++
	}
	return out
}

// Match applies term at the current offset, converting a fatal fault raised
// during matching into an error. A nil match with a nil error means term did
// not match.
func (c *Cursor) Match(term Term) (m *Match, err error) {
	defer func() {
		if r := recover(); r != nil {
			f, ok := r.(fault)
			if !ok {
				panic(r)
			}
			c.rules, c.depth, c.aborted = nil, 0, false
			m, err = nil, errors.Wrap(f, "match aborted")
		}
		if c.log.IsLevelEnabled(logrus.DebugLevel) {
			c.log.WithFields(logrus.Fields{
				"start":   term.String(),
				"matched": m != nil,
				"offset":  c.Offset(),
				"entries": c.stats.Entries,
				"hits":    c.stats.Hits,
			}).Debug("match finished")
		}
	}()
	return c.Apply(term), nil
}

// node builds a composite match spanning start to the current offset.
func (c *Cursor) node(term Term, start int, children []*Match) *Match {
	return &Match{
		Term:     term,
		Children: children,
		Scanner:  *c.input.Seek(start).Slice(0, c.Offset()-start),
	}
}

// fail aborts the whole match attempt.
func (c *Cursor) fail(f fault) {
	c.aborted = true
	panic(f)
}

func (c *Cursor) undefined(name Rule) *UndefinedRuleError {
	return &UndefinedRuleError{
		Rule:  name,
		At:    c.input,
		Stack: append([]Rule{}, c.rules...),
	}
}
