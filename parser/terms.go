// Package parser is a packrat parsing engine. A grammar is a graph of Terms
// built with S, Seq, Oneof, Quant (and the Opt, Some and Any shorthands), And,
// Not and Grammar.Ref. Run matches a Term against an input, memoizing every
// (term, offset) pair so that each term is evaluated at most once per offset.
package parser

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	seqTag   = "_"
	oneofTag = "|"
	quantTag = "?"
	andTag   = "&"
	notTag   = "!"
)

// Term is a node of a grammar graph. Terms are immutable once built and may
// be shared by any number of cursors. Every Term is a pointer, and a cursor
// memoizes results by that pointer's identity.
type Term interface {
	fmt.Stringer

	// match runs the term's own matching step at c's current offset. It
	// returns nil when the term does not match.
	match(c *Cursor) *Match
}

//-----------------------------------------------------------------------------

// Literal matches its exact text.
type Literal struct {
	Text string
}

// S returns a term that matches text verbatim.
func S(text string) *Literal {
	return &Literal{Text: text}
}

func (t *Literal) String() string {
	return strconv.Quote(t.Text)
}

func (t *Literal) match(c *Cursor) *Match {
	var eaten Scanner
	if !c.input.EatString(t.Text, &eaten) {
		return nil
	}
	return &Match{Term: t, Scanner: eaten, leaf: true}
}

//-----------------------------------------------------------------------------

// Sequence matches each of its terms in turn.
type Sequence struct {
	Terms []Term
}

func Seq(terms ...Term) *Sequence {
	return &Sequence{Terms: terms}
}

func (t *Sequence) String() string {
	return joinTerms(t.Terms, " ", func(term Term) bool {
		_, isChoice := term.(*Choice)
		return isChoice
	})
}

// match does not rewind on failure. Whichever ancestor retries from the
// sequence's start is responsible for that.
func (t *Sequence) match(c *Cursor) *Match {
	start := c.Offset()
	children := make([]*Match, 0, len(t.Terms))
	for _, term := range t.Terms {
		m := c.Apply(term)
		if m == nil {
			return nil
		}
		children = append(children, m)
	}
	return c.node(t, start, children)
}

//-----------------------------------------------------------------------------

// Choice is an ordered choice: the first alternative that matches wins.
type Choice struct {
	Terms []Term
}

func Oneof(terms ...Term) *Choice {
	return &Choice{Terms: terms}
}

func (t *Choice) String() string {
	return joinTerms(t.Terms, " / ", func(Term) bool { return false })
}

// match passes the winning alternative's result through, relabelled with the
// choice as its producing term and Alt as the alternative's index.
func (t *Choice) match(c *Cursor) *Match {
	for i, term := range t.Terms {
		start := c.Offset()
		if m := c.Apply(term); m != nil {
			out := *m
			out.Term = t
			out.Alt = i
			return &out
		}
		c.Seek(start)
	}
	return nil
}

//-----------------------------------------------------------------------------

// Repetition greedily matches Term between Min and Max times. Max == 0 means
// there is no upper bound.
type Repetition struct {
	Term Term
	Min  int
	Max  int
}

func Quant(term Term, min, max int) *Repetition {
	if min < 0 || max < 0 || (max > 0 && max < min) {
		panic(fmt.Errorf("invalid repetition bounds {%d,%d}", min, max))
	}
	return &Repetition{Term: term, Min: min, Max: max}
}

// Opt matches term zero or one time.
func Opt(term Term) *Repetition {
	return Quant(term, 0, 1)
}

// Some matches term one or more times.
func Some(term Term) *Repetition {
	return Quant(term, 1, 0)
}

// Any matches term zero or more times.
func Any(term Term) *Repetition {
	return Quant(term, 0, 0)
}

func (t *Repetition) String() string {
	inner := wrapTerm(t.Term)
	switch {
	case t.Min == 0 && t.Max == 1:
		return inner + "?"
	case t.Min == 0 && t.Max == 0:
		return inner + "*"
	case t.Min == 1 && t.Max == 0:
		return inner + "+"
	case t.Max == 0:
		return fmt.Sprintf("%s{%d,}", inner, t.Min)
	}
	return fmt.Sprintf("%s{%d,%d}", inner, t.Min, t.Max)
}

// match consumes as many repetitions as are available. Finding more than Max
// fails the whole repetition instead of stopping at Max. An iteration that
// matches without consuming input is kept and ends the loop.
func (t *Repetition) match(c *Cursor) *Match {
	start := c.Offset()
	var children []*Match
	for {
		before := c.Offset()
		m := c.Apply(t.Term)
		if m == nil {
			c.Seek(before)
			break
		}
		children = append(children, m)
		if t.Max > 0 && len(children) > t.Max {
			return nil
		}
		if c.Offset() == before {
			break
		}
	}
	if len(children) < t.Min {
		return nil
	}
	return c.node(t, start, children)
}

//-----------------------------------------------------------------------------

// Lookahead succeeds without consuming input if Term matches.
type Lookahead struct {
	Term Term
}

func And(term Term) *Lookahead {
	return &Lookahead{Term: term}
}

func (t *Lookahead) String() string {
	return andTag + wrapTerm(t.Term)
}

func (t *Lookahead) match(c *Cursor) *Match {
	start := c.Offset()
	m := c.Apply(t.Term)
	c.Seek(start)
	if m == nil {
		return nil
	}
	return c.node(t, start, nil)
}

// NegLookahead succeeds without consuming input if Term does not match.
type NegLookahead struct {
	Term Term
}

func Not(term Term) *NegLookahead {
	return &NegLookahead{Term: term}
}

func (t *NegLookahead) String() string {
	return notTag + wrapTerm(t.Term)
}

func (t *NegLookahead) match(c *Cursor) *Match {
	start := c.Offset()
	m := c.Apply(t.Term)
	c.Seek(start)
	if m != nil {
		return nil
	}
	return c.node(t, start, nil)
}

//-----------------------------------------------------------------------------

// Ref is a reference to a named rule in a Grammar. The name is resolved each
// time the reference is matched, so rules may refer to rules defined later,
// including themselves.
type Ref struct {
	g    *Grammar
	Name Rule
}

func (t *Ref) String() string {
	return string(t.Name)
}

func (t *Ref) match(c *Cursor) *Match {
	term, has := t.g.Find(t.Name)
	if !has {
		c.fail(c.undefined(t.Name))
	}
	c.rules = append(c.rules, t.Name)
	m := c.Apply(term)
	c.rules = c.rules[:len(c.rules)-1]
	if m == nil {
		return nil
	}
	out := *m
	out.Rule = t.Name
	return &out
}

//-----------------------------------------------------------------------------

func wrapTerm(term Term) string {
	switch term.(type) {
	case *Sequence, *Choice:
		return "(" + term.String() + ")"
	}
	return term.String()
}

func joinTerms(terms []Term, sep string, wrap func(Term) bool) string {
	parts := make([]string, 0, len(terms))
	for _, term := range terms {
		if wrap(term) {
			parts = append(parts, wrapTerm(term))
		} else {
			parts = append(parts, term.String())
		}
	}
	return strings.Join(parts, sep)
}
