package parser

import (
	"fmt"

	"github.com/arr-ai/packrat/gotree"
)

// Match is the result of a successful match. A leaf match (from a Literal)
// carries the text it consumed. Any other match carries its child results in
// input order; lookaheads have no children and consume nothing.
//
// Matches may be shared through the memo table and must not be modified.
type Match struct {
	Term     Term     // the term that produced this match
	Rule     Rule     // set when reached through a Ref, to the referenced name
	Alt      int      // for a Choice, the index of the winning alternative
	Children []*Match // composite matches only
	Scanner  Scanner  // the span of input covered by the match

	leaf bool
}

func (m *Match) IsLeaf() bool {
	return m.leaf
}

// Text is the input covered by the match.
func (m *Match) Text() string {
	return m.Scanner.String()
}

func (m *Match) Start() int {
	return m.Scanner.Offset()
}

func (m *Match) End() int {
	return m.Scanner.Offset() + m.Scanner.Len()
}

func (m *Match) Count() int {
	return len(m.Children)
}

// Get follows a path of child indexes.
func (m *Match) Get(path ...int) *Match {
	for _, i := range path {
		m = m.Children[i]
	}
	return m
}

// Walk visits m and its descendants depth first. Returning false from visit
// skips the children of the visited match.
func Walk(m *Match, visit func(m *Match) bool) {
	if m == nil || !visit(m) {
		return
	}
	for _, child := range m.Children {
		Walk(child, visit)
	}
}

// Equal reports whether two match trees were produced by the same terms over
// the same spans of input.
func (m *Match) Equal(n *Match) bool {
	if m == nil || n == nil {
		return m == n
	}
	if m.Term != n.Term || m.Rule != n.Rule || m.Alt != n.Alt || m.leaf != n.leaf ||
		m.Start() != n.Start() || m.End() != n.End() || m.Text() != n.Text() ||
		len(m.Children) != len(n.Children) {
		return false
	}
	for i, child := range m.Children {
		if !child.Equal(n.Children[i]) {
			return false
		}
	}
	return true
}

// Tag is the label used when printing the match: the rule name if the match
// came through a reference, otherwise a symbol for the kind of term.
func (m *Match) Tag() string {
	if m.Rule != "" {
		return string(m.Rule)
	}
	switch m.Term.(type) {
	case *Sequence:
		return seqTag
	case *Choice:
		return oneofTag
	case *Repetition:
		return quantTag
	case *Lookahead:
		return andTag
	case *NegLookahead:
		return notTag
	}
	return ""
}

func (m *Match) String() string {
	return fmt.Sprintf("%s", m) //nolint:gosimple
}

func (m *Match) Format(state fmt.State, c rune) {
	if m.leaf {
		if m.Rule != "" {
			fmt.Fprintf(state, "%s=", m.Rule)
		}
		fmt.Fprintf(state, "%q", m.Text())
		return
	}
	fmt.Fprintf(state, "%s", m.Tag())
	if _, ok := m.Term.(*Choice); ok {
		fmt.Fprintf(state, "║%d", m.Alt)
	}
	format := "%" + string(c)
	fmt.Fprint(state, "[")
	for i, child := range m.Children {
		if i > 0 {
			fmt.Fprint(state, ", ")
		}
		fmt.Fprintf(state, format, child)
	}
	fmt.Fprint(state, "]")
}

// Tree renders the match as an indented tree, one match per line.
func (m *Match) Tree() string {
	tree := gotree.New(m.label())
	m.addChildren(tree)
	return tree.Print()
}

func (m *Match) label() string {
	if m.leaf {
		if m.Rule != "" {
			return fmt.Sprintf("%s %q @%d", m.Rule, m.Text(), m.Start())
		}
		return fmt.Sprintf("%q @%d", m.Text(), m.Start())
	}
	return fmt.Sprintf("%s @%d..%d", m.Tag(), m.Start(), m.End())
}

func (m *Match) addChildren(parent gotree.Tree) {
	for _, child := range m.Children {
		child.addChildren(parent.Add(child.label()))
	}
}
