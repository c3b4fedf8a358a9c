package parser

import (
	"fmt"
	"strings"

	"github.com/arr-ai/packrat/gotree"
)

// fault is a grammar-authoring error. It aborts a match attempt outright and
// is never mistaken for an ordinary failure to match.
type fault interface {
	error
	isFault()
}

// DuplicateRuleError is returned when a rule name is defined twice.
type DuplicateRuleError struct {
	Rule Rule
}

func (e *DuplicateRuleError) Error() string {
	return fmt.Sprintf("rule(%s) - already defined", e.Rule)
}

func (*DuplicateRuleError) isFault() {}

// UndefinedRuleError is raised when matching reaches a reference to a rule
// that was never defined.
type UndefinedRuleError struct {
	Rule  Rule
	At    Scanner // the input from the offset of the reference
	Stack []Rule  // the rules being matched, outermost first
}

func (e *UndefinedRuleError) Error() string {
	tree := gotree.New("undefined rule")
	parent := tree
	for _, rule := range e.Stack {
		child := gotree.New(fmt.Sprintf("rule(%s)", rule))
		parent.AddTree(child)
		parent = child
	}
	msg := fmt.Sprintf("rule(%s) - not defined", e.Rule)
	if e.At.IsNil() {
		parent.Add(msg)
		return "\n" + tree.Print()
	}
	line, col := e.At.Position()
	parent.Add(fmt.Sprintf("%s @ %s:%d:%d", msg, e.At.Filename(), line, col))
	return "\n" + tree.Print() + e.context()
}

// context highlights the rest of the line at which the reference was reached.
func (e *UndefinedRuleError) context() string {
	rest := e.At.String()
	if i := strings.IndexByte(rest, '\n'); i >= 0 {
		rest = rest[:i]
	}
	return e.At.Slice(0, len(rest)).Context(DefaultLimit)
}

func (*UndefinedRuleError) isFault() {}
