package parser

import (
	"github.com/arr-ai/frozen"
)

// Rule is the name of a grammar rule.
type Rule string

// Grammar is a registry of named rules. Populate it with Define before
// matching starts; after that it is read-only and safe to share between
// concurrent cursors.
type Grammar struct {
	rules frozen.Map[Rule, Term]
}

func NewGrammar() *Grammar {
	return &Grammar{}
}

// Define binds name to term. Names can be bound only once.
func (g *Grammar) Define(name Rule, term Term) error {
	if g.rules.Has(name) {
		return &DuplicateRuleError{Rule: name}
	}
	g.rules = g.rules.With(name, term)
	return nil
}

// MustDefine is like Define but panics if name is already bound.
func (g *Grammar) MustDefine(name Rule, term Term) *Grammar {
	if err := g.Define(name, term); err != nil {
		panic(err)
	}
	return g
}

// Find returns the term bound to name.
func (g *Grammar) Find(name Rule) (Term, bool) {
	return g.rules.Get(name)
}

// Rules lists the defined rule names in sorted order.
func (g *Grammar) Rules() []Rule {
	return g.rules.Keys().OrderedElements(func(a, b Rule) bool { return a < b })
}

// Ref returns a reference to the rule name. The name need not be defined yet.
func (g *Grammar) Ref(name Rule) *Ref {
	return &Ref{g: g, Name: name}
}

// Run matches input starting at the rule name.
func (g *Grammar) Run(name Rule, input string, opts ...Option) (*Match, error) {
	return Run(input, g.Ref(name), opts...)
}

// Run matches start once against input with a fresh cursor. A nil match with
// a nil error means start did not match. The match need not consume all of
// input; compare its End with len(input) to check.
func Run(input string, start Term, opts ...Option) (*Match, error) {
	return NewCursor(input, opts...).Match(start)
}
