package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTermMatching(t *testing.T) {
	t.Parallel()

	for _, test := range []struct {
		name  string
		term  Term
		input string
		text  string // expected match text; empty with ok=false means no match
		ok    bool
	}{
		{name: "literal", term: S("ab"), input: "abc", text: "ab", ok: true},
		{name: "literal miss", term: S("ab"), input: "ac"},
		{name: "literal metachars", term: S(".*"), input: ".*x", text: ".*", ok: true},
		{name: "literal metachars miss", term: S(".*"), input: "xx"},
		{name: "empty literal", term: S(""), input: "x", text: "", ok: true},

		{name: "seq", term: Seq(S("a"), S("b")), input: "abc", text: "ab", ok: true},
		{name: "seq partial", term: Seq(S("a"), S("b")), input: "ac"},
		{name: "empty seq", term: Seq(), input: "a", text: "", ok: true},

		{name: "oneof first", term: Oneof(S("a"), S("ab")), input: "ab", text: "a", ok: true},
		{name: "oneof second", term: Oneof(S("x"), S("ab")), input: "ab", text: "ab", ok: true},
		{name: "oneof backtracks", term: Oneof(Seq(S("a"), S("b")), Seq(S("a"), S("c"))), input: "ac", text: "ac", ok: true},
		{name: "oneof none", term: Oneof(S("x"), S("y")), input: "ab"},

		{name: "quant below min", term: Quant(S("a"), 2, 3), input: "a"},
		{name: "quant at min", term: Quant(S("a"), 2, 3), input: "aa", text: "aa", ok: true},
		{name: "quant at max", term: Quant(S("a"), 2, 3), input: "aaab", text: "aaa", ok: true},
		{name: "quant over max", term: Quant(S("a"), 2, 3), input: "aaaa"},
		{name: "opt none", term: Opt(S("a")), input: "b", text: "", ok: true},
		{name: "opt one", term: Opt(S("a")), input: "ab", text: "a", ok: true},
		{name: "opt two", term: Opt(S("a")), input: "aa"},
		{name: "some none", term: Some(S("a")), input: "b"},
		{name: "some many", term: Some(S("a")), input: "aaab", text: "aaa", ok: true},
		{name: "any none", term: Any(S("a")), input: "", text: "", ok: true},
		{name: "any seq rewinds", term: Any(Seq(S("a"), S("b"))), input: "ababa", text: "abab", ok: true},
		{name: "any zero width", term: Any(Opt(S("a"))), input: "b", text: "", ok: true},

		{name: "and ok", term: Seq(And(S("a")), S("ab")), input: "ab", text: "ab", ok: true},
		{name: "and fail", term: And(S("b")), input: "ab"},
		{name: "not ok", term: Seq(Not(S("b")), S("a")), input: "ab", text: "a", ok: true},
		{name: "not fail", term: Not(S("a")), input: "ab"},
	} {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			m, err := Run(test.input, test.term)
			require.NoError(t, err)
			if !test.ok {
				assert.Nil(t, m)
				return
			}
			require.NotNil(t, m)
			assert.Equal(t, test.text, m.Text())
			assert.Equal(t, 0, m.Start())
			assert.Equal(t, len(test.text), m.End())
		})
	}
}

func TestOrderedChoiceCommits(t *testing.T) {
	t.Parallel()

	choice := Oneof(S("a"), S("ab"))
	c := NewCursor("ab")
	m, err := c.Match(choice)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "a", m.Text())
	assert.Equal(t, 0, m.Alt)
	assert.Equal(t, Term(choice), m.Term)
	assert.True(t, m.IsLeaf())
	assert.Equal(t, 1, c.Offset())
}

func TestChoiceFailureRestoresOffset(t *testing.T) {
	t.Parallel()

	c := NewCursor("ac")
	m, err := c.Match(Oneof(Seq(S("a"), S("b")), S("x")))
	require.NoError(t, err)
	assert.Nil(t, m)
	assert.Equal(t, 0, c.Offset())
}

func TestSequenceDoesNotRewind(t *testing.T) {
	t.Parallel()

	c := NewCursor("ac")
	m, err := c.Match(Seq(S("a"), S("b")))
	require.NoError(t, err)
	assert.Nil(t, m)
	assert.Equal(t, 1, c.Offset())
}

func TestRepetitionChildren(t *testing.T) {
	t.Parallel()

	rep := Quant(S("a"), 2, 3)
	m, err := Run("aa", rep)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.False(t, m.IsLeaf())
	assert.Equal(t, Term(rep), m.Term)
	require.Equal(t, 2, m.Count())
	for i, child := range m.Children {
		assert.True(t, child.IsLeaf())
		assert.Equal(t, "a", child.Text())
		assert.Equal(t, i, child.Start())
	}
	assert.Equal(t, `?["a", "a"]`, m.String())
}

func TestLookaheadDoesNotConsume(t *testing.T) {
	t.Parallel()

	for _, term := range []Term{
		And(S("b")),
		And(S("x")),
		And(Seq(S("b"), S("x"))),
		Not(S("b")),
		Not(S("x")),
		Not(Seq(S("b"), S("x"))),
	} {
		c := NewCursor("abc")
		c.Seek(1)
		m, err := c.Match(term)
		require.NoError(t, err)
		assert.Equal(t, 1, c.Offset(), "%v", term)
		if m != nil {
			assert.Equal(t, 0, m.Count(), "%v", term)
			assert.Equal(t, "", m.Text(), "%v", term)
			assert.Equal(t, 1, m.Start(), "%v", term)
		}
	}
}

func TestLookaheadOutcomes(t *testing.T) {
	t.Parallel()

	m, err := Run("ab", And(S("a")))
	require.NoError(t, err)
	assert.NotNil(t, m)

	m, err = Run("ab", Not(S("a")))
	require.NoError(t, err)
	assert.Nil(t, m)

	m, err = Run("ab", Not(S("b")))
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "![]", m.String())
}

func TestChoiceFormat(t *testing.T) {
	t.Parallel()

	m, err := Run("ac", Oneof(Seq(S("a"), S("b")), Seq(S("a"), S("c"))))
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, 1, m.Alt)
	assert.Equal(t, `|║1["a", "c"]`, m.String())
}

func TestQuantBoundsPanic(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { Quant(S("a"), 3, 2) })
	assert.Panics(t, func() { Quant(S("a"), -1, 0) })
	assert.NotPanics(t, func() { Quant(S("a"), 2, 2) })
}

func TestTermString(t *testing.T) {
	t.Parallel()

	g := NewGrammar()
	for expected, term := range map[string]Term{
		`"a"`:                       S("a"),
		`"a\n"`:                     S("a\n"),
		`"a" ("b" / "c") "d"* !"e"`: Seq(S("a"), Oneof(S("b"), S("c")), Any(S("d")), Not(S("e"))),
		`"a" "b" / "c"`:             Oneof(Seq(S("a"), S("b")), S("c")),
		`"a"?`:                      Opt(S("a")),
		`("a" "b")+`:                Some(Seq(S("a"), S("b"))),
		`"a"{2,3}`:                  Quant(S("a"), 2, 3),
		`"a"{2,}`:                   Quant(S("a"), 2, 0),
		`&x`:                        And(g.Ref("x")),
		`x y*`:                      Seq(g.Ref("x"), Any(g.Ref("y"))),
		`!("a" / "b")`:              Not(Oneof(S("a"), S("b"))),
	} {
		assert.Equal(t, expected, term.String())
	}
}
