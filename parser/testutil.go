package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertEqualMatches checks that two match trees have the same shape, tags
// and text, reporting each difference with the path of child indexes to it.
func AssertEqualMatches(t *testing.T, expected, actual *Match) bool {
	if expected == nil || actual == nil {
		return assert.Equal(t, expected == nil, actual == nil, "expected %v, actual %v", expected, actual)
	}
	if !assertEqualMatches(t, expected, actual, []int{}) {
		t.Logf("\nexpected: %v\nactual:   %v", expected, actual)
		return false
	}
	return true
}

func assertEqualMatches(t *testing.T, v, u *Match, path []int) bool {
	result := true
	ok := func(ok bool) bool {
		result = result && ok
		return ok
	}
	ok(assert.Equal(t, v.Tag(), u.Tag(), "%v", path))
	ok(assert.Equal(t, v.IsLeaf(), u.IsLeaf(), "%v", path))
	ok(assert.Equal(t, v.Text(), u.Text(), "%v", path))
	ok(assert.Equal(t, v.Start(), u.Start(), "%v", path))
	ok(assert.Equal(t, len(v.Children), len(u.Children), "%v", path))
	n := len(v.Children)
	if n > len(u.Children) {
		n = len(u.Children)
	}
	for i := 0; i < n; i++ {
		subpath := append(path[:len(path):len(path)], i)
		ok(assertEqualMatches(t, v.Children[i], u.Children[i], subpath))
	}
	for i, c := range v.Children[n:] {
		t.Errorf("%v expected match not found: %v", append(path, n+i), c)
	}
	for i, c := range u.Children[n:] {
		t.Errorf("%v unexpected match found: %v", append(path, n+i), c)
	}
	return result
}
