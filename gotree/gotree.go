// Package gotree renders labelled trees as indented text.
package gotree

import (
	"strings"
)

const (
	newLine      = "\n"
	emptySpace   = "    "
	middleItem   = "├── "
	continueItem = "│   "
	lastItem     = "└── "
)

// Tree is a labelled node with ordered children.
type Tree interface {
	Add(text string) Tree
	AddTree(tree Tree)
	Items() []Tree
	Text() string
	Print() string
}

type tree struct {
	text  string
	items []Tree
}

// New returns a tree with a single root labelled text.
func New(text string) Tree {
	return &tree{text: text}
}

// Add appends a new child labelled text and returns it.
func (t *tree) Add(text string) Tree {
	n := New(text)
	t.items = append(t.items, n)
	return n
}

func (t *tree) AddTree(tree Tree) {
	t.items = append(t.items, tree)
}

func (t *tree) Text() string {
	return t.text
}

func (t *tree) Items() []Tree {
	return t.items
}

// Print renders the tree, one label per line. Multi-line labels keep their
// continuation lines aligned under the first.
func (t *tree) Print() string {
	var sb strings.Builder
	sb.WriteString(t.text)
	sb.WriteString(newLine)
	printItems(&sb, t.items, nil)
	return sb.String()
}

func printItems(sb *strings.Builder, items []Tree, lasts []bool) {
	for i, item := range items {
		last := i == len(items)-1
		printText(sb, item.Text(), lasts, last)
		if children := item.Items(); len(children) > 0 {
			printItems(sb, children, append(lasts[:len(lasts):len(lasts)], last))
		}
	}
}

func printText(sb *strings.Builder, text string, lasts []bool, last bool) {
	var prefix strings.Builder
	for _, l := range lasts {
		if l {
			prefix.WriteString(emptySpace)
		} else {
			prefix.WriteString(continueItem)
		}
	}

	indicator, continuation := middleItem, continueItem
	if last {
		indicator, continuation = lastItem, emptySpace
	}
	for i, line := range strings.Split(text, newLine) {
		sb.WriteString(prefix.String())
		if i == 0 {
			sb.WriteString(indicator)
		} else {
			sb.WriteString(continuation)
		}
		sb.WriteString(line)
		sb.WriteString(newLine)
	}
}
