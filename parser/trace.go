package parser

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

type tracer struct {
	c     *Cursor
	entry *logrus.Entry
}

func (c *Cursor) indent() string {
	return strings.Repeat("  ", c.depth)
}

func (c *Cursor) enterf(format string, args ...interface{}) *tracer {
	entry := c.log.WithField("offset", c.Offset())
	if len(c.rules) > 0 {
		entry = entry.WithField("rule", c.rules[len(c.rules)-1])
	}
	entry.Tracef("%s--> %s", c.indent(), fmt.Sprintf(format, args...))
	c.depth++
	return &tracer{c: c, entry: entry}
}

// replayed marks the traced apply as answered from the memo table. t may be
// nil when tracing is off.
func (t *tracer) replayed() {
	if t != nil {
		t.entry = t.entry.WithField("memo", "hit")
	}
}

func (t *tracer) exitf(out **Match) {
	t.c.depth--
	switch {
	case t.c.aborted:
		t.entry.Tracef("%s<-- abort @%d", t.c.indent(), t.c.Offset())
	case *out == nil:
		t.entry.Tracef("%s<-- fail @%d", t.c.indent(), t.c.Offset())
	default:
		t.entry.Tracef("%s<-- %q @%d", t.c.indent(), (*out).Text(), t.c.Offset())
	}
}
