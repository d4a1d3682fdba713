// Package access decides which Telegram users may use the bot.
package access

import (
	"strconv"
	"strings"
)

// Gate is a static allow-list of Telegram user ids. The zero Gate denies everyone.
type Gate struct {
	allowed map[string]struct{}
}

// NewGate builds a Gate from user ids as configured. Entries are trimmed and
// blanks are ignored; ids are compared as decimal strings.
func NewGate(ids []string) *Gate {
	g := &Gate{allowed: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			g.allowed[id] = struct{}{}
		}
	}
	return g
}

// Allowed reports whether actorID is on the allow-list.
func (g *Gate) Allowed(actorID int64) bool {
	if g == nil {
		return false
	}
	_, ok := g.allowed[strconv.FormatInt(actorID, 10)]
	return ok
}

// Size returns the number of allowed users.
func (g *Gate) Size() int {
	if g == nil {
		return 0
	}
	return len(g.allowed)
}
