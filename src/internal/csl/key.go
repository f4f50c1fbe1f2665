package csl

import (
	"regexp"
	"strconv"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// KeyGenerator derives citation keys for items whose source carries no id.
// Keys are the first author's family name followed by the year
// ("smith2020"); repeated keys get a letter suffix ("smith2020a"). A key is
// never one already handed out or reserved.
type KeyGenerator struct {
	seen  map[string]int
	taken map[string]bool
}

// Reserve marks id as taken so Next never returns it.
func (g *KeyGenerator) Reserve(id string) {
	if g.taken == nil {
		g.taken = map[string]bool{}
	}
	g.taken[id] = true
}

// Next returns an unused key for it.
func (g *KeyGenerator) Next(it Item) string {
	if g.seen == nil {
		g.seen = map[string]int{}
	}
	base := baseKey(it)
	for {
		n := g.seen[base]
		g.seen[base] = n + 1
		key := base
		if n > 0 {
			key = base + suffix(n-1)
		}
		if !g.taken[key] {
			g.Reserve(key)
			return key
		}
	}
}

// AssignIDs gives every item with an empty id a generated key that differs
// from all ids present in items.
func AssignIDs(items []Item) {
	var g KeyGenerator
	for _, it := range items {
		if it.ID != "" {
			g.Reserve(it.ID)
		}
	}
	for i := range items {
		if items[i].ID == "" {
			items[i].ID = g.Next(items[i])
		}
	}
}

func baseKey(it Item) string {
	name := ""
	for _, n := range append(append(Names{}, it.Author...), it.Editor...) {
		if s := slug(n.Family); s != "" {
			name = s
			break
		}
		if s := slug(n.Literal); s != "" {
			name = s
			break
		}
	}
	if name == "" {
		if f := strings.Fields(it.Title); len(f) > 0 {
			name = slug(f[0])
		}
	}
	if name == "" {
		name = "item"
	}
	if y := it.Year(); y > 0 {
		name += strconv.Itoa(y)
	}
	return name
}

func slug(s string) string {
	return nonAlnum.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "")
}

// suffix maps 0 -> a, 25 -> z, 26 -> aa.
func suffix(n int) string {
	s := ""
	for {
		s = string(rune('a'+n%26)) + s
		n = n/26 - 1
		if n < 0 {
			return s
		}
	}
}
