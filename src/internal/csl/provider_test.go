package csl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListProviderOrderAndShadowing(t *testing.T) {
	p := NewListProvider(
		Item{ID: "b", Title: "first b"},
		Item{ID: "a", Title: "a"},
		Item{ID: "b", Title: "second b"},
	)
	p.Add(Item{ID: "c"}, Item{ID: "a", Title: "new a"})

	assert.Equal(t, []string{"b", "a", "c"}, p.IDs())
	assert.Equal(t, 3, p.Len())
	it, ok := p.RetrieveItem("b")
	require.True(t, ok)
	assert.Equal(t, "second b", it.Title)
	it, _ = p.RetrieveItem("a")
	assert.Equal(t, "new a", it.Title)
	_, ok = p.RetrieveItem("zzz")
	assert.False(t, ok)

	items := p.Items()
	items[0].Title = "mutated"
	it, _ = p.RetrieveItem("b")
	assert.Equal(t, "second b", it.Title)

	assert.Equal(t, p.Items(), Collect(p))
}

func TestZeroListProvider(t *testing.T) {
	var p ListProvider
	assert.Empty(t, p.IDs())
	p.Add(Item{ID: "x"})
	assert.Equal(t, []string{"x"}, p.IDs())
}

func TestKeyGenerator(t *testing.T) {
	var g KeyGenerator
	knuth := Item{Author: Names{{Family: "Knuth", Given: "Donald"}}, Issued: NewDate(1984)}
	assert.Equal(t, "knuth1984", g.Next(knuth))
	assert.Equal(t, "knuth1984a", g.Next(knuth))
	assert.Equal(t, "knuth1984b", g.Next(knuth))

	assert.Equal(t, "oreilly", g.Next(Item{Editor: Names{{Family: "O'Reilly"}}}))
	assert.Equal(t, "acm2001", g.Next(Item{Author: Names{{Literal: "ACM"}}, Issued: NewDate(2001, 3)}))
	assert.Equal(t, "the", g.Next(Item{Title: "The Art of Computer Programming"}))
	assert.Equal(t, "item", g.Next(Item{}))
	assert.Equal(t, "itema", g.Next(Item{}))
}

func TestKeySuffix(t *testing.T) {
	assert.Equal(t, "a", suffix(0))
	assert.Equal(t, "z", suffix(25))
	assert.Equal(t, "aa", suffix(26))
	assert.Equal(t, "ab", suffix(27))
	assert.Equal(t, "ba", suffix(52))
}

func TestKeyGeneratorSkipsReserved(t *testing.T) {
	var g KeyGenerator
	g.Reserve("knuth1984")
	g.Reserve("knuth1984a")
	knuth := Item{Author: Names{{Family: "Knuth"}}, Issued: NewDate(1984)}
	assert.Equal(t, "knuth1984b", g.Next(knuth))
	assert.Equal(t, "knuth1984c", g.Next(knuth))
}

func TestAssignIDs(t *testing.T) {
	items := []Item{
		{Title: "Alpha"},
		{ID: "alpha", Title: "Explicit"},
		{Title: "Alpha"},
		{ID: "keep"},
		{},
	}
	AssignIDs(items)
	var ids []string
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"alphaa", "alpha", "alphab", "keep", "item"}, ids)
}
