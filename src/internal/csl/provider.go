package csl

// ItemDataProvider serves citation items independent of the format they were
// read from.
type ItemDataProvider interface {
	// RetrieveItem returns the item with the given id.
	RetrieveItem(id string) (Item, bool)
	// IDs returns the ids of all items the provider can serve.
	IDs() []string
}

// ListProvider serves a fixed list of items in document order.
type ListProvider struct {
	items []Item
	index map[string]int
}

var _ ItemDataProvider = (*ListProvider)(nil)

// NewListProvider returns a provider over items. When two items share an id
// the later one is served but the id keeps its first position in IDs.
func NewListProvider(items ...Item) *ListProvider {
	p := &ListProvider{index: make(map[string]int, len(items))}
	p.Add(items...)
	return p
}

// Add appends items, replacing any item that has the same id.
func (p *ListProvider) Add(items ...Item) {
	if p.index == nil {
		p.index = map[string]int{}
	}
	for _, it := range items {
		if i, ok := p.index[it.ID]; ok {
			p.items[i] = it
			continue
		}
		p.index[it.ID] = len(p.items)
		p.items = append(p.items, it)
	}
}

// Len returns the number of distinct ids.
func (p *ListProvider) Len() int { return len(p.items) }

func (p *ListProvider) RetrieveItem(id string) (Item, bool) {
	i, ok := p.index[id]
	if !ok {
		return Item{}, false
	}
	return p.items[i], true
}

func (p *ListProvider) IDs() []string {
	ids := make([]string, len(p.items))
	for i, it := range p.items {
		ids[i] = it.ID
	}
	return ids
}

// Items returns a copy of the provider's items in order.
func (p *ListProvider) Items() []Item {
	out := make([]Item, len(p.items))
	copy(out, p.items)
	return out
}

// Collect resolves every id of p in order.
func Collect(p ItemDataProvider) []Item {
	ids := p.IDs()
	out := make([]Item, 0, len(ids))
	for _, id := range ids {
		if it, ok := p.RetrieveItem(id); ok {
			out = append(out, it)
		}
	}
	return out
}
