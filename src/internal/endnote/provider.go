package endnote

import "bibread/src/internal/csl"

// Provider serves the records of one or more EndNote libraries. A record
// whose id is already known replaces the earlier one.
type Provider struct {
	items *csl.ListProvider
}

var _ csl.ItemDataProvider = (*Provider)(nil)

// NewProvider returns an empty provider.
func NewProvider() *Provider {
	return &Provider{items: csl.NewListProvider()}
}

// AddLibrary converts and merges every record of lib.
func (p *Provider) AddLibrary(lib *Library) {
	p.items.Add(Items(lib)...)
}

func (p *Provider) RetrieveItem(id string) (csl.Item, bool) { return p.items.RetrieveItem(id) }

func (p *Provider) IDs() []string { return p.items.IDs() }

// Len returns the number of distinct ids.
func (p *Provider) Len() int { return p.items.Len() }
