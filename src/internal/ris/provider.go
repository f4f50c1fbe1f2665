package ris

import "bibread/src/internal/csl"

// Provider serves the records of one or more RIS libraries. Later records
// replace earlier ones with the same id.
type Provider struct {
	items *csl.ListProvider
}

var _ csl.ItemDataProvider = (*Provider)(nil)

func NewProvider() *Provider {
	return &Provider{items: csl.NewListProvider()}
}

// AddLibrary converts and merges every record of lib.
func (p *Provider) AddLibrary(lib *Library) {
	p.items.Add(Items(lib)...)
}

func (p *Provider) RetrieveItem(id string) (csl.Item, bool) { return p.items.RetrieveItem(id) }

func (p *Provider) IDs() []string { return p.items.IDs() }

func (p *Provider) Len() int { return p.items.Len() }
