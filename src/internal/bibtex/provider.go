package bibtex

import "bibread/src/internal/csl"

// Provider serves the entries of one or more BibTeX databases. Databases
// are merged as they are added: an entry whose key already exists replaces
// the earlier one. Provider is not safe for concurrent AddDatabase calls.
type Provider struct {
	entries map[string]*Entry
	order   []string
}

var _ csl.ItemDataProvider = (*Provider)(nil)

// NewProvider returns an empty provider.
func NewProvider() *Provider {
	return &Provider{entries: map[string]*Entry{}}
}

// AddDatabase merges all entries of db into the provider.
func (p *Provider) AddDatabase(db *Database) {
	for _, e := range db.Entries {
		if _, ok := p.entries[e.Key]; !ok {
			p.order = append(p.order, e.Key)
		}
		p.entries[e.Key] = e
	}
}

// RetrieveItem converts the entry with the given key. Fields missing from
// the entry are inherited from its crossref parent if the provider has it.
func (p *Provider) RetrieveItem(id string) (csl.Item, bool) {
	e, ok := p.entries[id]
	if !ok {
		return csl.Item{}, false
	}
	return ItemFromEntry(p.resolveCrossref(e)), true
}

func (p *Provider) IDs() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// Len returns the number of distinct keys.
func (p *Provider) Len() int { return len(p.order) }

func (p *Provider) resolveCrossref(e *Entry) *Entry {
	ref := e.Field("crossref")
	if ref == "" || ref == e.Key {
		return e
	}
	parent, ok := p.entries[ref]
	if !ok {
		return e
	}
	merged := &Entry{Type: e.Type, Key: e.Key, Fields: make(map[string]string, len(e.Fields)+len(parent.Fields))}
	for k, v := range parent.Fields {
		if k == "crossref" || k == "title" {
			continue
		}
		merged.Fields[k] = v
	}
	if t := parent.Field("title"); t != "" && e.Field("booktitle") == "" {
		merged.Fields["booktitle"] = t
	}
	for k, v := range e.Fields {
		merged.Fields[k] = v
	}
	return merged
}
