package dataset

import "sync"

// Provider wraps Load behind a once-only guard: the dataset is read at most
// once per process, concurrent first calls share a single load, and the
// outcome (table or error) is fixed for the process lifetime. A failed load
// stays failed until restart; load errors are fatal to the session anyway.
type Provider struct {
	path  string
	once  sync.Once
	table *Table
	err   error
}

func NewProvider(path string) *Provider {
	return &Provider{path: path}
}

// Get returns the cached table, loading it on first call.
func (p *Provider) Get() (*Table, error) {
	p.once.Do(func() {
		p.table, p.err = Load(p.path)
	})
	return p.table, p.err
}
