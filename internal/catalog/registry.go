package catalog

import "fmt"

// Registry is an in-memory catalog lookup keyed by assessment id. One
// registered catalog per assessment; a session scores against exactly
// the snapshot registered here.
type Registry struct {
	cats map[string]*Catalog
}

// NewRegistry builds a registry over the given catalogs.
func NewRegistry(cats ...*Catalog) *Registry {
	r := &Registry{cats: make(map[string]*Catalog, len(cats))}
	for _, c := range cats {
		r.Register(c)
	}
	return r
}

// Register adds or replaces the catalog for its assessment id.
func (r *Registry) Register(c *Catalog) {
	r.cats[c.AssessmentID] = c
}

// CatalogFor returns the registered catalog for assessmentID.
func (r *Registry) CatalogFor(assessmentID string) (*Catalog, error) {
	c, ok := r.cats[assessmentID]
	if !ok {
		return nil, fmt.Errorf("no catalog registered for assessment %q", assessmentID)
	}
	return c, nil
}
