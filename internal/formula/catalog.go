package formula

import "fmt"

// Catalog is an immutable registry of definitions keyed by id.
// It is safe for concurrent use once constructed.
type Catalog struct {
	defs  map[string]Definition
	order []string
}

func NewCatalog(defs ...Definition) (*Catalog, error) {
	c := &Catalog{defs: make(map[string]Definition, len(defs))}
	for _, d := range defs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, dup := c.defs[d.ID]; dup {
			return nil, fmt.Errorf("duplicate formula %s", d.ID)
		}
		c.defs[d.ID] = d
		c.order = append(c.order, d.ID)
	}
	return c, nil
}

// MustCatalog is NewCatalog for static registries; it panics on a bad definition.
func MustCatalog(defs ...Definition) *Catalog {
	c, err := NewCatalog(defs...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Lookup(id string) (Definition, error) {
	d, ok := c.defs[id]
	if !ok {
		return Definition{}, &UnknownFormulaError{ID: id}
	}
	return d, nil
}

func (c *Catalog) Evaluate(id string, req Params) (Result, error) {
	d, err := c.Lookup(id)
	if err != nil {
		return Result{}, err
	}
	return Evaluate(d, req)
}

// List returns the definitions in registration order.
func (c *Catalog) List() []Definition {
	out := make([]Definition, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.defs[id])
	}
	return out
}

func (c *Catalog) Len() int { return len(c.order) }
