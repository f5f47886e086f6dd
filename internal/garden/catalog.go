package garden

import "fmt"

// FlowerKind is an immutable catalog entry.
type FlowerKind struct {
	ID   string
	Name string
}

// Catalog is the fixed set of flowers a pattern can use.
// It is built once and never mutated.
type Catalog struct {
	kinds []FlowerKind
	index map[string]int
}

// DefaultFlowers is the flower set of the original garden.
var DefaultFlowers = []FlowerKind{
	{ID: "rose", Name: "Rose"},
	{ID: "tulip", Name: "Tulip"},
	{ID: "daisy", Name: "Daisy"},
	{ID: "sunflower", Name: "Sunflower"},
	{ID: "lily", Name: "Lily"},
}

// NewCatalog validates kinds and builds a catalog.
// Returns an error for an empty set, an empty ID or a duplicate ID.
func NewCatalog(kinds []FlowerKind) (*Catalog, error) {
	if len(kinds) == 0 {
		return nil, fmt.Errorf("garden: flower catalog is empty")
	}

	c := &Catalog{
		kinds: make([]FlowerKind, len(kinds)),
		index: make(map[string]int, len(kinds)),
	}
	copy(c.kinds, kinds)

	for i, k := range c.kinds {
		if k.ID == "" {
			return nil, fmt.Errorf("garden: flower %d has an empty id", i)
		}
		if _, dup := c.index[k.ID]; dup {
			return nil, fmt.Errorf("garden: duplicate flower id %q", k.ID)
		}
		if c.kinds[i].Name == "" {
			c.kinds[i].Name = k.ID
		}
		c.index[k.ID] = i
	}
	return c, nil
}

// DefaultCatalog returns a catalog of DefaultFlowers.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(DefaultFlowers)
	if err != nil {
		panic(err) // static data
	}
	return c
}

// Len returns the number of flower kinds.
func (c *Catalog) Len() int {
	return len(c.kinds)
}

// Kinds returns a copy of the catalog in declaration order.
func (c *Catalog) Kinds() []FlowerKind {
	out := make([]FlowerKind, len(c.kinds))
	copy(out, c.kinds)
	return out
}

// At returns the i-th flower kind.
func (c *Catalog) At(i int) FlowerKind {
	return c.kinds[i]
}

// Lookup finds a flower kind by ID.
func (c *Catalog) Lookup(id string) (FlowerKind, bool) {
	i, ok := c.index[id]
	if !ok {
		return FlowerKind{}, false
	}
	return c.kinds[i], true
}

// Has reports whether id names a flower in the catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.index[id]
	return ok
}

// Name returns the display name for id, or id itself when unknown.
func (c *Catalog) Name(id string) string {
	if k, ok := c.Lookup(id); ok {
		return k.Name
	}
	return id
}
