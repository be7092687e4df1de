package ts

import "github.com/elliotchance/orderedmap/v3"

// Cache holds the declarations of one generator run keyed by name, in
// registration order. It is not safe for concurrent use.
type Cache struct {
	decls *orderedmap.OrderedMap[string, *Declaration]
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{decls: orderedmap.NewOrderedMap[string, *Declaration]()}
}

// GetOrCreate returns the declaration registered under name. If there is
// none, a placeholder is registered first and build fills it in, so a
// reference back to name from inside build resolves to the declaration
// being built. If build fails the placeholder is removed.
func (c *Cache) GetOrCreate(name string, build func(*Declaration) error) (*Declaration, error) {
	if d, ok := c.decls.Get(name); ok {
		return d, nil
	}

	d := &Declaration{Name: name}
	c.decls.Set(name, d)
	if err := build(d); err != nil {
		c.decls.Delete(name)
		return nil, err
	}
	return d, nil
}

// Get returns the declaration registered under name.
func (c *Cache) Get(name string) (*Declaration, bool) {
	return c.decls.Get(name)
}

// Has reports whether a declaration is registered under name.
func (c *Cache) Has(name string) bool {
	return c.decls.Has(name)
}

// Set registers d, replacing any declaration with the same name while
// keeping its original position.
func (c *Cache) Set(d *Declaration) {
	c.decls.Set(d.Name, d)
}

// Len returns the number of declarations.
func (c *Cache) Len() int { return c.decls.Len() }

// All returns the declarations in registration order.
func (c *Cache) All() []*Declaration {
	all := make([]*Declaration, 0, c.decls.Len())
	for el := c.decls.Front(); el != nil; el = el.Next() {
		all = append(all, el.Value)
	}
	return all
}
