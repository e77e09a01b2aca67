// Package catalog provides the read-only reference table of known medicines used
// as ground truth by the extraction simulator and the validator.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/giygas/medlabel-api/catalog/entities"
	"github.com/giygas/medlabel-api/interfaces"
)

// Compile-time check to ensure Catalog implements CatalogStore
var _ interfaces.CatalogStore = (*Catalog)(nil)

var (
	ErrEmptyName     = errors.New("catalog entry has an empty name")
	ErrDuplicateName = errors.New("duplicate catalog entry name")
)

// Catalog is immutable once built. All accessors hand out copies.
type Catalog struct {
	entries []entities.CatalogEntry
	byName  map[string]int // exact name -> index
	byFold  map[string]int // folded name -> index
}

// New builds a catalog from entries. Names must be non-empty and unique
// under case folding.
func New(entries []entities.CatalogEntry) (*Catalog, error) {
	c := &Catalog{
		entries: make([]entities.CatalogEntry, 0, len(entries)),
		byName:  make(map[string]int, len(entries)),
		byFold:  make(map[string]int, len(entries)),
	}

	for i, e := range entries {
		if strings.TrimSpace(e.Name) == "" {
			return nil, fmt.Errorf("entry %d: %w", i, ErrEmptyName)
		}

		key := Fold(e.Name)
		if prev, exists := c.byFold[key]; exists {
			return nil, fmt.Errorf("%w: %q collides with %q", ErrDuplicateName, e.Name, c.entries[prev].Name)
		}

		c.byFold[key] = len(c.entries)
		c.byName[e.Name] = len(c.entries)
		c.entries = append(c.entries, e.Clone())
	}

	return c, nil
}

// MustNew is like New but panics on error. Intended for static tables.
func MustNew(entries []entities.CatalogEntry) *Catalog {
	c, err := New(entries)
	if err != nil {
		panic(err)
	}
	return c
}

// Lookup finds an entry whose canonical name equals name case-insensitively
func (c *Catalog) Lookup(name string) (entities.CatalogEntry, bool) {
	idx, ok := c.byFold[Fold(name)]
	if !ok {
		return entities.CatalogEntry{}, false
	}
	return c.entries[idx].Clone(), true
}

// LookupExact finds an entry by its exact canonical name
func (c *Catalog) LookupExact(name string) (entities.CatalogEntry, bool) {
	idx, ok := c.byName[name]
	if !ok {
		return entities.CatalogEntry{}, false
	}
	return c.entries[idx].Clone(), true
}

// Entries returns a deep copy of all entries in declaration order
func (c *Catalog) Entries() []entities.CatalogEntry {
	out := make([]entities.CatalogEntry, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Clone()
	}
	return out
}

// Names returns the canonical names in declaration order
func (c *Catalog) Names() []string {
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Name
	}
	return names
}

func (c *Catalog) Len() int {
	return len(c.entries)
}
