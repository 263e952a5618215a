package sqltype

import "slices"

// Cache memoizes parsed declarations per raw text. The custom path (rules
// consulted) and the straight path (rules ignored) are kept in separate
// slots; a slot is only read back by the path that filled it.
//
// A Cache belongs to one dialect and is not safe for concurrent use.
type Cache struct {
	entries map[string]*cacheEntry
}

type cacheEntry struct {
	custom, straight             Type
	customCached, straightCached bool
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*cacheEntry)}
}

// Custom returns the custom-path result for sql.
func (c *Cache) Custom(sql string) (Type, bool) {
	e, ok := c.entries[sql]
	if !ok || !e.customCached {
		return Type{}, false
	}
	return clone(e.custom), true
}

// Straight returns the straight-path result for sql. A cached invalid
// type records a failed probe.
func (c *Cache) Straight(sql string) (Type, bool) {
	e, ok := c.entries[sql]
	if !ok || !e.straightCached {
		return Type{}, false
	}
	return clone(e.straight), true
}

// SetCustom stores the custom-path result for sql.
func (c *Cache) SetCustom(sql string, t Type) {
	e := c.entry(sql)
	e.custom, e.customCached = clone(t), true
}

// SetStraight stores the straight-path result for sql.
func (c *Cache) SetStraight(sql string, t Type) {
	e := c.entry(sql)
	e.straight, e.straightCached = clone(t), true
}

// Len returns the number of distinct declarations seen.
func (c *Cache) Len() int {
	return len(c.entries)
}

func (c *Cache) entry(sql string) *cacheEntry {
	e, ok := c.entries[sql]
	if !ok {
		e = &cacheEntry{}
		c.entries[sql] = e
	}
	return e
}

func clone(t Type) Type {
	t.Values = slices.Clone(t.Values)
	return t
}
