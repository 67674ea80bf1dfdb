// Package entity defines the domain types shared across the cache and its adapters.
package entity

import "fmt"

// Entity is the unit of caching: an opaque payload addressed by a unique
// identifier. The engine never inspects Data; two entities with the same ID
// occupy the same cache slot and the later write supersedes the earlier one.
type Entity struct {
	ID   string
	Data []byte
}

// Valid reports whether the entity can be cached or persisted.
func (e *Entity) Valid() error {
	if e == nil {
		return fmt.Errorf("entity is nil")
	}
	if e.ID == "" {
		return fmt.Errorf("entity ID is empty")
	}
	return nil
}

// Clone returns a deep copy so cached state is not aliased by callers.
func (e *Entity) Clone() *Entity {
	if e == nil {
		return nil
	}
	out := &Entity{ID: e.ID}
	if e.Data != nil {
		out.Data = make([]byte, len(e.Data))
		copy(out.Data, e.Data)
	}
	return out
}

func (e *Entity) String() string {
	return fmt.Sprintf("Entity(id=%s, %d bytes)", e.ID, len(e.Data))
}
