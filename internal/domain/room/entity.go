package room

import (
	"errors"
	"strings"
)

var (
	ErrEmptyRoomName   = errors.New("room name cannot be empty")
	ErrInvalidCapacity = errors.New("room capacity must be positive")
	ErrRoomNotFound    = errors.New("room not found")
)

// Room is a static reference entity. Rooms are loaded from a fixed catalog
// and never created or destroyed at runtime.
type Room struct {
	id       int64
	name     string
	capacity int
}

func NewRoom(id int64, name string, capacity int) (*Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyRoomName
	}
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	return &Room{id: id, name: name, capacity: capacity}, nil
}

func (r *Room) ID() int64     { return r.id }
func (r *Room) Name() string  { return r.name }
func (r *Room) Capacity() int { return r.capacity }

// Catalog is an immutable set of rooms keyed by id.
type Catalog struct {
	rooms map[int64]*Room
}

func NewCatalog(rooms ...*Room) *Catalog {
	byID := make(map[int64]*Room, len(rooms))
	for _, r := range rooms {
		byID[r.ID()] = r
	}
	return &Catalog{rooms: byID}
}

// Find resolves a room by id. The static catalog is assumed consistent with
// the session template, so a miss is a configuration fault, not user error.
func (c *Catalog) Find(id int64) (*Room, error) {
	r, ok := c.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	return r, nil
}

func (c *Catalog) All() []*Room {
	all := make([]*Room, 0, len(c.rooms))
	for _, r := range c.rooms {
		all = append(all, r)
	}
	return all
}

// DefaultCatalog is the fixed room set the session template points at.
func DefaultCatalog() *Catalog {
	grandeSalle, _ := NewRoom(1, "Salle 1", 120)
	petiteSalle, _ := NewRoom(10, "Salle 10", 80)
	return NewCatalog(grandeSalle, petiteSalle)
}
