package entity

// Manager owns every entity in the scene and keeps insertion order, so the
// player added first is also updated and drawn first.
type Manager struct {
	entities []*Entity
	nextID   ID
}

// NewManager creates a new entity manager.
func NewManager() *Manager {
	return &Manager{nextID: 1}
}

// Add registers e, assigns its ID and returns it.
func (m *Manager) Add(e *Entity) ID {
	e.ID = m.nextID
	m.nextID++
	m.entities = append(m.entities, e)
	return e.ID
}

// Update updates all entities in insertion order.
func (m *Manager) Update(dt float32) {
	for _, e := range m.entities {
		e.Update(dt)
	}
}

// All returns the entities in insertion order. The slice must not be modified.
func (m *Manager) All() []*Entity {
	return m.entities
}

// Count returns the total number of entities.
func (m *Manager) Count() int {
	return len(m.entities)
}

// ClearAll releases every entity.
func (m *Manager) ClearAll() {
	for i := range m.entities {
		m.entities[i] = nil
	}
	m.entities = m.entities[:0]
}
