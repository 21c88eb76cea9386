package grid

import (
	"log/slog"
	"sort"
)

// Manager is the grid's entity registry. It exclusively owns the user and
// machine collections and the two id counters for the lifetime of the
// process. Identifier 0 is a sentinel and never identifies a live entity.
type Manager struct {
	users    map[uint32]User
	machines map[uint32]Machine

	// Persisted alongside the collections; always >= the highest id live
	// in the corresponding map. Ids are never reused within a process.
	lastUserID    uint32
	lastMachineID uint32

	logger *slog.Logger
}

// New creates an empty Manager. The logger is a diagnostic sink only and may
// not be nil; pass a discard logger to silence tracing.
func New(logger *slog.Logger) *Manager {
	return &Manager{
		users:    make(map[uint32]User),
		machines: make(map[uint32]Machine),
		logger:   logger.With("component", "grid"),
	}
}

// AddUser registers a user and returns its id, or 0 on failure.
//
// A user carrying a nonzero id is inserted under that id verbatim, the
// reconstruction path used when restoring a snapshot. Registering a preset
// id that is already live fails rather than silently replacing the entry,
// and the counter catches up to the preset id so a later fresh allocation
// can never collide with it. A zero-id user is stamped with a freshly
// allocated id.
func (m *Manager) AddUser(u User) uint32 {
	if u == nil {
		return 0
	}
	if id := u.ID(); id != 0 {
		if _, taken := m.users[id]; taken {
			m.logger.Warn("user id already registered", "user_id", id)
			return 0
		}
		m.users[id] = u
		if id > m.lastUserID {
			m.lastUserID = id
		}
		return id
	}
	m.lastUserID++
	u.SetID(m.lastUserID)
	m.users[m.lastUserID] = u
	m.logger.Debug("user registered", "user_id", m.lastUserID, "name", u.Name())
	return m.lastUserID
}

// AddMachine registers a machine and returns its id, or 0 on failure.
// Id semantics match AddUser.
func (m *Manager) AddMachine(mc Machine) uint32 {
	if mc == nil {
		return 0
	}
	if id := mc.ID(); id != 0 {
		if _, taken := m.machines[id]; taken {
			m.logger.Warn("machine id already registered", "machine_id", id)
			return 0
		}
		m.machines[id] = mc
		if id > m.lastMachineID {
			m.lastMachineID = id
		}
		return id
	}
	m.lastMachineID++
	mc.SetID(m.lastMachineID)
	m.machines[m.lastMachineID] = mc
	m.logger.Debug("machine registered", "machine_id", m.lastMachineID, "name", mc.Name())
	return m.lastMachineID
}

// RemoveUser deletes the user with the given id. It reports whether a user
// was present; removing an unknown id is a no-op, not an error.
func (m *Manager) RemoveUser(id uint32) bool {
	if _, ok := m.users[id]; !ok {
		return false
	}
	delete(m.users, id)
	return true
}

// RemoveUserRef deletes the given user by identity, scanning the registry
// for the same instance. Reports whether it was found.
func (m *Manager) RemoveUserRef(u User) bool {
	for id, cand := range m.users {
		if cand == u {
			delete(m.users, id)
			return true
		}
	}
	return false
}

// RemoveMachine deletes the machine with the given id, with RemoveUser
// semantics. Jobs owned by the machine are discarded with it.
func (m *Manager) RemoveMachine(id uint32) bool {
	if _, ok := m.machines[id]; !ok {
		return false
	}
	delete(m.machines, id)
	return true
}

// RemoveMachineRef deletes the given machine by identity.
func (m *Manager) RemoveMachineRef(mc Machine) bool {
	for id, cand := range m.machines {
		if cand == mc {
			delete(m.machines, id)
			return true
		}
	}
	return false
}

// GetUser looks up a user by id.
func (m *Manager) GetUser(id uint32) (User, bool) {
	u, ok := m.users[id]
	return u, ok
}

// GetMachine looks up a machine by id.
func (m *Manager) GetMachine(id uint32) (Machine, bool) {
	mc, ok := m.machines[id]
	return mc, ok
}

// UserCount returns the number of registered users.
func (m *Manager) UserCount() int {
	return len(m.users)
}

// MachineCount returns the number of registered machines.
func (m *Manager) MachineCount() int {
	return len(m.machines)
}

// LastUserID returns the user id counter.
func (m *Manager) LastUserID() uint32 {
	return m.lastUserID
}

// LastMachineID returns the machine id counter.
func (m *Manager) LastMachineID() uint32 {
	return m.lastMachineID
}

// usersByID returns the registered users in ascending id order, the
// registry's natural iteration order.
func (m *Manager) usersByID() []User {
	out := make([]User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// machinesByID returns the registered machines in ascending id order.
func (m *Manager) machinesByID() []Machine {
	out := make([]Machine, 0, len(m.machines))
	for _, mc := range m.machines {
		out = append(out, mc)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Update forwards an elapsed-time delta, in milliseconds, to every machine
// in ascending id order. This is the only mechanism by which machines
// progress their accepted jobs.
func (m *Manager) Update(diff uint32) {
	for _, mc := range m.machinesByID() {
		mc.Update(diff)
	}
}
