package grid

import (
	"fmt"
	"log/slog"

	"github.com/me/gogrid/internal/wire"
)

// Snapshot layout (flat, little-endian, fixed field order, no tags):
//
//	uint32  lastUserID
//	uint32  lastMachineID
//	uint32  userCount
//	        userCount × user encoding
//	uint32  machineCount
//	        machineCount × machine encoding
//
// The manager sequences only the count-prefixed repetition; each entity owns
// its record's internal encoding. There is no integrity metadata; decoding
// a buffer that was not produced by a compatible encoder is undefined.

// Save appends the full manager state to w: counters first, then users, then
// machines, each collection in ascending id order.
func (m *Manager) Save(w *wire.Writer) {
	w.WriteUint32(m.lastUserID)
	w.WriteUint32(m.lastMachineID)

	users := m.usersByID()
	w.WriteUint32(uint32(len(users)))
	for _, u := range users {
		u.Save(w)
	}

	machines := m.machinesByID()
	w.WriteUint32(uint32(len(machines)))
	for _, mc := range machines {
		mc.Save(w)
	}
}

// Load decodes a snapshot into a fresh Manager; nothing is merged with any
// existing state. newUser and newMachine produce blank entities that decode
// their own records; decoded entities re-enter the registry through the
// normal Add* reconstruction path so persisted ids are preserved exactly.
func Load(r *wire.Reader, logger *slog.Logger, newUser func() User, newMachine func() Machine) (*Manager, error) {
	m := New(logger)
	m.lastUserID = r.ReadUint32()
	m.lastMachineID = r.ReadUint32()

	userCount := r.ReadUint32()
	for i := uint32(0); i < userCount; i++ {
		u := newUser()
		if err := u.Load(r); err != nil {
			return nil, fmt.Errorf("decode user %d/%d: %w", i+1, userCount, err)
		}
		if u.ID() == 0 || m.AddUser(u) == 0 {
			return nil, fmt.Errorf("snapshot user %d/%d: invalid or duplicate id %d", i+1, userCount, u.ID())
		}
	}

	machineCount := r.ReadUint32()
	for i := uint32(0); i < machineCount; i++ {
		mc := newMachine()
		if err := mc.Load(r); err != nil {
			return nil, fmt.Errorf("decode machine %d/%d: %w", i+1, machineCount, err)
		}
		if mc.ID() == 0 || m.AddMachine(mc) == 0 {
			return nil, fmt.Errorf("snapshot machine %d/%d: invalid or duplicate id %d", i+1, machineCount, mc.ID())
		}
	}

	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("snapshot truncated: %w", err)
	}
	return m, nil
}
