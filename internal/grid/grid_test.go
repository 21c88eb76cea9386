package grid_test

import (
	"github.com/me/gogrid/internal/grid"
	"github.com/me/gogrid/internal/logging"
	"github.com/me/gogrid/internal/wire"
)

// Fakes shared by the tests in this package. They implement just enough of
// the entity contracts to observe the manager's behavior: which machines a
// job was offered to, in what order, and what a user was told.

type fakeJob struct {
	name string
}

func (j *fakeJob) Name() string { return j.name }

// fakeMachine accepts or rejects every offer according to accept, records
// the jobs offered to it, and keeps accepted jobs in arrival order.
type fakeMachine struct {
	id      uint32
	name    string
	maxJobs uint32
	disk    uint32
	ram     uint32

	accept  bool
	offered []grid.Job
	held    []grid.Job

	updates []uint32
	seq     *[]uint32 // shared across machines to observe cross-machine order
}

func (m *fakeMachine) ID() uint32                 { return m.id }
func (m *fakeMachine) SetID(id uint32)            { m.id = id }
func (m *fakeMachine) Name() string               { return m.name }
func (m *fakeMachine) MaxJobs() uint32            { return m.maxJobs }
func (m *fakeMachine) CurrentJobs() uint32        { return uint32(len(m.held)) }
func (m *fakeMachine) AvailableDiskSpace() uint32 { return m.disk }
func (m *fakeMachine) AvailableRAM() uint32       { return m.ram }
func (m *fakeMachine) Jobs() []grid.Job           { return m.held }
func (m *fakeMachine) Save(w *wire.Writer)        { w.WriteUint32(m.id) }
func (m *fakeMachine) Load(r *wire.Reader) error  { m.id = r.ReadUint32(); return r.Err() }

func (m *fakeMachine) AddJob(j grid.Job) bool {
	m.offered = append(m.offered, j)
	if !m.accept {
		return false
	}
	m.held = append(m.held, j)
	return true
}

func (m *fakeMachine) Update(diff uint32) {
	m.updates = append(m.updates, diff)
	if m.seq != nil {
		*m.seq = append(*m.seq, m.id)
	}
}

// fakeUser allows or denies every submission and records notifications.
type fakeUser struct {
	id      uint32
	name    string
	allow   bool
	created []grid.Job
}

func (u *fakeUser) ID() uint32                 { return u.id }
func (u *fakeUser) SetID(id uint32)            { u.id = id }
func (u *fakeUser) Name() string               { return u.name }
func (u *fakeUser) CanCreateJob(grid.Job) bool { return u.allow }
func (u *fakeUser) CreatedJob(j grid.Job)      { u.created = append(u.created, j) }
func (u *fakeUser) Save(w *wire.Writer)        { w.WriteUint32(u.id) }
func (u *fakeUser) Load(r *wire.Reader) error  { u.id = r.ReadUint32(); return r.Err() }

func newManager() *grid.Manager {
	return grid.New(logging.Discard())
}
