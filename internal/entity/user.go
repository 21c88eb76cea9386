package entity

import (
	"github.com/me/gogrid/internal/grid"
	"github.com/me/gogrid/internal/wire"
)

// User is a grid account with a job quota. The zero value is a blank user
// ready to decode a snapshot record.
type User struct {
	id          uint32
	name        string
	quota       uint32 // max jobs the user may place; 0 = unlimited
	jobsCreated uint32
}

// NewUser creates an unregistered user (id 0) with the given quota.
// A quota of 0 means unlimited.
func NewUser(name string, quota uint32) *User {
	return &User{name: name, quota: quota}
}

// ID returns the registry-assigned id, 0 if unregistered.
func (u *User) ID() uint32 { return u.id }

// SetID stamps the registry-assigned id.
func (u *User) SetID(id uint32) { u.id = id }

// Name returns the user's display name.
func (u *User) Name() string { return u.name }

// Quota returns the user's job quota (0 = unlimited).
func (u *User) Quota() uint32 { return u.quota }

// JobsCreated returns how many jobs the user has successfully placed.
func (u *User) JobsCreated() uint32 { return u.jobsCreated }

// CanCreateJob reports whether the user has quota left for another job.
func (u *User) CanCreateJob(grid.Job) bool {
	return u.quota == 0 || u.jobsCreated < u.quota
}

// CreatedJob charges one placed job against the user's quota.
func (u *User) CreatedJob(grid.Job) {
	u.jobsCreated++
}

// Save appends the user's encoding: id, name, quota, jobs created.
func (u *User) Save(w *wire.Writer) {
	w.WriteUint32(u.id)
	w.WriteString(u.name)
	w.WriteUint32(u.quota)
	w.WriteUint32(u.jobsCreated)
}

// Load decodes the encoding produced by Save.
func (u *User) Load(r *wire.Reader) error {
	u.id = r.ReadUint32()
	u.name = r.ReadString()
	u.quota = r.ReadUint32()
	u.jobsCreated = r.ReadUint32()
	return r.Err()
}
