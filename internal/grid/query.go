package grid

import (
	"errors"
	"fmt"
)

// ErrUnsupportedKind is returned by Find for entity kinds the grid does not
// index. It is distinct from an empty result: zero matches is a nil slice
// and a nil error.
var ErrUnsupportedKind = errors.New("grid: unsupported query kind")

// FindUsers returns every registered user matching pred, in ascending id
// order. pred must not be nil.
func (m *Manager) FindUsers(pred func(User) bool) []User {
	var out []User
	for _, u := range m.usersByID() {
		if pred(u) {
			out = append(out, u)
		}
	}
	return out
}

// FindMachines returns every registered machine matching pred, in ascending
// id order.
func (m *Manager) FindMachines(pred func(Machine) bool) []Machine {
	var out []Machine
	for _, mc := range m.machinesByID() {
		if pred(mc) {
			out = append(out, mc)
		}
	}
	return out
}

// FindJobs returns every job matching pred across all machines. The manager
// holds no job references of its own; jobs are reachable only through the
// machine that owns them. The scan covers machines in ascending id order,
// jobs in each machine's own (job-id) order.
func (m *Manager) FindJobs(pred func(Job) bool) []Job {
	var out []Job
	for _, mc := range m.machinesByID() {
		for _, j := range mc.Jobs() {
			if pred(j) {
				out = append(out, j)
			}
		}
	}
	return out
}

// Find is the generic entry point over the three supported kinds (User,
// Machine, Job). An unsupported kind fails with ErrUnsupportedKind; it is
// never reported as zero matches.
func Find[T any](m *Manager, pred func(T) bool) ([]T, error) {
	switch p := any(pred).(type) {
	case func(User) bool:
		return any(m.FindUsers(p)).([]T), nil
	case func(Machine) bool:
		return any(m.FindMachines(p)).([]T), nil
	case func(Job) bool:
		return any(m.FindJobs(p)).([]T), nil
	default:
		var zero T
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedKind, zero)
	}
}
