package entity

import (
	"sort"

	"github.com/me/gogrid/internal/grid"
	"github.com/me/gogrid/internal/wire"
)

// Machine is a worker with a job-slot limit and finite RAM and disk.
// Accepted jobs are held in an id-keyed map under a machine-local job-id
// counter; resources are debited on acceptance and credited back when a job
// finishes. The zero value is a blank machine ready to decode a snapshot
// record.
type Machine struct {
	id   uint32
	name string

	maxJobs   uint32
	totalRAM  uint32 // MB
	totalDisk uint32 // MB
	availRAM  uint32
	availDisk uint32

	lastJobID uint32
	jobs      map[uint32]grid.Job
}

// NewMachine creates an unregistered machine (id 0) with all resources free.
func NewMachine(name string, maxJobs, ram, disk uint32) *Machine {
	return &Machine{
		name:      name,
		maxJobs:   maxJobs,
		totalRAM:  ram,
		totalDisk: disk,
		availRAM:  ram,
		availDisk: disk,
		jobs:      make(map[uint32]grid.Job),
	}
}

// ID returns the registry-assigned id, 0 if unregistered.
func (m *Machine) ID() uint32 { return m.id }

// SetID stamps the registry-assigned id.
func (m *Machine) SetID(id uint32) { m.id = id }

// Name returns the machine's display name.
func (m *Machine) Name() string { return m.name }

// MaxJobs returns the machine's concurrent job-slot limit.
func (m *Machine) MaxJobs() uint32 { return m.maxJobs }

// CurrentJobs returns the number of jobs the machine currently holds.
func (m *Machine) CurrentJobs() uint32 { return uint32(len(m.jobs)) }

// TotalRAM returns the machine's total RAM in MB.
func (m *Machine) TotalRAM() uint32 { return m.totalRAM }

// TotalDiskSpace returns the machine's total disk in MB.
func (m *Machine) TotalDiskSpace() uint32 { return m.totalDisk }

// AvailableRAM returns the undebited RAM in MB.
func (m *Machine) AvailableRAM() uint32 { return m.availRAM }

// AvailableDiskSpace returns the undebited disk in MB.
func (m *Machine) AvailableDiskSpace() uint32 { return m.availDisk }

// AddJob decides whether to accept an offered job. Acceptance requires a
// free job slot and, for jobs that declare resource needs, enough free RAM
// and disk; jobs of unknown concrete type are judged on the slot alone.
// On acceptance the machine takes ownership: the job is stored under a fresh
// machine-local job id and its resources are debited.
func (m *Machine) AddJob(j grid.Job) bool {
	if j == nil {
		return false
	}
	if uint32(len(m.jobs)) >= m.maxJobs {
		return false
	}

	if ej, ok := j.(*Job); ok {
		if ej.requiredRAM > m.availRAM || ej.requiredDisk > m.availDisk {
			return false
		}
		m.availRAM -= ej.requiredRAM
		m.availDisk -= ej.requiredDisk
	}

	if m.jobs == nil {
		m.jobs = make(map[uint32]grid.Job)
	}
	m.lastJobID++
	m.jobs[m.lastJobID] = j
	return true
}

// Jobs returns the accepted jobs in ascending job-id order.
func (m *Machine) Jobs() []grid.Job {
	ids := make([]uint32, 0, len(m.jobs))
	for id := range m.jobs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]grid.Job, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.jobs[id])
	}
	return out
}

// Update advances every accepted job by diff milliseconds. Jobs that reach
// their duration are removed and their resources credited back.
func (m *Machine) Update(diff uint32) {
	for id, j := range m.jobs {
		ej, ok := j.(*Job)
		if !ok {
			continue
		}
		ej.advance(diff)
		if ej.Finished() {
			m.availRAM += ej.requiredRAM
			m.availDisk += ej.requiredDisk
			delete(m.jobs, id)
		}
	}
}

// Save appends the machine's encoding: identity and capacity fields, the
// job-id counter, then the count-prefixed jobs in ascending job-id order.
// Only jobs of this package's concrete type are persisted.
func (m *Machine) Save(w *wire.Writer) {
	w.WriteUint32(m.id)
	w.WriteString(m.name)
	w.WriteUint32(m.maxJobs)
	w.WriteUint32(m.totalRAM)
	w.WriteUint32(m.totalDisk)
	w.WriteUint32(m.availRAM)
	w.WriteUint32(m.availDisk)
	w.WriteUint32(m.lastJobID)

	type rec struct {
		id  uint32
		job *Job
	}
	var recs []rec
	for id, j := range m.jobs {
		if ej, ok := j.(*Job); ok {
			recs = append(recs, rec{id, ej})
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].id < recs[j].id })

	w.WriteUint32(uint32(len(recs)))
	for _, rc := range recs {
		w.WriteUint32(rc.id)
		rc.job.Save(w)
	}
}

// Load decodes the encoding produced by Save.
func (m *Machine) Load(r *wire.Reader) error {
	m.id = r.ReadUint32()
	m.name = r.ReadString()
	m.maxJobs = r.ReadUint32()
	m.totalRAM = r.ReadUint32()
	m.totalDisk = r.ReadUint32()
	m.availRAM = r.ReadUint32()
	m.availDisk = r.ReadUint32()
	m.lastJobID = r.ReadUint32()

	count := r.ReadUint32()
	if r.Err() != nil {
		return r.Err()
	}
	m.jobs = make(map[uint32]grid.Job)
	for i := uint32(0); i < count; i++ {
		id := r.ReadUint32()
		j := new(Job)
		if err := j.Load(r); err != nil {
			return err
		}
		m.jobs[id] = j
	}
	return r.Err()
}
