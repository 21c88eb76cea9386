// Package entity provides the concrete User, Machine, and Job types the grid
// manager is run with. Each type satisfies the corresponding contract in
// internal/grid and owns its own snapshot encoding.
package entity

import (
	"github.com/me/gogrid/internal/wire"
)

// Job is a unit of work with resource requirements and a fixed runtime.
// A job with duration 0 runs until its machine is removed.
type Job struct {
	name         string
	requiredRAM  uint32 // MB
	requiredDisk uint32 // MB
	duration     uint32 // ms of grid time to complete; 0 = indefinite
	elapsed      uint32 // ms progressed so far
}

// NewJob creates a job. RAM and disk are in MB, duration in milliseconds.
func NewJob(name string, requiredRAM, requiredDisk, duration uint32) *Job {
	return &Job{
		name:         name,
		requiredRAM:  requiredRAM,
		requiredDisk: requiredDisk,
		duration:     duration,
	}
}

// Name returns the job's display name.
func (j *Job) Name() string { return j.name }

// RequiredRAM returns the RAM the job needs, in MB.
func (j *Job) RequiredRAM() uint32 { return j.requiredRAM }

// RequiredDiskSpace returns the disk the job needs, in MB.
func (j *Job) RequiredDiskSpace() uint32 { return j.requiredDisk }

// Duration returns the job's total runtime in ms (0 = indefinite).
func (j *Job) Duration() uint32 { return j.duration }

// Elapsed returns how much runtime the job has accumulated, in ms.
func (j *Job) Elapsed() uint32 { return j.elapsed }

// Finished reports whether the job has run for its full duration.
// Indefinite jobs never finish.
func (j *Job) Finished() bool {
	return j.duration > 0 && j.elapsed >= j.duration
}

// advance accumulates elapsed runtime, clamped at the job's duration.
func (j *Job) advance(diff uint32) {
	j.elapsed += diff
	if j.duration > 0 && j.elapsed > j.duration {
		j.elapsed = j.duration
	}
}

// Save appends the job's encoding: name, RAM, disk, duration, elapsed.
func (j *Job) Save(w *wire.Writer) {
	w.WriteString(j.name)
	w.WriteUint32(j.requiredRAM)
	w.WriteUint32(j.requiredDisk)
	w.WriteUint32(j.duration)
	w.WriteUint32(j.elapsed)
}

// Load decodes the encoding produced by Save.
func (j *Job) Load(r *wire.Reader) error {
	j.name = r.ReadString()
	j.requiredRAM = r.ReadUint32()
	j.requiredDisk = r.ReadUint32()
	j.duration = r.ReadUint32()
	j.elapsed = r.ReadUint32()
	return r.Err()
}
