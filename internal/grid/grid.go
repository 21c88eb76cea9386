// Package grid implements the in-process compute grid manager: an entity
// registry for users and machines, a heuristic job scheduler, a flat binary
// snapshot codec, and predicate queries over the registered entities.
//
// The package performs no locking. A Manager assumes exclusive access for the
// lifetime of the process; callers that share one across goroutines (for
// example an HTTP surface plus a tick loop) must serialize every call.
package grid

import "github.com/me/gogrid/internal/wire"

// Job is a unit of work submitted for placement on exactly one machine.
// The manager consumes jobs only through this contract; everything else
// about a job (resource needs, runtime) is between the submitter and the
// machine that accepts it.
type Job interface {
	Name() string
}

// Machine is a worker entity with finite capacity. A machine decides for
// itself whether to accept an offered job, owns every job it has accepted,
// and progresses those jobs when fed elapsed time.
type Machine interface {
	ID() uint32
	SetID(id uint32)
	Name() string

	MaxJobs() uint32
	CurrentJobs() uint32
	AvailableDiskSpace() uint32
	AvailableRAM() uint32

	// AddJob offers a job to the machine. The machine reports acceptance;
	// on acceptance it takes ownership of the job.
	AddJob(job Job) bool

	// Jobs returns the machine's accepted jobs in ascending job-id order.
	Jobs() []Job

	// Update advances every accepted job by the elapsed milliseconds.
	Update(diff uint32)

	// Save appends the machine's own encoding, jobs included.
	Save(w *wire.Writer)
	// Load decodes the encoding produced by Save.
	Load(r *wire.Reader) error
}

// User is an entity authorized (or not) to submit jobs, notified of the
// jobs it successfully places.
type User interface {
	ID() uint32
	SetID(id uint32)
	Name() string

	// CanCreateJob reports whether the user may submit this job.
	CanCreateJob(job Job) bool
	// CreatedJob records a successful placement. Called only after a
	// machine has accepted the job.
	CreatedJob(job Job)

	Save(w *wire.Writer)
	Load(r *wire.Reader) error
}
