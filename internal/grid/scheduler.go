package grid

import "sort"

// Score is the scheduler's ranking value for a machine: free job slots plus
// free disk plus free RAM, in one dimensionless number. Deliberately crude:
// it favors machines with headroom without weighing the units against each
// other.
func Score(mc Machine) float64 {
	return float64(mc.MaxJobs()) - float64(mc.CurrentJobs()) +
		float64(mc.AvailableDiskSpace()) + float64(mc.AvailableRAM())
}

// AddJob places a job on the best machine that will take it.
//
// The machine list is rebuilt and re-sorted on every submission: descending
// by score, ties broken by ascending machine id (registration order). The
// job is offered to machines in that order and committed to the first
// acceptor; later candidates are never consulted, even if a rejection
// would have made one the better fit. Reports false for a nil job or when
// no machine accepts.
//
// The per-call O(M log M) re-rank is fine for small grids; an incremental
// priority structure keyed by (score, id) is the upgrade path if M grows.
func (m *Manager) AddJob(job Job) bool {
	if job == nil {
		return false
	}

	ranked := m.machinesByID()
	sort.Slice(ranked, func(i, j int) bool {
		si, sj := Score(ranked[i]), Score(ranked[j])
		if si != sj {
			return si > sj
		}
		return ranked[i].ID() < ranked[j].ID()
	})

	for _, mc := range ranked {
		if mc.AddJob(job) {
			m.logger.Info("job assigned",
				"job", job.Name(),
				"machine", mc.Name(),
				"machine_id", mc.ID(),
			)
			return true
		}
	}

	m.logger.Warn("no machine accepted job", "job", job.Name())
	return false
}

// AddJobByUser gates scheduling behind the user's authorization. The check
// runs strictly before placement; a denied or nil user fails with no side
// effects. CreatedJob fires only after a machine has accepted the job, so a
// user is never charged for a failed placement.
func (m *Manager) AddJobByUser(u User, job Job) bool {
	if u == nil || job == nil {
		return false
	}
	if !u.CanCreateJob(job) {
		m.logger.Debug("job submission denied", "user_id", u.ID(), "job", job.Name())
		return false
	}
	if !m.AddJob(job) {
		return false
	}
	u.CreatedJob(job)
	return true
}
