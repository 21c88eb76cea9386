package server

import (
	"github.com/me/gogrid/internal/entity"
	"github.com/me/gogrid/internal/grid"
	"github.com/me/gogrid/pkg/model"
)

// userView builds the JSON view of a user. Quota fields are available only
// for the package's own user type; foreign implementations expose just the
// registry contract.
func userView(u grid.User) model.UserView {
	v := model.UserView{ID: u.ID(), Name: u.Name()}
	if eu, ok := u.(*entity.User); ok {
		v.Quota = eu.Quota()
		v.JobsCreated = eu.JobsCreated()
	}
	return v
}

func machineView(mc grid.Machine) model.MachineView {
	v := model.MachineView{
		ID:            mc.ID(),
		Name:          mc.Name(),
		MaxJobs:       mc.MaxJobs(),
		CurrentJobs:   mc.CurrentJobs(),
		AvailableRAM:  mc.AvailableRAM(),
		AvailableDisk: mc.AvailableDiskSpace(),
	}
	v.Score = grid.Score(mc)
	if em, ok := mc.(*entity.Machine); ok {
		v.TotalRAM = em.TotalRAM()
		v.TotalDisk = em.TotalDiskSpace()
	}
	return v
}

func jobView(j grid.Job, machineID uint32) model.JobView {
	v := model.JobView{Name: j.Name(), MachineID: machineID}
	if ej, ok := j.(*entity.Job); ok {
		v.RequiredRAM = ej.RequiredRAM()
		v.RequiredDisk = ej.RequiredDiskSpace()
		v.Duration = ej.Duration()
		v.Elapsed = ej.Elapsed()
	}
	return v
}

// Entity maps handed to query expressions; field names match the JSON views.

func userMap(u grid.User) map[string]any {
	v := userView(u)
	return map[string]any{
		"id":           v.ID,
		"name":         v.Name,
		"quota":        v.Quota,
		"jobs_created": v.JobsCreated,
	}
}

func machineMap(mc grid.Machine) map[string]any {
	v := machineView(mc)
	return map[string]any{
		"id":             v.ID,
		"name":           v.Name,
		"max_jobs":       v.MaxJobs,
		"current_jobs":   v.CurrentJobs,
		"available_ram":  v.AvailableRAM,
		"available_disk": v.AvailableDisk,
		"total_ram":      v.TotalRAM,
		"total_disk":     v.TotalDisk,
		"score":          v.Score,
	}
}

func jobMap(j grid.Job, machineID uint32) map[string]any {
	v := jobView(j, machineID)
	return map[string]any{
		"name":          v.Name,
		"required_ram":  v.RequiredRAM,
		"required_disk": v.RequiredDisk,
		"duration_ms":   v.Duration,
		"elapsed_ms":    v.Elapsed,
		"machine_id":    v.MachineID,
	}
}
