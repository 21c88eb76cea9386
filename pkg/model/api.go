// Package model defines the wire types of the gridd HTTP API: the response
// envelope, error codes, and the JSON views of grid entities.
package model

import "time"

// Response is the standard API response envelope.
type Response struct {
	Status    string    `json:"status"` // "ok" or "error"
	RequestID string    `json:"request_id"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
	Error     *APIError `json:"error"`
}

// UserView is the JSON form of a registered user.
type UserView struct {
	ID          uint32 `json:"id"`
	Name        string `json:"name"`
	Quota       uint32 `json:"quota,omitempty"` // 0 = unlimited
	JobsCreated uint32 `json:"jobs_created"`
}

// MachineView is the JSON form of a registered machine.
type MachineView struct {
	ID            uint32  `json:"id"`
	Name          string  `json:"name"`
	MaxJobs       uint32  `json:"max_jobs"`
	CurrentJobs   uint32  `json:"current_jobs"`
	AvailableRAM  uint32  `json:"available_ram"`
	AvailableDisk uint32  `json:"available_disk"`
	TotalRAM      uint32  `json:"total_ram,omitempty"`
	TotalDisk     uint32  `json:"total_disk,omitempty"`
	Score         float64 `json:"score"`
}

// JobView is the JSON form of a job held by a machine.
type JobView struct {
	Name         string `json:"name"`
	RequiredRAM  uint32 `json:"required_ram,omitempty"`
	RequiredDisk uint32 `json:"required_disk,omitempty"`
	Duration     uint32 `json:"duration_ms,omitempty"` // 0 = indefinite
	Elapsed      uint32 `json:"elapsed_ms"`
	MachineID    uint32 `json:"machine_id,omitempty"`
}

// SubmitRequest is the body of POST /api/v1/jobs.
type SubmitRequest struct {
	Name         string `json:"name"`
	RequiredRAM  uint32 `json:"required_ram"`
	RequiredDisk uint32 `json:"required_disk"`
	Duration     uint32 `json:"duration_ms"`
	UserID       uint32 `json:"user_id,omitempty"` // 0 = unattributed submission
}

// QueryRequest is the body of POST /api/v1/query. Expression is a JavaScript
// predicate; the entity under test is bound to a variable named after the
// kind's singular form ("user", "machine", "job").
type QueryRequest struct {
	Kind       string `json:"kind"` // "users", "machines", or "jobs"
	Expression string `json:"expression"`
}

// SnapshotInfo reports the outcome of a snapshot operation.
type SnapshotInfo struct {
	Path     string `json:"path"`
	Users    int    `json:"users"`
	Machines int    `json:"machines"`
}
