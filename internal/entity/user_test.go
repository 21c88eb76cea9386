package entity

import (
	"testing"

	"github.com/me/gogrid/internal/wire"
)

// TestUserQuota verifies CanCreateJob against the quota and the CreatedJob
// bookkeeping that consumes it.
func TestUserQuota(t *testing.T) {
	u := NewUser("alice", 2)
	j := NewJob("j", 0, 0, 0)

	for i := 0; i < 2; i++ {
		if !u.CanCreateJob(j) {
			t.Fatalf("CanCreateJob = false with %d/%d used", i, 2)
		}
		u.CreatedJob(j)
	}
	if u.CanCreateJob(j) {
		t.Error("CanCreateJob = true with quota exhausted")
	}
	if u.JobsCreated() != 2 {
		t.Errorf("JobsCreated = %d, want 2", u.JobsCreated())
	}
}

// TestUserUnlimitedQuota verifies quota 0 never denies.
func TestUserUnlimitedQuota(t *testing.T) {
	u := NewUser("root", 0)
	j := NewJob("j", 0, 0, 0)
	for i := 0; i < 100; i++ {
		if !u.CanCreateJob(j) {
			t.Fatalf("unlimited user denied after %d jobs", i)
		}
		u.CreatedJob(j)
	}
}

// TestUserSaveLoadRoundtrip verifies the user-owned encoding, including the
// consumed-quota counter.
func TestUserSaveLoadRoundtrip(t *testing.T) {
	u := NewUser("alice", 5)
	u.SetID(3)
	u.CreatedJob(NewJob("j", 0, 0, 0))

	w := wire.NewWriter(64)
	u.Save(w)

	var got User
	if err := got.Load(wire.NewReader(w.Bytes())); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.ID() != 3 || got.Name() != "alice" || got.Quota() != 5 || got.JobsCreated() != 1 {
		t.Errorf("restored user = (%d, %s, quota %d, created %d), want (3, alice, 5, 1)",
			got.ID(), got.Name(), got.Quota(), got.JobsCreated())
	}
}

// TestJobAdvanceClamps verifies elapsed time is clamped at the duration.
func TestJobAdvanceClamps(t *testing.T) {
	j := NewJob("j", 0, 0, 1000)
	j.advance(700)
	if j.Finished() {
		t.Error("Finished = true at 700/1000")
	}
	j.advance(700)
	if !j.Finished() {
		t.Error("Finished = false at 1400/1000")
	}
	if j.Elapsed() != 1000 {
		t.Errorf("Elapsed = %d, want clamped 1000", j.Elapsed())
	}
}
