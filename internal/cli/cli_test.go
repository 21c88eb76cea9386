package cli

import (
	"bytes"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/me/gogrid/internal/grid"
	"github.com/me/gogrid/internal/logging"
	"github.com/me/gogrid/internal/server"
)

// startTestServer starts a gridd server over an empty grid and returns its URL.
func startTestServer(t *testing.T) string {
	t.Helper()
	srv := server.New(grid.New(logging.Discard()), nil, logging.Discard())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts.URL
}

// runCLI executes gridctl with the given args, capturing stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()

	var errBuf bytes.Buffer
	root.SetOut(&errBuf)
	root.SetErr(&errBuf)
	root.SetArgs(args)

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := root.Execute()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	buf.ReadFrom(r)
	return buf.String(), err
}

func TestStatusCommand(t *testing.T) {
	url := startTestServer(t)

	output, err := runCLI(t, "--server", url, "status")
	if err != nil {
		t.Fatalf("status error: %v\noutput: %s", err, output)
	}
	if !strings.Contains(output, "healthy") {
		t.Errorf("expected 'healthy' in output, got: %s", output)
	}
	if !strings.Contains(output, "Machines: 0") {
		t.Errorf("expected zero machine count in output, got: %s", output)
	}
}

func TestUsersCommands(t *testing.T) {
	url := startTestServer(t)

	output, err := runCLI(t, "--server", url, "users", "add", "alice", "--quota", "3")
	if err != nil {
		t.Fatalf("users add error: %v\noutput: %s", err, output)
	}
	if !strings.Contains(output, `User "alice" registered with id 1`) {
		t.Errorf("expected registration line, got: %s", output)
	}

	output, err = runCLI(t, "--server", url, "users", "list")
	if err != nil {
		t.Fatalf("users list error: %v", err)
	}
	if !strings.Contains(output, "alice") || !strings.Contains(output, "ID") {
		t.Errorf("expected table with alice, got: %s", output)
	}

	output, err = runCLI(t, "--server", url, "users", "rm", "1")
	if err != nil {
		t.Fatalf("users rm error: %v\noutput: %s", err, output)
	}
	if !strings.Contains(output, "User 1 removed") {
		t.Errorf("expected removal line, got: %s", output)
	}

	output, err = runCLI(t, "--server", url, "users", "list")
	if err != nil {
		t.Fatalf("users list error: %v", err)
	}
	if !strings.Contains(output, "No users registered") {
		t.Errorf("expected empty list message, got: %s", output)
	}
}

func TestMachinesAndSubmitCommands(t *testing.T) {
	url := startTestServer(t)

	output, err := runCLI(t, "--server", url,
		"machines", "add", "node-01", "--max-jobs", "4", "--ram", "1024", "--disk", "2048")
	if err != nil {
		t.Fatalf("machines add error: %v\noutput: %s", err, output)
	}
	if !strings.Contains(output, `Machine "node-01" registered with id 1`) {
		t.Errorf("expected registration line, got: %s", output)
	}

	output, err = runCLI(t, "--server", url,
		"submit", "render", "--ram", "256", "--disk", "128", "--duration", "5000")
	if err != nil {
		t.Fatalf("submit error: %v\noutput: %s", err, output)
	}
	if !strings.Contains(output, `Job "render" placed on machine 1`) {
		t.Errorf("expected placement line, got: %s", output)
	}

	output, err = runCLI(t, "--server", url, "machines", "jobs", "1")
	if err != nil {
		t.Fatalf("machines jobs error: %v\noutput: %s", err, output)
	}
	if !strings.Contains(output, "render") {
		t.Errorf("expected job in machine listing, got: %s", output)
	}
}

func TestSubmitCommand_NoCapacity(t *testing.T) {
	url := startTestServer(t)

	// Empty grid: nothing can accept the job.
	output, err := runCLI(t, "--server", url, "submit", "orphan")
	if err == nil {
		t.Fatalf("expected error submitting to an empty grid, output: %s", output)
	}
	if !strings.Contains(err.Error(), "NO_CAPACITY") {
		t.Errorf("expected NO_CAPACITY in error, got: %v", err)
	}
}

func TestQueryCommand(t *testing.T) {
	url := startTestServer(t)

	if _, err := runCLI(t, "--server", url,
		"machines", "add", "node-01", "--max-jobs", "4", "--ram", "1024", "--disk", "2048"); err != nil {
		t.Fatalf("machines add error: %v", err)
	}

	output, err := runCLI(t, "--server", url,
		"query", "--kind", "machines", "machine.max_jobs > 2")
	if err != nil {
		t.Fatalf("query error: %v\noutput: %s", err, output)
	}
	if !strings.Contains(output, `"name":"node-01"`) {
		t.Errorf("expected matching machine JSON, got: %s", output)
	}

	output, err = runCLI(t, "--server", url,
		"query", "--kind", "users", "user.quota > 0")
	if err != nil {
		t.Fatalf("query error: %v", err)
	}
	if !strings.Contains(output, "No matches") {
		t.Errorf("expected no matches, got: %s", output)
	}
}

func TestQueryCommand_BadExpression(t *testing.T) {
	url := startTestServer(t)
	if _, err := runCLI(t, "--server", url, "query", "--kind", "machines", "machine.max_jobs >"); err == nil {
		t.Fatal("expected error for an unparsable expression")
	}
}

func TestSnapshotCommand_Unconfigured(t *testing.T) {
	url := startTestServer(t)
	if _, err := runCLI(t, "--server", url, "snapshot", "save"); err == nil {
		t.Fatal("expected error when the server has no snapshot store")
	}
}
