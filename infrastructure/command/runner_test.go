package command

import (
	"context"
	"errors"
	"os/exec"
	"runtime"
	"testing"
)

func requireShell(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not found")
	}
}

func TestExitCode(t *testing.T) {
	if got := ExitCode(nil); got != 0 {
		t.Errorf("ExitCode(nil) = %d, want 0", got)
	}
	if got := ExitCode(errors.New("not started")); got != -1 {
		t.Errorf("ExitCode(plain error) = %d, want -1", got)
	}
}

func TestExecRunner_ExitStatus(t *testing.T) {
	requireShell(t)

	err := NewExecRunner().Run(context.Background(), "sh", "-c", "exit 3")
	if got := ExitCode(err); got != 3 {
		t.Errorf("ExitCode() = %d, want 3 (err = %v)", got, err)
	}
}

func TestExecRunner_OutputCapturesStderr(t *testing.T) {
	requireShell(t)

	out, err := NewExecRunner().Output(context.Background(), "sh", "-c", "echo frame; echo broken >&2; exit 1")
	if string(out) != "frame\n" {
		t.Errorf("stdout = %q, want %q", out, "frame\n")
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error = %v, want *exec.ExitError", err)
	}
	if string(exitErr.Stderr) != "broken\n" {
		t.Errorf("stderr = %q, want %q", exitErr.Stderr, "broken\n")
	}
}

func TestExecRunner_CombinedOutput(t *testing.T) {
	requireShell(t)

	out, err := NewExecRunner().CombinedOutput(context.Background(), "sh", "-c", "echo a; echo b >&2")
	if err != nil {
		t.Fatalf("CombinedOutput() error = %v", err)
	}
	if string(out) != "a\nb\n" {
		t.Errorf("output = %q, want %q", out, "a\nb\n")
	}
}
