package process

// Notes:
// - Real kill behavior is only exercised by the renderer when a browser runs.
//   Unit tests cannot safely target live PIDs.
// These are acceptable gaps: we test observable behavior, not syscall internals.

import (
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// TestKillTree - PID validation
// ---------------------------------------------------------------------------

func TestKillTree_RejectsNonPositivePID(t *testing.T) {
	t.Parallel()

	for _, pid := range []int{0, -1, -4242} {
		if err := KillTree(pid); !errors.Is(err, ErrInvalidPID) {
			t.Errorf("KillTree(%d) = %v, want ErrInvalidPID", pid, err)
		}
	}
}

func TestKillTree_UnknownPID(t *testing.T) {
	t.Parallel()

	// A PID this large does not exist; the call must fail without panicking.
	if err := KillTree(999999999); err == nil {
		t.Error("KillTree(unknown) = nil, want an error")
	}
}
