// Package process terminates browser processes left behind by the PDF renderer.
package process

import "errors"

// ErrInvalidPID is returned for PIDs that would target the caller's own group.
var ErrInvalidPID = errors.New("process: pid must be positive")

// KillTree force-kills the process identified by pid together with its children.
// Chrome spawns renderer and GPU helpers that outlive the parent when only
// the parent is killed.
func KillTree(pid int) error {
	if pid <= 0 {
		return ErrInvalidPID
	}
	return killTree(pid)
}
