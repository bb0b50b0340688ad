// Package provider holds types shared by the remote open-data clients.
package provider

import "fmt"

// Error is a non-success response from the remote catalog or arrival API.
// It is recoverable: callers surface it and let the user retry.
type Error struct {
	Status  int
	Details string
}

func (e *Error) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("provider returned status %d", e.Status)
	}
	return fmt.Sprintf("provider returned status %d: %s", e.Status, e.Details)
}
