// Package statusflow documents the normal order lifecycle.
//
// The status-update endpoint only checks enum membership; vendors may move an
// order to any state at any time. The table here exists so clients can render
// the expected flow, not to gate transitions.
package statusflow

import "campus-eats-api/models"

// Step describes one edge of the usual order lifecycle.
type Step struct {
	From models.OrderStatus `json:"from"`
	To   models.OrderStatus `json:"to"`
}

var lifecycle = []Step{
	{From: models.StatusPending, To: models.StatusConfirmed},
	{From: models.StatusPending, To: models.StatusCancelled},
	{From: models.StatusConfirmed, To: models.StatusPreparing},
	{From: models.StatusPreparing, To: models.StatusReady},
	{From: models.StatusReady, To: models.StatusDelivered},
}

// TerminalStates are the states with no outgoing edge in the documented flow.
var TerminalStates = []models.OrderStatus{models.StatusDelivered, models.StatusCancelled}

// Lifecycle returns the documented flow.
func Lifecycle() []Step {
	return lifecycle
}

// NextStates returns the documented next states from a given state.
func NextStates(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	for _, s := range lifecycle {
		if s.From == status {
			nexts = append(nexts, s.To)
		}
	}
	return nexts
}
