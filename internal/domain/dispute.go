package domain

import "time"

// DisputeStatus is the state of a dispute raised against a ledger entry.
type DisputeStatus string

const (
	DisputeStatusPending  DisputeStatus = "PENDING"
	DisputeStatusResolved DisputeStatus = "RESOLVED"
	DisputeStatusRejected DisputeStatus = "REJECTED"
)

// disputeStatusEdges defines the resolution state machine. RESOLVED and
// REJECTED are terminal.
var disputeStatusEdges = map[DisputeStatus][]DisputeStatus{
	DisputeStatusPending: {DisputeStatusResolved, DisputeStatusRejected},
}

// CanTransitionTo reports whether a dispute status change is legal.
func (s DisputeStatus) CanTransitionTo(next DisputeStatus) bool {
	for _, allowed := range disputeStatusEdges[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the dispute has been resolved either way.
func (s DisputeStatus) IsTerminal() bool {
	return s == DisputeStatusResolved || s == DisputeStatusRejected
}

// Dispute flags a ledger entry as contested. Opening a dispute never reverses
// the entry's balance effect; a reversal, if warranted, is a separate explicit
// transfer performed by an administrator after resolution. An entry carries at
// most one PENDING dispute at a time.
type Dispute struct {
	ID         string
	EntryID    string
	UserID     string
	Reason     string
	Status     DisputeStatus
	Resolution string
	ResolvedBy string
	CreatedAt  time.Time
	ResolvedAt *time.Time
}

// Resolve transitions the dispute to a terminal outcome with a mandatory
// resolution text and the resolving actor's identity.
func (d *Dispute) Resolve(outcome DisputeStatus, resolution, actorID string, now time.Time) error {
	if d.Status.IsTerminal() {
		return ErrDisputeResolved
	}
	if !d.Status.CanTransitionTo(outcome) {
		return ErrInvalidStatusTransition
	}
	if resolution == "" {
		return ErrResolutionRequired
	}

	d.Status = outcome
	d.Resolution = resolution
	d.ResolvedBy = actorID
	d.ResolvedAt = &now

	return nil
}
