package service

import "github.com/tikrarapp/tikrar-backend/internal/model"

// joinOutcome is the decision of a single join request against current
// occupancy.
type joinOutcome int

const (
	outcomeJoined joinOutcome = iota
	outcomeWaitlisted
	outcomeFull
	outcomeAlreadyActive
	outcomeAlreadyWaitlisted
)

// decideJoin applies the capacity rule: active roster first, then waitlist,
// then reject. Pure; callers must evaluate it under the same lock that
// guards the subsequent insert.
func decideJoin(activeCount, waitlistCount, maxStudents, waitlistMax int) joinOutcome {
	switch {
	case activeCount < maxStudents:
		return outcomeJoined
	case waitlistCount < waitlistMax:
		return outcomeWaitlisted
	default:
		return outcomeFull
	}
}

// waitlistPosition is the 1-indexed FIFO position of a member joining a
// waitlist that currently holds waitlistCount members.
func waitlistPosition(waitlistCount int) int {
	return waitlistCount + 1
}

// spotsAvailable never reports negative capacity even if a legacy roster
// overshoots max_students.
func spotsAvailable(maxStudents, activeCount int) int {
	if activeCount >= maxStudents {
		return 0
	}
	return maxStudents - activeCount
}

// resolveMembership classifies a join request that found a live membership
// row. An active membership is a conflict; a waitlist membership resolves
// idempotently to its existing slot. The second return is false when there
// is no live membership to resolve and the capacity rule applies instead.
func resolveMembership(existing *model.HalaqahStudent) (joinOutcome, bool) {
	if existing == nil {
		return 0, false
	}
	switch existing.Status {
	case model.EnrollmentStatusActive:
		return outcomeAlreadyActive, true
	case model.EnrollmentStatusWaitlist:
		return outcomeAlreadyWaitlisted, true
	default:
		return 0, false
	}
}

// queuedBefore orders two waitlist records by joined_waitlist_at; records
// without a timestamp queue behind dated ones.
func queuedBefore(a, b *model.HalaqahStudent) bool {
	switch {
	case a.JoinedWaitlistAt == nil:
		return false
	case b.JoinedWaitlistAt == nil:
		return true
	default:
		return a.JoinedWaitlistAt.Before(*b.JoinedWaitlistAt)
	}
}

// fifoPosition is the 1-indexed position of record within the waitlist
// snapshot under queuedBefore ordering. Re-resolving the same record against
// an unchanged queue yields the same position.
func fifoPosition(record *model.HalaqahStudent, waitlist []model.HalaqahStudent) int {
	position := 1
	for i := range waitlist {
		other := &waitlist[i]
		if other.ID == record.ID {
			continue
		}
		if queuedBefore(other, record) {
			position++
		}
	}
	return position
}

// promotionHead picks the waitlist member promoted when an active slot frees:
// the front of the queue under queuedBefore ordering, nil when the waitlist
// is empty.
func promotionHead(waitlist []model.HalaqahStudent) *model.HalaqahStudent {
	var head *model.HalaqahStudent
	for i := range waitlist {
		candidate := &waitlist[i]
		if head == nil || queuedBefore(candidate, head) {
			head = candidate
		}
	}
	return head
}
