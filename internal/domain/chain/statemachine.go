package chain

import (
	"sort"
	"strings"
	"time"
)

// Resolution is the chain-terminality verdict. A chain is terminal when any
// step is rejected or all steps are approved — never "all steps non-pending":
// rejection leaves higher levels pending forever.
type Resolution int

const (
	ResolutionPending Resolution = iota
	ResolutionApproved
	ResolutionRejected
)

func sortedByLevel(steps []Step) []Step {
	out := make([]Step, len(steps))
	copy(out, steps)
	sort.Slice(out, func(i, j int) bool { return out[i].Level < out[j].Level })
	return out
}

// Resolve computes chain terminality under the any(rejected)/all(approved) rule.
func Resolve(steps []Step) Resolution {
	if len(steps) == 0 {
		return ResolutionPending
	}
	approved := 0
	for _, s := range steps {
		switch s.Status {
		case StepRejected:
			return ResolutionRejected
		case StepApproved:
			approved++
		}
	}
	if approved == len(steps) {
		return ResolutionApproved
	}
	return ResolutionPending
}

// CurrentPendingStep returns the lowest-level step still pending whose lower
// levels are all approved, or nil when the chain is resolved.
func CurrentPendingStep(steps []Step) *Step {
	for _, s := range sortedByLevel(steps) {
		switch s.Status {
		case StepRejected:
			return nil
		case StepPending:
			cur := s
			return &cur
		}
	}
	return nil
}

// ApplyDecision validates and applies a single decision against the chain.
// Pure: operates on a copy and returns it; callers persist the result. The
// target step's status, comments and action timestamp change; nothing else.
func ApplyDecision(steps []Step, level int, decision Decision, comments, actingRole string, now time.Time) ([]Step, error) {
	out := sortedByLevel(steps)
	cur := CurrentPendingStep(out)
	if cur == nil {
		return nil, ErrAlreadyResolved
	}
	if level != cur.Level {
		return nil, ErrStaleLevel
	}
	if actingRole != cur.ApproverRole {
		return nil, ErrRoleMismatch
	}
	if strings.TrimSpace(comments) == "" {
		return nil, ErrCommentsRequired
	}
	if decision != DecisionApproved && decision != DecisionRejected {
		return nil, ErrInvalidDecision
	}

	at := now.UTC()
	for i := range out {
		if out[i].Level != level {
			continue
		}
		out[i].Status = StepStatus(decision)
		out[i].Comments = comments
		out[i].ActionAt = &at
		return out, nil
	}
	// unreachable: cur came from out
	return nil, ErrStaleLevel
}
