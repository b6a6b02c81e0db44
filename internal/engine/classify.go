package engine

import (
	"fmt"

	"github.com/fashionforward/psp-router/internal/model"
)

// Category is the retry classification of a decline reason.
type Category int

const (
	// CategoryTerminal: no provider can approve this card; stop immediately.
	CategoryTerminal Category = iota
	// CategoryRetryable: a different provider may approve; counts against
	// the retry budget.
	CategoryRetryable
	// CategoryCascade: the provider was down; move on without penalty.
	CategoryCascade
)

func (c Category) String() string {
	switch c {
	case CategoryTerminal:
		return "terminal"
	case CategoryRetryable:
		return "retryable"
	case CategoryCascade:
		return "cascade"
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// Classify maps a decline reason to its retry category. The mapping is total
// over the closed reason set; a reason outside it is a programming error and
// panics rather than being handled at runtime.
func Classify(reason model.DeclineReason) Category {
	switch reason {
	case model.ReasonInsufficientFunds,
		model.ReasonCardExpired,
		model.ReasonInvalidCard,
		model.ReasonStolenCard:
		return CategoryTerminal
	case model.ReasonIssuerUnavailable,
		model.ReasonSuspectedFraud,
		model.ReasonDoNotHonor,
		model.ReasonProcessorDeclined:
		return CategoryRetryable
	case model.ReasonProviderUnavailable:
		return CategoryCascade
	}
	panic(fmt.Sprintf("unclassified decline reason: %q", reason))
}
