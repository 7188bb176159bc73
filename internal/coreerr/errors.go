// Package coreerr defines the typed, non-exception failure taxonomy shared
// across the core (spec.md §7). Callers distinguish kinds with errors.As,
// matching the teacher's fmt.Errorf("...: %w", err) wrapping idiom.
package coreerr

import "fmt"

// Kind identifies one of the core's typed failure categories.
type Kind string

const (
	KindInsufficientEnochianPool   Kind = "insufficient_enochian_pool"
	KindInsufficientPool           Kind = "insufficient_pool"
	KindLowAuthenticity            Kind = "low_authenticity"
	KindIrreducibleOversizeTradition Kind = "irreducible_oversize_tradition"
	KindDistributionInvariantViolated Kind = "distribution_invariant_violated"
	KindOracleTransient            Kind = "oracle_transient"
	KindOraclePermanent            Kind = "oracle_permanent"
	KindCanonicalEncodingMismatch  Kind = "canonical_encoding_mismatch"
)

// Error is the core's uniform typed-error shape. Fields beyond Kind/Message
// are populated as relevant to the kind (QuestID+Score for LowAuthenticity,
// TraditionID for IrreducibleOversizeTradition, Details for
// DistributionInvariantViolated).
type Error struct {
	Kind        Kind
	Message     string
	QuestID     string
	Score       int64 // fixed-point, denom 1e6; only set for LowAuthenticity
	TraditionID string
	Details     []string
	Wrapped     error
}

func (e *Error) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is an *Error of the same Kind, satisfying
// errors.Is(err, coreerr.InsufficientPool()) style checks by Kind only.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func InsufficientEnochianPool(msg string) *Error {
	return &Error{Kind: KindInsufficientEnochianPool, Message: msg}
}

func InsufficientPool(msg string) *Error {
	return &Error{Kind: KindInsufficientPool, Message: msg}
}

func LowAuthenticity(questID string, score int64) *Error {
	return &Error{
		Kind:    KindLowAuthenticity,
		Message: "authenticity score below threshold",
		QuestID: questID,
		Score:   score,
	}
}

func IrreducibleOversizeTradition(traditionID string) *Error {
	return &Error{
		Kind:        KindIrreducibleOversizeTradition,
		Message:     "tradition cannot fit within the post-compression cap",
		TraditionID: traditionID,
	}
}

func DistributionInvariantViolated(details []string) *Error {
	return &Error{
		Kind:    KindDistributionInvariantViolated,
		Message: "aethyr/governor distribution invariant violated",
		Details: details,
	}
}

func OracleTransient(wrapped error) *Error {
	return &Error{Kind: KindOracleTransient, Message: "transient oracle failure", Wrapped: wrapped}
}

func OraclePermanent(questID string, wrapped error) *Error {
	return &Error{Kind: KindOraclePermanent, Message: "oracle failure exceeded retry budget", QuestID: questID, Wrapped: wrapped}
}

func CanonicalEncodingMismatch(msg string) *Error {
	return &Error{Kind: KindCanonicalEncodingMismatch, Message: msg}
}

// KindOf extracts the Kind of err if it is (or wraps) a *Error, else "".
func KindOf(err error) Kind {
	var e *Error
	for err != nil {
		if asErr, ok := err.(*Error); ok {
			e = asErr
			break
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	if e == nil {
		return ""
	}
	return e.Kind
}
