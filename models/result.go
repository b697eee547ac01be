package models

// Outcome is the terminal state of a create or update submission.
type Outcome int

const (
	OutcomePersisted Outcome = iota
	OutcomeRejected
	OutcomeNotFound
	OutcomeStoreFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomePersisted:
		return "persisted"
	case OutcomeRejected:
		return "rejected"
	case OutcomeNotFound:
		return "not-found"
	case OutcomeStoreFailed:
		return "store-failed"
	default:
		return "unknown"
	}
}

// Result is returned by the stores for every submission so handlers can switch
// on Outcome instead of inspecting errors.
type Result[T any] struct {
	Outcome Outcome
	Record  T
	// Message is safe to render next to the form (Rejected and StoreFailed).
	Message string
	// Err is the underlying cause for StoreFailed, for logging only.
	Err error
}

func Persisted[T any](record T) Result[T] {
	return Result[T]{Outcome: OutcomePersisted, Record: record}
}

func Rejected[T any](message string) Result[T] {
	return Result[T]{Outcome: OutcomeRejected, Message: message}
}

func NotFound[T any]() Result[T] {
	return Result[T]{Outcome: OutcomeNotFound}
}

func StoreFailed[T any](message string, err error) Result[T] {
	return Result[T]{Outcome: OutcomeStoreFailed, Message: message, Err: err}
}
