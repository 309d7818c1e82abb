package bot

import "errors"

var (
	// ErrMalformedTaxID is returned when an unregistered sender's text is not a tax identifier.
	ErrMalformedTaxID = errors.New("malformed tax id")
	// ErrNotRegistered is returned when an unregistered sender sends a photo.
	ErrNotRegistered = errors.New("sender not registered")
	// ErrIncompleteFields is returned when a receipt lacks a total or a date.
	ErrIncompleteFields = errors.New("receipt fields incomplete")
)

// OutcomeKind classifies how an event ended.
type OutcomeKind int

const (
	// OutcomeOK means the event was handled as intended.
	OutcomeOK OutcomeKind = iota
	// OutcomeRecovered means a failure was turned into a reply to the sender.
	OutcomeRecovered
	// OutcomeFatal means the event was dropped; only the log knows.
	OutcomeFatal
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeOK:
		return "ok"
	case OutcomeRecovered:
		return "recovered"
	default:
		return "fatal"
	}
}

// Outcome is the result of handling one inbound event.
type Outcome struct {
	Kind  OutcomeKind
	Reply string // text sent to the sender, "" when nothing was sent
	Err   error
}

func ok(reply string) Outcome { return Outcome{Kind: OutcomeOK, Reply: reply} }

func recovered(reply string, err error) Outcome {
	return Outcome{Kind: OutcomeRecovered, Reply: reply, Err: err}
}

func fatal(reply string, err error) Outcome {
	return Outcome{Kind: OutcomeFatal, Reply: reply, Err: err}
}
