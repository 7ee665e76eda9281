package contract

import "errors"

var (
	// ErrHelpRequested routes the user to the escalation handler. It is raised
	// both for an explicit "help" and for input the dialogue cannot act on.
	ErrHelpRequested = errors.New("help requested")
	// ErrExitRequested ends the session.
	ErrExitRequested = errors.New("exit requested")
	ErrNotFound      = errors.New("no matching order")
	ErrValidation    = errors.New("validation failed")
)

// NeedsHelp reports whether err should be handed to the escalation handler.
func NeedsHelp(err error) bool {
	return errors.Is(err, ErrHelpRequested)
}

// IsExit reports whether err ends the session.
func IsExit(err error) bool {
	return errors.Is(err, ErrExitRequested)
}
