package markov

import "fmt"

// ValidationError reports a malformed transition matrix or prior vector at
// model construction time. Row is the formatted offending state for matrix
// rows and empty for prior violations.
type ValidationError struct {
	Subject string // "transitions" or "prior"
	Row     string // offending row state, empty for the prior
	Detail  string // what is wrong, including the measured deviation
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Row != "" {
		return fmt.Sprintf("invalid %s row %s: %s", e.Subject, e.Row, e.Detail)
	}
	return fmt.Sprintf("invalid %s: %s", e.Subject, e.Detail)
}

// UnknownStateError reports a successor-distribution lookup for a state
// outside the model's declared state set. Since initial sampling only ever
// draws from the model's own states, seeing this during generation indicates
// an internal-consistency fault in the caller.
type UnknownStateError struct {
	State string // formatted state value
}

// Error implements the error interface.
func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("unknown state %s", e.State)
}

// InvalidDistributionError reports a probability vector handed to [Sample]
// that is negative somewhere or does not sum to 1 within tolerance.
type InvalidDistributionError struct {
	Detail string
}

// Error implements the error interface.
func (e *InvalidDistributionError) Error() string {
	return fmt.Sprintf("invalid distribution: %s", e.Detail)
}
