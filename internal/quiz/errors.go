package quiz

import "fmt"

// ValidationError reports missing or out-of-range request fields.
// Always a client error (400), never retried.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// ConfigurationError reports a missing upstream credential. Operator-fixable,
// not client-fixable; raised before any network I/O.
type ConfigurationError struct {
	Msg string
}

func (e *ConfigurationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "no upstream LLM provider configured"
}

// UpstreamError reports a failed LLM call: timeout, non-success status, or a
// malformed transport response. Surfaced once, never retried.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream LLM call failed: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// ParseError reports that the LLM reply could not be coerced into the
// question schema by any stage of the normalizer.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse questions from LLM reply: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
