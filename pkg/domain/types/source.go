package types

import "github.com/m-mizutani/goerr/v2"

// ResponseSource identifies which tier of the generation pipeline
// produced a response envelope.
type ResponseSource string

const (
	// SourceRemote means the remote generation endpoint answered
	SourceRemote ResponseSource = "remote"
	// SourceEnrichedLocal means the local template synthesis answered
	SourceEnrichedLocal ResponseSource = "enriched-local"
	// SourceMinimalFallback means the static last-resort message answered
	SourceMinimalFallback ResponseSource = "minimal-fallback"
)

// Validate checks if the ResponseSource is one of the known tiers
func (s ResponseSource) Validate() error {
	switch s {
	case SourceRemote, SourceEnrichedLocal, SourceMinimalFallback:
		return nil
	default:
		return goerr.New("invalid response source", goerr.V("source", string(s)))
	}
}

// String returns the string representation of ResponseSource
func (s ResponseSource) String() string {
	return string(s)
}
