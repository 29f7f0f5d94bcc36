package usecase

// EnrichedLocalContent is exported for testing
var EnrichedLocalContent = enrichedLocalContent

// IntentContent is exported for testing
var IntentContent = intentContent

// MinimalEnvelope is exported for testing
var MinimalEnvelope = minimalEnvelope

// Exported constants for testing
const (
	ClarifyingResponse     = clarifyingResponse
	MinimalFallbackMessage = minimalFallbackMessage
	MaxActions             = maxActions
)
