package models

// VerificationRequest is the inbound body of every verify route. APIKey is
// the caller's own Gemini key; it is used for one upstream call and never
// stored or logged.
type VerificationRequest struct {
	Data   string `json:"data" binding:"required"`
	Type   string `json:"type" binding:"required"`
	APIKey string `json:"apiKey" binding:"required"`
}

// Shape selects which result contract a route answers with.
type Shape string

const (
	// ShapeSimple is the v1 contract: {type, status, message, details}.
	ShapeSimple Shape = "simple"
	// ShapeExtended is the v2 contract: {type, veracity, confidence, reasoning, explanation}.
	ShapeExtended Shape = "extended"
)

type Status string

const (
	StatusValid   Status = "valid"
	StatusInvalid Status = "invalid"
	StatusError   Status = "error"
)

type Veracity string

const (
	VeracityTrue      Veracity = "true"
	VeracityFalse     Veracity = "false"
	VeracityUncertain Veracity = "uncertain"
)

// SimpleResult is the v1 result record.
type SimpleResult struct {
	Type    string                 `json:"type"`
	Status  Status                 `json:"status"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ExtendedResult is the v2 result record and the canonical contract.
type ExtendedResult struct {
	Type        string   `json:"type"`
	Veracity    Veracity `json:"veracity"`
	Confidence  float64  `json:"confidence"`
	Reasoning   string   `json:"reasoning"`
	Explanation string   `json:"explanation"`
}

// Verdict is the model-derived part of an ExtendedResult, before the
// search explanation is merged in.
type Verdict struct {
	Veracity   Veracity `json:"veracity"`
	Confidence float64  `json:"confidence"`
	Reasoning  string   `json:"reasoning"`
}

// Merge combines a verdict with the search explanation.
func (v Verdict) Merge(verificationType, explanation string) ExtendedResult {
	return ExtendedResult{
		Type:        verificationType,
		Veracity:    v.Veracity,
		Confidence:  v.Confidence,
		Reasoning:   v.Reasoning,
		Explanation: explanation,
	}
}

// SimpleResponse and ExtendedResponse wrap a single result in the
// {results: [...]} envelope.
type SimpleResponse struct {
	Results []SimpleResult `json:"results"`
}

type ExtendedResponse struct {
	Results []ExtendedResult `json:"results"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

const (
	FallbackSimpleMessage       = "Failed to process verification request"
	FallbackExtendedReasoning   = "Failed to verify data. Please check your API key and try again."
	FallbackExtendedExplanation = "Unable to complete verification at this time."
)

// FallbackSimple is the record returned with HTTP 500 on the v1 route.
func FallbackSimple() SimpleResult {
	return SimpleResult{
		Type:    TypeUnknown,
		Status:  StatusError,
		Message: FallbackSimpleMessage,
	}
}

// FallbackExtended is the record returned with HTTP 500 on the v2 routes.
// Unrecognized or empty types are reported as "unknown".
func FallbackExtended(verificationType string) ExtendedResult {
	if !IsKnownType(verificationType) {
		verificationType = TypeUnknown
	}
	return ExtendedResult{
		Type:        verificationType,
		Veracity:    VeracityUncertain,
		Confidence:  0,
		Reasoning:   FallbackExtendedReasoning,
		Explanation: FallbackExtendedExplanation,
	}
}
