package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFallbackExtended(t *testing.T) {
	got := FallbackExtended("email")
	assert.Equal(t, "email", got.Type)
	assert.Equal(t, VeracityUncertain, got.Veracity)
	assert.Zero(t, got.Confidence)
	assert.Equal(t, FallbackExtendedReasoning, got.Reasoning)
	assert.Equal(t, FallbackExtendedExplanation, got.Explanation)

	assert.Equal(t, TypeUnknown, FallbackExtended("").Type)
	assert.Equal(t, TypeUnknown, FallbackExtended("horoscope").Type)
}

func TestFallbackSimple(t *testing.T) {
	got := FallbackSimple()
	assert.Equal(t, SimpleResult{Type: "unknown", Status: StatusError, Message: "Failed to process verification request"}, got)
}

func TestVerdict_Merge(t *testing.T) {
	v := Verdict{Veracity: VeracityTrue, Confidence: 0.9, Reasoning: "valid format"}
	got := v.Merge("email", "explained")
	assert.Equal(t, ExtendedResult{
		Type:        "email",
		Veracity:    VeracityTrue,
		Confidence:  0.9,
		Reasoning:   "valid format",
		Explanation: "explained",
	}, got)
}

func TestSupportedTypes(t *testing.T) {
	assert.Len(t, SupportedTypes, 10)
	for _, typ := range SupportedTypes {
		assert.True(t, IsKnownType(typ.Value), typ.Value)
		assert.NotEmpty(t, typ.Label)
		assert.NotEmpty(t, typ.Description)
	}
	assert.False(t, IsKnownType("unknown"))
	assert.True(t, IsFormatType(TypeSSN))
	assert.False(t, IsFormatType(TypeMedicalClaim))
	assert.False(t, IsFormatType(TypeCustom))
}
