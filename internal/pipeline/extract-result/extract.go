// Package extractresult recovers a structured verification result from
// free-form model output. Nothing here fails outward: every input yields a
// result that satisfies its schema, and the returned error only reports that
// a fixed result was substituted.
package extractresult

import (
	"encoding/json"
	"errors"
	"strings"

	commonerrors "truecheck/internal/common/errors"
	"truecheck/internal/models"
)

const (
	MsgUnableToParse  = "Unable to parse AI response"
	MsgFailedToParse  = "Failed to parse verification results"
	MsgDefaultMessage = "Verification completed"
)

// ErrNoJSONObject means the reply has no "{" ... "}" block at all.
var ErrNoJSONObject = errors.New("no JSON object in model reply")

// ExtractJSONObject returns the substring from the first "{" to the last "}".
// It does not balance braces: a missing brace, or a last "}" before the first
// "{", is reported as not found.
func ExtractJSONObject(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < 0 || end < start {
		return "", false
	}
	return raw[start : end+1], true
}

// decode extracts and parses the object embedded in raw. The error is a
// PARSE_ERROR whose message is the text to show the caller.
func decode(raw string) (map[string]interface{}, error) {
	block, ok := ExtractJSONObject(raw)
	if !ok {
		return nil, commonerrors.NewParseError(MsgUnableToParse, ErrNoJSONObject)
	}

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(block), &obj); err != nil {
		return nil, commonerrors.NewParseError(MsgFailedToParse, err)
	}
	return obj, nil
}

// Simple builds a v1 result for verificationType from the model reply.
func Simple(raw, verificationType string) (models.SimpleResult, error) {
	obj, err := decode(raw)
	if err != nil {
		return models.SimpleResult{
			Type:    verificationType,
			Status:  models.StatusError,
			Message: parseMessage(err),
		}, err
	}

	return models.SimpleResult{
		Type:    verificationType,
		Status:  coerceStatus(obj["status"]),
		Message: coerceString(obj["message"], MsgDefaultMessage),
		Details: coerceDetails(obj["details"]),
	}, nil
}

// Extended builds the model-derived half of a v2 result from the reply.
func Extended(raw string) (models.Verdict, error) {
	obj, err := decode(raw)
	if err != nil {
		return models.Verdict{
			Veracity:   models.VeracityUncertain,
			Confidence: 0,
			Reasoning:  parseMessage(err),
		}, err
	}

	return models.Verdict{
		Veracity:   coerceVeracity(obj["veracity"]),
		Confidence: coerceConfidence(obj["confidence"]),
		Reasoning:  coerceString(obj["reasoning"], MsgDefaultMessage),
	}, nil
}

// FailureReason labels a parse error for metrics: "no_json" or "decode".
func FailureReason(err error) string {
	if errors.Is(err, ErrNoJSONObject) {
		return "no_json"
	}
	return "decode"
}

func parseMessage(err error) string {
	var stdErr *commonerrors.StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Message
	}
	return MsgFailedToParse
}
