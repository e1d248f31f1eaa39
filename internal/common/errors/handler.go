// internal/common/errors/handler.go
package errors

// Logger is the subset of logger.Logger the handler needs.
type Logger interface {
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

// ErrorHandler normalizes and logs errors at a recovery boundary.
type ErrorHandler struct {
	logger Logger
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Handle normalizes err, logs it once with its classification and returns
// the normalized form. In-band failures log at warn level.
func (h *ErrorHandler) Handle(err error, fields map[string]interface{}) *StandardError {
	stdErr := Normalize(err)
	if stdErr == nil {
		return nil
	}

	entry := map[string]interface{}{
		"errorCode":     string(stdErr.Code),
		"message":       stdErr.Message,
		"details":       stdErr.Details,
		"retryable":     stdErr.Retryable,
		"errorCategory": GetErrorCategory(stdErr.Code),
	}
	if stdErr.StatusCode != 0 {
		entry["upstreamStatus"] = stdErr.StatusCode
	}
	for k, v := range fields {
		entry[k] = v
	}

	if HTTPStatus(stdErr.Code) < 500 {
		h.logger.Warn("request degraded", entry)
	} else {
		h.logger.Error("request failed", entry)
	}
	return stdErr
}
