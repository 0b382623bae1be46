package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an AppError by pipeline stage.
type Kind string

const (
	KindInvalidInput  Kind = "invalid_input"
	KindNotFound      Kind = "not_found"
	KindConversion    Kind = "conversion"
	KindUpload        Kind = "upload"
	KindStorage       Kind = "storage"
	KindTranscription Kind = "transcription"
	KindGeneration    Kind = "generation"
	KindInternal      Kind = "internal"
)

type AppError struct {
	Kind    Kind   `json:"-"`
	Code    int    `json:"-"`
	Message string `json:"error"`
	Op      string `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func newError(kind Kind, code int, op string, err error, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Code:    code,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

func InvalidInput(op string, err error, message string) *AppError {
	return newError(KindInvalidInput, http.StatusBadRequest, op, err, message)
}

func NotFound(op string, err error, message string) *AppError {
	return newError(KindNotFound, http.StatusNotFound, op, err, message)
}

func Internal(op string, err error, message string) *AppError {
	return newError(KindInternal, http.StatusInternalServerError, op, err, message)
}

// Conversion reports a local transcoding failure: malformed input or
// engine initialization failure.
func Conversion(op string, err error, message string) *AppError {
	return newError(KindConversion, http.StatusUnprocessableEntity, op, err, message)
}

// Upload reports a failed artifact transfer to the server.
func Upload(op string, err error, message string) *AppError {
	return newError(KindUpload, http.StatusBadGateway, op, err, message)
}

// Storage reports an unreadable or unwritable stored artifact.
func Storage(op string, err error, message string) *AppError {
	return newError(KindStorage, http.StatusInternalServerError, op, err, message)
}

// Transcription reports a speech-to-text backend failure.
func Transcription(op string, err error, message string) *AppError {
	return newError(KindTranscription, http.StatusBadGateway, op, err, message)
}

// Generation reports a streaming completion backend failure, before or
// mid-stream.
func Generation(op string, err error, message string) *AppError {
	return newError(KindGeneration, http.StatusBadGateway, op, err, message)
}

// Is reports whether err is an AppError of the given kind.
func Is(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

func IsInvalidInput(err error) bool  { return Is(err, KindInvalidInput) }
func IsNotFound(err error) bool      { return Is(err, KindNotFound) }
func IsConversion(err error) bool    { return Is(err, KindConversion) }
func IsUpload(err error) bool        { return Is(err, KindUpload) }
func IsStorage(err error) bool       { return Is(err, KindStorage) }
func IsTranscription(err error) bool { return Is(err, KindTranscription) }
func IsGeneration(err error) bool    { return Is(err, KindGeneration) }
