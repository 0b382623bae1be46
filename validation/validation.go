package validation

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/lucasbecker/upload-ai/config"
	"github.com/lucasbecker/upload-ai/errors"
)

type Validator struct {
	config *config.Config
}

func NewValidator(cfg *config.Config) *Validator {
	return &Validator{config: cfg}
}

// ValidateVideoID checks the identifier format, not existence.
func (v *Validator) ValidateVideoID(id string) error {
	const op = "Validator.ValidateVideoID"

	if id == "" {
		return errors.InvalidInput(op, nil, "video id is required")
	}
	if _, err := uuid.Parse(id); err != nil {
		return errors.InvalidInput(op, err, "video id must be a valid UUID")
	}
	return nil
}

func (v *Validator) ValidateTemperature(t float32) error {
	const op = "Validator.ValidateTemperature"

	if t < 0 || t > 1 {
		return errors.InvalidInput(op, nil, "temperature must be between 0 and 1")
	}
	return nil
}

// RequestValidationOpts holds options for request validation
type RequestValidationOpts struct {
	MaxContentLength int64
	AllowedMethods   []string
	RequireJSON      bool
}

// ValidateRequest validates HTTP requests
func (v *Validator) ValidateRequest(r *http.Request, opts RequestValidationOpts) error {
	const op = "Validator.ValidateRequest"

	if len(opts.AllowedMethods) > 0 {
		methodAllowed := false
		for _, method := range opts.AllowedMethods {
			if r.Method == method {
				methodAllowed = true
				break
			}
		}
		if !methodAllowed {
			return errors.InvalidInput(op, nil, fmt.Sprintf("Method %s not allowed", r.Method))
		}
	}

	if opts.RequireJSON {
		if contentType := r.Header.Get("Content-Type"); !strings.Contains(contentType, "application/json") {
			return errors.InvalidInput(op, nil, "Content-Type must be application/json")
		}
	}

	if opts.MaxContentLength > 0 && r.ContentLength > opts.MaxContentLength {
		return errors.InvalidInput(op, nil, "Request body too large")
	}

	return nil
}

// MaxUploadSize is the configured multipart body bound for POST /videos.
func (v *Validator) MaxUploadSize() int64 {
	return v.config.Upload.MaxUploadSize
}
