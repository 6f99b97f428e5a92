package service

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"github.com/vadimbarashkov/lilurl-web/internal/models"
)

var (
	// ErrEmptyInput is returned when Submit is called without any text.
	ErrEmptyInput = errors.New("please enter a URL")
	// ErrInvalidURL is returned when the input is not an absolute URL.
	ErrInvalidURL = errors.New("please enter a valid URL")
	// ErrSubmissionInFlight is returned when the form already has a submission outstanding.
	ErrSubmissionInFlight = errors.New("a submission is already in progress")
)

// URLCreator defines the backend operation the submission flow depends on.
type URLCreator interface {
	// CreateShortURL asks the backend to shorten longURL.
	// Errors are returned as produced by the backend client.
	CreateShortURL(ctx context.Context, longURL string) (*models.ShortenResult, error)
}

// Form is one instance of the shortening form. It validates input, submits
// it to the backend and turns the result into a DisplayRecord.
//
// At most one submission per Form is outstanding at any time.
type Form struct {
	creator      URLCreator
	shortURLBase string
	inFlight     atomic.Bool
}

// NewForm creates a Form that submits through creator and resolves short
// codes against shortURLBase.
func NewForm(creator URLCreator, shortURLBase string) *Form {
	return &Form{
		creator:      creator,
		shortURLBase: shortURLBase,
	}
}

// InFlight reports whether a submission is currently outstanding.
func (f *Form) InFlight() bool {
	return f.inFlight.Load()
}

// Submit validates input and, if it is an absolute URL, asks the backend
// to shorten it. Exactly one backend call is made per accepted submission.
// Backend errors are returned unchanged.
func (f *Form) Submit(ctx context.Context, input string) (*models.DisplayRecord, error) {
	if input == "" {
		return nil, ErrEmptyInput
	}

	longURL := strings.TrimSpace(input)

	if !Validate(longURL) {
		return nil, ErrInvalidURL
	}

	if !f.inFlight.CompareAndSwap(false, true) {
		return nil, ErrSubmissionInFlight
	}
	defer f.inFlight.Store(false)

	res, err := f.creator.CreateShortURL(ctx, longURL)
	if err != nil {
		return nil, err
	}

	return models.NewDisplayRecord(f.shortURLBase, res), nil
}
