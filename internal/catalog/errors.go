package catalog

import (
	"net/http"

	"github.com/pkg/errors"
)

// Client-facing messages. They are part of the HTTP contract.
const (
	MsgRequiredFields = "Name, price, and category are required"
	MsgInvalidPrice   = "Price must be a number"
	MsgInvalidBody    = "Invalid JSON body"
)

var (
	ErrFetch  = errors.New("Failed to fetch products")
	ErrCreate = errors.New("Failed to create product")
)

// ValidationError reports creation input that cannot be stored.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StorageError carries a storage failure under one of the ErrFetch/ErrCreate kinds.
type StorageError struct {
	Kind error
	Err  error
}

func (e *StorageError) Error() string {
	return e.Kind.Error() + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == e.Kind
}

// StatusFor maps an error returned by Service to the HTTP status and the
// message written to the client. fallback is the generic message kind used
// for anything that is not a validation failure.
func StatusFor(err error, fallback error) (int, string) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, verr.Message
	}
	var serr *StorageError
	if errors.As(err, &serr) {
		return http.StatusInternalServerError, serr.Kind.Error()
	}
	return http.StatusInternalServerError, fallback.Error()
}
