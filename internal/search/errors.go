package search

import (
	"errors"
	"fmt"

	"github.com/fathom-search/fathom/internal/models"
)

// ErrUnknownModality is returned for search types outside
// semantic/literal/structural.
var ErrUnknownModality = errors.New("search: unknown search type")

// BackendError is the router's uniform wrapper for any backend failure. The
// original diagnostic is preserved as the message; the backend's own error
// types never cross the router boundary.
type BackendError struct {
	Modality models.Modality
	Message  string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("search: %s backend: %s", e.Modality, e.Message)
}
