package ui

import (
	"errors"

	"scanbill_cli/internal/checkout"
	"scanbill_cli/internal/scanbill"
)

// friendlyError turns a failure into the message shown to the operator.
// The backend's own message wins when the normalized error carries one as
// a plain string; everything else collapses to the caller's fallback.
func friendlyError(err error, fallback string) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, scanbill.ErrReceiptNotFound):
		return "Receipt not found"
	case errors.Is(err, scanbill.ErrUnauthorized):
		return "Not authorized"
	case errors.Is(err, checkout.ErrNotReady):
		return err.Error()
	}

	var apiErr *scanbill.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
