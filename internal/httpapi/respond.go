// Package httpapi holds the thin HTTP driver's response helpers,
// replacing the teacher's internal/shared response/error types with a
// mapping onto internal/apperr (the core's own typed taxonomy), sized
// for the two-route driver spec §6 calls for.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"moneyhive/internal/apperr"
)

// ErrorResponse is the JSON body written for any failed request.
type ErrorResponse struct {
	Error   string         `json:"error"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// RespondOK writes a 200 JSON body.
func RespondOK(c *gin.Context, body any) {
	c.JSON(http.StatusOK, body)
}

// RespondError maps an apperr.Kind to an HTTP status and writes the
// JSON error body. Errors that aren't an *apperr.Error are treated as
// StoreError-equivalent internal failures.
func RespondError(c *gin.Context, err error) {
	var e *apperr.Error
	if !errors.As(err, &e) {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal", Message: err.Error()})
		return
	}
	c.JSON(statusFor(e.Kind), ErrorResponse{Error: string(e.Kind), Message: e.Message, Details: e.Details})
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.KindNotFound, apperr.KindNameNotFound:
		return http.StatusNotFound
	case apperr.KindValidation, apperr.KindNonPositiveAmount, apperr.KindBalanceNegative, apperr.KindTransferEqualMoneybox:
		return http.StatusBadRequest
	case apperr.KindNameConflict, apperr.KindPriorityConflict, apperr.KindHasBalance:
		return http.StatusConflict
	case apperr.KindOverflowNotModifiable, apperr.KindOverflowNotDeletable, apperr.KindAdminNotDeletable:
		return http.StatusForbidden
	case apperr.KindInconsistentDatabase, apperr.KindAutomatedSavings, apperr.KindStore:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
