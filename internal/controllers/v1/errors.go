package v1

import (
	"errors"
	"net/http"

	"github.com/envelope-zero/salvadanaio/internal/ledger"
	"github.com/envelope-zero/salvadanaio/internal/models"
)

// status returns the HTTP status code for an error.
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) || errors.Is(err, ledger.ErrTransactionNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

var (
	errAmountQueryParameter = errors.New("the amount query parameter must be a decimal number")
	errTotalQueryParameter  = errors.New("the total query parameter must be a decimal number")
	errEnvelopeKindUnknown  = errors.New("the envelope kind must be one of fixedTarget, recurringRefill, openEnded")
)
