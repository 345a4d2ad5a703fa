package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditError_ErrorFormat(t *testing.T) {
	withCause := NewAuditError(ErrCodeNavigation, "navigation failed", errors.New("net::ERR_TIMED_OUT"))
	assert.Equal(t, "NAVIGATION_FAILED: navigation failed: net::ERR_TIMED_OUT", withCause.Error())

	bare := NewAuditError(ErrCodeInvalidInput, "unsupported scheme", nil)
	assert.Equal(t, "INVALID_INPUT: unsupported scheme", bare.Error())
}

func TestAuditError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewAuditError(ErrCodeLaunch, "browser launch failed", cause)

	assert.ErrorIs(t, err, cause)

	var auditErr *AuditError
	require.ErrorAs(t, error(err), &auditErr)
	assert.Equal(t, ErrCodeLaunch, auditErr.Code)
}
