package apperrors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "rule violation", err: ErrCapacityExhausted, want: KindRuleViolation},
		{name: "wrapped rule violation", err: fmt.Errorf("register: %w", ErrApplicationLimitReached), want: KindRuleViolation},
		{name: "not authorized", err: fmt.Errorf("%w: reviewer is not the supervisor", ErrNotAuthorized), want: KindNotAuthorized},
		{name: "not found", err: ErrNotFound, want: KindNotFound},
		{name: "validation", err: fmt.Errorf("%w: bad date", ErrValidation), want: KindValidation},
		{name: "unauthenticated", err: ErrUnauthenticated, want: KindUnauthenticated},
		{name: "driver failure", err: NewAppError(500, "failed to reserve slot", errors.New("conn reset")), want: KindInfrastructure},
		{name: "context cancelled", err: context.Canceled, want: KindInfrastructure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestRuleViolationIs(t *testing.T) {
	copyOfRule := &RuleViolation{Code: ErrEntryLocked.Code, Message: "entry 42 is approved"}

	assert.ErrorIs(t, copyOfRule, ErrEntryLocked)
	assert.NotErrorIs(t, copyOfRule, ErrAlreadyApproved)
	assert.Equal(t, "entry_locked", RuleCode(fmt.Errorf("edit: %w", copyOfRule)))
	assert.Equal(t, "", RuleCode(ErrNotFound))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusConflict, HTTPStatus(ErrCapacityExhausted))
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(fmt.Errorf("%w: 12 < 50", ErrNarrativeTooShort)))
	assert.Equal(t, http.StatusUnprocessableEntity, HTTPStatus(ErrInvalidGradeRange))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(ErrNotAuthorized))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(ErrUnauthenticated))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(ErrNotFound))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(ErrValidation))
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(NewAppError(http.StatusServiceUnavailable, "database unavailable", nil)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}
