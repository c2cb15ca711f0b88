package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed structural validation checks.
var ErrValidation = errors.New("validation error")

// ErrNotAuthorized indicates that the acting identity may not perform the operation.
var ErrNotAuthorized = errors.New("not authorized")

// ErrUnauthenticated indicates that no usable identity was supplied with the request.
var ErrUnauthenticated = errors.New("unauthenticated")

// RuleViolation is a business-rule outcome. It is expected, recoverable and
// never logged as a fault.
type RuleViolation struct {
	Code    string
	Message string
}

func (v *RuleViolation) Error() string {
	return v.Message
}

// Is matches any RuleViolation carrying the same code, so wrapped copies compare equal.
func (v *RuleViolation) Is(target error) bool {
	t, ok := target.(*RuleViolation)
	if !ok {
		return false
	}
	return t.Code == v.Code
}

func newRule(code, msg string) *RuleViolation {
	return &RuleViolation{Code: code, Message: msg}
}

// Placement allocation rules.
var (
	ErrCapacityExhausted       = newRule("capacity_exhausted", "host organization has no open slots")
	ErrApplicationLimitReached = newRule("application_limit_reached", "student has reached the maximum number of open applications")
	ErrDuplicateRegistration   = newRule("duplicate_registration", "student already has an open placement at this organization")
	ErrInvalidTransition       = newRule("invalid_transition", "placement status transition is not allowed")
	ErrPlacementNotCompleted   = newRule("placement_not_completed", "final grade can only be recorded on a completed placement")
	ErrInvalidGradeRange       = newRule("invalid_grade_range", "grade is outside the allowed range")
	ErrOrganizationInactive    = newRule("organization_inactive", "host organization is not accepting placements")
	ErrInvalidPeriod           = newRule("invalid_period", "placement period end precedes its start")
)

// Journal review rules.
var (
	ErrPlacementNotEligible = newRule("placement_not_eligible", "placement is not accepted or in progress")
	ErrNarrativeTooShort    = newRule("narrative_too_short", "activity narrative is too short")
	ErrEntryLocked          = newRule("entry_locked", "journal entry is approved and can no longer change")
	ErrAlreadyApproved      = newRule("already_approved", "journal entry is already approved")
)

// AppError carries an infrastructure fault together with the HTTP status it maps to.
type AppError struct {
	Code    int
	Message string
	Err     error
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

// NewAppError wraps err as an infrastructure fault.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// Kind classifies an error for presentation.
type Kind int

const (
	KindInfrastructure Kind = iota
	KindRuleViolation
	KindNotAuthorized
	KindNotFound
	KindValidation
	KindUnauthenticated
)

// KindOf reports which category of the taxonomy err belongs to.
// Anything unrecognised is an infrastructure fault.
func KindOf(err error) Kind {
	var rule *RuleViolation
	switch {
	case errors.As(err, &rule):
		return KindRuleViolation
	case errors.Is(err, ErrNotAuthorized):
		return KindNotAuthorized
	case errors.Is(err, ErrUnauthenticated):
		return KindUnauthenticated
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrValidation):
		return KindValidation
	default:
		return KindInfrastructure
	}
}

// RuleCode returns the code of the rule violation wrapped in err, or "".
func RuleCode(err error) string {
	var rule *RuleViolation
	if errors.As(err, &rule) {
		return rule.Code
	}
	return ""
}

// HTTPStatus maps err onto a response status code.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindRuleViolation:
		if errors.Is(err, ErrNarrativeTooShort) || errors.Is(err, ErrInvalidGradeRange) || errors.Is(err, ErrInvalidPeriod) {
			return http.StatusUnprocessableEntity
		}
		return http.StatusConflict
	case KindNotAuthorized:
		return http.StatusForbidden
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	default:
		var appErr *AppError
		if errors.As(err, &appErr) && appErr.Code != 0 {
			return appErr.Code
		}
		return http.StatusInternalServerError
	}
}
