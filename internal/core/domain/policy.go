package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/SscSPs/internship_placement_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Policy carries the configurable limits enforced by the core.
type Policy struct {
	MaxOpenApplications int
	MinNarrativeLength  int
	GradeMin            decimal.Decimal
	GradeMax            decimal.Decimal
}

// DefaultPolicy returns the stock limits: three open applications,
// fifty-character narratives and grades between 0 and 100.
func DefaultPolicy() Policy {
	return Policy{
		MaxOpenApplications: 3,
		MinNarrativeLength:  50,
		GradeMin:            decimal.Zero,
		GradeMax:            decimal.NewFromInt(100),
	}
}

// NarrativeLength counts characters of the activity, ignoring surrounding whitespace.
func NarrativeLength(activity string) int {
	return utf8.RuneCountInString(strings.TrimSpace(activity))
}

// ValidateNarrative rejects an activity shorter than the minimum. The text
// itself is never altered.
func (p Policy) ValidateNarrative(activity string) error {
	if n := NarrativeLength(activity); n < p.MinNarrativeLength {
		return fmt.Errorf("%w: %d characters, at least %d required", apperrors.ErrNarrativeTooShort, n, p.MinNarrativeLength)
	}
	return nil
}

// GradeScale is the number of decimal places a stored grade keeps.
const GradeScale = 2

// ValidateGrade rejects a grade outside [GradeMin, GradeMax] or one carrying
// more than GradeScale significant decimal places.
func (p Policy) ValidateGrade(grade decimal.Decimal) error {
	if grade.LessThan(p.GradeMin) || grade.GreaterThan(p.GradeMax) {
		return fmt.Errorf("%w: %s not in [%s, %s]", apperrors.ErrInvalidGradeRange, grade.String(), p.GradeMin.String(), p.GradeMax.String())
	}
	if !grade.Equal(grade.Round(GradeScale)) {
		return fmt.Errorf("%w: %s has more than %d decimal places", apperrors.ErrInvalidGradeRange, grade.String(), GradeScale)
	}
	return nil
}
