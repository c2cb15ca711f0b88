package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/internship_placement_app/internal/apperrors"
	"github.com/SscSPs/internship_placement_app/internal/core/domain"
)

// RecordGrade writes the final grade. The status check comes before the range
// check, so any non-completed placement reports PlacementNotCompleted.
func (s *placementService) RecordGrade(ctx context.Context, actor domain.Actor, placementID string, grade decimal.Decimal) (*domain.Placement, error) {
	logAttrs := []any{
		slog.String("placement_id", placementID),
		slog.String("grade", grade.String()),
	}

	var placement *domain.Placement
	err := s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		p, err := s.placementRepo.FindPlacementByIDForUpdate(ctx, placementID)
		if err != nil {
			return err
		}
		if !actor.IsAdmin() && !actor.IsSupervisor(p.SupervisorID) {
			return notAuthorized("only the assigned supervisor may grade placement %s", placementID)
		}
		if p.Status != domain.PlacementCompleted {
			return fmt.Errorf("%w: placement is %s", apperrors.ErrPlacementNotCompleted, p.Status)
		}
		if err := s.policy.ValidateGrade(grade); err != nil {
			return err
		}

		p.FinalGrade = &grade
		p.Touch(actor.ID, s.now())
		if err := s.placementRepo.UpdatePlacement(ctx, *p); err != nil {
			return err
		}
		placement = p
		return nil
	})
	if err != nil {
		s.LogFailure(ctx, err, "Grade not recorded", logAttrs...)
		return nil, err
	}

	s.LogInfo(ctx, "Final grade recorded", logAttrs...)
	return placement, nil
}
