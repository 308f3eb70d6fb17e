package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/TeamSoftLion/crm/internal/billing"
	"github.com/TeamSoftLion/crm/internal/models"
	"github.com/TeamSoftLion/crm/internal/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EnrollInput adds a student to a group. JoinDate defaults to today.
type EnrollInput struct {
	StudentID uuid.UUID
	GroupID   uuid.UUID
	JoinDate  *time.Time
}

// TransferInput moves a student between groups. TransferDate defaults to today.
type TransferInput struct {
	StudentID    uuid.UUID
	OldGroupID   uuid.UUID
	NewGroupID   uuid.UUID
	TransferDate *time.Time
}

// EnrollmentService keeps enrollments and the join-month charges in step
type EnrollmentService struct {
	repos     *repository.Repositories
	ledgerSvc *LedgerService
	auditSvc  *AuditService
	loc       *time.Location
	now       func() time.Time
}

func NewEnrollmentService(repos *repository.Repositories, ledgerSvc *LedgerService, auditSvc *AuditService, loc *time.Location) *EnrollmentService {
	if loc == nil {
		loc = time.UTC
	}
	return &EnrollmentService{repos: repos, ledgerSvc: ledgerSvc, auditSvc: auditSvc, loc: loc, now: time.Now}
}

func (s *EnrollmentService) today() time.Time {
	return billing.DateOnly(s.now().In(s.loc))
}

// Enroll creates an ACTIVE enrollment and its first charge in one transaction
func (s *EnrollmentService) Enroll(ctx context.Context, actor Actor, input EnrollInput) (*models.Enrollment, *models.TuitionCharge, error) {
	joinDate := s.today()
	if input.JoinDate != nil {
		joinDate = billing.DateOnly(*input.JoinDate)
	}

	var enrollment *models.Enrollment
	var charge *models.TuitionCharge
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		if ok, err := tx.Student.Exists(ctx, input.StudentID); err != nil {
			return err
		} else if !ok {
			return fmt.Errorf("%w: student", ErrNotFound)
		}
		if err := requireActiveGroup(ctx, tx, input.GroupID); err != nil {
			return err
		}

		_, err := tx.Enrollment.FindActive(ctx, input.StudentID, input.GroupID)
		if err == nil {
			return fmt.Errorf("%w: student is already active in this group", ErrConflict)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		enrollment = &models.Enrollment{
			StudentID: input.StudentID,
			GroupID:   input.GroupID,
			JoinDate:  joinDate,
			Status:    models.EnrollmentStatusActive,
		}
		if err := tx.Enrollment.Create(ctx, enrollment); err != nil {
			return err
		}

		charge, err = s.ledgerSvc.computeInitialCharge(ctx, tx, input.StudentID, input.GroupID, joinDate)
		return err
	})
	if err != nil {
		return nil, nil, translateError(err)
	}

	s.auditSvc.Log(ctx, actor, models.AuditActionEnroll, "Enrollment", enrollment.ID,
		fmt.Sprintf("Student %s enrolled in group %s from %s", input.StudentID, input.GroupID, joinDate.Format(models.DateLayout)))

	enrollment, err = s.repos.Enrollment.FindByID(ctx, enrollment.ID)
	if err != nil {
		return nil, nil, translateError(err)
	}
	return enrollment, charge, nil
}

// Transfer closes the enrollment in the old group, opens one in the new group and
// settles the transfer month's charges, all or nothing.
func (s *EnrollmentService) Transfer(ctx context.Context, actor Actor, input TransferInput) (*models.Enrollment, *models.TuitionCharge, error) {
	if input.OldGroupID == input.NewGroupID {
		return nil, nil, fmt.Errorf("%w: old and new group are the same", ErrInvalidInput)
	}
	transferDate := s.today()
	if input.TransferDate != nil {
		transferDate = billing.DateOnly(*input.TransferDate)
	}

	var enrollment *models.Enrollment
	var charge *models.TuitionCharge
	err := s.repos.Transaction(ctx, func(tx *repository.Repositories) error {
		old, err := tx.Enrollment.FindActive(ctx, input.StudentID, input.OldGroupID)
		if err != nil {
			return notFound("active enrollment in old group", err)
		}
		if err := requireActiveGroup(ctx, tx, input.NewGroupID); err != nil {
			return err
		}
		if _, err := tx.Enrollment.FindActive(ctx, input.StudentID, input.NewGroupID); err == nil {
			return fmt.Errorf("%w: student is already active in the new group", ErrConflict)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		old.Status = models.EnrollmentStatusLeft
		old.LeaveDate = &transferDate
		if err := tx.Enrollment.Update(ctx, old); err != nil {
			return err
		}

		enrollment = &models.Enrollment{
			StudentID: input.StudentID,
			GroupID:   input.NewGroupID,
			JoinDate:  transferDate,
			Status:    models.EnrollmentStatusActive,
		}
		if err := tx.Enrollment.Create(ctx, enrollment); err != nil {
			return err
		}

		charge, err = s.ledgerSvc.transferCharge(ctx, tx, input.StudentID, input.OldGroupID, input.NewGroupID, transferDate)
		return err
	})
	if err != nil {
		return nil, nil, translateError(err)
	}

	s.auditSvc.Log(ctx, actor, models.AuditActionTransfer, "Enrollment", enrollment.ID,
		fmt.Sprintf("Student %s transferred from group %s to %s on %s", input.StudentID, input.OldGroupID, input.NewGroupID, transferDate.Format(models.DateLayout)))

	enrollment, err = s.repos.Enrollment.FindByID(ctx, enrollment.ID)
	if err != nil {
		return nil, nil, translateError(err)
	}
	return enrollment, charge, nil
}

// List returns a page of enrollments
func (s *EnrollmentService) List(ctx context.Context, query *repository.ListQuery) ([]models.Enrollment, int64, error) {
	return s.repos.Enrollment.List(ctx, query)
}

// Get returns one enrollment with its student and group
func (s *EnrollmentService) Get(ctx context.Context, id uuid.UUID) (*models.Enrollment, error) {
	enrollment, err := s.repos.Enrollment.FindByID(ctx, id)
	if err != nil {
		return nil, notFound("enrollment", err)
	}
	return enrollment, nil
}

// UpdateStatus changes the enrollment status. LEFT records the leave date (default today);
// ACTIVE and PAUSED clear it. Charges are not touched.
func (s *EnrollmentService) UpdateStatus(ctx context.Context, actor Actor, id uuid.UUID, status string, leaveDate *time.Time) (*models.Enrollment, error) {
	if !models.IsValidEnrollmentStatus(status) {
		return nil, fmt.Errorf("%w: unknown enrollment status %q", ErrInvalidInput, status)
	}

	enrollment, err := s.repos.Enrollment.FindByID(ctx, id)
	if err != nil {
		return nil, notFound("enrollment", err)
	}

	if status == models.EnrollmentStatusActive && enrollment.Status != models.EnrollmentStatusActive {
		if _, err := s.repos.Enrollment.FindActive(ctx, enrollment.StudentID, enrollment.GroupID); err == nil {
			return nil, fmt.Errorf("%w: student is already active in this group", ErrConflict)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	enrollment.Status = status
	enrollment.LeaveDate = nil
	if status == models.EnrollmentStatusLeft {
		leave := s.today()
		if leaveDate != nil {
			leave = billing.DateOnly(*leaveDate)
		}
		if leave.Before(billing.DateOnly(enrollment.JoinDate)) {
			return nil, fmt.Errorf("%w: leave date is before join date", ErrInvalidInput)
		}
		enrollment.LeaveDate = &leave
	}

	if err := s.repos.Enrollment.Update(ctx, enrollment); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, actor, models.AuditActionUpdateStatus, "Enrollment", enrollment.ID,
		fmt.Sprintf("Enrollment status set to %s", status))
	return enrollment, nil
}

// Delete removes an enrollment record. Charges are kept.
func (s *EnrollmentService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	if _, err := s.repos.Enrollment.FindByID(ctx, id); err != nil {
		return notFound("enrollment", err)
	}
	if err := s.repos.Enrollment.Delete(ctx, id); err != nil {
		return err
	}

	s.auditSvc.Log(ctx, actor, models.AuditActionDelete, "Enrollment", id, "Enrollment deleted")
	return nil
}

func requireActiveGroup(ctx context.Context, tx *repository.Repositories, groupID uuid.UUID) error {
	group, err := tx.Group.FindByID(ctx, groupID)
	if err != nil {
		return notFound("group", err)
	}
	if !group.IsActive {
		return fmt.Errorf("%w: group is not active", ErrInvalidInput)
	}
	return nil
}
