package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/elearning-service/internal/models"
)

const entityMembership = "membership"

// defaultMemberships is the catalog a fresh installation starts with
var defaultMemberships = []models.Membership{
	{
		Name:     models.MembershipBronze.Label(),
		Price:    models.DefaultMembershipPrice,
		Features: "Access to Bronze courses",
	},
	{
		Name:     models.MembershipSilver.Label(),
		Price:    20,
		Features: "Access to Bronze and Silver courses",
	},
	{
		Name:     models.MembershipGold.Label(),
		Price:    30,
		Features: "Access to every course",
	},
}

type membershipService struct {
	serviceDeps
}

func NewMembershipService(deps Dependencies) MembershipService {
	return &membershipService{serviceDeps: newServiceDeps(deps)}
}

func (s *membershipService) Create(ctx context.Context, membership *models.Membership) (*models.Membership, error) {
	s.logger.Info("Creating membership", "name", membership.Name)

	if err := s.validate(entityMembership, membership); err != nil {
		return nil, err
	}
	if err := s.repo.Membership().Create(ctx, nil, membership); err != nil {
		return nil, translateRepoError(err, entityMembership, membership.ID)
	}

	s.logger.Info("Membership created successfully", "membership_id", membership.ID)
	return membership, nil
}

func (s *membershipService) GetByID(ctx context.Context, id uint) (*models.Membership, error) {
	membership, err := s.repo.Membership().GetByID(ctx, nil, id)
	if err != nil {
		return nil, translateRepoError(err, entityMembership, id)
	}
	return membership, nil
}

func (s *membershipService) Update(ctx context.Context, membership *models.Membership) (*models.Membership, error) {
	if err := s.validate(entityMembership, membership); err != nil {
		return nil, err
	}

	err := s.withTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.repo.Membership().GetByID(ctx, tx, membership.ID); err != nil {
			return err
		}
		return s.repo.Membership().Update(ctx, tx, membership)
	})
	if err != nil {
		return nil, translateRepoError(err, entityMembership, membership.ID)
	}

	s.logger.Info("Membership updated successfully", "membership_id", membership.ID)
	return membership, nil
}

func (s *membershipService) Delete(ctx context.Context, id uint) error {
	s.logger.Info("Deleting membership", "membership_id", id)

	if err := s.repo.Membership().Delete(ctx, nil, id); err != nil {
		return translateRepoError(err, entityMembership, id)
	}
	return nil
}

func (s *membershipService) List(ctx context.Context) ([]*models.Membership, error) {
	memberships, err := s.repo.Membership().List(ctx, nil)
	if err != nil {
		return nil, translateRepoError(err, entityMembership, nil)
	}
	return memberships, nil
}

func (s *membershipService) SeedDefaults(ctx context.Context) error {
	seeded := 0
	err := s.withTx(ctx, func(tx *gorm.DB) error {
		count, err := s.repo.Membership().Count(ctx, tx)
		if err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		for _, plan := range defaultMemberships {
			membership := plan
			if err := s.repo.Membership().Create(ctx, tx, &membership); err != nil {
				return err
			}
			seeded++
		}
		return nil
	})
	if err != nil {
		return translateRepoError(err, entityMembership, nil)
	}

	if seeded > 0 {
		s.logger.Info("Seeded default memberships", "count", seeded)
	}
	return nil
}
