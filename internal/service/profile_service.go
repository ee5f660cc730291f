package service

import (
	"context"
	"time"

	"estudio/internal/domain"
	"estudio/internal/models"

	"github.com/rs/zerolog"
)

type ProfileService struct {
	profiles            domain.ProfileRepository
	defaultMonthlyHours int
	defaultDailyHours   int
	logger              *zerolog.Logger
}

func NewProfileService(profiles domain.ProfileRepository, defaultMonthlyHours, defaultDailyHours int, logger *zerolog.Logger) *ProfileService {
	if defaultMonthlyHours <= 0 {
		defaultMonthlyHours = models.DefaultMonthlyHoursLimit
	}
	if defaultDailyHours <= 0 {
		defaultDailyHours = models.DefaultDailyHoursLimit
	}
	return &ProfileService{
		profiles:            profiles,
		defaultMonthlyHours: defaultMonthlyHours,
		defaultDailyHours:   defaultDailyHours,
		logger:              logger,
	}
}

// EnsureProfile returns the profile for the identity, creating one with the
// default quotas the first time the identity is seen.
func (s *ProfileService) EnsureProfile(ctx context.Context, id, fullName, email string) (*models.Profile, error) {
	profile, err := s.profiles.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return profile, nil
	}

	profile = &models.Profile{
		ID:                id,
		FullName:          fullName,
		Email:             email,
		MonthlyHoursLimit: s.defaultMonthlyHours,
		DailyHoursLimit:   s.defaultDailyHours,
	}
	if err := s.profiles.CreateProfile(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Msg("created member profile with default quotas")
	return profile, nil
}

func (s *ProfileService) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	return s.profiles.GetProfile(ctx, id)
}

func (s *ProfileService) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	return s.profiles.ListProfiles(ctx)
}

func (s *ProfileService) UpdateProfile(ctx context.Context, profile *models.Profile) error {
	return s.profiles.UpdateProfile(ctx, profile)
}

// ResetHours zeroes the member's monthly counter and stamps the reset date.
func (s *ProfileService) ResetHours(ctx context.Context, id string) (*models.Profile, error) {
	profile, err := s.profiles.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	profile.HoursUsedThisMonth = 0
	profile.HoursResetDate = time.Now()
	if err := s.profiles.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Msg("monthly hours reset")
	return profile, nil
}

// AddHours raises the member's monthly allowance.
func (s *ProfileService) AddHours(ctx context.Context, id string, hours int) (*models.Profile, error) {
	profile, err := s.profiles.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	profile.MonthlyHoursLimit += hours
	if err := s.profiles.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", id).Int("hours", hours).Int("monthly_limit", profile.MonthlyHoursLimit).Msg("monthly allowance raised")
	return profile, nil
}

// SetLimits overwrites both quota knobs at once.
func (s *ProfileService) SetLimits(ctx context.Context, id string, monthly, daily int) (*models.Profile, error) {
	profile, err := s.profiles.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	if monthly > 0 {
		profile.MonthlyHoursLimit = monthly
	}
	if daily > 0 {
		profile.DailyHoursLimit = daily
	}
	if err := s.profiles.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *ProfileService) GetRole(ctx context.Context, userID string) (string, error) {
	return s.profiles.GetRole(ctx, userID)
}

func (s *ProfileService) SetRole(ctx context.Context, userID, role string) error {
	if role != models.RoleAdmin && role != models.RoleMember {
		return ErrUnknownRole
	}
	return s.profiles.SetRole(ctx, userID, role)
}

func (s *ProfileService) ListAdminIDs(ctx context.Context) ([]string, error) {
	return s.profiles.ListAdminIDs(ctx)
}
