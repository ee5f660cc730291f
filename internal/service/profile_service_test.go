package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"estudio/internal/models"
)

func newProfileService(profiles *mockProfiles) *ProfileService {
	logger := zerolog.Nop()
	return NewProfileService(profiles, 10, 4, &logger)
}

func TestEnsureProfile_CreatesWithDefaults(t *testing.T) {
	profiles := new(mockProfiles)
	svc := newProfileService(profiles)

	profiles.On("GetProfile", mock.Anything, "new-user").Return(nil, nil)
	profiles.On("CreateProfile", mock.Anything, mock.MatchedBy(func(p *models.Profile) bool {
		return p.ID == "new-user" && p.MonthlyHoursLimit == 10 && p.DailyHoursLimit == 4
	})).Return(nil)

	profile, err := svc.EnsureProfile(context.Background(), "new-user", "Ana", "ana@estudio.test")
	require.NoError(t, err)
	assert.Equal(t, "Ana", profile.FullName)
	profiles.AssertExpectations(t)
}

func TestEnsureProfile_ReturnsExisting(t *testing.T) {
	profiles := new(mockProfiles)
	svc := newProfileService(profiles)

	existing := &models.Profile{ID: "user", FullName: "Ana", MonthlyHoursLimit: 25}
	profiles.On("GetProfile", mock.Anything, "user").Return(existing, nil)

	profile, err := svc.EnsureProfile(context.Background(), "user", "ignored", "ignored")
	require.NoError(t, err)
	assert.Equal(t, 25, profile.MonthlyHoursLimit)
	profiles.AssertNotCalled(t, "CreateProfile", mock.Anything, mock.Anything)
}

func TestResetHours(t *testing.T) {
	profiles := new(mockProfiles)
	svc := newProfileService(profiles)

	existing := &models.Profile{ID: "user", HoursUsedThisMonth: 7.5, MonthlyHoursLimit: 10}
	profiles.On("GetProfile", mock.Anything, "user").Return(existing, nil)
	profiles.On("UpdateProfile", mock.Anything, mock.MatchedBy(func(p *models.Profile) bool {
		return p.HoursUsedThisMonth == 0 && !p.HoursResetDate.IsZero()
	})).Return(nil)

	profile, err := svc.ResetHours(context.Background(), "user")
	require.NoError(t, err)
	assert.Zero(t, profile.HoursUsedThisMonth)
	assert.False(t, profile.HoursResetDate.IsZero())
}

func TestResetHours_NotFound(t *testing.T) {
	profiles := new(mockProfiles)
	svc := newProfileService(profiles)

	profiles.On("GetProfile", mock.Anything, "ghost").Return(nil, nil)

	_, err := svc.ResetHours(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestAddHours(t *testing.T) {
	profiles := new(mockProfiles)
	svc := newProfileService(profiles)

	existing := &models.Profile{ID: "user", MonthlyHoursLimit: 10}
	profiles.On("GetProfile", mock.Anything, "user").Return(existing, nil)
	profiles.On("UpdateProfile", mock.Anything, mock.MatchedBy(func(p *models.Profile) bool {
		return p.MonthlyHoursLimit == 15
	})).Return(nil)

	profile, err := svc.AddHours(context.Background(), "user", 5)
	require.NoError(t, err)
	assert.Equal(t, 15, profile.MonthlyHoursLimit)
}

func TestSetLimits_IgnoresNonPositive(t *testing.T) {
	profiles := new(mockProfiles)
	svc := newProfileService(profiles)

	existing := &models.Profile{ID: "user", MonthlyHoursLimit: 10, DailyHoursLimit: 4}
	profiles.On("GetProfile", mock.Anything, "user").Return(existing, nil)
	profiles.On("UpdateProfile", mock.Anything, mock.Anything).Return(nil)

	profile, err := svc.SetLimits(context.Background(), "user", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, 20, profile.MonthlyHoursLimit)
	assert.Equal(t, 4, profile.DailyHoursLimit)
}

func TestSetRole_RejectsUnknown(t *testing.T) {
	profiles := new(mockProfiles)
	svc := newProfileService(profiles)

	err := svc.SetRole(context.Background(), "user", "owner")
	assert.ErrorIs(t, err, ErrUnknownRole)
	profiles.AssertNotCalled(t, "SetRole", mock.Anything, mock.Anything, mock.Anything)
}

func TestSetRole_Valid(t *testing.T) {
	profiles := new(mockProfiles)
	svc := newProfileService(profiles)

	profiles.On("SetRole", mock.Anything, "user", models.RoleAdmin).Return(nil)

	assert.NoError(t, svc.SetRole(context.Background(), "user", models.RoleAdmin))
	profiles.AssertExpectations(t)
}
