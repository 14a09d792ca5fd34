package services

import (
	"context"
	"testing"
	"time"

	"sweephouse/domain/entities"
	"sweephouse/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func adultProfile(userID int64) *entities.ComplianceProfile {
	accepted := time.Now().UTC().Add(-24 * time.Hour)
	return &entities.ComplianceProfile{
		UserID:          userID,
		BirthDate:       time.Now().UTC().AddDate(-30, 0, 0),
		State:           "TX",
		Country:         "US",
		TermsAcceptedAt: &accepted,
	}
}

func TestEligibilityService_CheckEligibility(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		profile    *entities.ComplianceProfile
		eligible   bool
		wantReason string
	}{
		{
			name:       "no profile on file",
			profile:    nil,
			eligible:   false,
			wantReason: "no compliance profile on file",
		},
		{
			name: "underage",
			profile: &entities.ComplianceProfile{
				UserID:    7,
				BirthDate: time.Now().UTC().AddDate(-17, 0, 0),
				State:     "TX",
				Country:   "US",
			},
			eligible:   false,
			wantReason: "must be at least 18 years of age",
		},
		{
			name: "ineligible state",
			profile: &entities.ComplianceProfile{
				UserID:    7,
				BirthDate: time.Now().UTC().AddDate(-30, 0, 0),
				State:     "WA",
				Country:   "US",
			},
			eligible:   false,
			wantReason: "sweepstakes play is not available in WA",
		},
		{
			name: "ineligible country",
			profile: &entities.ComplianceProfile{
				UserID:    7,
				BirthDate: time.Now().UTC().AddDate(-30, 0, 0),
				State:     "LDN",
				Country:   "GB",
			},
			eligible:   false,
			wantReason: "sweepstakes play is not available in GB",
		},
		{
			name:     "eligible adult",
			profile:  adultProfile(7),
			eligible: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			complianceRepo := new(testhelpers.MockComplianceRepository)
			svc := NewEligibilityService(complianceRepo)

			complianceRepo.On("GetProfile", ctx, int64(7)).Return(tt.profile, nil)
			complianceRepo.On("RecordCheck", ctx, mock.MatchedBy(func(entry *entities.ComplianceLog) bool {
				return entry.UserID == 7 &&
					entry.CheckType == "eligibility" &&
					entry.Eligible == tt.eligible &&
					entry.Reason == tt.wantReason
			})).Return(nil)

			result, err := svc.CheckEligibility(ctx, 7)
			require.NoError(t, err)
			assert.Equal(t, tt.eligible, result.Eligible)
			assert.Equal(t, tt.wantReason, result.Reason)

			// Pass or fail, the check leaves an audit row
			complianceRepo.AssertExpectations(t)
		})
	}
}

func TestEligibilityService_CheckEligibility_AgeBeatsJurisdiction(t *testing.T) {
	ctx := context.Background()
	complianceRepo := new(testhelpers.MockComplianceRepository)
	svc := NewEligibilityService(complianceRepo)

	// Underage in an excluded state and country: the age reason wins
	complianceRepo.On("GetProfile", ctx, int64(7)).Return(&entities.ComplianceProfile{
		UserID:    7,
		BirthDate: time.Now().UTC().AddDate(-16, 0, 0),
		State:     "NV",
		Country:   "GB",
	}, nil)
	complianceRepo.On("RecordCheck", ctx, mock.Anything).Return(nil)

	result, err := svc.CheckEligibility(ctx, 7)
	require.NoError(t, err)
	assert.False(t, result.Eligible)
	assert.Equal(t, "must be at least 18 years of age", result.Reason)
}

func TestEligibilityService_VerifyEligibilityForEntry(t *testing.T) {
	ctx := context.Background()

	t.Run("terms accepted", func(t *testing.T) {
		complianceRepo := new(testhelpers.MockComplianceRepository)
		svc := NewEligibilityService(complianceRepo)

		complianceRepo.On("GetProfile", ctx, int64(7)).Return(adultProfile(7), nil)
		complianceRepo.On("RecordCheck", ctx, mock.MatchedBy(func(entry *entities.ComplianceLog) bool {
			return entry.CheckType == "entry" && entry.Eligible
		})).Return(nil)

		result, err := svc.VerifyEligibilityForEntry(ctx, 7)
		require.NoError(t, err)
		assert.True(t, result.Eligible)
		complianceRepo.AssertExpectations(t)
	})

	t.Run("terms not accepted", func(t *testing.T) {
		complianceRepo := new(testhelpers.MockComplianceRepository)
		svc := NewEligibilityService(complianceRepo)

		profile := adultProfile(7)
		profile.TermsAcceptedAt = nil
		complianceRepo.On("GetProfile", ctx, int64(7)).Return(profile, nil)
		complianceRepo.On("RecordCheck", ctx, mock.MatchedBy(func(entry *entities.ComplianceLog) bool {
			return entry.CheckType == "entry" &&
				!entry.Eligible &&
				entry.Reason == "terms and conditions not accepted"
		})).Return(nil)

		result, err := svc.VerifyEligibilityForEntry(ctx, 7)
		require.NoError(t, err)
		assert.False(t, result.Eligible)
		assert.Equal(t, "terms and conditions not accepted", result.Reason)
		complianceRepo.AssertExpectations(t)
	})

	t.Run("rule failure short-circuits terms check", func(t *testing.T) {
		complianceRepo := new(testhelpers.MockComplianceRepository)
		svc := NewEligibilityService(complianceRepo)

		profile := adultProfile(7)
		profile.State = "MI"
		complianceRepo.On("GetProfile", ctx, int64(7)).Return(profile, nil)
		complianceRepo.On("RecordCheck", ctx, mock.Anything).Return(nil)

		result, err := svc.VerifyEligibilityForEntry(ctx, 7)
		require.NoError(t, err)
		assert.False(t, result.Eligible)
		assert.Equal(t, "sweepstakes play is not available in MI", result.Reason)

		// The profile is read once for the rules; no second read for terms
		complianceRepo.AssertNumberOfCalls(t, "GetProfile", 1)
	})
}
