package services

import (
	"context"
	"fmt"
	"time"

	"sweephouse/domain/entities"
	"sweephouse/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

const (
	checkTypeEligibility = "eligibility"
	checkTypeEntry       = "entry"
)

type eligibilityService struct {
	complianceRepo interfaces.ComplianceRepository
}

// NewEligibilityService creates a new eligibility service
func NewEligibilityService(complianceRepo interfaces.ComplianceRepository) interfaces.EligibilityService {
	return &eligibilityService{complianceRepo: complianceRepo}
}

// CheckEligibility evaluates the age, state and country rules in that
// priority order. Every check appends an audit row, pass or fail.
func (s *eligibilityService) CheckEligibility(ctx context.Context, userID int64) (*entities.EligibilityResult, error) {
	result, err := s.evaluate(ctx, userID, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if err := s.audit(ctx, checkTypeEligibility, result); err != nil {
		return nil, err
	}
	return result, nil
}

// VerifyEligibilityForEntry fails closed: ineligible unless every rule
// passes and terms acceptance is on record.
func (s *eligibilityService) VerifyEligibilityForEntry(ctx context.Context, userID int64) (*entities.EligibilityResult, error) {
	now := time.Now().UTC()
	result, err := s.evaluate(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	if result.Eligible {
		profile, err := s.complianceRepo.GetProfile(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to get compliance profile: %w", err)
		}
		if profile == nil || !profile.HasAcceptedTerms() {
			result = &entities.EligibilityResult{
				UserID:   userID,
				Eligible: false,
				Reason:   "terms and conditions not accepted",
			}
		}
	}

	if err := s.audit(ctx, checkTypeEntry, result); err != nil {
		return nil, err
	}
	return result, nil
}

// evaluate applies the rule set without side effects. Missing profiles are
// ineligible: the gate never defaults open.
func (s *eligibilityService) evaluate(ctx context.Context, userID int64, now time.Time) (*entities.EligibilityResult, error) {
	profile, err := s.complianceRepo.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get compliance profile: %w", err)
	}
	if profile == nil {
		return &entities.EligibilityResult{
			UserID:   userID,
			Eligible: false,
			Reason:   "no compliance profile on file",
		}, nil
	}

	if profile.Age(now) < entities.MinimumAge {
		return &entities.EligibilityResult{
			UserID:   userID,
			Eligible: false,
			Reason:   fmt.Sprintf("must be at least %d years of age", entities.MinimumAge),
		}, nil
	}

	if entities.IsIneligibleState(profile.State) {
		return &entities.EligibilityResult{
			UserID:   userID,
			Eligible: false,
			Reason:   fmt.Sprintf("sweepstakes play is not available in %s", profile.State),
		}, nil
	}

	if !entities.IsEligibleCountry(profile.Country) {
		return &entities.EligibilityResult{
			UserID:   userID,
			Eligible: false,
			Reason:   fmt.Sprintf("sweepstakes play is not available in %s", profile.Country),
		}, nil
	}

	return &entities.EligibilityResult{UserID: userID, Eligible: true}, nil
}

func (s *eligibilityService) audit(ctx context.Context, checkType string, result *entities.EligibilityResult) error {
	entry := &entities.ComplianceLog{
		UserID:    result.UserID,
		CheckType: checkType,
		Eligible:  result.Eligible,
		Reason:    result.Reason,
	}
	if err := s.complianceRepo.RecordCheck(ctx, entry); err != nil {
		return fmt.Errorf("failed to record compliance check: %w", err)
	}

	log.WithFields(log.Fields{
		"userID":    result.UserID,
		"checkType": checkType,
		"eligible":  result.Eligible,
		"reason":    result.Reason,
	}).Debug("Recorded eligibility check")

	return nil
}
