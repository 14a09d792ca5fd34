package entities

import "time"

// MinimumAge is the sweepstakes age floor.
const MinimumAge = 18

// Jurisdiction rules are a fixed lookup; the rule text itself lives with
// the compliance team, this core only enforces the resulting sets.
var (
	ineligibleStates = map[string]bool{
		"WA": true,
		"ID": true,
		"NV": true,
		"MI": true,
	}

	eligibleCountries = map[string]bool{
		"US": true,
		"CA": true,
	}
)

// IsIneligibleState reports whether a state is excluded from sweepstakes play
func IsIneligibleState(state string) bool {
	return ineligibleStates[state]
}

// IsEligibleCountry reports whether a country is allowed sweepstakes play
func IsEligibleCountry(country string) bool {
	return eligibleCountries[country]
}

// ComplianceProfile holds the stored identity facts an eligibility check
// runs against.
type ComplianceProfile struct {
	UserID          int64      `db:"user_id"`
	BirthDate       time.Time  `db:"birth_date"`
	State           string     `db:"state"`
	Country         string     `db:"country"`
	TermsAcceptedAt *time.Time `db:"terms_accepted_at"`
	CreatedAt       time.Time  `db:"created_at"`
}

// Age computes the profile's age in whole years at the given time.
func (p *ComplianceProfile) Age(now time.Time) int {
	age := now.Year() - p.BirthDate.Year()
	// Birthday not yet reached this year
	if now.YearDay() < p.BirthDate.YearDay() {
		age--
	}
	return age
}

// HasAcceptedTerms returns true if the user recorded terms acceptance
func (p *ComplianceProfile) HasAcceptedTerms() bool {
	return p.TermsAcceptedAt != nil
}

// EligibilityResult is the outcome of one eligibility check. Reason carries
// the single highest-priority failure when ineligible.
type EligibilityResult struct {
	UserID   int64
	Eligible bool
	Reason   string
}

// ComplianceLog is one audit row; every eligibility check appends one
// regardless of outcome.
type ComplianceLog struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	CheckType string    `db:"check_type"`
	Eligible  bool      `db:"eligible"`
	Reason    string    `db:"reason"`
	CreatedAt time.Time `db:"created_at"`
}
