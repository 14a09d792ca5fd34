package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComplianceProfile_Age(t *testing.T) {
	now := time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		birthDate time.Time
		want      int
	}{
		{"birthday already passed this year", time.Date(2000, 3, 1, 0, 0, 0, 0, time.UTC), 26},
		{"birthday later this year", time.Date(2000, 9, 1, 0, 0, 0, 0, time.UTC), 25},
		{"eighteenth birthday today", time.Date(2008, 6, 15, 0, 0, 0, 0, time.UTC), 18},
		{"turns eighteen tomorrow", time.Date(2008, 6, 16, 0, 0, 0, 0, time.UTC), 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &ComplianceProfile{BirthDate: tt.birthDate}
			assert.Equal(t, tt.want, p.Age(now))
		})
	}
}

func TestJurisdictionSets(t *testing.T) {
	for _, state := range []string{"WA", "ID", "NV", "MI"} {
		assert.True(t, IsIneligibleState(state), state)
	}
	assert.False(t, IsIneligibleState("CA"))
	assert.False(t, IsIneligibleState("NY"))

	assert.True(t, IsEligibleCountry("US"))
	assert.True(t, IsEligibleCountry("CA"))
	assert.False(t, IsEligibleCountry("UK"))
}

func TestComplianceProfile_HasAcceptedTerms(t *testing.T) {
	p := &ComplianceProfile{}
	assert.False(t, p.HasAcceptedTerms())

	accepted := time.Now().UTC()
	p.TermsAcceptedAt = &accepted
	assert.True(t, p.HasAcceptedTerms())
}
