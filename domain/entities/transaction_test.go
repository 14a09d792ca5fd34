package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransaction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		tx      Transaction
		wantErr bool
	}{
		{
			name: "consistent debit",
			tx:   Transaction{Amount: -500, BalanceBefore: 1000, BalanceAfter: 500},
		},
		{
			name: "consistent credit",
			tx:   Transaction{Amount: 250, BalanceBefore: 0, BalanceAfter: 250},
		},
		{
			name:    "zero amount",
			tx:      Transaction{Amount: 0, BalanceBefore: 100, BalanceAfter: 100},
			wantErr: true,
		},
		{
			name:    "inconsistent balances",
			tx:      Transaction{Amount: -500, BalanceBefore: 1000, BalanceAfter: 400},
			wantErr: true,
		},
		{
			name:    "negative resulting balance",
			tx:      Transaction{Amount: -500, BalanceBefore: 400, BalanceAfter: -100},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tx.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransaction_Direction(t *testing.T) {
	credit := Transaction{Amount: 10}
	debit := Transaction{Amount: -10}

	assert.True(t, credit.IsCredit())
	assert.False(t, credit.IsDebit())
	assert.True(t, debit.IsDebit())
	assert.False(t, debit.IsCredit())
}

func TestUser_ValidateAmount(t *testing.T) {
	user := &User{UserID: 1, Balance: 100}

	assert.NoError(t, user.ValidateAmount(100))
	assert.ErrorIs(t, user.ValidateAmount(0), ErrInvalidAmount)
	assert.ErrorIs(t, user.ValidateAmount(-5), ErrInvalidAmount)
	assert.ErrorIs(t, user.ValidateAmount(101), ErrInsufficientFunds)
}

func TestUser_CanAfford(t *testing.T) {
	user := &User{Balance: 50}
	assert.True(t, user.CanAfford(50))
	assert.False(t, user.CanAfford(51))
}
