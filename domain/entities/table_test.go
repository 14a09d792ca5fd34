package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTable_DerivesBuyInBounds(t *testing.T) {
	table, err := NewTable("High Stakes", 5, 10, 6)
	require.NoError(t, err)

	assert.Equal(t, int64(200), table.MinBuyIn)
	assert.Equal(t, int64(5000), table.MaxBuyIn)
	assert.Equal(t, TableStatusOpen, table.Status)
	assert.Equal(t, 6, table.MaxPlayers)
}

func TestNewTable_DefaultsMaxPlayers(t *testing.T) {
	table, err := NewTable("Casual", 1, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxPlayers, table.MaxPlayers)
}

func TestNewTable_Validation(t *testing.T) {
	tests := []struct {
		name       string
		tableName  string
		smallBlind int64
		bigBlind   int64
	}{
		{"empty name", "", 5, 10},
		{"zero small blind", "t", 0, 10},
		{"negative big blind", "t", 5, -10},
		{"small blind not below big blind", "t", 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTable(tt.tableName, tt.smallBlind, tt.bigBlind, 6)
			assert.Error(t, err)
		})
	}
}

func TestTable_ValidateBuyIn(t *testing.T) {
	table, err := NewTable("Bounds", 5, 10, 6)
	require.NoError(t, err)

	tests := []struct {
		name    string
		buyIn   int64
		wantErr error
	}{
		{"below minimum", 199, ErrInvalidBuyIn},
		{"at minimum", 200, nil},
		{"inside range", 1000, nil},
		{"at maximum", 5000, nil},
		{"above maximum", 5001, ErrInvalidBuyIn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := table.ValidateBuyIn(tt.buyIn)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTable_HasCapacity(t *testing.T) {
	table, err := NewTable("Full House", 5, 10, 2)
	require.NoError(t, err)

	assert.True(t, table.HasCapacity(0))
	assert.True(t, table.HasCapacity(1))
	assert.False(t, table.HasCapacity(2))
}

func TestTable_PotForBlinds(t *testing.T) {
	table, err := NewTable("Blinds", 5, 10, 6)
	require.NoError(t, err)
	assert.Equal(t, int64(15), table.PotForBlinds())
}
