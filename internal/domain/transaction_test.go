package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestSignedEffect_Standalone(t *testing.T) {
	tx := &Transaction{
		AccountID: "checking",
		Amount:    decimal.NewFromInt(-120),
	}

	effect, ok := tx.SignedEffect("checking")
	assert.True(t, ok)
	assert.True(t, effect.Equal(decimal.NewFromInt(-120)))

	_, ok = tx.SignedEffect("savings")
	assert.False(t, ok)
}

func TestSignedEffect_TransferSymmetry(t *testing.T) {
	// -500 leaving checking means savings gains +500.
	tx := &Transaction{
		AccountID:            "checking",
		DestinationAccountID: strPtr("savings"),
		Amount:               decimal.NewFromInt(-500),
	}

	fromEffect, ok := tx.SignedEffect("checking")
	assert.True(t, ok)
	assert.True(t, fromEffect.Equal(decimal.NewFromInt(-500)))

	toEffect, ok := tx.SignedEffect("savings")
	assert.True(t, ok)
	assert.True(t, toEffect.Equal(decimal.NewFromInt(500)))

	_, ok = tx.SignedEffect("unrelated")
	assert.False(t, ok)
}

func TestSignedEffect_SourceWinsOverDestination(t *testing.T) {
	// A row never applies both sides to the same account.
	tx := &Transaction{
		AccountID:            "checking",
		DestinationAccountID: strPtr("checking"),
		Amount:               decimal.NewFromInt(-50),
	}

	effect, ok := tx.SignedEffect("checking")
	assert.True(t, ok)
	assert.True(t, effect.Equal(decimal.NewFromInt(-50)))
}

func TestIsTransfer(t *testing.T) {
	standalone := &Transaction{AccountID: "a"}
	transfer := &Transaction{AccountID: "a", DestinationAccountID: strPtr("b")}

	assert.False(t, standalone.IsTransfer())
	assert.True(t, transfer.IsTransfer())
}

func TestPeriodBefore(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Period
		expected bool
	}{
		{"earlier year", Period{2025, 12}, Period{2026, 1}, true},
		{"same year earlier month", Period{2026, 2}, Period{2026, 3}, true},
		{"equal", Period{2026, 3}, Period{2026, 3}, false},
		{"later month", Period{2026, 5}, Period{2026, 3}, false},
		{"later year earlier month", Period{2027, 1}, Period{2026, 12}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.a.Before(tt.b))
		})
	}
}

func TestPeriodPrevious(t *testing.T) {
	assert.Equal(t, Period{2024, 12}, Period{2025, 1}.Previous())
	assert.Equal(t, Period{2025, 6}, Period{2025, 7}.Previous())
}

func TestPeriodValid(t *testing.T) {
	assert.True(t, Period{2026, 1}.Valid())
	assert.True(t, Period{2026, 12}.Valid())
	assert.False(t, Period{2026, 0}.Valid())
	assert.False(t, Period{2026, 13}.Valid())
	assert.False(t, Period{1999, 5}.Valid())
	assert.False(t, Period{2101, 5}.Valid())
}
