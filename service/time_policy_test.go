package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrFloat(v float64) *float64 { return &v }

func TestComputeTimePolicyPartialRelease(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	dist := now.AddDate(0, 0, -200)

	policy := ComputeTimePolicy(now, &dist, ptrFloat(10000))

	require.False(t, policy.Empty())
	assert.Equal(t, 200, policy.ElapsedDays)
	assert.Equal(t, 0.5, policy.ReleasedFraction)

	// The client-facing text states the absolute amount and nothing about
	// how it was derived.
	assert.Contains(t, policy.Instructions, "R$ 5.000,00")
	assert.NotContains(t, policy.Instructions, "50%")
	assert.NotContains(t, policy.Instructions, "0.5")
	assert.NotContains(t, policy.Instructions, "0,5")
	assert.Contains(t, policy.Instructions, "O restante é repassado ao longo do processo.")
}

func TestComputeTimePolicyFullRelease(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	dist := now.AddDate(0, 0, -400)

	policy := ComputeTimePolicy(now, &dist, ptrFloat(10000))

	assert.Equal(t, 400, policy.ElapsedDays)
	assert.Equal(t, 1.0, policy.ReleasedFraction)
	assert.Contains(t, policy.Instructions, "R$ 10.000,00")
	assert.Contains(t, policy.Instructions, "integral")
}

func TestComputeTimePolicyThresholdBoundary(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	oneShort := now.AddDate(0, 0, -364)
	policy := ComputeTimePolicy(now, &oneShort, ptrFloat(8000))
	assert.Equal(t, 0.5, policy.ReleasedFraction)
	assert.Contains(t, policy.Instructions, "R$ 4.000,00")

	exact := now.AddDate(0, 0, -365)
	policy = ComputeTimePolicy(now, &exact, ptrFloat(8000))
	assert.Equal(t, 1.0, policy.ReleasedFraction)
	assert.Contains(t, policy.Instructions, "R$ 8.000,00")
}

func TestComputeTimePolicyNoDistributionDate(t *testing.T) {
	policy := ComputeTimePolicy(time.Now(), nil, ptrFloat(10000))
	assert.True(t, policy.Empty())
	assert.Equal(t, 0, policy.ElapsedDays)
	assert.Equal(t, 0.0, policy.ReleasedFraction)
}

func TestComputeTimePolicyNoCaseValue(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	dist := now.AddDate(0, 0, -100)

	policy := ComputeTimePolicy(now, &dist, nil)

	require.False(t, policy.Empty())
	assert.Contains(t, policy.Instructions, "parcial")
	assert.NotContains(t, policy.Instructions, "R$")
}

func TestComputeTimePolicyFutureDateClamped(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	future := now.AddDate(0, 0, 30)

	policy := ComputeTimePolicy(now, &future, ptrFloat(1000))

	assert.Equal(t, 0, policy.ElapsedDays)
	assert.Equal(t, 0.5, policy.ReleasedFraction)
}

func TestFormatBRL(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{5000, "R$ 5.000,00"},
		{10000, "R$ 10.000,00"},
		{1234567.89, "R$ 1.234.567,89"},
		{0.5, "R$ 0,50"},
		{999.99, "R$ 999,99"},
		{-250.10, "-R$ 250,10"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatBRL(tt.value), "value %v", tt.value)
	}
}
