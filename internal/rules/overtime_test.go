package rules

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestOvertimeMultiplier_Boundaries(t *testing.T) {
	tests := []struct {
		years float64
		want  float64
	}{
		{0, 1.00},
		{0.8, 1.00},
		{0.999, 1.00},
		{1.0, 1.25},
		{1.999, 1.25},
		{2.0, 1.50},
		{2.001, 1.70},
		{3.4, 1.70},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, OvertimeMultiplier(tt.years), "years=%v", tt.years)
	}
}

func TestFormatMultiplier(t *testing.T) {
	assert.Equal(t, "1.50x", FormatMultiplier(1.5))
	assert.Equal(t, "1.70x", FormatMultiplier(OvertimeMultiplier(3.4)))
	assert.Equal(t, "1.00x", FormatMultiplier(1))
}

func TestOvertimeMultiplier_Properties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("more than two years pays 1.70", prop.ForAll(
		func(y float64) bool { return OvertimeMultiplier(y) == 1.70 },
		gen.Float64Range(2.0001, 60),
	))
	properties.Property("one to two years pays 1.25", prop.ForAll(
		func(y float64) bool { return OvertimeMultiplier(y) == 1.25 },
		gen.Float64Range(1, 1.9999),
	))
	properties.Property("under one year pays 1.00", prop.ForAll(
		func(y float64) bool { return OvertimeMultiplier(y) == 1.00 },
		gen.Float64Range(0, 0.9999),
	))
	properties.Property("multiplier never decreases with tenure", prop.ForAll(
		func(a, b float64) bool {
			if a > b {
				a, b = b, a
			}
			return OvertimeMultiplier(a) <= OvertimeMultiplier(b)
		},
		gen.Float64Range(0, 10),
		gen.Float64Range(0, 10),
	))

	properties.TestingRun(t)
}
