package rules

import "fmt"

// OvertimeMultiplier maps years of service to the overtime pay multiplier.
// Callers pass a validated, non-negative number.
func OvertimeMultiplier(years float64) float64 {
	switch {
	case years > 2:
		return 1.70
	case years == 2:
		return 1.50
	case years >= 1:
		return 1.25
	default:
		return 1.00
	}
}

// FormatMultiplier renders a multiplier the way answers cite it, e.g. "1.50x".
func FormatMultiplier(m float64) string {
	return fmt.Sprintf("%.2fx", m)
}
