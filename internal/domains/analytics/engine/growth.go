package engine

// Growth returns the percentage delta between a current and a previous
// period scalar, rounded to 2 decimals. When the previous period is 0 the
// growth is reported as 0 regardless of the current value, hiding
// growth-from-zero signals. The policy is carried over unchanged from the
// dashboards this feeds; callers depend on it.
func Growth(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return Round2((current - previous) / previous * 100)
}
