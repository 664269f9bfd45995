package delivery

// EstimatedTime maps a delivery distance to a human-readable time window.
// Bucket boundaries are inclusive on the lower side: exactly 5 km still
// falls in the shortest window.
func EstimatedTime(distanceKm float64) string {
	switch {
	case distanceKm <= 5:
		return "30-45 minutes"
	case distanceKm <= 10:
		return "45-60 minutes"
	case distanceKm <= 20:
		return "1-1.5 hours"
	case distanceKm <= 50:
		return "1.5-2.5 hours"
	default:
		return "2.5-4 hours"
	}
}
