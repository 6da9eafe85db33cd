package progress

// MasteryCategory maps a mastery percentage to its display label.
// Labels have no storage of their own; they are always derived.
func MasteryCategory(masteryPct float64) string {
	switch {
	case masteryPct >= 90:
		return "Expert"
	case masteryPct >= 80:
		return "Advanced"
	case masteryPct >= 70:
		return "Proficient"
	case masteryPct >= 60:
		return "Developing"
	case masteryPct >= 50:
		return "Beginning"
	default:
		return "Needs Support"
	}
}
