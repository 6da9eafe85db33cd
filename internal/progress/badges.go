package progress

// BadgeDef defines a single badge.
type BadgeDef struct {
	Name        string
	Description string
}

// Badges maps badge keys to their definitions.
var Badges = map[string]BadgeDef{
	"first_quiz":   {Name: "First Lap", Description: "Complete your first quiz"},
	"quizzes_10":   {Name: "Regular Racer", Description: "Complete 10 quizzes"},
	"quizzes_25":   {Name: "Track Veteran", Description: "Complete 25 quizzes"},
	"points_100":   {Name: "Century Club", Description: "Earn 100 total points"},
	"points_500":   {Name: "Point Collector", Description: "Earn 500 total points"},
	"points_1000":  {Name: "Point Champion", Description: "Earn 1,000 total points"},
	"mastery_70":   {Name: "Proficient", Description: "Reach 70% mastery in a topic"},
	"mastery_80":   {Name: "Advanced", Description: "Reach 80% mastery in a topic"},
	"mastery_90":   {Name: "Expert", Description: "Reach 90% mastery in a topic"},
	"perfect_quiz": {Name: "Perfect Run", Description: "Answer every question in a quiz correctly"},
	"speed_racer":  {Name: "Speed Racer", Description: "Finish a quiz fast enough for the maximum time bonus"},
}

// Snapshot carries the state a badge rule can look at after one
// completed session has been folded in.
type Snapshot struct {
	TotalQuizzes int     // completed sessions across all topics
	TotalPoints  int     // lifetime points across all topics
	TopicMastery float64 // mastery for the topic just updated
	PerfectQuiz  bool    // the session had no wrong answers
	SpeedRacer   bool    // the session earned the full time bonus
}

// CheckBadges returns badge keys the student qualifies for given the
// snapshot. The caller diffs against already-earned keys and awards
// only new ones; badges are never revoked.
func CheckBadges(snap Snapshot) []string {
	var earned []string

	if snap.TotalQuizzes >= 1 {
		earned = append(earned, "first_quiz")
	}
	if snap.TotalQuizzes >= 10 {
		earned = append(earned, "quizzes_10")
	}
	if snap.TotalQuizzes >= 25 {
		earned = append(earned, "quizzes_25")
	}

	if snap.TotalPoints >= 100 {
		earned = append(earned, "points_100")
	}
	if snap.TotalPoints >= 500 {
		earned = append(earned, "points_500")
	}
	if snap.TotalPoints >= 1000 {
		earned = append(earned, "points_1000")
	}

	if snap.TopicMastery >= 70 {
		earned = append(earned, "mastery_70")
	}
	if snap.TopicMastery >= 80 {
		earned = append(earned, "mastery_80")
	}
	if snap.TopicMastery >= 90 {
		earned = append(earned, "mastery_90")
	}

	if snap.PerfectQuiz {
		earned = append(earned, "perfect_quiz")
	}
	if snap.SpeedRacer {
		earned = append(earned, "speed_racer")
	}

	return earned
}
