package progress

import "testing"

func earnedSet(snap Snapshot) map[string]bool {
	set := make(map[string]bool)
	for _, b := range CheckBadges(snap) {
		set[b] = true
	}
	return set
}

func TestCheckBadgesFirstQuiz(t *testing.T) {
	earned := earnedSet(Snapshot{TotalQuizzes: 1, TotalPoints: 40, TopicMastery: 60})
	if !earned["first_quiz"] {
		t.Error("expected first_quiz after one completed quiz")
	}
	if earned["quizzes_10"] || earned["points_100"] || earned["mastery_70"] {
		t.Errorf("unexpected badges: %v", earned)
	}
}

func TestCheckBadgesMilestones(t *testing.T) {
	earned := earnedSet(Snapshot{TotalQuizzes: 25, TotalPoints: 1200, TopicMastery: 92})
	for _, want := range []string{
		"first_quiz", "quizzes_10", "quizzes_25",
		"points_100", "points_500", "points_1000",
		"mastery_70", "mastery_80", "mastery_90",
	} {
		if !earned[want] {
			t.Errorf("expected %s in %v", want, earned)
		}
	}
}

func TestCheckBadgesSessionFlags(t *testing.T) {
	earned := earnedSet(Snapshot{TotalQuizzes: 2, PerfectQuiz: true, SpeedRacer: true})
	if !earned["perfect_quiz"] {
		t.Error("expected perfect_quiz")
	}
	if !earned["speed_racer"] {
		t.Error("expected speed_racer")
	}
}

func TestCheckBadgesEmptySnapshot(t *testing.T) {
	if earned := CheckBadges(Snapshot{}); len(earned) != 0 {
		t.Errorf("expected no badges for empty snapshot, got %v", earned)
	}
}

func TestBadgeKeysHaveDefinitions(t *testing.T) {
	snap := Snapshot{TotalQuizzes: 100, TotalPoints: 10000, TopicMastery: 100, PerfectQuiz: true, SpeedRacer: true}
	for _, key := range CheckBadges(snap) {
		if _, ok := Badges[key]; !ok {
			t.Errorf("badge %s has no catalog definition", key)
		}
	}
}
