package feature

import (
	"math"
	"time"

	"github.com/lazypower/cadence/internal/activity"
)

// Built-in scoring constants.
const (
	sessionGap = 30 * time.Minute // a new session starts after a longer silence
	recencyCut = 30.0             // days; older events score a flat 0.1 recency
	noActivity = 999.0            // days_since_last_activity sentinel for empty histories
)

// eventWeights scores each event type's contribution to engagement.
// Unknown types weigh 1.
var eventWeights = map[string]float64{
	"goal_completed": 10,
	"task_completed": 5,
	"daily_check_in": 3,
	"comment":        2,
	"share":          4,
	"like":           1,
	"view":           0.5,
}

func weightOf(eventType string) float64 {
	if w, ok := eventWeights[eventType]; ok {
		return w
	}
	return 1
}

// builtins maps every built-in feature name to its single-step
// pipeline. Registered once by Store.Initialize.
func builtins() map[string]Step {
	return map[string]Step{
		"completion_rate":          CompletionRate,
		"streak_length":            StreakLength,
		"engagement_score":         EngagementScore,
		"activity_trend":           ActivityTrend,
		"session_frequency":        SessionFrequency,
		"goal_complexity":          GoalComplexity,
		"days_since_last_activity": DaysSinceLastActivity,
		"avg_session_length":       AvgSessionLength,
		"user_experience":          UserExperience,
		"social_engagement":        SocialEngagement,
		"check_in_consistency":     CheckInConsistency,
		"weekend_activity_rate":    WeekendActivityRate,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ageDays(now, t time.Time) float64 {
	return now.Sub(t).Hours() / 24
}

// sessionize splits time-ascending events into sessions: maximal runs
// where no consecutive gap exceeds sessionGap.
func sessionize(sorted []activity.Event) [][]activity.Event {
	var sessions [][]activity.Event
	var current []activity.Event
	for i, e := range sorted {
		if i > 0 && e.Time.Sub(sorted[i-1].Time) > sessionGap {
			sessions = append(sessions, current)
			current = nil
		}
		current = append(current, e)
	}
	if len(current) > 0 {
		sessions = append(sessions, current)
	}
	return sessions
}

// CompletionRate is goal completions over the profile's total goal
// count. A missing (or non-positive) total counts as 1 so the ratio is
// always defined.
func CompletionRate(a activity.UserActivity, now time.Time) float64 {
	total := a.ProfileNumber("total_goals", 1)
	if total <= 0 {
		total = 1
	}
	return float64(a.CountType("goal_completed")) / total
}

// StreakLength counts consecutive calendar days of daily check-ins
// ending at the most recent one. Duplicate check-ins on the same day
// do not extend the streak; the first gap over one day ends it.
func StreakLength(a activity.UserActivity, now time.Time) float64 {
	checkins := activity.SortedDesc(a.EventsOfType("daily_check_in"))
	if len(checkins) == 0 {
		return 0
	}

	streak := 1
	prev := dayOf(checkins[0].Time)
	for _, e := range checkins[1:] {
		day := dayOf(e.Time)
		gap := int(prev.Sub(day).Hours() / 24)
		if gap == 0 {
			continue
		}
		if gap != 1 {
			break
		}
		streak++
		prev = day
	}
	return float64(streak)
}

// EngagementScore sums weight(type) x recency over all events, scaled
// into [0,1]. Recency decays hyperbolically for the first 30 days and
// bottoms out at 0.1 after that.
func EngagementScore(a activity.UserActivity, now time.Time) float64 {
	total := 0.0
	for _, e := range a.Events {
		age := ageDays(now, e.Time)
		recency := 0.1
		if age < recencyCut {
			recency = 1 / (1 + age*0.1)
		}
		total += weightOf(e.Type) * recency
	}
	return clamp(total/100, 0, 1)
}

// ActivityTrend compares event rates between the older and newer half
// of the last 30 days' events, split by count. Positive means
// accelerating activity. Fewer than 2 qualifying events reads as flat.
func ActivityTrend(a activity.UserActivity, now time.Time) float64 {
	recent := activity.SortedAsc(activity.Since(a.Events, now.AddDate(0, 0, -30)))
	if len(recent) < 2 {
		return 0
	}

	half := len(recent) / 2
	firstRate := float64(half) / 15
	secondRate := float64(len(recent)-half) / 15
	return clamp(secondRate-firstRate, -1, 1)
}

// SessionFrequency counts sessions within the last 7 days. Note this
// is a raw session count over the window, not a normalized per-week
// rate.
func SessionFrequency(a activity.UserActivity, now time.Time) float64 {
	recent := activity.SortedAsc(activity.Since(a.Events, now.AddDate(0, 0, -7)))
	return float64(len(sessionize(recent)))
}

// GoalComplexity derives a [0,1] complexity score from the profile's
// average steps per goal and average goal duration.
func GoalComplexity(a activity.UserActivity, now time.Time) float64 {
	steps := a.ProfileNumber("avg_steps_per_goal", 5)
	duration := a.ProfileNumber("avg_goal_duration_days", 30)
	return clamp(steps*0.1+duration*0.01, 0, 1)
}

// DaysSinceLastActivity is the whole-day age of the newest event, or
// the 999 sentinel for an empty history.
func DaysSinceLastActivity(a activity.UserActivity, now time.Time) float64 {
	if len(a.Events) == 0 {
		return noActivity
	}
	last := a.Events[0].Time
	for _, e := range a.Events[1:] {
		if e.Time.After(last) {
			last = e.Time
		}
	}
	return math.Floor(ageDays(now, last))
}

// AvgSessionLength is the mean session duration in minutes across all
// sessions in the history. A single-event session has duration 0.
func AvgSessionLength(a activity.UserActivity, now time.Time) float64 {
	sorted := activity.SortedAsc(a.Events)
	sessions := sessionize(sorted)
	if len(sessions) == 0 {
		return 0
	}

	total := 0.0
	for _, s := range sessions {
		total += s[len(s)-1].Time.Sub(s[0].Time).Minutes()
	}
	return total / float64(len(sessions))
}

// UserExperience blends account age and goal count from the profile
// into a [0,1] maturity score.
func UserExperience(a activity.UserActivity, now time.Time) float64 {
	days := a.ProfileNumber("days_since_signup", 0)
	goals := a.ProfileNumber("total_goals", 0)
	return clamp(days*0.01+goals*0.1, 0, 1)
}

// SocialEngagement weighs shares over comments over likes. Unlike the
// other scores this one is intentionally unclamped and can exceed 1.
func SocialEngagement(a activity.UserActivity, now time.Time) float64 {
	shares := a.CountType("share")
	comments := a.CountType("comment")
	likes := a.CountType("like")
	return float64(3*shares+2*comments+likes) / 100
}

// CheckInConsistency measures how regular the user's check-in hour is:
// 1/(1+sigma) over the hour-of-day of daily check-ins, so lower
// variance scores higher. Fewer than two check-ins reads as a neutral
// 0.5.
func CheckInConsistency(a activity.UserActivity, now time.Time) float64 {
	checkins := a.EventsOfType("daily_check_in")
	if len(checkins) < 2 {
		return 0.5
	}

	hours := make([]float64, len(checkins))
	mean := 0.0
	for i, e := range checkins {
		h := float64(e.Time.Hour()) + float64(e.Time.Minute())/60
		hours[i] = h
		mean += h
	}
	mean /= float64(len(hours))

	variance := 0.0
	for _, h := range hours {
		variance += (h - mean) * (h - mean)
	}
	variance /= float64(len(hours))

	return 1 / (1 + math.Sqrt(variance))
}

// WeekendActivityRate is the fraction of all events falling on a
// Saturday or Sunday.
func WeekendActivityRate(a activity.UserActivity, now time.Time) float64 {
	if len(a.Events) == 0 {
		return 0
	}
	weekend := 0
	for _, e := range a.Events {
		switch e.Time.Weekday() {
		case time.Saturday, time.Sunday:
			weekend++
		}
	}
	return float64(weekend) / float64(len(a.Events))
}
