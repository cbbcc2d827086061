package milestone

// Threshold pairs a display label with the value that unlocks it. Tables are
// kept in ascending order; detection walks them from the top.
type Threshold struct {
	Value int64
	Label string
}

// Levels are lifetime step totals. A user's level is the index of the highest
// entry they have reached; everyone starts at level 0.
var Levels = []Threshold{
	{Value: 0, Label: "First Steps"},
	{Value: 10_000, Label: "Pathfinder"},
	{Value: 50_000, Label: "Trailblazer"},
	{Value: 100_000, Label: "Road Warrior"},
	{Value: 250_000, Label: "Marathon Mind"},
	{Value: 500_000, Label: "Globe Trotter"},
}

// DailyStepBadges are awarded for steps within a single calendar day.
var DailyStepBadges = []Threshold{
	{Value: 1_000, Label: "Warm Up"},
	{Value: 3_000, Label: "On The Move"},
	{Value: 5_000, Label: "Steady Strider"},
	{Value: 8_000, Label: "Power Walker"},
	{Value: 10_000, Label: "Ten K Day"},
	{Value: 15_000, Label: "Distance Demon"},
	{Value: 20_000, Label: "Endurance Elite"},
	{Value: 30_000, Label: "Ultra Mover"},
	{Value: 50_000, Label: "Legendary Legs"},
}

// StreakBadges are awarded for consecutive days on which the step goal was met.
var StreakBadges = []Threshold{
	{Value: 3, Label: "Three In A Row"},
	{Value: 7, Label: "Full Week"},
	{Value: 14, Label: "Fortnight Strong"},
	{Value: 30, Label: "Monthly Habit"},
	{Value: 60, Label: "Two Month Titan"},
	{Value: 100, Label: "Century Streak"},
}

// ChallengeBadges label completed challenge tiers by their length in days.
var ChallengeBadges = []Threshold{
	{Value: 7, Label: "Week Challenger"},
	{Value: 14, Label: "Two Week Champion"},
	{Value: 30, Label: "Thirty Day Finisher"},
	{Value: 60, Label: "Sixty Day Veteran"},
	{Value: 90, Label: "Quarter Conqueror"},
	{Value: 120, Label: "Four Month Force"},
	{Value: 180, Label: "Half Year Hero"},
	{Value: 365, Label: "Year Long Legend"},
}

// HighestReached returns the largest threshold value the given amount meets,
// or 0 when none is reached.
func HighestReached(table []Threshold, amount int64) int64 {
	var reached int64
	for _, t := range table {
		if amount < t.Value {
			break
		}
		reached = t.Value
	}
	return reached
}

// LevelFor returns the level index for a lifetime step total.
func LevelFor(total int64) int {
	level := 0
	for i, t := range Levels {
		if total < t.Value {
			break
		}
		level = i
	}
	return level
}

// LabelFor finds the label for an exact threshold value; falls back to an
// empty string so callers can supply their own.
func LabelFor(table []Threshold, value int64) string {
	for _, t := range table {
		if t.Value == value {
			return t.Label
		}
	}
	return ""
}
