package dto

// SaveStepsRequest carries one step observation for a calendar day.
type SaveStepsRequest struct {
	DayKey string  `json:"day_key" binding:"required"`
	Steps  float64 `json:"steps" binding:"required"`
	// Live marks a pedometer session reading; live values for today shadow
	// the stored row until the session ends.
	Live bool `json:"live"`
}

type SaveStepsResponse struct {
	DayKey  string `json:"day_key"`
	Steps   int    `json:"steps"`
	GoalMet bool   `json:"goal_met"`
}

// WindowQuery selects a day/week/month aggregation window.
type WindowQuery struct {
	Anchor string `form:"anchor"`
	Kind   string `form:"kind" binding:"required,oneof=day week month"`
}

type WindowDayResponse struct {
	DayKey   string  `json:"day_key"`
	Steps    int     `json:"steps"`
	Calories float64 `json:"calories"`
	Distance float64 `json:"distance_km"`
	Minutes  float64 `json:"active_minutes"`
}

type WindowResponse struct {
	Kind     string              `json:"kind"`
	StartKey string              `json:"start_key"`
	EndKey   string              `json:"end_key"`
	Current  bool                `json:"current"`
	Days     []WindowDayResponse `json:"days"`
	Totals   WindowDayResponse   `json:"totals"`
}

// MonthChartQuery selects the month and the metric to chart.
type MonthChartQuery struct {
	Anchor string `form:"anchor"`
	Metric string `form:"metric" binding:"omitempty,oneof=steps calories distance minutes"`
}

type ChartBucketResponse struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

type MonthChartResponse struct {
	Metric  string                `json:"metric"`
	Buckets []ChartBucketResponse `json:"buckets"`
}

type HistoryResponse struct {
	Days       map[string]int `json:"days"`
	TotalSteps int64          `json:"total_steps"`
}

type ResetHistoryResponse struct {
	RemovedRows int64 `json:"removed_rows"`
}
