package garmin

// Raw records returned by the Garmin Connect API. Optional numeric
// fields are pointers so that a value the service omitted is
// distinguishable from a reported zero.

// ActivityType describes the kind of activity, e.g. running.
type ActivityType struct {
	TypeKey string `json:"typeKey"`
}

// ActivitySummary is one entry of an activity listing.
type ActivitySummary struct {
	ActivityID     *int64       `json:"activityId"`
	ActivityName   string       `json:"activityName"`
	ActivityType   ActivityType `json:"activityType"`
	StartTimeLocal string       `json:"startTimeLocal"`
	Distance       *float64     `json:"distance"` // meters
	Duration       *float64     `json:"duration"` // seconds
	Calories       *float64     `json:"calories"`
	AverageHR      *float64     `json:"averageHR"`
	MaxHR          *float64     `json:"maxHR"`
}

// SummaryDTO carries the metric block of a detailed activity record.
type SummaryDTO struct {
	StartTimeLocal string   `json:"startTimeLocal"`
	Distance       *float64 `json:"distance"`
	Duration       *float64 `json:"duration"`
	Calories       *float64 `json:"calories"`
	AverageHR      *float64 `json:"averageHR"`
	MaxHR          *float64 `json:"maxHR"`
}

// ActivityDetail is the detailed record for a single activity.
type ActivityDetail struct {
	ActivityID   *int64       `json:"activityId"`
	ActivityType ActivityType `json:"activityType"`
	Summary      SummaryDTO   `json:"summaryDTO"`
}

// DailySteps is one day of the step count metric, reporting path only.
type DailySteps struct {
	CalendarDate string `json:"calendarDate"`
	TotalSteps   int    `json:"totalSteps"`
}
