package models

// Activity is a single audit entry routed to the activity logger.
type Activity struct {
	Message string
	Object  any
	Filter  LogFilter
}

// LogFilter carries the indexed fields of an activity entry.
type LogFilter struct {
	Timestamp string
	Fields    map[string]string
}

type TimeSeriesPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// ActivitySearchQueryParams narrows an audit trail search. Empty fields are
// not part of the criteria.
type ActivitySearchQueryParams struct {
	Action     string `form:"action"      validate:"omitempty,max=64"`
	Email      string `form:"email"       validate:"omitempty,max=254"`
	UserID     string `form:"user_id"     validate:"omitempty,uuid"`
	ObjectType string `form:"object_type" validate:"omitempty,max=32"`
}

type ActivitySearchResponse struct {
	Entries []map[string]interface{} `json:"entries"`
}

type AdminStatsQueryParams struct {
	Days int `form:"days" validate:"omitempty,gte=1,lte=90"`
}

type AdminStatsResponse struct {
	TotalUsers      int64             `json:"total_users"`
	TotalBusinesses int64             `json:"total_businesses"`
	TotalPets       int64             `json:"total_pets"`
	TotalServices   int64             `json:"total_services"`
	TotalReviews    int64             `json:"total_reviews"`
	ReviewsByDay    []TimeSeriesPoint `json:"reviews_by_day"`
	LoginsByDay     []TimeSeriesPoint `json:"logins_by_day"`
}
