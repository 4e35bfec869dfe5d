package models

import "time"

// PageVisit records a single page view. Events are append-only.
type PageVisit struct {
	Page      string    `json:"page" bson:"page"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	UserAgent string    `json:"userAgent,omitempty" bson:"userAgent,omitempty"`
	SessionID string    `json:"sessionId,omitempty" bson:"sessionId,omitempty"`
}

// TimeSpent records how many seconds a visitor stayed on a page.
type TimeSpent struct {
	Page      string    `json:"page" bson:"page"`
	TimeSpent float64   `json:"timeSpent" bson:"timeSpent"`
	Timestamp time.Time `json:"timestamp" bson:"timestamp"`
	SessionID string    `json:"sessionId,omitempty" bson:"sessionId,omitempty"`
}

// PageTotals are the raw aggregates for one page, before averaging.
type PageTotals struct {
	Visits     int64
	TimeEvents int64
	TotalTime  float64
}

// VisitCount is the number of visits recorded for a page.
type VisitCount struct {
	Page  string `json:"page" bson:"_id"`
	Count int64  `json:"count" bson:"count"`
}

// TimeStat aggregates time-spent events for a page.
type TimeStat struct {
	Page      string  `json:"page" bson:"_id"`
	AvgTime   float64 `json:"avgTime" bson:"avgTime"`
	TotalTime float64 `json:"totalTime" bson:"totalTime"`
}
