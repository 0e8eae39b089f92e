package models

import (
	"time"
)

type ContestStatus string

const (
	ContestStatusBefore  ContestStatus = "before"
	ContestStatusRunning ContestStatus = "running"
	ContestStatusAfter   ContestStatus = "after"
)

// Contest is a virtual contest run over AtCoder problems. StartTime is
// set exactly once, when the contest transitions to running.
type Contest struct {
	ID     string        `gorm:"primaryKey;type:text" json:"id"`
	Name   string        `json:"name"`
	Status ContestStatus `gorm:"type:text;default:'before'" json:"status"`

	StartTime       *time.Time `json:"startTime"`
	DurationMinutes int        `json:"durationMinutes"`

	Problems []Problem `gorm:"foreignKey:ContestID;constraint:OnDelete:CASCADE" json:"problems,omitempty"`
	Users    []User    `gorm:"foreignKey:ContestID;constraint:OnDelete:CASCADE" json:"users,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Problem is an AtCoder task attached to a contest. SubmissionURL is the
// listing URL template derived from the problem URL at creation time.
type Problem struct {
	ID        string `gorm:"primaryKey;type:text" json:"id"`
	ContestID string `gorm:"uniqueIndex:idx_contest_problem_url" json:"contestId"`

	Name          string `json:"name"`
	ProblemURL    string `gorm:"uniqueIndex:idx_contest_problem_url" json:"problemUrl"`
	SubmissionURL string `json:"submissionUrl"`
	Points        int    `json:"points"`
	OrderIndex    int    `json:"orderIndex"` // zero-based, contiguous per contest

	Submissions []Submission `gorm:"foreignKey:ProblemID;constraint:OnDelete:CASCADE" json:"submissions,omitempty"`
}

// User is a contest participant, identified by their AtCoder handle.
// RatingColor is scraped from their AtCoder profile once, at registration.
type User struct {
	ID        string `gorm:"primaryKey;type:text" json:"id"`
	ContestID string `gorm:"uniqueIndex:idx_contest_handle" json:"contestId"`

	AtCoderID   string `gorm:"uniqueIndex:idx_contest_handle" json:"atcoderId"`
	RatingColor string `gorm:"default:'black'" json:"ratingColor"`

	Submissions []Submission `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"submissions,omitempty"`
}

// Submission statuses as AtCoder labels them. Anything that is not AC is
// a failed attempt; CE never counts as an attempt at all.
const (
	SubmissionStatusAC = "AC"
	SubmissionStatusCE = "CE"
)

// Submission is one scraped AtCoder submission. SubmissionID is the
// external id, globally unique, which makes ingestion idempotent: the
// store inserts only if the id is absent, so re-scraping is a no-op.
type Submission struct {
	ID string `gorm:"primaryKey;type:text" json:"id"`

	SubmissionID string    `gorm:"uniqueIndex" json:"submissionId"`
	Status       string    `json:"status"`
	SubmittedAt  time.Time `json:"submittedAt"`

	UserID    string `json:"userId"`
	ProblemID string `json:"problemId"`

	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Problem Problem `gorm:"foreignKey:ProblemID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
}
