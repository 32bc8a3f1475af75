package model

import "time"

// EmailCapture is the body of the email step of the teaser download flow.
type EmailCapture struct {
	Email     string `json:"email"`
	ProjectID string `json:"projectId"`
}

type Lead struct {
	ID          string
	Email       string
	ProjectID   string
	ProjectName string
	CreatedAt   time.Time
}

type LeadCreate struct {
	Email       string
	ProjectID   string
	ProjectName string
}
