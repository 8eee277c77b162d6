package dto

import (
	"time"

	"sukasamasuka/internal/domain/matching"
	"sukasamasuka/internal/repository"

	"github.com/google/uuid"
)

type JobPostResponse struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	JobTitle         string    `json:"job_title"`
	JobGrade         string    `json:"job_grade"`
	CurrentState     string    `json:"current_state"`
	CurrentDistrict  string    `json:"current_district"`
	ExpectedState    string    `json:"expected_state"`
	ExpectedDistrict string    `json:"expected_district"`
	CreatedAt        time.Time `json:"created_at"`
}

func NewJobPostResponse(p repository.JobPost) JobPostResponse {
	current, _ := matching.SplitLocation(p.CurrentLocation)
	expected, _ := matching.SplitLocation(p.ExpectedLocation)
	return JobPostResponse{
		ID:               p.ID,
		UserID:           p.UserID,
		JobTitle:         p.JobName,
		JobGrade:         p.JobGrade,
		CurrentState:     current.State,
		CurrentDistrict:  current.District,
		ExpectedState:    expected.State,
		ExpectedDistrict: expected.District,
		CreatedAt:        p.CreatedAt,
	}
}

func NewJobPostResponses(posts []repository.JobPost) []JobPostResponse {
	out := make([]JobPostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewJobPostResponse(p))
	}
	return out
}

type CreateJobPostResponse struct {
	Post    JobPostResponse `json:"post"`
	Evicted []uuid.UUID     `json:"evicted,omitempty"`
}
