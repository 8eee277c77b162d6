package dto

import "sukasamasuka/internal/usecase"

type PostMatchesResponse struct {
	Post     JobPostResponse   `json:"post"`
	Exact    []JobPostResponse `json:"exact"`
	StateJob []JobPostResponse `json:"state_job"`
}

func NewPostMatchesResponses(matches []usecase.PostMatches) []PostMatchesResponse {
	out := make([]PostMatchesResponse, 0, len(matches))
	for _, m := range matches {
		out = append(out, PostMatchesResponse{
			Post:     NewJobPostResponse(m.Post),
			Exact:    NewJobPostResponses(m.Exact),
			StateJob: NewJobPostResponses(m.StateJob),
		})
	}
	return out
}

type SwapCycleResponse struct {
	Posts []JobPostResponse `json:"posts"`
}

func NewSwapCycleResponses(cycles []usecase.SwapCycle) []SwapCycleResponse {
	out := make([]SwapCycleResponse, 0, len(cycles))
	for _, c := range cycles {
		out = append(out, SwapCycleResponse{Posts: NewJobPostResponses(c.Posts)})
	}
	return out
}
