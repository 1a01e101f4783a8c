package dto

// Request DTOs

type DoctorMatchRequest struct {
	Description string `json:"description" validate:"required"`
}

// Response DTOs

type DoctorResponse struct {
	SlNo             int    `json:"sl_no"`
	Name             string `json:"name"`
	Age              int    `json:"age"`
	ShortDescription string `json:"short_description"`
	Specialization   string `json:"specialization"`
	Experience       int    `json:"experience"`
	Gender           string `json:"gender"`
	Rating           int    `json:"rating"`
	Email            string `json:"email"`
}

// MatchResultResponse is the chosen doctor plus the match explanation.
// MatchAccuracy is the display form of the model's 1-10 quality score.
type MatchResultResponse struct {
	DoctorResponse
	Reason        string `json:"reason"`
	MatchType     string `json:"matchType"`
	MatchAccuracy string `json:"matchAccuracy"`
	Message       string `json:"message"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
