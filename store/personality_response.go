package store

// PersonalityResponse records one styled variant produced for a user
// message, kept for comparison history.
type PersonalityResponse struct {
	ID                  int64
	UserID              string
	UserMessage         string
	BaseResponse        string
	PersonalityType     string
	PersonalityResponse string
	CreatedTs           int64
}

type CreatePersonalityResponse struct {
	UserID              string
	UserMessage         string
	BaseResponse        string
	PersonalityType     string
	PersonalityResponse string
}

type FindPersonalityResponse struct {
	UserID *string
	Limit  *int
}
