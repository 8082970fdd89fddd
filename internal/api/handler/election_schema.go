package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type startSessionRequest struct {
	ClassYear string `json:"class_year" validate:"required"`
}

type startSessionResponse struct {
	SessionID string `json:"session_id"`
}

type submitEmailRequest struct {
	SessionID string `json:"session_id"`
	Email     string `json:"email" validate:"required"`
}

type submitCodeRequest struct {
	SessionID string `json:"session_id"`
	Code      string `json:"code" validate:"required"`
}

type ballotResponse struct {
	ClassYear  string   `json:"class_year"`
	Candidates []string `json:"candidates"`
}

type submitBallotRequest struct {
	SessionID  string   `json:"session_id"`
	Selections []string `json:"selections"`
	WriteIn    string   `json:"write_in"`
}

type statusResponse struct {
	Status string `json:"status"`
}
