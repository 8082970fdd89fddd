package handler

// --- Admin request / response types ---

type loginRequest struct {
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type addCandidateRequest struct {
	ClassYear string `json:"class_year" validate:"required"`
	Name      string `json:"name" validate:"required"`
}

type rosterResponse struct {
	Roster map[string][]string `json:"roster"`
}

type manualBallotRequest struct {
	Email      string   `json:"email" validate:"required"`
	ClassYear  string   `json:"class_year" validate:"required"`
	Selections []string `json:"selections"`
}

type tallyRow struct {
	Candidate string `json:"candidate"`
	Votes     int64  `json:"votes"`
}

type tallyResponse struct {
	Results []tallyRow `json:"results"`
}
