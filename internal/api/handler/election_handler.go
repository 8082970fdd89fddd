package handler

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/csuniv/election-system/internal/api/metrics"
	"github.com/csuniv/election-system/internal/core/domain"
	"github.com/csuniv/election-system/internal/core/ports"
)

// sessionCookie correlates the multi-step voter flow across requests.
// Clients may also pass the session id explicitly in the request body.
const sessionCookie = "election_session"

// ElectionHandler handles the voter-facing flow: class-year selection,
// email verification, code challenge, and ballot casting.
type ElectionHandler struct {
	service ports.VotingService
}

func NewElectionHandler(service ports.VotingService) *ElectionHandler {
	return &ElectionHandler{service: service}
}

// StartSession handles POST /election/class-year.
//
// @Summary      Choose a class year and open a voting session
// @Tags         election
// @Accept       json
// @Produce      json
// @Param        body  body      startSessionRequest  true  "Class year selection"
// @Success      201   {object}  startSessionResponse
// @Failure      400   {object}  errorResponse
// @Router       /election/class-year [post]
func (h *ElectionHandler) StartSession(c echo.Context) error {
	var req startSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sessionID := uuid.NewString()
	if err := h.service.StartSession(c.Request().Context(), sessionID, req.ClassYear); err != nil {
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    sessionID,
		Path:     "/",
		HttpOnly: true,
	})
	return c.JSON(http.StatusCreated, startSessionResponse{SessionID: sessionID})
}

// SubmitEmail handles POST /election/email.
//
// @Summary      Submit an institutional email and receive a one-time code
// @Tags         election
// @Accept       json
// @Produce      json
// @Param        body  body      submitEmailRequest  true  "Voter email"
// @Success      200   {object}  statusResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /election/email [post]
func (h *ElectionHandler) SubmitEmail(c echo.Context) error {
	var req submitEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.service.VerifyIdentity(c.Request().Context(), ports.VerifyIdentityInput{
		SessionID: h.sessionID(c, req.SessionID),
		Email:     req.Email,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDeliveryFailed) {
			metrics.DeliveryFailuresTotal.Inc()
		}
		return err
	}

	metrics.CodesIssuedTotal.Inc()
	return c.JSON(http.StatusOK, statusResponse{Status: "code sent"})
}

// SubmitCode handles POST /election/code.
//
// @Summary      Confirm the one-time code
// @Tags         election
// @Accept       json
// @Produce      json
// @Param        body  body      submitCodeRequest  true  "Entered code"
// @Success      200   {object}  statusResponse
// @Failure      401   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /election/code [post]
func (h *ElectionHandler) SubmitCode(c echo.Context) error {
	var req submitCodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.ConfirmCode(c.Request().Context(), h.sessionID(c, req.SessionID), req.Code); err != nil {
		if errors.Is(err, domain.ErrCodeMismatch) {
			metrics.CodeMismatchesTotal.Inc()
		}
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "verified"})
}

// Ballot handles GET /election/ballot.
//
// @Summary      View the candidate list for the session's class year
// @Tags         election
// @Produce      json
// @Success      200  {object}  ballotResponse
// @Failure      401  {object}  errorResponse
// @Router       /election/ballot [get]
func (h *ElectionHandler) Ballot(c echo.Context) error {
	view, err := h.service.Ballot(c.Request().Context(), h.sessionID(c, c.QueryParam("session_id")))
	if err != nil {
		return err
	}
	candidates := view.Candidates
	if candidates == nil {
		candidates = []string{}
	}
	return c.JSON(http.StatusOK, ballotResponse{ClassYear: view.ClassYear, Candidates: candidates})
}

// SubmitBallot handles POST /election/ballot.
//
// @Summary      Cast the ballot
// @Tags         election
// @Accept       json
// @Produce      json
// @Param        body  body      submitBallotRequest  true  "Selections and optional write-in"
// @Success      201   {object}  statusResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /election/ballot [post]
func (h *ElectionHandler) SubmitBallot(c echo.Context) error {
	var req submitBallotRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	err := h.service.CastBallot(c.Request().Context(), ports.CastBallotInput{
		SessionID:  h.sessionID(c, req.SessionID),
		Selections: req.Selections,
		WriteIn:    req.WriteIn,
	})
	if err != nil {
		if reason := rejectionReason(err); reason != "" {
			metrics.BallotsRejectedTotal.WithLabelValues(reason).Inc()
		}
		return err
	}

	metrics.BallotsCastTotal.WithLabelValues("voter").Inc()
	return c.JSON(http.StatusCreated, statusResponse{Status: "ballot cast"})
}

// sessionID prefers the explicit id and falls back to the session cookie.
func (h *ElectionHandler) sessionID(c echo.Context, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if cookie, err := c.Cookie(sessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrAlreadyVoted):
		return "already_voted"
	case errors.Is(err, domain.ErrVotingClosed):
		return "voting_closed"
	case errors.Is(err, domain.ErrTooManySelections):
		return "too_many_selections"
	case errors.Is(err, domain.ErrNoSelection):
		return "no_selection"
	}
	return ""
}
