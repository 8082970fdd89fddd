package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/csuniv/election-system/internal/api/metrics"
	"github.com/csuniv/election-system/internal/core/ports"
)

// AdminHandler handles roster management, manual ballot entry, and tallies.
type AdminHandler struct {
	service ports.AdminService
	auth    ports.AuthService
}

func NewAdminHandler(service ports.AdminService, auth ports.AuthService) *AdminHandler {
	return &AdminHandler{service: service, auth: auth}
}

// Login handles POST /admin/login.
//
// @Summary      Admin login
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Admin password"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorResponse
// @Router       /admin/login [post]
func (h *AdminHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, err := h.auth.Login(c.Request().Context(), req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{Token: token})
}

// AddCandidate handles POST /admin/candidates.
//
// @Summary      Add a candidate to a class year's roster
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      addCandidateRequest  true  "Candidate"
// @Success      201   {object}  statusResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /admin/candidates [post]
func (h *AdminHandler) AddCandidate(c echo.Context) error {
	if err := requireAdmin(c); err != nil {
		return err
	}

	var req addCandidateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.AddCandidate(c.Request().Context(), req.ClassYear, req.Name); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, statusResponse{Status: "candidate added"})
}

// RemoveCandidate handles DELETE /admin/candidates/:class_year/:name.
//
// @Summary      Remove a candidate from a class year's roster
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        class_year  path      string  true  "Class year"
// @Param        name        path      string  true  "Candidate name"
// @Success      200         {object}  statusResponse
// @Failure      404         {object}  errorResponse
// @Router       /admin/candidates/{class_year}/{name} [delete]
func (h *AdminHandler) RemoveCandidate(c echo.Context) error {
	if err := requireAdmin(c); err != nil {
		return err
	}

	if err := h.service.RemoveCandidate(c.Request().Context(), c.Param("class_year"), c.Param("name")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "candidate removed"})
}

// Roster handles GET /admin/candidates.
//
// @Summary      View the full candidate roster
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  rosterResponse
// @Router       /admin/candidates [get]
func (h *AdminHandler) Roster(c echo.Context) error {
	if err := requireAdmin(c); err != nil {
		return err
	}

	roster, err := h.service.Roster(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rosterResponse{Roster: roster})
}

// ManualBallot handles POST /admin/ballots.
//
// @Summary      Record a ballot on behalf of a voter
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      manualBallotRequest  true  "Voter identity and selections"
// @Success      201   {object}  statusResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /admin/ballots [post]
func (h *AdminHandler) ManualBallot(c echo.Context) error {
	if err := requireAdmin(c); err != nil {
		return err
	}

	var req manualBallotRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	err := h.service.ManualBallot(c.Request().Context(), ports.ManualBallotInput{
		Email:      req.Email,
		ClassYear:  req.ClassYear,
		Selections: req.Selections,
	})
	if err != nil {
		if reason := rejectionReason(err); reason != "" {
			metrics.BallotsRejectedTotal.WithLabelValues(reason).Inc()
		}
		return err
	}

	metrics.BallotsCastTotal.WithLabelValues("admin").Inc()
	return c.JSON(http.StatusCreated, statusResponse{Status: "ballot recorded"})
}

// Tally handles GET /admin/results.
//
// @Summary      View the vote tally
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  tallyResponse
// @Router       /admin/results [get]
func (h *AdminHandler) Tally(c echo.Context) error {
	if err := requireAdmin(c); err != nil {
		return err
	}

	tally, err := h.service.Tally(c.Request().Context())
	if err != nil {
		return err
	}

	rows := make([]tallyRow, 0, len(tally))
	for _, e := range tally {
		rows = append(rows, tallyRow{Candidate: e.Candidate, Votes: e.Votes})
	}
	return c.JSON(http.StatusOK, tallyResponse{Results: rows})
}
