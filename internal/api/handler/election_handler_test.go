package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/csuniv/election-system/internal/core/domain"
	"github.com/csuniv/election-system/internal/core/ports"
)

type stubVotingService struct {
	startFn   func(ctx context.Context, sessionID, classYear string) error
	verifyFn  func(ctx context.Context, in ports.VerifyIdentityInput) error
	confirmFn func(ctx context.Context, sessionID, code string) error
	ballotFn  func(ctx context.Context, sessionID string) (*ports.BallotView, error)
	castFn    func(ctx context.Context, in ports.CastBallotInput) error
}

func (s *stubVotingService) StartSession(ctx context.Context, sessionID, classYear string) error {
	return s.startFn(ctx, sessionID, classYear)
}

func (s *stubVotingService) VerifyIdentity(ctx context.Context, in ports.VerifyIdentityInput) error {
	return s.verifyFn(ctx, in)
}

func (s *stubVotingService) ConfirmCode(ctx context.Context, sessionID, code string) error {
	return s.confirmFn(ctx, sessionID, code)
}

func (s *stubVotingService) Ballot(ctx context.Context, sessionID string) (*ports.BallotView, error) {
	return s.ballotFn(ctx, sessionID)
}

func (s *stubVotingService) CastBallot(ctx context.Context, in ports.CastBallotInput) error {
	return s.castFn(ctx, in)
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestElectionHandler_StartSession_Success(t *testing.T) {
	var gotClassYear string
	stub := &stubVotingService{
		startFn: func(ctx context.Context, sessionID, classYear string) error {
			if sessionID == "" {
				t.Fatalf("expected generated session id")
			}
			gotClassYear = classYear
			return nil
		},
	}
	h := NewElectionHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/election/class-year", `{"class_year":"2027"}`)
	if err := h.StartSession(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if gotClassYear != "2027" {
		t.Fatalf("expected class year 2027, got %q", gotClassYear)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["session_id"] == "" {
		t.Fatalf("expected session_id in response")
	}

	cookies := rec.Result().Cookies()
	found := false
	for _, ck := range cookies {
		if ck.Name == sessionCookie && ck.Value == resp["session_id"] {
			found = true
			if !ck.HttpOnly {
				t.Fatalf("session cookie must be HttpOnly")
			}
		}
	}
	if !found {
		t.Fatalf("session cookie not set")
	}
}

func TestElectionHandler_StartSession_MissingClassYear(t *testing.T) {
	stub := &stubVotingService{
		startFn: func(ctx context.Context, sessionID, classYear string) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	h := NewElectionHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/election/class-year", `{}`)
	err := h.StartSession(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 error, got %v", err)
	}
}

func TestElectionHandler_SubmitEmail_UsesCookieSession(t *testing.T) {
	var gotSession string
	stub := &stubVotingService{
		verifyFn: func(ctx context.Context, in ports.VerifyIdentityInput) error {
			gotSession = in.SessionID
			return nil
		},
	}
	h := NewElectionHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/election/email", `{"email":"a@student.csuniv.edu"}`)
	c.Request().AddCookie(&http.Cookie{Name: sessionCookie, Value: "sess-from-cookie"})

	if err := h.SubmitEmail(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotSession != "sess-from-cookie" {
		t.Fatalf("expected cookie session, got %q", gotSession)
	}
}

func TestElectionHandler_SubmitEmail_ExplicitSessionWins(t *testing.T) {
	var gotSession string
	stub := &stubVotingService{
		verifyFn: func(ctx context.Context, in ports.VerifyIdentityInput) error {
			gotSession = in.SessionID
			return nil
		},
	}
	h := NewElectionHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/election/email",
		`{"session_id":"sess-explicit","email":"a@student.csuniv.edu"}`)
	c.Request().AddCookie(&http.Cookie{Name: sessionCookie, Value: "sess-from-cookie"})

	if err := h.SubmitEmail(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotSession != "sess-explicit" {
		t.Fatalf("expected explicit session to win, got %q", gotSession)
	}
}

func TestElectionHandler_SubmitEmail_DomainErrorPassesThrough(t *testing.T) {
	stub := &stubVotingService{
		verifyFn: func(ctx context.Context, in ports.VerifyIdentityInput) error {
			return domain.ErrInvalidEmailDomain
		},
	}
	h := NewElectionHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/election/email",
		`{"session_id":"s1","email":"a@gmail.com"}`)
	if err := h.SubmitEmail(c); !errors.Is(err, domain.ErrInvalidEmailDomain) {
		t.Fatalf("expected ErrInvalidEmailDomain, got %v", err)
	}
}

func TestElectionHandler_SubmitCode_Success(t *testing.T) {
	stub := &stubVotingService{
		confirmFn: func(ctx context.Context, sessionID, code string) error {
			if sessionID != "s1" || code != "123456" {
				t.Fatalf("unexpected args: %s %s", sessionID, code)
			}
			return nil
		},
	}
	h := NewElectionHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/election/code", `{"session_id":"s1","code":"123456"}`)
	if err := h.SubmitCode(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestElectionHandler_Ballot_EmptyRosterRendersEmptyList(t *testing.T) {
	stub := &stubVotingService{
		ballotFn: func(ctx context.Context, sessionID string) (*ports.BallotView, error) {
			return &ports.BallotView{ClassYear: "2026", Candidates: nil}, nil
		},
	}
	h := NewElectionHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/election/ballot?session_id=s1", "")
	if err := h.Ballot(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	list, ok := resp["candidates"].([]any)
	if !ok {
		t.Fatalf("expected candidates array, got %v", resp["candidates"])
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %v", list)
	}
}

func TestElectionHandler_SubmitBallot_Success(t *testing.T) {
	var got ports.CastBallotInput
	stub := &stubVotingService{
		castFn: func(ctx context.Context, in ports.CastBallotInput) error {
			got = in
			return nil
		},
	}
	h := NewElectionHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/election/ballot",
		`{"session_id":"s1","selections":["Alice","Bob"],"write_in":"Zed"}`)
	if err := h.SubmitBallot(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if got.SessionID != "s1" || len(got.Selections) != 2 || got.WriteIn != "Zed" {
		t.Fatalf("unexpected input: %+v", got)
	}
}

func TestElectionHandler_SubmitBallot_RejectionPassesThrough(t *testing.T) {
	stub := &stubVotingService{
		castFn: func(ctx context.Context, in ports.CastBallotInput) error {
			return domain.ErrVotingClosed
		},
	}
	h := NewElectionHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/election/ballot", `{"session_id":"s1","selections":["Alice"]}`)
	if err := h.SubmitBallot(c); !errors.Is(err, domain.ErrVotingClosed) {
		t.Fatalf("expected ErrVotingClosed, got %v", err)
	}
}
