package login_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"go.uber.org/zap"

	uierrors "github.com/CUInterface/CanopyAI-Survey/internal/app/features/errors"
	"github.com/CUInterface/CanopyAI-Survey/internal/app/features/login"
	"github.com/CUInterface/CanopyAI-Survey/internal/app/system/auth"
	"github.com/CUInterface/CanopyAI-Survey/internal/testutil"
)

func newTestHandler(t *testing.T) (*login.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	logger := zap.NewNop()

	if err := auth.InitSessionStore("test-session-key-0123456789abcdef", "test-session", "", false, logger); err != nil {
		t.Fatalf("InitSessionStore failed: %v", err)
	}

	handler := login.NewHandler(db, uierrors.NewErrorLogger(logger), logger)
	return handler, testutil.NewFixtures(t, db)
}

func postLogin(t *testing.T, handler *login.Handler, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()

	// Error paths render templates which may panic without an initialized
	// template engine; success paths never render.
	func() {
		defer func() { _ = recover() }()
		handler.HandleLoginPost(rec, req)
	}()
	return rec
}

func TestHandleLoginPost_Success(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := postLogin(t, handler, url.Values{"email": {"alice@example.com"}})

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/survey" {
		t.Errorf("Location: got %q, want %q", loc, "/survey")
	}

	found := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "test-session" {
			found = true
		}
	}
	if !found {
		t.Error("expected session cookie to be set")
	}
}

func TestHandleLoginPost_CreatesMemberOnFirstSignIn(t *testing.T) {
	handler, _ := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	postLogin(t, handler, url.Values{"email": {"New.Person@Example.COM"}})

	m, err := handler.Members.GetByEmail(ctx, "new.person@example.com")
	if err != nil {
		t.Fatalf("expected member created, got %v", err)
	}
	if m.Email != "new.person@example.com" {
		t.Errorf("expected normalized email, got %q", m.Email)
	}
}

func TestHandleLoginPost_ReusesExistingMember(t *testing.T) {
	handler, fx := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	existing := fx.CreateMember(ctx, "bob@example.com")

	rec := postLogin(t, handler, url.Values{"email": {"bob@example.com"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}

	m, err := handler.Members.GetByEmail(ctx, "bob@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if m.ID != existing.ID {
		t.Error("expected existing member to be reused")
	}
}

func TestHandleLoginPost_WithReturnURL(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := postLogin(t, handler, url.Values{
		"email":  {"alice@example.com"},
		"return": {"/results"},
	})

	if loc := rec.Header().Get("Location"); loc != "/results" {
		t.Errorf("Location: got %q, want %q", loc, "/results")
	}
}

func TestHandleLoginPost_RejectsExternalReturnURL(t *testing.T) {
	handler, _ := newTestHandler(t)

	rec := postLogin(t, handler, url.Values{
		"email":  {"alice@example.com"},
		"return": {"https://evil.example.com/phish"},
	})

	if loc := rec.Header().Get("Location"); loc != "/survey" {
		t.Errorf("Location: got %q, want fallback /survey", loc)
	}
}

func TestHandleLoginPost_InvalidEmail(t *testing.T) {
	cases := []struct {
		name  string
		email string
	}{
		{"empty", ""},
		{"whitespace", "   "},
		{"no at sign", "not-an-email"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler, _ := newTestHandler(t)

			rec := postLogin(t, handler, url.Values{"email": {tc.email}})

			if rec.Code == http.StatusSeeOther {
				t.Error("invalid email must not redirect")
			}
			if rec.Code != http.StatusBadRequest {
				t.Errorf("expected status %d, got %d", http.StatusBadRequest, rec.Code)
			}
			for _, c := range rec.Result().Cookies() {
				if c.Name == "test-session" {
					t.Error("invalid email must not create a session")
				}
			}
		})
	}
}
