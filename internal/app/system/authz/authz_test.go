package authz_test

import (
	"net/http/httptest"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/CUInterface/CanopyAI-Survey/internal/app/system/auth"
	"github.com/CUInterface/CanopyAI-Survey/internal/app/system/authz"
)

func TestMemberCtx_SignedIn(t *testing.T) {
	id := primitive.NewObjectID()
	req := httptest.NewRequest("GET", "/test", nil)
	req = auth.WithTestMember(req, &auth.SessionMember{
		ID:    id.Hex(),
		Email: "alice@example.com",
	})

	email, memberID, ok := authz.MemberCtx(req)
	if !ok {
		t.Fatal("expected MemberCtx to return ok=true")
	}
	if email != "alice@example.com" {
		t.Errorf("expected email alice@example.com, got %q", email)
	}
	if memberID != id {
		t.Errorf("expected memberID %s, got %s", id.Hex(), memberID.Hex())
	}
}

func TestMemberCtx_NoMember(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)

	_, _, ok := authz.MemberCtx(req)
	if ok {
		t.Error("expected MemberCtx to return ok=false with no session")
	}
}

func TestMemberCtx_MalformedID(t *testing.T) {
	req := httptest.NewRequest("GET", "/test", nil)
	req = auth.WithTestMember(req, &auth.SessionMember{
		ID:    "not-a-hex-objectid",
		Email: "alice@example.com",
	})

	_, memberID, ok := authz.MemberCtx(req)
	if ok {
		t.Error("expected MemberCtx to fail closed on malformed ID")
	}
	if memberID != primitive.NilObjectID {
		t.Error("expected NilObjectID on failure")
	}
}
