package testutil

import (
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/CUInterface/CanopyAI-Survey/internal/app/system/auth"
)

// TestMember represents session data for testing HTTP handlers.
type TestMember struct {
	ID    string
	Email string
}

// SignedInMember returns a TestMember with a fresh ObjectID.
func SignedInMember() TestMember {
	return TestMember{
		ID:    primitive.NewObjectID().Hex(),
		Email: "member@test.com",
	}
}

// WithMember returns a request whose context carries the member's session,
// as if the auth middleware had run after a successful sign-in.
func WithMember(r *http.Request, m TestMember) *http.Request {
	return auth.WithTestMember(r, &auth.SessionMember{
		ID:    m.ID,
		Email: m.Email,
	})
}
