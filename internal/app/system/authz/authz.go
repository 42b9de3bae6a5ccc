// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/CUInterface/CanopyAI-Survey/internal/app/system/auth"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemberCtx returns the member's email, Mongo ObjectID, and a found flag.
// If no member is present in context or the member ID is malformed, it
// returns "", NilObjectID, false. Callers can trust that ok=true means a
// valid, authenticated member with a valid ObjectID.
func MemberCtx(r *http.Request) (email string, memberID primitive.ObjectID, ok bool) {
	m, ok := auth.CurrentMember(r)
	if !ok {
		return "", primitive.NilObjectID, false
	}
	memberID, err := primitive.ObjectIDFromHex(m.ID)
	if err != nil {
		// Malformed member ID in session - fail closed.
		return "", primitive.NilObjectID, false
	}
	return m.Email, memberID, true
}
