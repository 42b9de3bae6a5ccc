package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session constants & globals                                                |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	isAuthKey   = "is_authenticated"
	memberIDKey = "member_id"
	emailKey    = "member_email"
)

// Store is initialised once via InitSessionStore.
var Store *sessions.CookieStore

// sessionName is set by InitSessionStore; the default is fine for tests.
var sessionName = "canopysurvey-session"

/*─────────────────────────────────────────────────────────────────────────────*
| Current-member helper                                                      |
*─────────────────────────────────────────────────────────────────────────────*/

// SessionMember is what we cache in the session & inject into r.Context().
type SessionMember struct {
	ID    string // hex ObjectID of the member record
	Email string
}

type ctxKey string

const currentMemberKey ctxKey = "currentMember"

// CurrentMember returns the member & "found?" flag.
func CurrentMember(r *http.Request) (*SessionMember, bool) {
	m, ok := r.Context().Value(currentMemberKey).(*SessionMember)
	return m, ok
}

// LoadSessionMember injects the member into context if they are logged in.
// If the session store has not been initialized yet, it is a no-op.
func LoadSessionMember(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if Store == nil {
			next.ServeHTTP(w, r)
			return
		}

		sess, err := Store.Get(r, sessionName)
		if err != nil {
			// A decode failure means a cookie signed with a rotated or
			// foreign key. Expire it so the browser stops sending it.
			var scErr securecookie.Error
			if errors.As(err, &scErr) && scErr.IsDecode() {
				zap.L().Debug("dropping undecodable session cookie", zap.Error(err))
				http.SetCookie(w, &http.Cookie{
					Name:   sessionName,
					Path:   "/",
					MaxAge: -1,
				})
			}
		}

		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			m := &SessionMember{
				ID:    getString(sess, memberIDKey),
				Email: getString(sess, emailKey),
			}
			r = withMember(r, m)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures there is a member in context (set by LoadSessionMember).
// If not signed in:
//   - HTML: 303 redirect to / (the login page) preserving a return param
//   - API:  401 Unauthorized with a plain error body
func RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentMember(r); ok {
			next.ServeHTTP(w, r)
			return
		}

		if wantsHTML(r) {
			ret := url.QueryEscape(currentURI(r))
			http.Redirect(w, r, "/?return="+ret, http.StatusSeeOther)
			return
		}

		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
}

// SignIn marks the session authenticated for the given member and saves it.
func SignIn(w http.ResponseWriter, r *http.Request, memberID, email string) error {
	sess, _ := Store.Get(r, sessionName)
	sess.Values[isAuthKey] = true
	sess.Values[memberIDKey] = memberID
	sess.Values[emailKey] = email
	return sess.Save(r, w)
}

// SignOut clears the session.
func SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := Store.Get(r, sessionName)
	sess.Values = map[interface{}]interface{}{}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// InitSessionStore initializes the global session Store using the provided
// session key, cookie name, and domain. The `secure` flag controls whether
// cookies are marked Secure and which SameSite mode is used.
//
// In production (secure=true), cookies are Secure + SameSite=None.
// In local dev over http://localhost, use secure=false so cookies are accepted.
func InitSessionStore(sessionKey, name, domain string, secure bool, logger *zap.Logger) error {
	if sessionKey == "" {
		return fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}
	if name != "" {
		sessionName = name
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}

	store.Options = opts
	Store = store

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return nil
}

// WithTestMember injects a member into the request context, bypassing the
// session middleware. For tests only.
func WithTestMember(r *http.Request, m *SessionMember) *http.Request {
	return withMember(r, m)
}

// helpers

func withMember(r *http.Request, m *SessionMember) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentMemberKey, m))
}

// getString safely extracts a string from a session value.
func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}

func wantsHTML(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html")
}

func currentURI(r *http.Request) string {
	u := *r.URL
	return u.RequestURI()
}
