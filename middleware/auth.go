// auth.go - Session cookie and login middleware
//
// Session Flow:
// 1. Read the signed session cookie and verify its JWT signature and expiry
// 2. Load the server-side session it points to (or start a new one)
// 3. Expose the session to handlers through the Gin context
// 4. Save whatever the handler changed once it returns
//
// Renew Flow (after a successful login):
// 1. Move the session to a fresh ID and reissue the cookie
// 2. Drop the old ID from the store so a planted cookie stops resolving
//
// Login Flow:
// 1. Run after Sessions
// 2. Redirect anonymous visitors to /login with a notice

package middleware // Declares the package name

import ( // Import required packages
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"go-ebook-store/session" // Session state and stores

	"github.com/gin-gonic/gin" // Gin web framework (for middleware)
)

const (
	sessionKey = "session"      // Gin context key holding *session.Session
	depsKey    = "session_deps" // Gin context key holding the store and codec
)

type sessionDeps struct {
	store session.Store
	codec *session.Codec
}

// Sessions returns a Gin middleware that attaches a server-side session to every request.
func Sessions(store session.Store, codec *session.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		// STEP 1: Resolve an existing session from the cookie, ignoring tampered or expired tokens
		var sess *session.Session
		if raw, err := c.Cookie(session.CookieName); err == nil && raw != "" {
			if id, err := codec.Decode(raw); err == nil {
				loaded, ok, err := store.Get(ctx, id)
				if err != nil {
					slog.Error("load session", "err", err)
					c.AbortWithStatus(http.StatusInternalServerError)
					return
				}
				if ok {
					sess = loaded
				}
			}
		}

		// STEP 2: Start a new session and hand its token to the browser
		if sess == nil {
			sess = session.New()
			if err := setCookie(c, codec, sess.ID); err != nil {
				slog.Error("encode session", "err", err)
				c.AbortWithStatus(http.StatusInternalServerError)
				return
			}
		}

		c.Set(sessionKey, sess)
		c.Set(depsKey, sessionDeps{store: store, codec: codec})
		c.Next()

		// STEP 3: Persist changes (cart, login, flashes); the store only needs the ID, not headers
		if err := store.Save(ctx, sess); err != nil {
			slog.Error("save session", "session_id", sess.ID, "err", err)
		}
	}
}

func setCookie(c *gin.Context, codec *session.Codec, id string) error {
	token, err := codec.Encode(id)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(session.CookieName, token, int(codec.TTL().Seconds()), "/", "", false, true)
	return nil
}

// Renew gives the request's session a fresh ID and cookie. Call it before
// the response is written. The state is saved under the new ID once the
// handler returns.
func Renew(c *gin.Context) error {
	sess := Current(c)
	v, ok := c.Get(depsKey)
	if !ok {
		return errors.New("renew session: no session middleware")
	}
	deps := v.(sessionDeps)

	old := sess.Rotate()
	if err := setCookie(c, deps.codec, sess.ID); err != nil {
		return fmt.Errorf("renew session: %w", err)
	}
	if err := deps.store.Delete(c.Request.Context(), old); err != nil {
		return fmt.Errorf("renew session: %w", err)
	}
	return nil
}

// Current returns the request's session. Outside Sessions it returns a throwaway session.
func Current(c *gin.Context) *session.Session {
	if v, ok := c.Get(sessionKey); ok {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	sess := session.New()
	c.Set(sessionKey, sess)
	return sess
}

// RequireLogin redirects anonymous visitors to the login page.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := Current(c)
		if !sess.LoggedIn {
			sess.AddFlash(session.FlashInfo, "Please log in to continue.")
			c.Redirect(http.StatusSeeOther, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
