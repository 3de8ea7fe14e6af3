package dashboard

import (
	"context"
	"crypto/subtle"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/x402dash/x402dash/adapters/hasher"
	"github.com/x402dash/x402dash/adapters/metrics"
	"github.com/x402dash/x402dash/pkg/jsonapi"
)

type ctxKey int

const ctxUserKey ctxKey = iota

// UserFromContext returns the authenticated dashboard user, if any.
func UserFromContext(ctx context.Context) string {
	u, _ := ctx.Value(ctxUserKey).(string)
	return u
}

// BasicAuth protects a dashboard with a single configured user.
// The password may be configured as a bcrypt hash or in plain text.
type BasicAuth struct {
	username string
	cred     *hasher.Credential
	realm    string
	metrics  *metrics.Collector
	logger   zerolog.Logger
}

// NewBasicAuth creates the middleware. m may be nil.
func NewBasicAuth(username string, cred *hasher.Credential, realm string, m *metrics.Collector, logger zerolog.Logger) *BasicAuth {
	if realm == "" {
		realm = "x402 dashboard"
	}
	return &BasicAuth{username: username, cred: cred, realm: realm, metrics: m, logger: logger}
}

// Middleware rejects requests without valid credentials with 401.
func (a *BasicAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if ok && subtle.ConstantTimeCompare([]byte(user), []byte(a.username)) == 1 && a.cred.Matches(pass) {
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxUserKey, user)))
			return
		}

		if ok {
			a.metrics.ObserveAuthFailure()
			a.logger.Warn().Str("user", user).Str("path", r.URL.Path).Msg("dashboard login rejected")
		}
		w.Header().Set("WWW-Authenticate", `Basic realm="`+a.realm+`", charset="UTF-8"`)
		jsonapi.WriteError(w, jsonapi.ErrUnauthorized("Valid dashboard credentials required"))
	})
}
