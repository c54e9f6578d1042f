package middleware

import (
	"net/http"
	"strings"

	"github.com/maskeddeveloper/product-trial-master/api/responses"
	pkgauth "github.com/maskeddeveloper/product-trial-master/pkg/auth"
	"github.com/maskeddeveloper/product-trial-master/pkg/config"
	pkgerrors "github.com/maskeddeveloper/product-trial-master/pkg/errors"
	"github.com/maskeddeveloper/product-trial-master/pkg/logger"
)

// Auth validates a bearer token and seeds the request context with the
// claims. An absent or malformed header is an authentication failure (401); a
// present token that fails verification is a forbidden request (403).
func Auth(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			parts := strings.Fields(r.Header.Get("Authorization"))
			if len(parts) == 0 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "authorization header missing"))
				return
			}

			token := parts[0]
			if strings.EqualFold(parts[0], "bearer") {
				if len(parts) < 2 {
					responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "token missing"))
					return
				}
				token = parts[1]
			}

			claims, err := pkgauth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeForbidden, err, "invalid or expired token"))
				return
			}

			ctx := WithIdentity(r.Context(), claims.UserID.String(), claims.Email, claims.IsAdmin)

			if logg != nil {
				fields := map[string]any{
					"user_id":  claims.UserID.String(),
					"is_admin": claims.IsAdmin,
				}
				ctx = logg.WithFields(ctx, fields)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
