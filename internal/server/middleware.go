package server

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
)

const roleSiteAdmin = "SiteAdmin"

// requireSiteAdmin validates the bearer token and rejects any token whose
// role claim is not SiteAdmin. Admin endpoints trigger real SMS and email
// sends, so there is no lesser tier.
func (s *Server) requireSiteAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" {
			s.writeEnvelope(w, http.StatusUnauthorized, false, "Authorization header required", nil)
			return
		}
		parts := strings.SplitN(auth, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			s.writeEnvelope(w, http.StatusUnauthorized, false, "Invalid authorization format", nil)
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(s.cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			s.writeEnvelope(w, http.StatusUnauthorized, false, "Invalid token", nil)
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || claims["role"] != roleSiteAdmin {
			s.writeEnvelope(w, http.StatusForbidden, false, "Insufficient permissions", nil)
			return
		}

		next.ServeHTTP(w, r)
	})
}
