// Inkwell - Publishing API Edge Caching and Rate Limiting
// Copyright 2026 Inkwell Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/inkwell-app/inkwell

package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/inkwell-app/inkwell/internal/logging"
)

const principalKey contextKey = "principal"

// Principal is the authenticated identity carried by a request token.
type Principal struct {
	Subject string
}

// Authenticator returns middleware that extracts the JWT identity from
// the Authorization header ("Token <jwt>" or "Bearer <jwt>") and stores
// it in the request context.
//
// Extraction is best-effort: requests with a missing, malformed, or
// expired token continue as anonymous. Authorization is enforced by
// the upstream application, the edge only needs the identity to key
// per-user quotas.
func Authenticator(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := tokenFromHeader(r.Header.Get("Authorization"))
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			subject, err := parseSubject(raw, secret)
			if err != nil {
				logging.Ctx(r.Context()).Debug().
					Err(err).
					Msg("Ignoring invalid bearer token")
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, Principal{Subject: subject})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext returns the authenticated identity, if any.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey).(Principal)
	return p, ok
}

// PrincipalID reports the request's authenticated subject. It satisfies
// the rate limiter's identity callback.
func PrincipalID(r *http.Request) (string, bool) {
	p, ok := PrincipalFromContext(r.Context())
	if !ok || p.Subject == "" {
		return "", false
	}
	return p.Subject, true
}

func tokenFromHeader(header string) string {
	for _, scheme := range []string{"Token ", "Bearer "} {
		if len(header) > len(scheme) && strings.EqualFold(header[:len(scheme)], scheme) {
			return strings.TrimSpace(header[len(scheme):])
		}
	}
	return ""
}

func parseSubject(raw string, secret []byte) (string, error) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("unexpected claims type %T", token.Claims)
	}
	if sub, _ := claims.GetSubject(); sub != "" {
		return sub, nil
	}
	if username, ok := claims["username"].(string); ok && username != "" {
		return username, nil
	}
	return "", fmt.Errorf("token carries no subject")
}
