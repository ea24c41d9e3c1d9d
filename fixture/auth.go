// Copyright (c) 2026 TTBT Enterprises LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package fixture

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lestrrat-go/jwx/v3/jwk"
)

// jwtAuthMiddleware attaches the email claim of a valid session token to
// the request context. HS256 tokens are checked against opts.Secret,
// asymmetric ones against the key in opts.Keys named by their kid header.
// Requests without a valid token proceed anonymously.
func jwtAuthMiddleware(opts Options, next http.Handler) http.Handler {
	keyFunc := func(token *jwt.Token) (interface{}, error) {
		switch token.Method.(type) {
		case *jwt.SigningMethodHMAC:
			if opts.Secret == "" {
				return nil, fmt.Errorf("HMAC tokens are not accepted")
			}
			return []byte(opts.Secret), nil
		case *jwt.SigningMethodRSA, *jwt.SigningMethodECDSA, *jwt.SigningMethodEd25519:
		default:
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		kid, ok := token.Header["kid"].(string)
		if !ok {
			return nil, fmt.Errorf("token missing 'kid' header")
		}
		if opts.Keys == nil {
			return nil, fmt.Errorf("no JWKS configured")
		}
		key, ok := opts.Keys.LookupKeyID(kid)
		if !ok {
			return nil, fmt.Errorf("key %s not found in JWKS", kid)
		}
		var raw interface{}
		if err := jwk.Export(key, &raw); err != nil {
			return nil, fmt.Errorf("failed to materialize key: %w", err)
		}
		return raw, nil
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(opts.CookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		token, err := jwt.Parse(cookie.Value, keyFunc)
		if err != nil || !token.Valid {
			if opts.Debug {
				log.Printf("JWT Validation failed: %v", err)
			}
			next.ServeHTTP(w, r)
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if email, ok := claims["email"].(string); ok && email != "" {
				ctx := context.WithValue(r.Context(), userIDKey, email)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// LoadKeys reads a JWK set (or a single JWK) of public keys accepted by
// the portal.
func LoadKeys(path string) (jwk.Set, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	set, err := jwk.Parse(b)
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWKS %s: %w", path, err)
	}
	return set, nil
}
