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

package verify

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/golang-jwt/jwt/v5"
	"github.com/lestrrat-go/jwx/v3/jwk"
)

// AuthOptions describes the session cookie installed before navigation.
// Exactly one of Secret and JWKFile must be set.
type AuthOptions struct {
	CookieName string
	// Secret signs the token with HS256.
	Secret string
	// JWKFile holds a private JWK. Its kid is copied into the token header.
	JWKFile string
	// Subject is used for the sub and email claims.
	Subject string
	TTL     time.Duration
}

func (a *AuthOptions) validate() error {
	switch {
	case a.Secret == "" && a.JWKFile == "":
		return errors.New("auth needs a secret or a JWK file")
	case a.Secret != "" && a.JWKFile != "":
		return errors.New("auth secret and JWK file are mutually exclusive")
	case a.Subject == "":
		return errors.New("auth subject is required")
	case a.TTL < 0:
		return errors.New("negative auth ttl")
	}
	return nil
}

func (a *AuthOptions) cookieName() string {
	if a.CookieName == "" {
		return DefaultAuthCookieName
	}
	return a.CookieName
}

// SessionToken mints a signed token for a.Subject, valid from now for
// a.TTL.
func (a *AuthOptions) SessionToken(now time.Time) (string, error) {
	method, key, kid, err := a.signingKey()
	if err != nil {
		return "", err
	}
	ttl := a.TTL
	if ttl == 0 {
		ttl = DefaultAuthTTL
	}
	token := jwt.NewWithClaims(method, jwt.MapClaims{
		"sub":   a.Subject,
		"email": a.Subject,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	})
	if kid != "" {
		token.Header["kid"] = kid
	}
	s, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return s, nil
}

func (a *AuthOptions) signingKey() (jwt.SigningMethod, any, string, error) {
	if a.Secret != "" {
		return jwt.SigningMethodHS256, []byte(a.Secret), "", nil
	}

	b, err := os.ReadFile(a.JWKFile)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to read JWK: %w", err)
	}
	key, err := jwk.ParseKey(b)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to parse JWK %s: %w", a.JWKFile, err)
	}
	var raw any
	if err := jwk.Export(key, &raw); err != nil {
		return nil, nil, "", fmt.Errorf("failed to materialize key: %w", err)
	}
	kid, _ := key.KeyID()

	switch k := raw.(type) {
	case *rsa.PrivateKey:
		return jwt.SigningMethodRS256, k, kid, nil
	case *ecdsa.PrivateKey:
		switch k.Curve.Params().BitSize {
		case 256:
			return jwt.SigningMethodES256, k, kid, nil
		case 384:
			return jwt.SigningMethodES384, k, kid, nil
		case 521:
			return jwt.SigningMethodES512, k, kid, nil
		}
		return nil, nil, "", fmt.Errorf("unsupported curve %s", k.Curve.Params().Name)
	case ed25519.PrivateKey:
		return jwt.SigningMethodEdDSA, k, kid, nil
	}
	return nil, nil, "", fmt.Errorf("JWK %s is not a private signing key (%T)", a.JWKFile, raw)
}

// setSessionCookie installs token as a host-only cookie for targetURL.
func setSessionCookie(targetURL, name, token string) (*network.SetCookieParams, error) {
	u, err := url.Parse(targetURL)
	if err != nil {
		return nil, err
	}
	return network.SetCookie(name, token).
		WithURL(targetURL).
		WithPath("/").
		WithHTTPOnly(true).
		WithSecure(u.Scheme == "https"), nil
}
