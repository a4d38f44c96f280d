package auth

import (
	"strings"
	"time"

	"github.com/MicahParks/keyfunc"
	"github.com/go-faster/errors"
	"github.com/golang-jwt/jwt/v4"
)

var (
	errMissingAuthorization = errors.New("missing authorization header")
	errBadAuthorization     = errors.New("bad auth header")
)

// Verifier validates bearer tokens issued by the identity provider.
// With a shared secret it accepts HS256 tokens, otherwise RS256 keys from JWKS.
type Verifier struct {
	JWKS     *keyfunc.JWKS
	Secret   []byte
	Audience string
	Issuer   string

	parser *jwt.Parser
}

func NewVerifier(jwks *keyfunc.JWKS, secret []byte, audience, issuer string) *Verifier {
	v := &Verifier{JWKS: jwks, Secret: secret, Audience: audience, Issuer: issuer}
	if len(secret) > 0 {
		v.parser = jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))
	} else {
		v.parser = jwt.NewParser(jwt.WithValidMethods([]string{"RS256"}))
	}
	return v
}

// NewJWKSVerifier fetches the key set and keeps it refreshed in the background.
func NewJWKSVerifier(jwksURL, audience, issuer string) (*Verifier, error) {
	jwks, err := keyfunc.Get(jwksURL, keyfunc.Options{
		RefreshInterval:   time.Hour,
		RefreshRateLimit:  5 * time.Minute,
		RefreshUnknownKID: true,
	})
	if err != nil {
		return nil, errors.Wrap(err, "fetch jwks")
	}
	return NewVerifier(jwks, nil, audience, issuer), nil
}

// PrincipalFromHeader parses an Authorization header value.
func (v *Verifier) PrincipalFromHeader(h string) (Principal, error) {
	if h == "" {
		return Principal{}, errMissingAuthorization
	}
	const prefix = "Bearer "
	if len(h) <= len(prefix) || !strings.EqualFold(h[:len(prefix)], prefix) {
		return Principal{}, errBadAuthorization
	}
	token := strings.TrimSpace(h[len(prefix):])
	if strings.Count(token, ".") != 2 {
		return Principal{}, errBadAuthorization
	}
	return v.PrincipalFromToken(token)
}

func (v *Verifier) PrincipalFromToken(token string) (Principal, error) {
	parsed, err := v.parser.Parse(token, v.key)
	if err != nil {
		return Principal{}, err
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, errors.New("invalid claims")
	}

	now := time.Now().Unix()
	if !claims.VerifyExpiresAt(now, true) {
		return Principal{}, errors.New("token expired")
	}
	if v.Audience != "" && !claims.VerifyAudience(v.Audience, true) {
		return Principal{}, errors.New("invalid audience")
	}
	if v.Issuer != "" && !claims.VerifyIssuer(v.Issuer, true) {
		return Principal{}, errors.New("invalid issuer")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return Principal{}, errors.New("missing sub")
	}
	p := Principal{UserID: sub}
	p.OrgID, _ = claims["org_id"].(string)
	p.UserName, _ = claims["name"].(string)
	p.UserImage, _ = claims["image_url"].(string)
	return p, nil
}

func (v *Verifier) key(t *jwt.Token) (any, error) {
	if len(v.Secret) > 0 {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return v.Secret, nil
	}
	if v.JWKS == nil {
		return nil, errors.New("jwks not configured")
	}
	return v.JWKS.Keyfunc(t)
}
