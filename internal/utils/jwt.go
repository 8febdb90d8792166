package utils // package utils provides helpers for token signing, password hashing and formatting

import (
    "crypto/rand" // secure random number generation
    "encoding/hex"
    "errors"
    "fmt"
    "time"

    "github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by ParseAccessToken for any token that is
// malformed, wrongly signed, expired or missing required claims.
var ErrInvalidToken = errors.New("invalid token")

// AccessToken represents a signed JWT access token along with its expiry.
// Access tokens are bound to a server-side session: the sid claim names the
// session and exp equals the session's expiry, so a token never outlives it.
type AccessToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// Claims are the values carried by an access token.
type Claims struct {
    NIC       string // sub
    SessionID string // sid
    ExpiresAt time.Time
}

// NewAccessToken builds and signs an HS256 JWT for a login session.  The
// token includes the standard claims sub (the NIC), exp and iat plus the
// session id under sid.
func NewAccessToken(secret, nic, sessionID string, exp, now time.Time) (AccessToken, error) {
    claims := jwt.MapClaims{
        "sub": nic,
        "sid": sessionID,
        "exp": exp.UTC().Unix(),
        "iat": now.UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Exp: exp.UTC()}, nil
}

// ParseAccessToken verifies the signature and expiry of raw and extracts its
// claims.  Only HS256 is accepted.
func ParseAccessToken(secret, raw string) (Claims, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
        return []byte(secret), nil
    }, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
    if err != nil || !tok.Valid {
        return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
    }
    mc, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return Claims{}, ErrInvalidToken
    }
    sub, _ := mc["sub"].(string)
    sid, _ := mc["sid"].(string)
    if sub == "" || sid == "" {
        return Claims{}, ErrInvalidToken
    }
    var exp time.Time
    if e, err := mc.GetExpirationTime(); err == nil && e != nil {
        exp = e.Time.UTC()
    }
    return Claims{NIC: sub, SessionID: sid, ExpiresAt: exp}, nil
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
    buf := make([]byte, n)
    if _, err := rand.Read(buf); err != nil {
        return "", err
    }
    return hex.EncodeToString(buf), nil
}
