package utils

import (
    "errors"
    "testing"
    "time"
)

func TestFormatRemaining(t *testing.T) {
    cases := []struct {
        in   time.Duration
        want string
    }{
        {0, "0 seconds"},
        {-time.Minute, "0 seconds"},
        {999 * time.Millisecond, "0 seconds"},
        {time.Second, "1 second"},
        {59 * time.Second, "59 seconds"},
        {time.Minute, "1 minute"},
        {61 * time.Second, "1 minute 1 second"},
        {14*time.Minute + 59*time.Second + 500*time.Millisecond, "14 minutes 59 seconds"},
        {15 * time.Minute, "15 minutes"},
    }
    for _, c := range cases {
        if got := FormatRemaining(c.in); got != c.want {
            t.Errorf("FormatRemaining(%v) = %q, want %q", c.in, got, c.want)
        }
    }
}

func TestPasswordRoundTrip(t *testing.T) {
    salt, err := NewSalt()
    if err != nil {
        t.Fatal(err)
    }
    if len(salt) != 2*saltBytes {
        t.Fatalf("salt length = %d", len(salt))
    }
    other, _ := NewSalt()
    if salt == other {
        t.Fatal("salts should differ")
    }

    h := HashPassword("password1", salt)
    if h != HashPassword("password1", salt) {
        t.Fatal("hash is not deterministic")
    }
    if h == HashPassword("password1", other) {
        t.Fatal("different salts produced the same hash")
    }
    if !VerifyPassword(h, salt, "password1") {
        t.Fatal("correct password rejected")
    }
    if VerifyPassword(h, salt, "password2") {
        t.Fatal("wrong password accepted")
    }
}

func TestAccessTokenRoundTrip(t *testing.T) {
    now := time.Now().UTC().Truncate(time.Second)
    exp := now.Add(15 * time.Minute)
    tok, err := NewAccessToken("secret", "123456789V", "sess-1", exp, now)
    if err != nil {
        t.Fatal(err)
    }
    c, err := ParseAccessToken("secret", tok.Token)
    if err != nil {
        t.Fatalf("parse: %v", err)
    }
    if c.NIC != "123456789V" || c.SessionID != "sess-1" || !c.ExpiresAt.Equal(exp) {
        t.Fatalf("claims = %+v", c)
    }
}

func TestParseAccessTokenRejects(t *testing.T) {
    now := time.Now().UTC()
    good, _ := NewAccessToken("secret", "1v", "s", now.Add(time.Minute), now)
    expired, _ := NewAccessToken("secret", "1v", "s", now.Add(-time.Minute), now.Add(-2*time.Minute))
    noSID, _ := NewAccessToken("secret", "1v", "", now.Add(time.Minute), now)

    for name, raw := range map[string]string{
        "wrong secret": good.Token,
        "expired":      expired.Token,
        "no sid":       noSID.Token,
        "garbage":      "not-a-jwt",
    } {
        secret := "secret"
        if name == "wrong secret" {
            secret = "other"
        }
        if _, err := ParseAccessToken(secret, raw); !errors.Is(err, ErrInvalidToken) {
            t.Errorf("%s: err = %v, want ErrInvalidToken", name, err)
        }
    }
}
