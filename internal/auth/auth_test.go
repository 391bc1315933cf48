package auth

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "secret1" {
		t.Fatal("hash equals plaintext")
	}
	if !CheckPassword(hash, "secret1") {
		t.Error("CheckPassword rejected the right password")
	}
	if CheckPassword(hash, "secret2") {
		t.Error("CheckPassword accepted a wrong password")
	}

	// salted: same input, different hash
	other, _ := HashPassword("secret1")
	if other == hash {
		t.Error("expected distinct hashes for the same password")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tok, err := MakeToken("user-1", "s3cret")
	if err != nil {
		t.Fatalf("MakeToken: %v", err)
	}
	c, err := ParseToken(tok, "s3cret")
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if c.UserID != "user-1" {
		t.Errorf("UserID = %q; want user-1", c.UserID)
	}
}

func TestParseToken_Rejects(t *testing.T) {
	good, _ := MakeToken("user-1", "s3cret")
	none, _ := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "user-1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	empty, _ := MakeToken("", "s3cret")

	cases := []struct {
		name   string
		raw    string
		secret string
	}{
		{"wrong secret", good, "other"},
		{"garbage", "not.a.token", "s3cret"},
		{"alg none", none, "s3cret"},
		{"empty uid", empty, "s3cret"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ParseToken(tc.raw, tc.secret); err == nil {
				t.Error("expected error")
			}
		})
	}
}
