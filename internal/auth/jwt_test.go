package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/giftlinkhq/giftlink/internal/auth"
	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndParseRoundTrip(t *testing.T) {
	m := auth.NewManager("test-secret")

	raw, err := m.GenerateAuthToken("user-123", auth.RegisterTokenTTL)
	if err != nil {
		t.Fatalf("GenerateAuthToken: %v", err)
	}

	claims, err := m.ParseAndValidate(raw)
	if err != nil {
		t.Fatalf("ParseAndValidate: %v", err)
	}

	if claims.User.ID != "user-123" {
		t.Errorf("user id = %q, want %q", claims.User.ID, "user-123")
	}

	if claims.ExpiresAt == nil {
		t.Fatalf("registration token should carry an expiry")
	}

	got := time.Until(claims.ExpiresAt.Time)
	if got > time.Hour || got < 59*time.Minute {
		t.Errorf("expiry %v away, want about one hour", got)
	}
}

func TestZeroTTLOmitsExpiry(t *testing.T) {
	m := auth.NewManager("test-secret")

	raw, err := m.GenerateAuthToken("user-123", 0)
	if err != nil {
		t.Fatalf("GenerateAuthToken: %v", err)
	}

	claims, err := m.ParseAndValidate(raw)
	if err != nil {
		t.Fatalf("ParseAndValidate: %v", err)
	}

	if claims.ExpiresAt != nil {
		t.Errorf("login/update tokens must not carry exp, got %v", claims.ExpiresAt.Time)
	}
}

func TestWrongSecretRejected(t *testing.T) {
	raw, err := auth.NewManager("secret-a").GenerateAuthToken("user-123", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := auth.NewManager("secret-b").ParseAndValidate(raw); err == nil {
		t.Fatalf("token signed with a different secret was accepted")
	}
}

func TestNonHMACMethodRejected(t *testing.T) {
	// alg=none style token: header/claims signed with no method
	token := jwt.NewWithClaims(jwt.SigningMethodNone, auth.Claims{User: auth.TokenUser{ID: "u"}})
	raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatal(err)
	}

	_, err = auth.NewManager("secret").ParseAndValidate(raw)
	if err == nil || !strings.Contains(err.Error(), "unexpected signing method") {
		t.Fatalf("unsigned token was not rejected with the method error, got %v", err)
	}
}
