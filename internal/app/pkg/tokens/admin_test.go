package tokens

import (
	"testing"
	"time"

	"github.com/flitlabs/dispatch_tracker/internal/pkg/env"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func admin(secret string) *AdminToken {
	return &AdminToken{E: &env.Env{AdminTokenSecret: secret}}
}

func TestAdminToken(t *testing.T) {
	at := admin("0123456789abcdef0123456789abcdef")
	operator := uuid.New()

	str, err := at.Create(operator, time.Hour)
	if err != nil {
		t.Fatalf("failed to create the token: %v", err)
	}

	ok, token := at.Validate(str)
	if !ok {
		t.Fatalf("expected the token to be valid")
	}

	got, err := at.Get(token)
	if err != nil {
		t.Fatalf("failed to get the operator: %v", err)
	}
	if got != operator {
		t.Errorf("expected %s, got %s", operator, got)
	}
}

func TestAdminTokenRejects(t *testing.T) {
	at := admin("0123456789abcdef0123456789abcdef")

	expired, err := at.Create(uuid.New(), -time.Minute)
	if err != nil {
		t.Fatalf("failed to create the token: %v", err)
	}
	if ok, _ := at.Validate(expired); ok {
		t.Errorf("expected an expired token to be rejected")
	}

	other, err := admin("fedcba9876543210fedcba9876543210").Create(uuid.New(), time.Hour)
	if err != nil {
		t.Fatalf("failed to create the token: %v", err)
	}
	if ok, _ := at.Validate(other); ok {
		t.Errorf("expected a token signed with another secret to be rejected")
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": uuid.NewString()}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to create the token: %v", err)
	}
	if ok, _ := at.Validate(none); ok {
		t.Errorf("expected an unsigned token to be rejected")
	}

	if ok, _ := at.Validate("not a token"); ok {
		t.Errorf("expected garbage to be rejected")
	}
}
