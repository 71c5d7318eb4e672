package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/sakif/studio-site/internal/model"
)

const testSecret = "test-secret-key-for-tests-only!!"

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	tokens, err := NewTokenService(testSecret)
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}
	return tokens
}

func TestNewTokenService_RejectsShortSecret(t *testing.T) {
	if _, err := NewTokenService("short"); err == nil {
		t.Error("NewTokenService() accepted a short secret, want error")
	}
}

func TestGenerateAndValidate(t *testing.T) {
	tokens := newTestTokenService(t)

	signed, err := tokens.Generate("github:1234", model.RoleAdmin)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	identity, err := tokens.Validate(signed)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if identity.UserID != "github:1234" {
		t.Errorf("UserID = %q, want %q", identity.UserID, "github:1234")
	}
	if identity.Role != model.RoleAdmin {
		t.Errorf("Role = %q, want %q", identity.Role, model.RoleAdmin)
	}
}

func TestValidate_ExpiredToken(t *testing.T) {
	tokens := newTestTokenService(t)

	signed, err := tokens.GenerateWithDuration("user-1", model.RoleClient, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateWithDuration() error = %v", err)
	}

	if _, err := tokens.Validate(signed); err == nil {
		t.Error("Validate() accepted an expired token")
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	tokens := newTestTokenService(t)
	other, err := NewTokenService("a-completely-different-secret-key")
	if err != nil {
		t.Fatalf("NewTokenService() error = %v", err)
	}

	signed, err := tokens.Generate("user-1", model.RoleClient)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if _, err := other.Validate(signed); err == nil {
		t.Error("Validate() accepted a token signed with a different secret")
	}
}

func TestValidate_TamperedToken(t *testing.T) {
	tokens := newTestTokenService(t)

	signed, err := tokens.Generate("user-1", model.RoleClient)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	// Flip a character in the payload segment.
	parts := strings.Split(signed, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d segments, want 3", len(parts))
	}
	payload := []byte(parts[1])
	payload[0] ^= 0x01
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := tokens.Validate(tampered); err == nil {
		t.Error("Validate() accepted a tampered token")
	}
}

func TestValidate_Garbage(t *testing.T) {
	tokens := newTestTokenService(t)

	if _, err := tokens.Validate("not-a-jwt"); err == nil {
		t.Error("Validate() accepted garbage input")
	}
}
