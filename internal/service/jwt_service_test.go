package service

import (
	"errors"
	"testing"
	"time"
)

func TestJWTIssueAndVerify(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, err := svc.Issue("user-1")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	userID, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if userID != "user-1" {
		t.Fatalf("expected user-1, got %q", userID)
	}
}

func TestJWTVerifyEmptyAndGarbage(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	if _, err := svc.Verify(""); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid for empty token, got %v", err)
	}
	if _, err := svc.Verify("not.a.jwt"); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid for garbage token, got %v", err)
	}
}

func TestJWTVerifyWrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-a", time.Hour)
	verifier := NewJWTService("secret-b", time.Hour)

	token, err := issuer.Issue("user-1")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	if _, err := verifier.Verify(token); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid for wrong secret, got %v", err)
	}
}

func TestJWTVerifyExpired(t *testing.T) {
	svc := NewJWTService("test-secret", time.Millisecond)

	token, err := svc.Issue("user-1")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	if _, err := svc.Verify(token); !errors.Is(err, ErrJWTExpired) {
		t.Fatalf("expected ErrJWTExpired, got %v", err)
	}
}

func TestJWTEmptySecret(t *testing.T) {
	svc := NewJWTService("", time.Hour)
	if _, err := svc.Issue("user-1"); !errors.Is(err, ErrJWTInvalid) {
		t.Fatalf("expected ErrJWTInvalid without secret, got %v", err)
	}
}

func TestJWTTamperedToken(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, err := svc.Issue("user-1")
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}
	tampered := token[:len(token)-2] + "xx"
	if _, err := svc.Verify(tampered); err == nil {
		t.Fatalf("expected tampered token to be rejected")
	}
}
