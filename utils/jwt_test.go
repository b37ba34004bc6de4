package utils

import (
	"testing"
	"time"
)

func TestTokenPairRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", 15*time.Minute, 24*time.Hour)

	pair, err := m.GenerateTokenPair("507f1f77bcf86cd799439011", "user@example.com")
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}

	claims, err := m.ValidateToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "507f1f77bcf86cd799439011" || claims.Email != "user@example.com" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.Type != "access" {
		t.Errorf("access token type = %s", claims.Type)
	}

	refreshClaims, err := m.ValidateRefreshToken(pair.RefreshToken)
	if err != nil {
		t.Fatalf("ValidateRefreshToken: %v", err)
	}
	if refreshClaims.Type != "refresh" {
		t.Errorf("refresh token type = %s", refreshClaims.Type)
	}
}

func TestAccessTokenRejectedAsRefresh(t *testing.T) {
	m := NewJWTManager("test-secret", 15*time.Minute, 24*time.Hour)

	pair, err := m.GenerateTokenPair("507f1f77bcf86cd799439011", "user@example.com")
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}
	if _, err := m.ValidateRefreshToken(pair.AccessToken); err == nil {
		t.Error("access token accepted as refresh token")
	}
}

func TestExpiredTokenRejected(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute, 24*time.Hour)

	pair, err := m.GenerateTokenPair("507f1f77bcf86cd799439011", "user@example.com")
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}
	if _, err := m.ValidateToken(pair.AccessToken); err != ErrExpiredToken {
		t.Errorf("expected ErrExpiredToken, got %v", err)
	}
}

func TestWrongSecretRejected(t *testing.T) {
	m1 := NewJWTManager("secret-one", 15*time.Minute, 24*time.Hour)
	m2 := NewJWTManager("secret-two", 15*time.Minute, 24*time.Hour)

	pair, err := m1.GenerateTokenPair("507f1f77bcf86cd799439011", "user@example.com")
	if err != nil {
		t.Fatalf("GenerateTokenPair: %v", err)
	}
	if _, err := m2.ValidateToken(pair.AccessToken); err == nil {
		t.Error("token signed with another secret accepted")
	}
}
