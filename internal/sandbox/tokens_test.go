package sandbox

import (
	"errors"
	"testing"
	"time"
)

func TestTokens_IssueParse(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)

	raw, err := tokens.Issue(Account{ID: 7, Tipo: TipoMedico})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	claims, err := tokens.Parse(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	id, _ := claims.AccountID()
	if id != 7 || claims.Tipo != TipoMedico {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestTokens_RejectsForeignSecret(t *testing.T) {
	raw, _ := NewTokens("other", time.Hour).Issue(Account{ID: 1, Tipo: TipoAdmin})

	if _, err := NewTokens("secret", time.Hour).Parse(raw); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokens_Expired(t *testing.T) {
	tokens := NewTokens("secret", time.Minute)
	raw, _ := tokens.Issue(Account{ID: 1, Tipo: TipoAdmin})

	tokens.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	if _, err := tokens.Parse(raw); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestTokens_Revoke(t *testing.T) {
	tokens := NewTokens("secret", time.Hour)
	first, _ := tokens.Issue(Account{ID: 1, Tipo: TipoPaciente})
	second, _ := tokens.Issue(Account{ID: 1, Tipo: TipoPaciente})

	claims, err := tokens.Parse(first)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	tokens.Revoke(claims)

	if _, err := tokens.Parse(first); !errors.Is(err, ErrTokenRevoked) {
		t.Fatalf("expected ErrTokenRevoked, got %v", err)
	}
	if _, err := tokens.Parse(second); err != nil {
		t.Fatalf("other tokens of the same account must stay valid: %v", err)
	}
}
