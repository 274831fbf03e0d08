package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/medagenda/medapp/internal/sandbox"
)

func runAuth(t *testing.T, tokens *sandbox.Tokens, header string, next echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := Auth(tokens)(next)(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func mustNotRun(t *testing.T) echo.HandlerFunc {
	return func(c echo.Context) error {
		t.Fatalf("should not reach next")
		return nil
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	tokens := sandbox.NewTokens("secret", time.Hour)
	signed, err := tokens.Issue(sandbox.Account{ID: 3, Tipo: sandbox.TipoMedico})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	called := false
	rec := runAuth(t, tokens, "Bearer "+signed, func(c echo.Context) error {
		called = true
		if c.Get(ContextAccountID) != int64(3) {
			t.Fatalf("account id not set")
		}
		if c.Get(ContextTipo) != sandbox.TipoMedico {
			t.Fatalf("tipo not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	tokens := sandbox.NewTokens("secret", time.Hour)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"sub": "1", "tipo": "ADMIN"})
	unsigned, _ := none.SignedString(jwt.UnsafeAllowNoneSignatureType)

	revokedRaw, _ := tokens.Issue(sandbox.Account{ID: 1, Tipo: sandbox.TipoAdmin})
	claims, _ := tokens.Parse(revokedRaw)
	tokens.Revoke(claims)

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"wrong scheme", "Token abc"},
		{"garbage token", "Bearer not-a-token"},
		{"alg none", "Bearer " + unsigned},
		{"revoked", "Bearer " + revokedRaw},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := runAuth(t, tokens, tt.header, mustNotRun(t))
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	if tok, ok := BearerToken("bearer abc"); !ok || tok != "abc" {
		t.Fatalf("expected abc, got %q %v", tok, ok)
	}
	if _, ok := BearerToken("Bearer "); ok {
		t.Fatalf("empty token must be rejected")
	}
}
