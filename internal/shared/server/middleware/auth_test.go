package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"resume-matcher-backend/internal/shared/auth"
)

func authRouter(t *testing.T, tokens *auth.Tokens) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth(tokens))
	router.GET("/open", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserIDFromContext(c)})
	})
	router.GET("/protected", RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": UserIDFromContext(c)})
	})
	return router
}

func TestAuthTreatsMissingHeaderAsGuest(t *testing.T) {
	router := authRouter(t, auth.NewTokens("secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("guest on open route: status = %d, want 200", resp.Code)
	}
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	router := authRouter(t, auth.NewTokens("secret", time.Hour))

	for _, header := range []string{
		"Bearer not-a-token",
		"Bearer ",
		"Basic abc",
	} {
		req := httptest.NewRequest(http.MethodGet, "/open", nil)
		req.Header.Set("Authorization", header)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, resp.Code)
		}
	}
}

func TestAuthRejectsTokenSignedWithOtherSecret(t *testing.T) {
	router := authRouter(t, auth.NewTokens("secret", time.Hour))

	forged, err := auth.NewTokens("other-secret", time.Hour).Sign("user-1", "alice")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("forged token: status = %d, want 401", resp.Code)
	}
}

func TestRequireAuthBlocksGuests(t *testing.T) {
	tokens := auth.NewTokens("secret", time.Hour)
	router := authRouter(t, tokens)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("guest on protected route: status = %d, want 401", resp.Code)
	}

	token, err := tokens.Sign("user-1", "alice")
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	authedReq := httptest.NewRequest(http.MethodGet, "/protected", nil)
	authedReq.Header.Set("Authorization", "Bearer "+token)
	authedResp := httptest.NewRecorder()
	router.ServeHTTP(authedResp, authedReq)
	if authedResp.Code != http.StatusOK {
		t.Fatalf("authed on protected route: status = %d, want 200", authedResp.Code)
	}
}
