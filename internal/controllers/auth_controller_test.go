package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"heritage_routes/internal/middleware"
	"heritage_routes/internal/repository/memory"
)

func setupAuthRouter() (*gin.Engine, *middleware.TokenIssuer) {
	gin.SetMode(gin.TestMode)

	users := memory.NewUserRepository()
	tokens := middleware.NewTokenIssuer("test-secret", time.Hour)
	ac := NewAuthController(users, tokens)

	r := gin.New()
	r.POST("/auth/signup", ac.Signup)
	r.POST("/auth/login", ac.Login)
	r.GET("/auth/me", tokens.RequireAuth(), ac.Me)
	return r, tokens
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
	return body
}

func TestSignupIssuesToken(t *testing.T) {
	r, _ := setupAuthRouter()

	w := postJSON(t, r, "/auth/signup", gin.H{
		"username": "walker",
		"email":    "walker@example.com",
		"password": "secret123",
	}, nil)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["token"] == "" || body["token"] == nil {
		t.Error("expected a token in the response")
	}
	user, ok := body["user"].(map[string]any)
	if !ok {
		t.Fatal("expected a user object in the response")
	}
	if _, leaked := user["password"]; leaked {
		t.Error("password hash must not appear in the response")
	}
}

func TestSignupRejectsDuplicateUsername(t *testing.T) {
	r, _ := setupAuthRouter()

	first := postJSON(t, r, "/auth/signup", gin.H{
		"username": "walker", "email": "a@example.com", "password": "secret123",
	}, nil)
	if first.Code != http.StatusCreated {
		t.Fatalf("first signup status = %d", first.Code)
	}

	second := postJSON(t, r, "/auth/signup", gin.H{
		"username": "walker", "email": "b@example.com", "password": "secret123",
	}, nil)
	if second.Code != http.StatusConflict {
		t.Fatalf("duplicate signup status = %d, want %d", second.Code, http.StatusConflict)
	}
}

func TestSignupValidation(t *testing.T) {
	r, _ := setupAuthRouter()

	tests := []struct {
		name string
		body gin.H
	}{
		{"short username", gin.H{"username": "ab", "email": "a@example.com", "password": "secret123"}},
		{"bad email", gin.H{"username": "walker", "email": "not-an-email", "password": "secret123"}},
		{"short password", gin.H{"username": "walker", "email": "a@example.com", "password": "123"}},
		{"username with spaces", gin.H{"username": "wal ker", "email": "a@example.com", "password": "secret123"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := postJSON(t, r, "/auth/signup", tc.body, nil)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	r, _ := setupAuthRouter()

	postJSON(t, r, "/auth/signup", gin.H{
		"username": "walker", "email": "walker@example.com", "password": "secret123",
	}, nil)

	t.Run("correct credentials", func(t *testing.T) {
		w := postJSON(t, r, "/auth/login", gin.H{"username": "walker", "password": "secret123"}, nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", w.Code, w.Body.String())
		}
		if decodeBody(t, w)["token"] == nil {
			t.Error("expected a token in the response")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		w := postJSON(t, r, "/auth/login", gin.H{"username": "walker", "password": "wrong"}, nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		w := postJSON(t, r, "/auth/login", gin.H{"username": "ghost", "password": "secret123"}, nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})
}

func TestMe(t *testing.T) {
	r, _ := setupAuthRouter()

	created := postJSON(t, r, "/auth/signup", gin.H{
		"username": "walker", "email": "walker@example.com", "password": "secret123",
	}, nil)
	if created.Code != http.StatusCreated {
		t.Fatalf("signup status = %d", created.Code)
	}
	token, _ := decodeBody(t, created)["token"].(string)
	if token == "" {
		t.Fatal("signup did not return a token")
	}

	t.Run("with token", func(t *testing.T) {
		w := getJSON(t, r, "/auth/me", map[string]string{"Authorization": "Bearer " + token})
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", w.Code, w.Body.String())
		}
		user, ok := decodeBody(t, w)["user"].(map[string]any)
		if !ok {
			t.Fatal("expected a user object in the response")
		}
		if user["username"] != "walker" {
			t.Errorf("username = %v, want walker", user["username"])
		}
		if _, leaked := user["password"]; leaked {
			t.Error("password hash must not appear in the response")
		}
	})

	t.Run("without token", func(t *testing.T) {
		if w := getJSON(t, r, "/auth/me", nil); w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})
}
