package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/lifeline/internal/config"
)

func buildHandler(t *testing.T) http.Handler {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)

	h, cleanup, err := Build(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })
	return h
}

func do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
}

func signup(t *testing.T, h http.Handler, username, email string) string {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/v1/auth/signup", "", map[string]string{
		"username":    username,
		"email":       email,
		"password":    "hunter2hunter2",
		"blood_group": "O+",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var tok struct {
		AccessToken string `json:"access_token"`
	}
	decode(t, rec, &tok)
	require.NotEmpty(t, tok.AccessToken)
	return tok.AccessToken
}

type userSummary struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Following bool   `json:"following"`
}

func directory(t *testing.T, h http.Handler, token string) map[string]userSummary {
	t.Helper()
	rec := do(t, h, http.MethodGet, "/v1/users", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		Users []userSummary `json:"users"`
	}
	decode(t, rec, &resp)
	out := make(map[string]userSummary, len(resp.Users))
	for _, u := range resp.Users {
		out[u.Username] = u
	}
	return out
}

func TestAPIFlow(t *testing.T) {
	h := buildHandler(t)

	aliceTok := signup(t, h, "alice", "alice@example.com")
	bobTok := signup(t, h, "bob", "bob@example.com")

	// Credenciales inválidas
	rec := do(t, h, http.MethodPost, "/v1/auth/login", "", map[string]string{
		"username": "alice", "password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// Perfil propio
	rec = do(t, h, http.MethodGet, "/v1/me", aliceTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me struct {
		Username string `json:"username"`
	}
	decode(t, rec, &me)
	require.Equal(t, "alice", me.Username)

	// El directorio excluye al viewer
	users := directory(t, h, aliceTok)
	require.Len(t, users, 1)
	bob := users["bob"]
	require.NotEmpty(t, bob.ID)
	require.False(t, bob.Following)

	alice := directory(t, h, bobTok)["alice"]
	require.NotEmpty(t, alice.ID)

	// Sin follow no hay chat
	rec = do(t, h, http.MethodPost, "/v1/chat/"+bob.ID+"/messages", aliceTok, map[string]string{"content": "hola"})
	require.Equal(t, http.StatusForbidden, rec.Code, rec.Body.String())

	// Toggle crea la arista
	rec = do(t, h, http.MethodPost, "/v1/users/"+bob.ID+"/follow", aliceTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var follow struct {
		Following bool `json:"following"`
	}
	decode(t, rec, &follow)
	require.True(t, follow.Following)

	// Un solo follow habilita ambos sentidos
	rec = do(t, h, http.MethodPost, "/v1/chat/"+bob.ID+"/messages", aliceTok, map[string]string{"content": "  hola bob  "})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var sent struct {
		Sender  string `json:"sender"`
		Content string `json:"content"`
		SentAt  string `json:"sent_at"`
	}
	decode(t, rec, &sent)
	require.Equal(t, "alice", sent.Sender)
	require.Equal(t, "hola bob", sent.Content)
	require.NotEmpty(t, sent.SentAt)

	rec = do(t, h, http.MethodPost, "/v1/chat/"+alice.ID+"/messages", bobTok, map[string]string{"content": "hola alice"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/v1/chat/"+alice.ID+"/messages", bobTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var thread struct {
		Messages []struct {
			Sender  string `json:"sender"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	decode(t, rec, &thread)
	require.Len(t, thread.Messages, 2)
	require.Equal(t, "alice", thread.Messages[0].Sender)

	// Poll incremental desde el primer mensaje
	rec = do(t, h, http.MethodGet, "/v1/chat/"+bob.ID+"/messages?since="+sent.SentAt, aliceTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &thread)
	require.Len(t, thread.Messages, 1)
	require.Equal(t, "bob", thread.Messages[0].Sender)

	// Unfollow corta el intercambio pero no el historial
	rec = do(t, h, http.MethodPost, "/v1/users/"+bob.ID+"/follow", aliceTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &follow)
	require.False(t, follow.Following)

	rec = do(t, h, http.MethodPost, "/v1/chat/"+bob.ID+"/messages", aliceTok, map[string]string{"content": "otra"})
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/chat/"+bob.ID+"/messages", aliceTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Conexiones de bob: alice ya no lo sigue
	rec = do(t, h, http.MethodGet, "/v1/connections", bobTok, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var conns struct {
		Followers []userSummary `json:"followers"`
		Following []userSummary `json:"following"`
	}
	decode(t, rec, &conns)
	require.Empty(t, conns.Followers)
	require.Empty(t, conns.Following)
}

func TestAPIRequiresAuth(t *testing.T) {
	h := buildHandler(t)

	rec := do(t, h, http.MethodGet, "/v1/users", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodGet, "/v1/me", "garbage-token", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReadyz(t *testing.T) {
	h := buildHandler(t)

	rec := do(t, h, http.MethodGet, "/readyz", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Status string `json:"status"`
	}
	decode(t, rec, &resp)
	require.Equal(t, "ready", resp.Status)
}
