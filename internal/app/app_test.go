package app

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"kasjer/internal/config"
	"kasjer/internal/transport"

	"github.com/stretchr/testify/require"
)

func TestNew_WithoutDatastoreDegrades(t *testing.T) {
	cfg := &config.Config{
		DB:  config.DBConfig{Source: "postgres://user@REPLACE-WITH-HOST/db", Password: "x"},
		JWT: config.JWTConfig{Secret: "s"},
		MQ:  config.MQConfig{Queue: "cashier.events"},
		WS:  config.WSConfig{Enabled: true},
	}

	a, err := New(context.Background(), cfg, Options{LiveInbox: true})
	require.NoError(t, err)
	defer a.Close()

	require.False(t, a.Store.Available())
	require.NotNil(t, a.Hub)

	resp, err := transport.Serve(context.Background(), a.Handler, transport.Request{Method: "GET", Path: "/api/health"})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.Status)
	require.JSONEq(t, `{"status":"ok","database":"not_configured"}`, string(resp.Body))

	body, _ := json.Marshal(map[string]any{
		"userId": "u1", "username": "MUC12345", "game": "VBLink", "amount": 25, "cashappTag": "$tag",
	})
	resp, err = transport.Serve(context.Background(), a.Handler, transport.Request{Method: "POST", Path: "/.netlify/functions/api/deposit", Body: body})
	require.NoError(t, err)
	require.Equal(t, http.StatusInternalServerError, resp.Status)

	var errBody map[string]any
	require.NoError(t, json.Unmarshal(resp.Body, &errBody))
	require.Equal(t, "unavailable", errBody["code"])

	login, _ := json.Marshal(map[string]string{"email": "a@b.com", "password": "abc123"})
	resp, err = transport.Serve(context.Background(), a.Handler, transport.Request{Method: "POST", Path: "/api/auth/login", Body: login})
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.Status)
}

func TestNew_FunctionHostHasNoHub(t *testing.T) {
	cfg := &config.Config{WS: config.WSConfig{Enabled: true}}

	a, err := New(context.Background(), cfg, Options{})
	require.NoError(t, err)
	defer a.Close()

	require.Nil(t, a.Hub)

	resp, err := transport.Serve(context.Background(), a.Handler, transport.Request{Method: "GET", Path: "/ws"})
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, resp.Status)
}
