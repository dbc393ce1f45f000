package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogAPIClient_Call(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/term/sync":
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "true", r.URL.Query().Get("apply"))
			assert.Equal(t, "term.json", r.URL.Query().Get("filename"))
			w.Write([]byte(`{"success":true,"data":{"updated":2}}`))
		case "/api/erd/relations/sync":
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"success":false,"error":"잘못된 요청"}`))
		default:
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`<html>bad gateway</html>`))
		}
	}))
	defer server.Close()

	c := NewCatalogAPIClient(server.URL+"/", time.Second)
	ctx := context.Background()

	result, err := c.Call(ctx, http.MethodPost, "/api/term/sync", url.Values{"apply": {"true"}, "filename": {"term.json"}})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	var data struct {
		Updated int `json:"updated"`
	}
	require.NoError(t, result.DecodeData(&data))
	assert.Equal(t, 2, data.Updated)

	result, err = c.Call(ctx, http.MethodPost, "/api/erd/relations/sync", nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, http.StatusBadRequest, result.StatusCode)
	assert.Equal(t, "잘못된 요청", result.Error)

	result, err = c.Call(ctx, http.MethodGet, "/unknown", nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, http.StatusBadGateway, result.StatusCode)
	assert.NotEmpty(t, result.Error)
}

func TestCatalogAPIClient_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	baseURL := server.URL
	server.Close()

	c := NewCatalogAPIClient(baseURL, time.Second)
	_, err := c.Call(context.Background(), http.MethodGet, "/api/validation/report", nil)
	assert.Error(t, err)
}
