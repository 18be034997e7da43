package glpi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, Client) {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(Config{
		URL:       srv.URL,
		AppToken:  "app-token",
		UserToken: "user-token",
	})
	return srv, client
}

func TestInitSession(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/initSession", r.URL.Path)
			assert.Equal(t, "app-token", r.Header.Get("App-Token"))
			assert.Equal(t, "user_token user-token", r.Header.Get("Authorization"))
			json.NewEncoder(w).Encode(map[string]string{"session_token": "abc123"})
		})

		err := client.InitSession(context.Background())
		assert.NoError(t, err)
	})

	t.Run("Unauthorized", func(t *testing.T) {
		_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		err := client.InitSession(context.Background())
		assert.Error(t, err)
	})

	t.Run("Empty Token", func(t *testing.T) {
		_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{})
		})

		err := client.InitSession(context.Background())
		assert.Error(t, err)
	})
}

func TestGetComputers(t *testing.T) {
	t.Run("Ranged Page", func(t *testing.T) {
		_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/initSession" {
				json.NewEncoder(w).Encode(map[string]string{"session_token": "abc123"})
				return
			}
			assert.Equal(t, "/Computer", r.URL.Path)
			assert.Equal(t, "0-49", r.URL.Query().Get("range"))
			assert.Equal(t, "abc123", r.Header.Get("Session-Token"))
			w.WriteHeader(http.StatusPartialContent)
			json.NewEncoder(w).Encode([]map[string]any{
				{"id": 1, "name": "pc-01"},
				{"id": 2, "name": "pc-02"},
			})
		})

		assert.NoError(t, client.InitSession(context.Background()))

		computers, err := client.GetComputers(context.Background(), 0, 50)
		assert.NoError(t, err)
		assert.Len(t, computers, 2)
		assert.Equal(t, "pc-01", computers[0]["name"])
	})

	t.Run("Range Past End", func(t *testing.T) {
		// GLPI answers 400 when the range starts beyond the record count.
		_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		})

		computers, err := client.GetComputers(context.Background(), 500, 50)
		assert.NoError(t, err)
		assert.Empty(t, computers)
	})

	t.Run("Server Error", func(t *testing.T) {
		_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := client.GetComputers(context.Background(), 0, 50)
		assert.Error(t, err)
	})
}

func TestGetAllComponents(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/Computer/7/Item_DeviceProcessor":
			json.NewEncoder(w).Encode([]map[string]any{
				{"id": 11, "designation": "Xeon E5"},
			})
		case "/Computer/7/Item_DeviceMemory":
			w.WriteHeader(http.StatusNotFound)
		default:
			json.NewEncoder(w).Encode([]map[string]any{})
		}
	})

	components, err := client.GetAllComponents(context.Background(), 7)
	assert.NoError(t, err)
	assert.Len(t, components["Item_DeviceProcessor"], 1)
	assert.Empty(t, components["Item_DeviceMemory"])
}

func TestKillSession(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/killSession", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	assert.NoError(t, client.KillSession(context.Background()))
}
