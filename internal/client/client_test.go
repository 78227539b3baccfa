package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reolink-cli/internal/system"
	"reolink-cli/pkg/models"
)

type request struct {
	query map[string][]string
	body  []map[string]any
}

// newCamera serves /cgi-bin/api.cgi and records each request.
func newCamera(t *testing.T, reply func(r *http.Request) (int, string)) (*httptest.Server, *[]request) {
	t.Helper()
	var seen []request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != APIPath {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Fatalf("expected POST, got %s", r.Method)
		}
		raw, _ := io.ReadAll(r.Body)
		var body []map[string]any
		require.NoError(t, json.Unmarshal(raw, &body))
		seen = append(seen, request{query: r.URL.Query(), body: body})

		status, payload := reply(r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, payload)
	}))
	t.Cleanup(server.Close)
	return server, &seen
}

func TestLogin(t *testing.T) {
	server, seen := newCamera(t, func(r *http.Request) (int, string) {
		return http.StatusOK, `[{"cmd":"Login","code":0,"value":{"Token":{"leaseTime":3600,"name":"abc123"}}}]`
	})

	api := New(ClientConfig{BaseURL: server.URL + "/", Username: "admin", Password: "secret"})
	token, err := api.Login()
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)
	assert.Equal(t, "abc123", api.Token())

	require.Len(t, *seen, 1)
	req := (*seen)[0]
	assert.Equal(t, []string{"Login"}, req.query["cmd"])
	assert.Equal(t, []string{"null"}, req.query["token"])
	require.Len(t, req.body, 1)
	assert.Equal(t, "Login", req.body[0]["cmd"])
	user := req.body[0]["param"].(map[string]any)["User"].(map[string]any)
	assert.Equal(t, "admin", user["userName"])
	assert.Equal(t, "secret", user["password"])
}

func TestLoginRejected(t *testing.T) {
	server, _ := newCamera(t, func(r *http.Request) (int, string) {
		return http.StatusOK, `[{"cmd":"Login","code":1,"error":{"detail":"login failed","rspCode":-7}}]`
	})

	_, err := New(ClientConfig{BaseURL: server.URL}).Login()
	var devErr *models.ResponseError
	require.True(t, errors.As(err, &devErr))
	assert.Equal(t, -7, devErr.RspCode)
}

func TestExecuteCommand(t *testing.T) {
	server, seen := newCamera(t, func(r *http.Request) (int, string) {
		return http.StatusOK, `[{"cmd":"GetDevInfo","code":0,"value":{"DevInfo":{"model":"RLC-410","serial":"00000001"}}}]`
	})

	api := New(ClientConfig{BaseURL: server.URL, Token: "tok"})
	body := []models.Command{models.NewCommand("GetDevInfo", 0, nil)}
	resps, err := api.ExecuteCommand("GetDevInfo", body, false)
	require.NoError(t, err)

	var info models.DevInfoValue
	require.NoError(t, models.FirstValue(resps, &info))
	assert.Equal(t, "RLC-410", info.DevInfo.Model)

	req := (*seen)[0]
	assert.Equal(t, []string{"tok"}, req.query["token"])
	assert.Equal(t, []string{"GetDevInfo"}, req.query["cmd"])
	assert.Equal(t, map[string]any{}, req.body[0]["param"])
	assert.EqualValues(t, 0, req.body[0]["action"])
}

func TestExecuteCommandMultiOmitsCmd(t *testing.T) {
	server, seen := newCamera(t, func(r *http.Request) (int, string) {
		return http.StatusOK, `[
			{"cmd":"GetTime","code":0,"value":{"Time":{"year":2024}}},
			{"cmd":"GetNorm","code":0,"value":{"norm":"NTSC"}}
		]`
	})

	api := New(ClientConfig{BaseURL: server.URL, Token: "tok"})
	resps, err := system.New(api).GetGeneralSystem()
	require.NoError(t, err)
	require.Len(t, resps, 2)
	assert.Equal(t, "GetNorm", resps[1].Cmd)

	req := (*seen)[0]
	assert.NotContains(t, req.query, "cmd")
	require.Len(t, req.body, 2)
	assert.Equal(t, "GetTime", req.body[0]["cmd"])
	assert.Equal(t, "GetNorm", req.body[1]["cmd"])
}

func TestExecuteCommandErrors(t *testing.T) {
	t.Run("no token", func(t *testing.T) {
		_, err := New(ClientConfig{BaseURL: "http://127.0.0.1:0"}).ExecuteCommand("Reboot", nil, false)
		assert.ErrorIs(t, err, ErrNotLoggedIn)
		assert.True(t, IsAuthError(err))
	})

	t.Run("http status", func(t *testing.T) {
		server, _ := newCamera(t, func(r *http.Request) (int, string) {
			return http.StatusUnauthorized, `[]`
		})
		_, err := New(ClientConfig{BaseURL: server.URL, Token: "tok"}).ExecuteCommand("Reboot", []models.Command{}, false)

		var httpErr *HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusUnauthorized, httpErr.StatusCode)
		assert.True(t, IsAuthError(err))
	})

	t.Run("device error stays in the response", func(t *testing.T) {
		server, _ := newCamera(t, func(r *http.Request) (int, string) {
			return http.StatusOK, `[{"cmd":"Reboot","code":1,"error":{"detail":"please login first","rspCode":-6}}]`
		})
		resps, err := New(ClientConfig{BaseURL: server.URL, Token: "stale"}).ExecuteCommand("Reboot", []models.Command{}, false)
		require.NoError(t, err)

		decodeErr := models.FirstValue(resps, &models.Ack{})
		assert.True(t, IsAuthError(decodeErr))
	})
}

func TestIsAuthError(t *testing.T) {
	assert.False(t, IsAuthError(nil))
	assert.False(t, IsAuthError(errors.New("boom")))
	assert.False(t, IsAuthError(&HTTPError{StatusCode: 500}))
	assert.True(t, IsAuthError(fmt.Errorf("wrapped: %w", &models.ResponseError{RspCode: models.RspCodeLoginRequired})))
}
