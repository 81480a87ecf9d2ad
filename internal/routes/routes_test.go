package routes_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EvgrafovDR/todolist-clone/internal/app"
	"github.com/EvgrafovDR/todolist-clone/internal/config"
	"github.com/EvgrafovDR/todolist-clone/internal/routes"
	"github.com/EvgrafovDR/todolist-clone/internal/testutil"
)

func newServer(t *testing.T) (*httptest.Server, *app.App) {
	t.Helper()

	cfg := &config.Config{
		AppName:   "todolist-test",
		AppEnv:    "development",
		DBDriver:  "sqlite",
		JWTSecret: "test-secret",
		JWTExpiry: time.Hour,
	}

	a := app.FromDB(cfg, testutil.NewDB(t))
	srv := httptest.NewServer(routes.SetupRoutes(a))
	t.Cleanup(srv.Close)

	return srv, a
}

// newClient returns a client with a cookie jar so the auth cookie set by
// login sticks to subsequent requests.
func newClient(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func doJSON(t *testing.T, client *http.Client, method, url string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp.StatusCode, data
}

// signupAndLogin registers the user and logs the client in, returning the
// user id from the login response.
func signupAndLogin(t *testing.T, client *http.Client, baseURL, username string) string {
	t.Helper()

	status, _ := doJSON(t, client, http.MethodPost, baseURL+"/core/signup", map[string]string{
		"username":        username,
		"password":        "s3cret-pass",
		"password_repeat": "s3cret-pass",
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := doJSON(t, client, http.MethodPost, baseURL+"/core/login", map[string]string{
		"username": username,
		"password": "s3cret-pass",
	})
	require.Equal(t, http.StatusOK, status)

	var user struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &user))
	require.NotEmpty(t, user.ID)

	return user.ID
}

func TestProtectedEndpointsRequireAuth(t *testing.T) {
	srv, _ := newServer(t)
	client := newClient(t)

	status, body := doJSON(t, client, http.MethodGet, srv.URL+"/goals/board/list", nil)
	require.Equal(t, http.StatusForbidden, status)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(body, &resp))
	assert.Equal(t, "authentication required", resp["detail"])
}

func TestBoardLifecycleOverHTTP(t *testing.T) {
	srv, _ := newServer(t)
	alice := newClient(t)
	bob := newClient(t)

	signupAndLogin(t, alice, srv.URL, "alice")
	signupAndLogin(t, bob, srv.URL, "bob")

	status, body := doJSON(t, alice, http.MethodGet, srv.URL+"/goals/board/list", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, "[]", string(body))

	status, body = doJSON(t, alice, http.MethodPost, srv.URL+"/goals/board/create", map[string]string{
		"title": "work",
	})
	require.Equal(t, http.StatusCreated, status)

	var board struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &board))
	require.NotEmpty(t, board.ID)

	// Bob is not a participant: the board does not exist for him.
	status, _ = doJSON(t, bob, http.MethodGet, srv.URL+"/goals/board/"+board.ID, nil)
	require.Equal(t, http.StatusNotFound, status)

	status, body = doJSON(t, bob, http.MethodGet, srv.URL+"/goals/board/list", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, "[]", string(body))

	// Alice shares the board with bob as a writer.
	status, body = doJSON(t, alice, http.MethodPut, srv.URL+"/goals/board/"+board.ID, map[string]any{
		"title": "work",
		"participants": []map[string]any{
			{"user": "bob", "role": 2},
		},
	})
	require.Equal(t, http.StatusOK, status)

	var updated struct {
		Participants []struct {
			User string `json:"user"`
			Role int    `json:"role"`
		} `json:"participants"`
	}
	require.NoError(t, json.Unmarshal(body, &updated))
	require.Len(t, updated.Participants, 2)

	status, _ = doJSON(t, bob, http.MethodGet, srv.URL+"/goals/board/"+board.ID, nil)
	require.Equal(t, http.StatusOK, status)

	// Writers cannot change the board itself.
	status, _ = doJSON(t, bob, http.MethodPut, srv.URL+"/goals/board/"+board.ID, map[string]any{
		"title": "hijacked",
	})
	require.Equal(t, http.StatusForbidden, status)

	status, _ = doJSON(t, alice, http.MethodDelete, srv.URL+"/goals/board/"+board.ID, nil)
	require.Equal(t, http.StatusOK, status)

	status, body = doJSON(t, alice, http.MethodGet, srv.URL+"/goals/board/list", nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, "[]", string(body))
}

func TestBoardUpdateValidationErrorShape(t *testing.T) {
	srv, _ := newServer(t)
	alice := newClient(t)
	signupAndLogin(t, alice, srv.URL, "alice")

	status, body := doJSON(t, alice, http.MethodPost, srv.URL+"/goals/board/create", map[string]string{
		"title": "work",
	})
	require.Equal(t, http.StatusCreated, status)

	var board struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(body, &board))

	status, body = doJSON(t, alice, http.MethodPut, srv.URL+"/goals/board/"+board.ID, map[string]any{
		"title": "work",
		"participants": []map[string]any{
			{"user": "nobody", "role": 3},
		},
	})
	require.Equal(t, http.StatusBadRequest, status)

	var fields map[string][]string
	require.NoError(t, json.Unmarshal(body, &fields))
	require.Contains(t, fields, "participants")
	assert.NotEmpty(t, fields["participants"])
}

func TestVerifyLinksTelegramIdentity(t *testing.T) {
	srv, a := newServer(t)
	alice := newClient(t)
	userID := signupAndLogin(t, alice, srv.URL, "alice")

	tgUser, _, err := a.BotLinkService.Register(1001, 2002, "alice_tg")
	require.NoError(t, err)

	status, body := doJSON(t, alice, http.MethodPatch, srv.URL+"/bot/verify", map[string]string{
		"verification_code": tgUser.VerificationCode,
	})
	require.Equal(t, http.StatusOK, status)

	var linked struct {
		TgID   int64   `json:"tg_id"`
		UserID *string `json:"user_id"`
	}
	require.NoError(t, json.Unmarshal(body, &linked))
	assert.Equal(t, int64(1001), linked.TgID)
	require.NotNil(t, linked.UserID)
	assert.Equal(t, userID, *linked.UserID)

	// Re-submitting the spent code is a field error.
	status, body = doJSON(t, alice, http.MethodPatch, srv.URL+"/bot/verify", map[string]string{
		"verification_code": tgUser.VerificationCode,
	})
	require.Equal(t, http.StatusBadRequest, status)

	var fields map[string][]string
	require.NoError(t, json.Unmarshal(body, &fields))
	require.Contains(t, fields, "verification_code")
}

func TestSignupValidation(t *testing.T) {
	srv, _ := newServer(t)
	client := newClient(t)

	status, body := doJSON(t, client, http.MethodPost, srv.URL+"/core/signup", map[string]string{
		"username": "alice",
	})
	require.Equal(t, http.StatusBadRequest, status)

	var fields map[string][]string
	require.NoError(t, json.Unmarshal(body, &fields))
	require.Contains(t, fields, "password")
}
