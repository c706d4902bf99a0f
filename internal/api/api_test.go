package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/snakescore/internal/api"
	"github.com/mcoot/snakescore/internal/api/response"
	"github.com/mcoot/snakescore/internal/factory"
	"github.com/mcoot/snakescore/internal/testutil"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	app     *factory.TestApp
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	app := factory.NewTestApp()

	router := api.NewRouter(api.RouterConfig{
		Logger:             testutil.NopLogger(),
		PlayerService:      app.PlayerService,
		ScoreService:       app.ScoreService,
		LeaderboardService: app.LeaderboardService,
		ProfileService:     app.ProfileService,
	})

	return &testServer{
		handler: router,
		app:     app,
	}
}

func (ts *testServer) request(method, path string, body any) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// requestRaw sends a request with a literal body, for malformed payloads
func (ts *testServer) requestRaw(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func (ts *testServer) submitScore(t *testing.T, username string, score int) {
	t.Helper()
	rr := ts.request(http.MethodPost, "/api/score/submit/", map[string]any{
		"username": username,
		"score":    score,
	})
	require.Equal(t, http.StatusOK, rr.Code)
}

// failure is the shared error envelope
type failure struct {
	Ok      bool   `json:"ok"`
	Code    string `json:"error"`
	Message string `json:"message"`
}

func decodeFailure(t *testing.T, rr *httptest.ResponseRecorder) failure {
	t.Helper()
	var f failure
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &f))
	require.False(t, f.Ok)
	return f
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/health/", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestSubmitScore(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/score/submit/", map[string]any{
		"username": "alice",
		"score":    100,
	})

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"ok":true}`, rr.Body.String())
}

func TestSubmitScoreInvalidJSON(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.requestRaw(http.MethodPost, "/api/score/submit/", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid_json", decodeFailure(t, rr).Code)
}

func TestSubmitScoreMissingUsername(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/score/submit/", map[string]any{
		"username": "   ",
		"score":    100,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "username_required", decodeFailure(t, rr).Code)
}

func TestSubmitScoreNotAnInteger(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/score/submit/", map[string]any{
		"username": "alice",
		"score":    12.5,
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid_score", decodeFailure(t, rr).Code)

	// Non-numeric types fail at decode, before score validation
	rr = ts.request(http.MethodPost, "/api/score/submit/", map[string]any{
		"username": "alice",
		"score":    []int{1},
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "invalid_json", decodeFailure(t, rr).Code)
}

func TestSubmitScoreNotPositive(t *testing.T) {
	ts := newTestServer(t)

	for _, score := range []int{0, -10} {
		rr := ts.request(http.MethodPost, "/api/score/submit/", map[string]any{
			"username": "alice",
			"score":    score,
		})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "score_must_be_positive", decodeFailure(t, rr).Code)
	}
}

func TestSubmitScoreWrongMethod(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/score/submit/", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "method_not_allowed", decodeFailure(t, rr).Code)
}

func TestTopScores(t *testing.T) {
	ts := newTestServer(t)

	ts.submitScore(t, "alice", 50)
	ts.submitScore(t, "alice", 40)
	ts.submitScore(t, "carl", 80)
	ts.submitScore(t, "bob", 80)

	rr := ts.request(http.MethodGet, "/api/score/top/", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.TopResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 3)

	// Best score per player, ties broken alphabetically
	assert.Equal(t, "bob", resp.Results[0].Username)
	assert.Equal(t, 80, resp.Results[0].Score)
	assert.Equal(t, "carl", resp.Results[1].Username)
	assert.Equal(t, "alice", resp.Results[2].Username)
	assert.Equal(t, 50, resp.Results[2].Score)
}

func TestTopScoresCreatedIsFirstBest(t *testing.T) {
	ts := newTestServer(t)

	first := ts.app.MockClock.CurrentTime
	ts.submitScore(t, "alice", 80)
	ts.app.MockClock.Advance(time.Hour)
	ts.submitScore(t, "alice", 80)

	rr := ts.request(http.MethodGet, "/api/score/top/", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.TopResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, first.Format(time.RFC3339), resp.Results[0].Created)
}

func TestTopScoresLimit(t *testing.T) {
	ts := newTestServer(t)

	ts.submitScore(t, "alice", 10)
	ts.submitScore(t, "bob", 20)
	ts.submitScore(t, "carl", 30)

	rr := ts.request(http.MethodGet, "/api/score/top/?limit=2", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.TopResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.Results, 2)

	// Out-of-range limits clamp rather than fail
	rr = ts.request(http.MethodGet, "/api/score/top/?limit=0", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.Results, 1)

	// A non-numeric limit falls back to the default
	rr = ts.request(http.MethodGet, "/api/score/top/?limit=abc", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Len(t, resp.Results, 3)
}

func TestTopScoresEmpty(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/score/top/", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"results":[]}`, rr.Body.String())
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/auth/register/", map[string]string{
		"username": "alice",
		"password": "secret",
	})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"ok":true,"message":"registration successful"}`, rr.Body.String())

	rr = ts.request(http.MethodPost, "/api/auth/login/", map[string]string{
		"username": "alice",
		"password": "secret",
	})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"ok":true,"message":"login successful"}`, rr.Body.String())
}

func TestRegisterDuplicateUsername(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"username": "alice", "password": "secret"}
	rr := ts.request(http.MethodPost, "/api/auth/register/", body)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodPost, "/api/auth/register/", body)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "this username is already taken", decodeFailure(t, rr).Message)
}

func TestRegisterValidation(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/auth/register/", map[string]string{
		"username": "",
		"password": "secret",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.request(http.MethodPost, "/api/auth/register/", map[string]string{
		"username": "alice",
		"password": "",
	})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLoginFailureDoesNotRevealCause(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/auth/register/", map[string]string{
		"username": "alice",
		"password": "secret",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	wrongPassword := ts.request(http.MethodPost, "/api/auth/login/", map[string]string{
		"username": "alice",
		"password": "wrong",
	})
	unknownUser := ts.request(http.MethodPost, "/api/auth/login/", map[string]string{
		"username": "nobody",
		"password": "secret",
	})

	assert.Equal(t, http.StatusBadRequest, wrongPassword.Code)
	assert.Equal(t, http.StatusBadRequest, unknownUser.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
}

func TestGetProfile(t *testing.T) {
	ts := newTestServer(t)

	created := ts.app.MockClock.CurrentTime
	rr := ts.request(http.MethodPost, "/api/auth/register/", map[string]string{
		"username": "alice",
		"password": "secret",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	ts.submitScore(t, "alice", 10)
	ts.app.MockClock.Advance(time.Minute)
	ts.submitScore(t, "alice", 30)

	// GET with a query parameter
	rr = ts.request(http.MethodGet, "/api/profile/?username=alice", nil)
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.ProfileResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.True(t, resp.Ok)
	assert.Equal(t, "alice", resp.Profile.Username)
	assert.Equal(t, "🐍", resp.Profile.Avatar)
	assert.Equal(t, created.Format(time.RFC3339), resp.Profile.Created)
	assert.Equal(t, 30, resp.Profile.HighestScore)
	assert.Equal(t, 2, resp.Profile.TotalGames)
	assert.Equal(t, 20.0, resp.Profile.AverageScore)
	require.Len(t, resp.Profile.RecentScores, 2)
	assert.Equal(t, 30, resp.Profile.RecentScores[0].Score)
	assert.Equal(t, 10, resp.Profile.RecentScores[1].Score)

	// POST with a JSON body returns the same profile
	rr = ts.request(http.MethodPost, "/api/profile/", map[string]string{"username": "alice"})
	assert.Equal(t, http.StatusOK, rr.Code)

	var postResp response.ProfileResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &postResp))
	assert.Equal(t, resp, postResp)
}

func TestGetProfileNotFound(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/profile/?username=nobody", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "player not found", decodeFailure(t, rr).Message)
}

func TestGetProfileMissingUsername(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/profile/", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "username is required", decodeFailure(t, rr).Message)
}

func TestUpdateAvatar(t *testing.T) {
	ts := newTestServer(t)

	ts.submitScore(t, "alice", 10)

	rr := ts.request(http.MethodPost, "/api/profile/avatar/", map[string]string{
		"username": "alice",
		"avatar":   "🦊",
	})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"ok":true,"message":"avatar updated","avatar":"🦊"}`, rr.Body.String())

	rr = ts.request(http.MethodGet, "/api/profile/?username=alice", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.ProfileResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "🦊", resp.Profile.Avatar)
}

func TestUpdateAvatarTruncated(t *testing.T) {
	ts := newTestServer(t)

	ts.submitScore(t, "alice", 10)

	rr := ts.request(http.MethodPost, "/api/profile/avatar/", map[string]string{
		"username": "alice",
		"avatar":   "abcdefghijklmno",
	})
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.AvatarResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "abcdefghij", resp.Avatar)
}

func TestUpdateAvatarUnknownPlayer(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/profile/avatar/", map[string]string{
		"username": "nobody",
		"avatar":   "🦊",
	})
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
