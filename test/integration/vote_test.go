package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openvote/ballot/internal/core/domain"
)

func postVote(t *testing.T, app *TestApp, cookie *http.Cookie, party string) *http.Response {
	t.Helper()

	body, err := json.Marshal(map[string]string{"party": party})
	require.NoError(t, err)

	req, err := http.NewRequest("POST", app.Server.URL+"/api/vote", bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}

func getMe(t *testing.T, app *TestApp, cookie *http.Cookie) (*http.Response, map[string]any) {
	t.Helper()

	req, err := http.NewRequest("GET", app.Server.URL+"/api/me", nil)
	require.NoError(t, err)
	if cookie != nil {
		req.AddCookie(cookie)
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestSubmitVote(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	identity := newIdentity()
	cookie := app.loginAs(t, identity)

	// Before voting.
	resp, me := getMe(t, app, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, identity.Name, me["name"])
	assert.Equal(t, identity.Email, me["email"])
	assert.Equal(t, false, me["voted"])
	assert.Nil(t, me["vote"])

	// Vote.
	resp = postVote(t, app, cookie, "DMK")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var voteResp map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&voteResp))
	assert.Equal(t, true, voteResp["success"])
	assert.Equal(t, "Vote submitted successfully!", voteResp["message"])

	// After voting.
	resp, me = getMe(t, app, cookie)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, me["voted"])

	vote, ok := me["vote"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "DMK", vote["party"])

	votedAt, err := time.Parse(time.RFC3339, vote["voted_at"].(string))
	require.NoError(t, err)
	assert.False(t, votedAt.After(time.Now()))
}

func TestSubmitVote_InvalidParty(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	cookie := app.loginAs(t, newIdentity())

	resp := postVote(t, app, cookie, "XYZ")
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "Invalid party selection.", body["error"])

	var count int
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM votes").Scan(&count))
	assert.Equal(t, 0, count)
}

func TestSubmitVote_Duplicate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	cookie := app.loginAs(t, newIdentity())

	resp := postVote(t, app, cookie, "TVK")
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = postVote(t, app, cookie, "NTK")
	defer resp.Body.Close()
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "You have already voted.", body["error"])

	var count int
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM votes").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestSubmitVote_Unauthenticated(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	resp := postVote(t, app, nil, "DMK")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSubmitVote_ConcurrentDuplicates(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	cookie := app.loginAs(t, newIdentity())

	const attempts = 8
	statuses := make([]int, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp := postVote(t, app, cookie, "ADMK")
			resp.Body.Close()
			statuses[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	accepted, conflicted := 0, 0
	for _, status := range statuses {
		switch status {
		case http.StatusOK:
			accepted++
		case http.StatusConflict:
			conflicted++
		default:
			t.Fatalf("unexpected status %d", status)
		}
	}
	assert.Equal(t, 1, accepted, "exactly one submission should win")
	assert.Equal(t, attempts-1, conflicted)

	var count int
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM votes").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestRepository_UniqueConstraints(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	app := setupTestApp(t)
	defer app.Teardown(t)

	ctx := context.Background()

	first := &domain.Vote{GoogleID: "g1", Email: "a@example.com", Name: "A", Party: domain.PartyDMK}
	require.NoError(t, app.VoteRepo.Save(ctx, first))
	assert.NotZero(t, first.ID)
	assert.False(t, first.VotedAt.IsZero())

	// Same identity key, straight at the storage layer.
	dupID := &domain.Vote{GoogleID: "g1", Email: "b@example.com", Name: "B", Party: domain.PartyTVK}
	assert.ErrorIs(t, app.VoteRepo.Save(ctx, dupID), domain.ErrAlreadyVoted)

	// Same contact identifier.
	dupEmail := &domain.Vote{GoogleID: "g2", Email: "a@example.com", Name: "B", Party: domain.PartyTVK}
	assert.ErrorIs(t, app.VoteRepo.Save(ctx, dupEmail), domain.ErrAlreadyVoted)

	var count int
	require.NoError(t, app.DB.QueryRow("SELECT COUNT(*) FROM votes").Scan(&count))
	assert.Equal(t, 1, count)
}
