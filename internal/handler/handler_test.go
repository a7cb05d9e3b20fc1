package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vlogify/internal/ai"
	"vlogify/internal/config"
	"vlogify/internal/models"
	"vlogify/internal/persist"
	"vlogify/internal/service"
	"vlogify/internal/session"
	"vlogify/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &config.Config{
		PageSize:            6,
		JWTSecretKey:        "test-secret",
		AccessTokenDuration: time.Hour,
		MaxUploadSize:       1 << 20,
		AI: config.AI{
			APIKey:     "", // unconfigured, chat degrades to the fallback reply
			BaseURL:    "http://127.0.0.1:0",
			ChatModel:  "gemini-2.5-flash",
			ImageModel: "imagen-4.0-generate-001",
			Timeout:    time.Second,
		},
	}

	logger := log.New(io.Discard, "", 0)

	st := store.New(persist.NewMemory(), logger)
	st.Initialize(context.Background())

	sessions := session.NewManager(st, cfg)
	services := service.NewService(st, cfg, nil)
	gateway := ai.New(cfg.AI, logger)

	handler := NewHandlers(st, sessions, services, gateway, cfg)

	srv := httptest.NewServer(handler.Routes())
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func login(t *testing.T, srv *httptest.Server, email, password string) AuthResponse {
	t.Helper()

	resp := doJSON(t, srv, http.MethodPost, "/api/auth/login", "", LoginRequest{
		Email:    email,
		Password: password,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var auth AuthResponse
	decode(t, resp, &auth)
	require.NotEmpty(t, auth.AccessToken)
	return auth
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decode(t, resp, &body)
	assert.Equal(t, "ok", body["status"])
}

func TestRegisterAndLogin(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", RegisterRequest{
		Name:     "New User",
		Email:    "new@example.com",
		Password: "secret123",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var auth AuthResponse
	decode(t, resp, &auth)
	assert.NotEmpty(t, auth.AccessToken)
	assert.Equal(t, "New User", auth.User.Name)
	assert.Equal(t, models.RoleUser, auth.User.Role)

	// The new credentials work right away.
	login(t, srv, "new@example.com", "secret123")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, http.MethodPost, "/api/auth/register", "", RegisterRequest{
		Name:     "Imposter",
		Email:    "jane@example.com",
		Password: "secret123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestLoginWrongPassword(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, http.MethodPost, "/api/auth/login", "", LoginRequest{
		Email:    "jane@example.com",
		Password: "not-the-password",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestFeedIsPublicAndPaginated(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, http.MethodGet, "/api/posts?page=1", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var feed service.FeedPage
	decode(t, resp, &feed)
	assert.Len(t, feed.Posts, 3)
	assert.Equal(t, 1, feed.Pagination.Page)
	assert.Equal(t, 3, feed.Pagination.Total)
	assert.Equal(t, 1, feed.Pagination.TotalPages)
}

func TestCreatePostRequiresAuth(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, http.MethodPost, "/api/posts", "", CreatePostRequest{
		Title:       "Untitled",
		Description: "No token attached",
		Image:       "https://example.com/img.jpg",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestCreatePostHeadsFeed(t *testing.T) {
	srv := newTestServer(t)
	auth := login(t, srv, "jane@example.com", store.SeedPassword)

	resp := doJSON(t, srv, http.MethodPost, "/api/posts", auth.AccessToken, CreatePostRequest{
		Title:       "Fjord Morning",
		Description: "Sunrise over the water",
		Image:       "https://example.com/fjord.jpg",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created models.Post
	decode(t, resp, &created)
	assert.Equal(t, auth.User.ID, created.Author.ID)
	assert.Empty(t, created.Author.PasswordHash)

	feedResp := doJSON(t, srv, http.MethodGet, "/api/posts", "", nil)
	var feed service.FeedPage
	decode(t, feedResp, &feed)
	require.NotEmpty(t, feed.Posts)
	assert.Equal(t, created.ID, feed.Posts[0].ID)
}

func TestToggleLike(t *testing.T) {
	srv := newTestServer(t)
	auth := login(t, srv, "jane@example.com", store.SeedPassword)

	resp := doJSON(t, srv, http.MethodPost, "/api/posts/post_1/like", auth.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var post models.Post
	decode(t, resp, &post)
	assert.Contains(t, post.Likes, auth.User.ID)

	// A second toggle removes the like again.
	resp = doJSON(t, srv, http.MethodPost, "/api/posts/post_1/like", auth.AccessToken, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &post)
	assert.NotContains(t, post.Likes, auth.User.ID)
}

func TestAddComment(t *testing.T) {
	srv := newTestServer(t)
	auth := login(t, srv, "john@example.com", store.SeedPassword)

	resp := doJSON(t, srv, http.MethodPost, "/api/posts/post_3/comments", auth.AccessToken, CommentRequest{
		Text: "Great shot!",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var comment models.Comment
	decode(t, resp, &comment)
	assert.Equal(t, "Great shot!", comment.Text)
	assert.Equal(t, auth.User.ID, comment.Author.ID)
}

func TestEditForeignPostForbidden(t *testing.T) {
	srv := newTestServer(t)
	auth := login(t, srv, "john@example.com", store.SeedPassword)

	// post_1 belongs to Jane.
	resp := doJSON(t, srv, http.MethodPut, "/api/posts/post_1", auth.AccessToken, UpdatePostRequest{
		Title: "Hijacked",
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestReportOwnContentRejected(t *testing.T) {
	srv := newTestServer(t)
	auth := login(t, srv, "jane@example.com", store.SeedPassword)

	resp := doJSON(t, srv, http.MethodPost, "/api/reports", auth.AccessToken, SubmitReportRequest{
		Type:      models.ReportTypePost,
		ContentID: "post_1",
		PostID:    "post_1",
		Reason:    "Testing",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestModerationFlow(t *testing.T) {
	srv := newTestServer(t)
	reporter := login(t, srv, "john@example.com", store.SeedPassword)
	admin := login(t, srv, "admin@tpgcoder.com", store.SeedPassword)

	resp := doJSON(t, srv, http.MethodPost, "/api/reports", reporter.AccessToken, SubmitReportRequest{
		Type:      models.ReportTypePost,
		ContentID: "post_1",
		PostID:    "post_1",
		Reason:    "Inappropriate",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var report models.Report
	decode(t, resp, &report)
	assert.Equal(t, models.ReportStatusPending, report.Status)

	// Regular users cannot read the moderation queue.
	listResp := doJSON(t, srv, http.MethodGet, "/api/reports", reporter.AccessToken, nil)
	assert.Equal(t, http.StatusForbidden, listResp.StatusCode)
	listResp.Body.Close()

	listResp = doJSON(t, srv, http.MethodGet, "/api/reports", admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	var queue struct {
		Reports      []models.Report `json:"reports"`
		PendingCount int             `json:"pendingCount"`
	}
	decode(t, listResp, &queue)
	require.Len(t, queue.Reports, 1)
	assert.Equal(t, 1, queue.PendingCount)

	resolveResp := doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/reports/%s/resolve", report.ID), admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, resolveResp.StatusCode)

	var resolved models.Report
	decode(t, resolveResp, &resolved)
	assert.Equal(t, models.ReportStatusResolved, resolved.Status)

	// The reported post survives a plain resolve.
	postResp := doJSON(t, srv, http.MethodGet, "/api/posts/post_1", "", nil)
	assert.Equal(t, http.StatusOK, postResp.StatusCode)
	postResp.Body.Close()
}

func TestDeleteReportedContent(t *testing.T) {
	srv := newTestServer(t)
	reporter := login(t, srv, "john@example.com", store.SeedPassword)
	admin := login(t, srv, "admin@tpgcoder.com", store.SeedPassword)

	resp := doJSON(t, srv, http.MethodPost, "/api/reports", reporter.AccessToken, SubmitReportRequest{
		Type:      models.ReportTypePost,
		ContentID: "post_1",
		PostID:    "post_1",
		Reason:    "Spam",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var report models.Report
	decode(t, resp, &report)

	delResp := doJSON(t, srv, http.MethodDelete, fmt.Sprintf("/api/reports/%s/content", report.ID), admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, delResp.StatusCode)
	delResp.Body.Close()

	postResp := doJSON(t, srv, http.MethodGet, "/api/posts/post_1", "", nil)
	assert.Equal(t, http.StatusNotFound, postResp.StatusCode)
	postResp.Body.Close()
}

func TestAdminUserManagement(t *testing.T) {
	srv := newTestServer(t)
	admin := login(t, srv, "admin@tpgcoder.com", store.SeedPassword)

	listResp := doJSON(t, srv, http.MethodGet, "/api/users", admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, listResp.StatusCode)

	var users []models.User
	decode(t, listResp, &users)
	assert.Len(t, users, 4)
	for _, u := range users {
		assert.Empty(t, u.PasswordHash)
	}

	roleResp := doJSON(t, srv, http.MethodPost, "/api/users/user_3/role", admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, roleResp.StatusCode)

	var promoted UserResponse
	decode(t, roleResp, &promoted)
	assert.Equal(t, models.RoleAdmin, promoted.Role)

	// Admins cannot demote or delete themselves.
	selfRole := doJSON(t, srv, http.MethodPost, "/api/users/"+admin.User.ID+"/role", admin.AccessToken, nil)
	assert.Equal(t, http.StatusBadRequest, selfRole.StatusCode)
	selfRole.Body.Close()

	delResp := doJSON(t, srv, http.MethodDelete, "/api/users/user_2", admin.AccessToken, nil)
	require.Equal(t, http.StatusOK, delResp.StatusCode)
	delResp.Body.Close()

	listResp = doJSON(t, srv, http.MethodGet, "/api/users", admin.AccessToken, nil)
	decode(t, listResp, &users)
	assert.Len(t, users, 3)
}

func TestUpdateProfile(t *testing.T) {
	srv := newTestServer(t)
	auth := login(t, srv, "jane@example.com", store.SeedPassword)

	resp := doJSON(t, srv, http.MethodPut, "/api/auth/me", auth.AccessToken, map[string]string{
		"name": "Jane Renamed",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var updated UserResponse
	decode(t, resp, &updated)
	assert.Equal(t, "Jane Renamed", updated.Name)
	assert.Equal(t, "jane@example.com", updated.Email)

	// The change is visible on the author snapshot-independent user record.
	meResp := doJSON(t, srv, http.MethodGet, "/api/auth/me", auth.AccessToken, nil)
	require.Equal(t, http.StatusOK, meResp.StatusCode)
	var me UserResponse
	decode(t, meResp, &me)
	assert.Equal(t, "Jane Renamed", me.Name)
}

func TestChatFallsBackWithoutKey(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, http.MethodPost, "/api/ai/chat", "", ChatRequest{
		Prompt: "Where should I travel next?",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	decode(t, resp, &body)
	assert.Contains(t, body["reply"], "API key")
}

func TestGenerateImageUnconfigured(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, srv, http.MethodPost, "/api/ai/images", "", GenerateImageRequest{
		Prompt: "A mountain lake at dawn",
	})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	resp.Body.Close()
}

func TestUploadUnavailableWithoutStorage(t *testing.T) {
	srv := newTestServer(t)
	auth := login(t, srv, "jane@example.com", store.SeedPassword)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "photo.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("not-really-a-jpeg"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, err := http.NewRequest(http.MethodPost, srv.URL+"/api/uploads", &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+auth.AccessToken)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	resp.Body.Close()
}
