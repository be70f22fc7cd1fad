package server_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jrsteele09/go-blog-server/assets"
	fakeblogrepo "github.com/jrsteele09/go-blog-server/blogs/repofake"
	"github.com/jrsteele09/go-blog-server/internal/config"
	"github.com/jrsteele09/go-blog-server/mailer"
	"github.com/jrsteele09/go-blog-server/server"
	faketagrepo "github.com/jrsteele09/go-blog-server/tags/repofake"
	fakeuserrepo "github.com/jrsteele09/go-blog-server/users/repofake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serverFixture struct {
	server *server.Server
	mailer *mailer.NoopMailer
}

func setupServer(t *testing.T) *serverFixture {
	t.Helper()

	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("ENV", "TEST")

	noop := &mailer.NoopMailer{}
	s, err := server.New(config.New(), server.Deps{
		Users:  fakeuserrepo.NewFakeUserRepo(),
		Blogs:  fakeblogrepo.NewFakeBlogRepo(),
		Tags:   faketagrepo.NewFakeTagRepo(),
		Assets: assets.NewFakeStore(),
		Mailer: noop,
	})
	require.NoError(t, err)
	return &serverFixture{server: s, mailer: noop}
}

func (f *serverFixture) do(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)

	body := map[string]any{}
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		_ = json.Unmarshal(rec.Body.Bytes(), &body)
	}
	return rec, body
}

func multipartBody(t *testing.T, fields map[string]string, withImage bool) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		require.NoError(t, w.WriteField(key, value))
	}
	if withImage {
		part, err := w.CreateFormFile("image", "cover.png")
		require.NoError(t, err)
		_, err = part.Write([]byte("not really a png"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func (f *serverFixture) signup(t *testing.T, username, email, password string) (token string) {
	t.Helper()

	body, contentType := multipartBody(t, map[string]string{
		"username": username,
		"email":    email,
		"password": password,
		"about":    "I write about things.",
	}, true)

	req := httptest.NewRequest(http.MethodPost, "/users/signup", body)
	req.Header.Set("Content-Type", contentType)

	rec, resp := f.do(t, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	token, _ = resp["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func jsonRequest(t *testing.T, method, path string, payload any, token string) *http.Request {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestSignupLoginLogoutFlow(t *testing.T) {
	f := setupServer(t)

	f.signup(t, "johndoe", "john.doe@example.com", "password123")

	// Login issues a second, independent session.
	rec, resp := f.do(t, jsonRequest(t, http.MethodPost, "/users/login", map[string]string{
		"email":    "john.doe@example.com",
		"password": "password123",
	}, ""))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	loginToken, _ := resp["token"].(string)
	require.NotEmpty(t, loginToken)

	rec, _ = f.do(t, jsonRequest(t, http.MethodGet, "/users/me", nil, loginToken))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = f.do(t, jsonRequest(t, http.MethodPost, "/users/logout", nil, loginToken))
	assert.Equal(t, http.StatusOK, rec.Code)

	// The revoked token no longer authenticates.
	rec, _ = f.do(t, jsonRequest(t, http.MethodGet, "/users/me", nil, loginToken))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSignupValidationAndConflicts(t *testing.T) {
	f := setupServer(t)

	body, contentType := multipartBody(t, map[string]string{
		"username": "johndoe",
		"email":    "john.doe@example.com",
		"password": "short",
	}, true)
	req := httptest.NewRequest(http.MethodPost, "/users/signup", body)
	req.Header.Set("Content-Type", contentType)
	rec, _ := f.do(t, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	f.signup(t, "johndoe", "john.doe@example.com", "password123")

	// Reusing the email collides.
	body, contentType = multipartBody(t, map[string]string{
		"username": "janedoe",
		"email":    "john.doe@example.com",
		"password": "password123",
	}, true)
	req = httptest.NewRequest(http.MethodPost, "/users/signup", body)
	req.Header.Set("Content-Type", contentType)
	rec, _ = f.do(t, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	f := setupServer(t)
	f.signup(t, "johndoe", "john.doe@example.com", "password123")

	rec, _ := f.do(t, jsonRequest(t, http.MethodPost, "/users/login", map[string]string{
		"email":    "john.doe@example.com",
		"password": "wrong-password",
	}, ""))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBlogAndFeedFlow(t *testing.T) {
	f := setupServer(t)
	authorToken := f.signup(t, "author", "author@example.com", "password123")
	readerToken := f.signup(t, "reader", "reader@example.com", "password123")

	// A tag must exist before a blog can reference it.
	rec, resp := f.do(t, jsonRequest(t, http.MethodPost, "/tags", map[string]string{"name": "golang"}, ""))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	tag, _ := resp["tag"].(map[string]any)
	tagID, _ := tag["id"].(string)
	require.NotEmpty(t, tagID)

	blogBody := strings.Repeat("a long enough blog body ", 10)
	body, contentType := multipartBody(t, map[string]string{
		"title": "My first post",
		"body":  blogBody,
		"tags":  tagID,
	}, true)
	req := httptest.NewRequest(http.MethodPost, "/blogs", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+authorToken)
	rec, resp = f.do(t, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	blogID, _ := resp["blogId"].(string)
	require.NotEmpty(t, blogID)

	// Global feed shows the post with the total count and tag list.
	rec, resp = f.do(t, jsonRequest(t, http.MethodGet, "/feeds", nil, ""))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), resp["count"])

	// The reader's following feed is empty until they follow the author.
	rec, resp = f.do(t, jsonRequest(t, http.MethodGet, "/feeds/me", nil, readerToken))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), resp["count"])

	rec, _ = f.do(t, jsonRequest(t, http.MethodPatch, "/users/follow/author", nil, readerToken))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, resp = f.do(t, jsonRequest(t, http.MethodGet, "/feeds/me", nil, readerToken))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), resp["count"])

	// Only the owner may delete the post.
	rec, _ = f.do(t, jsonRequest(t, http.MethodDelete, "/blogs/"+blogID, nil, readerToken))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec, _ = f.do(t, jsonRequest(t, http.MethodDelete, "/blogs/"+blogID, nil, authorToken))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestTagBlogsAndSearch(t *testing.T) {
	f := setupServer(t)
	authorToken := f.signup(t, "author", "author@example.com", "password123")

	rec, resp := f.do(t, jsonRequest(t, http.MethodPost, "/tags", map[string]string{"name": "databases"}, ""))
	require.Equal(t, http.StatusCreated, rec.Code)
	tag, _ := resp["tag"].(map[string]any)
	tagID, _ := tag["id"].(string)

	blogBody := strings.Repeat("postgres tuning notes ", 12)
	body, contentType := multipartBody(t, map[string]string{
		"title": "Postgres deep dive",
		"body":  blogBody,
		"tags":  tagID,
	}, true)
	req := httptest.NewRequest(http.MethodPost, "/blogs", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+authorToken)
	rec, _ = f.do(t, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, resp = f.do(t, jsonRequest(t, http.MethodGet, "/tags/databases", nil, ""))
	require.Equal(t, http.StatusOK, rec.Code)
	tagged, _ := resp["blogs"].([]any)
	assert.Len(t, tagged, 1)

	req = httptest.NewRequest(http.MethodGet, "/blogs/search?search=postgres", nil)
	recorder := httptest.NewRecorder()
	f.server.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)
	var matches []map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &matches))
	require.Len(t, matches, 1)
	assert.Empty(t, matches[0]["body"], "search results carry no bodies")
}

func TestDeleteAccountEndpoint(t *testing.T) {
	f := setupServer(t)
	token := f.signup(t, "johndoe", "john.doe@example.com", "password123")

	rec, _ := f.do(t, jsonRequest(t, http.MethodDelete, "/users", map[string]string{
		"password": "wrong-password",
	}, token))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = f.do(t, jsonRequest(t, http.MethodDelete, "/users", map[string]string{
		"password": "password123",
	}, token))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// The account and its sessions are gone.
	rec, _ = f.do(t, jsonRequest(t, http.MethodGet, "/users/me", nil, token))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/users/johndoe", nil)
	recorder := httptest.NewRecorder()
	f.server.ServeHTTP(recorder, req)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestContactEndpoint(t *testing.T) {
	f := setupServer(t)

	rec, _ := f.do(t, jsonRequest(t, http.MethodPost, "/contact", map[string]string{
		"name":    "John Doe",
		"email":   "john.doe@example.com",
		"message": "Hello there",
	}, ""))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 1, f.mailer.Sent)

	rec, _ = f.do(t, jsonRequest(t, http.MethodPost, "/contact", map[string]string{
		"name":  "John Doe",
		"email": "not-an-email",
	}, ""))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestPublicProfileHidesTokens(t *testing.T) {
	f := setupServer(t)
	f.signup(t, "johndoe", "john.doe@example.com", "password123")

	req := httptest.NewRequest(http.MethodGet, "/users/johndoe", nil)
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "tokens")
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestUpdateMeRejectsUnknownFields(t *testing.T) {
	f := setupServer(t)
	token := f.signup(t, "johndoe", "john.doe@example.com", "password123")

	form := "role=admin"
	req := httptest.NewRequest(http.MethodPatch, "/users/me", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+token)
	rec, resp := f.do(t, req)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	errMsg, _ := resp["error"].(string)
	assert.Contains(t, errMsg, fmt.Sprintf("invalid update field %q", "role"))
}
