package userdir

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"order-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userServiceStub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/users/get/1", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(models.User{
			ID:    1,
			Name:  "Alice",
			Email: "alice@example.com",
		})
	})
	mux.HandleFunc("/users/get/404", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/users/get/403", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	mux.HandleFunc("/users/get/500", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/users/get/email", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("email") != "alice@example.com" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(models.User{
			ID:    1,
			Name:  "Alice",
			Email: "alice@example.com",
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestGetUserByID(t *testing.T) {
	srv := userServiceStub(t)
	client := NewClient(srv.URL, time.Second, nil)

	user, err := client.GetUserByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestGetUserByIDNotFound(t *testing.T) {
	srv := userServiceStub(t)
	client := NewClient(srv.URL, time.Second, nil)

	_, err := client.GetUserByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetUserByIDUnauthorized(t *testing.T) {
	srv := userServiceStub(t)
	client := NewClient(srv.URL, time.Second, nil)

	_, err := client.GetUserByID(context.Background(), 403)
	assert.ErrorIs(t, err, ErrUserUnauthorized)
}

func TestGetUserByIDServerError(t *testing.T) {
	srv := userServiceStub(t)
	client := NewClient(srv.URL, time.Second, nil)

	_, err := client.GetUserByID(context.Background(), 500)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUserNotFound)
	assert.NotErrorIs(t, err, ErrUserUnauthorized)
}

func TestGetUserByEmail(t *testing.T) {
	srv := userServiceStub(t)
	client := NewClient(srv.URL, time.Second, nil)

	user, err := client.GetUserByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)

	_, err = client.GetUserByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestResolveUsersSubstitutesFallback(t *testing.T) {
	srv := userServiceStub(t)
	client := NewClient(srv.URL, time.Second, nil)

	resolved := client.ResolveUsers(context.Background(), []int64{1, 404, 1})
	require.Len(t, resolved, 2)

	assert.Equal(t, "alice@example.com", resolved[1].Email)
	assert.Equal(t, SentinelEmail, resolved[404].Email)
	assert.Equal(t, int64(404), resolved[404].ID)
}

func TestResolveUsersUnreachableService(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 100*time.Millisecond, nil)

	resolved := client.ResolveUsers(context.Background(), []int64{7})
	require.Len(t, resolved, 1)
	assert.Equal(t, SentinelEmail, resolved[7].Email)
}

func TestFallbackProjections(t *testing.T) {
	byID := FallbackByID(9)
	assert.Equal(t, int64(9), byID.ID)
	assert.Equal(t, "Unknown", byID.Name)
	assert.Equal(t, "User", byID.Surname)
	assert.Equal(t, SentinelEmail, byID.Email)
	assert.True(t, byID.BirthDate.Equal(epoch))

	byEmail := FallbackByEmail("ghost@example.com")
	assert.Zero(t, byEmail.ID)
	assert.Equal(t, "ghost@example.com", byEmail.Email)
}
