package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"HabitTracker/internal/auth"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisRouter(t *testing.T) (*gin.Engine, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return newTestRouterWith(t, rdb), rdb
}

func do(t *testing.T, r *gin.Engine, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName && c.Value != "" {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", auth.CookieName)
	return nil
}

func TestAuthMe(t *testing.T) {
	r, _ := newRedisRouter(t)

	w := do(t, r, http.MethodPost, "/api/v1/auth/register", `{"username":"ana","password":"secret"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	cookie := sessionCookie(t, w)

	w = do(t, r, http.MethodGet, "/api/v1/auth/me", "", cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var body struct {
		OK   bool `json:"ok"`
		User struct {
			ID        int64     `json:"id"`
			Username  string    `json:"username"`
			CreatedAt time.Time `json:"created_at"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.OK)
	assert.Positive(t, body.User.ID)
	assert.Equal(t, "ana", body.User.Username)
	assert.False(t, body.User.CreatedAt.IsZero())
	assert.NotContains(t, w.Body.String(), "password")

	w = do(t, r, http.MethodPost, "/api/v1/auth/logout", "", cookie)
	require.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, r, http.MethodGet, "/api/v1/auth/me", "", cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMe_SessionForMissingUser(t *testing.T) {
	r, rdb := newRedisRouter(t)

	id, err := auth.NewStore(rdb, time.Hour).Create(context.Background(), 404)
	require.NoError(t, err)

	w := do(t, r, http.MethodGet, "/api/v1/auth/me", "", &http.Cookie{Name: auth.CookieName, Value: id})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"authorization required"}`, w.Body.String())
}

func TestCachedProgressFollowsWrites(t *testing.T) {
	r, rdb := newRedisRouter(t)

	w := do(t, r, http.MethodPost, "/api/v1/auth/register", `{"username":"ana","password":"secret"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	cookie := sessionCookie(t, w)

	w = do(t, r, http.MethodPost, "/api/v1/habits", `{"name":"Reading"}`, cookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var habit struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &habit))

	streakOf := func() int {
		t.Helper()
		w := do(t, r, http.MethodGet, "/api/v1/progress", "", cookie)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var list struct {
			Items []struct {
				CurrentStreak int `json:"current_streak"`
			} `json:"items"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
		require.Len(t, list.Items, 1)
		return list.Items[0].CurrentStreak
	}

	assert.Equal(t, 0, streakOf())
	keys, err := rdb.Keys(context.Background(), "habits:progress:*").Result()
	require.NoError(t, err)
	assert.Len(t, keys, 1, "first read fills the cache")

	w = do(t, r, http.MethodPost, "/api/v1/habits/"+strconv.FormatInt(habit.ID, 10)+"/complete", "", cookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	assert.Equal(t, 1, streakOf(), "completion invalidates the cached view")
}
