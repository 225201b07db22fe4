package handlers

import (
	"fmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"profile-feed-api/app/server/apperr"
	"profile-feed-api/app/server/schemas"
	"strings"
	"testing"
	"time"
)

func TestFeedCreate(t *testing.T) {
	s := newTestServer(t)
	aliceID, aliceToken := s.signup("alice@example.com", "Alice", "pw")
	bobID, _ := s.signup("bob@example.com", "Bob", "pw")

	rec := s.do(http.MethodPost, "/feed/", map[string]string{"status_text": "hello"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// 请求中的所属账号被忽略
	rec = s.do(http.MethodPost, "/feed/", map[string]interface{}{
		"status_text":  "  hello world  ",
		"user_profile": bobID,
		"created_on":   "2000-01-01T00:00:00Z",
	}, aliceToken)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	item := decode[schemas.FeedItemInfoWithID](t, rec)
	assert.Equal(t, aliceID, *item.UserProfile)
	assert.Equal(t, "hello world", *item.StatusText)
	require.NotNil(t, item.CreatedOn)
	assert.NotEqual(t, 2000, item.CreatedOn.Year())

	for name, body := range map[string]map[string]string{
		"missing":  {},
		"blank":    {"status_text": "   "},
		"too long": {"status_text": strings.Repeat("x", 256)},
	} {
		rec := s.do(http.MethodPost, "/feed/", body, aliceToken)
		require.Equal(t, http.StatusBadRequest, rec.Code, name)
		assert.Contains(t, decode[schemas.ErrorMessage](t, rec).Errors, "status_text", name)
	}

	rec = s.do(http.MethodPost, "/feed/", map[string]string{"status_text": strings.Repeat("字", 255)}, aliceToken)
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestFeedList(t *testing.T) {
	s := newTestServer(t)
	aliceID, aliceToken := s.signup("alice@example.com", "Alice", "pw")
	bobID, bobToken := s.signup("bob@example.com", "Bob", "pw")

	for _, c := range []struct {
		token string
		text  string
	}{{aliceToken, "a1"}, {bobToken, "b1"}, {aliceToken, "a2"}} {
		rec := s.do(http.MethodPost, "/feed/", map[string]string{"status_text": c.text}, c.token)
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	texts := func(target string) []string {
		rec := s.do(http.MethodGet, target, nil, "")
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var out []string
		for _, item := range decode[[]schemas.FeedItemInfoWithID](t, rec) {
			out = append(out, *item.StatusText)
		}
		return out
	}

	assert.Equal(t, []string{"a1", "b1", "a2"}, texts("/feed/"))
	assert.Equal(t, []string{"a1", "a2"}, texts(fmt.Sprintf("/feed/?user_profile=%d", aliceID)))
	assert.Equal(t, []string{"b1"}, texts(fmt.Sprintf("/feed?user_profile=%d", bobID)))
	assert.Empty(t, texts(fmt.Sprintf("/feed/?user_profile=%d", bobID+100)))

	rec := s.do(http.MethodGet, "/feed/?limit=2", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "3", rec.Header().Get(HeaderTotalCount))
	assert.Equal(t, "2", rec.Header().Get(HeaderPageMax))
	assert.Len(t, decode[[]schemas.FeedItemInfoWithID](t, rec), 2)

	rec = s.do(http.MethodGet, "/feed/?user_profile=alice", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFeedUpdateAndDelete(t *testing.T) {
	s := newTestServer(t)
	aliceID, aliceToken := s.signup("alice@example.com", "Alice", "pw")
	bobID, bobToken := s.signup("bob@example.com", "Bob", "pw")

	rec := s.do(http.MethodPost, "/feed/", map[string]string{"status_text": "original"}, aliceToken)
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[schemas.FeedItemInfoWithID](t, rec)
	target := fmt.Sprintf("/feed/%d/", *created.Id)

	rec = s.do(http.MethodGet, target, nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "original", *decode[schemas.FeedItemInfoWithID](t, rec).StatusText)

	t.Run("denied", func(t *testing.T) {
		rec := s.do(http.MethodPatch, target, map[string]string{"status_text": "hijack"}, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)

		for _, method := range []string{http.MethodPut, http.MethodPatch} {
			rec := s.do(method, target, map[string]string{"status_text": "hijack"}, bobToken)
			assert.Equal(t, http.StatusForbidden, rec.Code, method)
		}
		rec = s.do(http.MethodDelete, target, nil, bobToken)
		assert.Equal(t, http.StatusForbidden, rec.Code)

		rec = s.do(http.MethodGet, target, nil, "")
		assert.Equal(t, "original", *decode[schemas.FeedItemInfoWithID](t, rec).StatusText)
	})

	t.Run("missing", func(t *testing.T) {
		rec := s.do(http.MethodPatch, fmt.Sprintf("/feed/%d/", *created.Id+100), map[string]string{"status_text": "x"}, bobToken)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("owner", func(t *testing.T) {
		rec := s.do(http.MethodPut, target, map[string]string{}, aliceToken)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, []string{apperr.MsgRequired}, decode[schemas.ErrorMessage](t, rec).Errors["status_text"])

		// PATCH 没有字段时保持不变
		rec = s.do(http.MethodPatch, target, map[string]string{}, aliceToken)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "original", *decode[schemas.FeedItemInfoWithID](t, rec).StatusText)

		rec = s.do(http.MethodPut, target, map[string]interface{}{
			"status_text":  "edited",
			"user_profile": bobID,
		}, aliceToken)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		updated := decode[schemas.FeedItemInfoWithID](t, rec)
		assert.Equal(t, "edited", *updated.StatusText)
		assert.Equal(t, aliceID, *updated.UserProfile)
		assert.WithinDuration(t, *created.CreatedOn, *updated.CreatedOn, time.Millisecond)

		rec = s.do(http.MethodDelete, target, nil, aliceToken)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = s.do(http.MethodGet, target, nil, "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
