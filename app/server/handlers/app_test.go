package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"
	"net/http"
	"net/http/httptest"
	"profile-feed-api/app/server/accounts"
	"profile-feed-api/app/server/auth"
	"profile-feed-api/app/server/cache"
	"profile-feed-api/app/server/constants"
	"profile-feed-api/app/server/jwt"
	"profile-feed-api/app/server/models"
	"profile-feed-api/app/server/schemas"
	"profile-feed-api/app/server/testutil"
	"testing"
	"time"
)

type testServer struct {
	t  *testing.T
	e  *echo.Echo
	db *gorm.DB
	mr *miniredis.Miniredis
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	l := zaptest.NewLogger(t)
	db := testutil.NewDB(t)
	rdb, mr := testutil.NewRedis(t)

	j, err := jwt.New("test-signature-key")
	require.NoError(t, err)

	authn, err := auth.New(auth.Config{
		LoginField: constants.LoginField,
		Normalize:  accounts.NormalizeEmail,
	}, accounts.NewRepository(db))
	require.NoError(t, err)

	e := echo.New()
	RegisterHandlers(e, NewApp(l, db, cache.NewAccountCache(rdb, l), j, authn, time.Hour))

	return &testServer{t: t, e: e, db: db, mr: mr}
}

// do 发送请求， body 为 nil 时不带请求体
func (s *testServer) do(method, target string, body interface{}, token string) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Token "+token)
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// signup 注册并登录，返回账号 ID 与令牌
func (s *testServer) signup(email, name, password string) (uint, string) {
	s.t.Helper()

	rec := s.do(http.MethodPost, "/UserProfile/", map[string]string{
		"email":    email,
		"name":     name,
		"password": password,
	}, "")
	require.Equal(s.t, http.StatusCreated, rec.Code, rec.Body.String())
	profile := decode[schemas.ProfileInfoWithID](s.t, rec)

	return *profile.Id, s.login(email, password)
}

func (s *testServer) login(email, password string) string {
	s.t.Helper()

	rec := s.do(http.MethodPost, "/login/", map[string]string{
		"username": email,
		"password": password,
	}, "")
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	return *decode[schemas.LoginToken](s.t, rec).Token
}

func (s *testServer) account(id uint) *models.Account {
	s.t.Helper()

	account, err := accounts.NewRepository(s.db).Get(context.Background(), id)
	require.NoError(s.t, err)
	return account
}
