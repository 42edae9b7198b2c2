package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"niddo-http-service/internal/app/routes"
	"niddo-http-service/internal/domain/services/container"
	"niddo-http-service/internal/infrastructure/config"
	"niddo-http-service/internal/infrastructure/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// Envelope 统一响应格式
type Envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// TestServer 运行完整路由的测试服务器
type TestServer struct {
	*httptest.Server
	Config *config.Config
	Pool   *database.ConnectionPool
}

// NewServer 在临时 SQLite 上启动服务器并创建默认管理员，cfg 为 nil 时使用 Config(t)
func NewServer(t testing.TB, cfg *config.Config) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if cfg == nil {
		cfg = Config(t)
	}
	pool := Pool(t, cfg)
	require.NoError(t, database.EnsureAdminExists(context.Background(), pool, cfg))

	serviceContainer := container.NewServiceContainer(pool.GetDB(), cfg)
	t.Cleanup(serviceContainer.Close)

	srv := httptest.NewServer(routes.SetupRouter(pool, serviceContainer))
	t.Cleanup(srv.Close)

	return &TestServer{Server: srv, Config: cfg, Pool: pool}
}

// Do 发送请求，body 非 nil 时编码为JSON，返回状态码和解析后的响应体
func (s *TestServer) Do(t testing.TB, method, path, token string, body interface{}) (int, Envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, s.URL+path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env Envelope
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

// Login 登录并返回访问令牌
func (s *TestServer) Login(t testing.TB, email, password string) string {
	t.Helper()

	status, env := s.Do(t, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, status, env.Message)

	var result struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.NotEmpty(t, result.AccessToken)
	return result.AccessToken
}

// Decode 将响应中的 data 解析到 out
func Decode(t testing.TB, env Envelope, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, out), string(env.Data))
}
