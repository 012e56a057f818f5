package server

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/userkeeper/internal/server/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	c := &config.Config{}
	c.LoadDefaults()
	c.SecretKey = "secret"
	c.HashCost = 4
	c.LogLevel = "error"
	return c
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestNewApp_RejectsMissingSecret(t *testing.T) {
	c := testConfig(t)
	c.SecretKey = ""

	_, err := NewApp(c)
	require.ErrorIs(t, err, config.ErrMissingSecret)
}

func TestNewApp_WiresHandler(t *testing.T) {
	app, err := NewApp(testConfig(t))
	require.NoError(t, err)
	t.Cleanup(app.limiter.Close)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/register",
		strings.NewReader(`{"name":"A","email":"a@x.com","password":"pw"}`))
	app.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, app.repo.Len())

	rec = httptest.NewRecorder()
	app.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "userkeeper_users 1")
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	c := testConfig(t)
	c.Port = freePort(t)
	c.GRPCHealthAddr = "127.0.0.1:0"

	app, err := NewApp(c)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + net.JoinHostPort("127.0.0.1", strconv.Itoa(c.Port)) + "/metrics")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop within timeout after context cancel")
	}
}
