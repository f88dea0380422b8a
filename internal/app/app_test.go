package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MikhailRaia/mini-shortener/internal/config"
	"github.com/MikhailRaia/mini-shortener/internal/generator"
	"github.com/MikhailRaia/mini-shortener/internal/model"
	"github.com/MikhailRaia/mini-shortener/internal/proto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/protobuf/types/known/emptypb"
)

func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func shorten(t *testing.T, serverURL, body string) (*http.Response, model.ShortURL) {
	t.Helper()

	resp, err := http.Post(serverURL+"/api/shorten", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var result model.ShortURL
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	}
	return resp, result
}

func TestApp_Integration(t *testing.T) {
	cfg := &config.Config{
		ServerAddress:   ":8080",
		ShutdownTimeout: time.Second,
	}

	app := NewApp(cfg)

	server := httptest.NewServer(app.handler)
	defer server.Close()

	resp, result := shorten(t, server.URL, `{"url": "https://example.com/a"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Len(t, result.Code, generator.CodeLength)
	assert.Equal(t, "https://example.com/a", result.OriginalURL)
	assert.Equal(t, server.URL+"/api/r/"+result.Code, result.ShortURL)

	client := noRedirectClient()

	resp, err := client.Get(server.URL + "/api/r/" + result.Code)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "https://example.com/a", resp.Header.Get("Location"))

	unused := "000000"
	if unused == result.Code {
		unused = "111111"
	}
	resp, err = client.Get(server.URL + "/api/r/" + unused)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Empty(t, body)
}

func TestApp_ConfiguredBaseURL(t *testing.T) {
	app := NewApp(&config.Config{ServerAddress: ":8080", BaseURL: "https://sho.rt"})

	server := httptest.NewServer(app.handler)
	defer server.Close()

	_, result := shorten(t, server.URL, `{"url": "https://example.com/a"}`)
	assert.Equal(t, "https://sho.rt/api/r/"+result.Code, result.ShortURL)
}

func TestApp_InvalidShortenRequests(t *testing.T) {
	app := NewApp(&config.Config{ServerAddress: ":8080"})

	server := httptest.NewServer(app.handler)
	defer server.Close()

	for _, body := range []string{`{"url": ""}`, `{"url": "   "}`, `{}`} {
		t.Run(body, func(t *testing.T) {
			resp, _ := shorten(t, server.URL, body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestApp_ListAll(t *testing.T) {
	app := NewApp(&config.Config{ServerAddress: ":8080"})

	server := httptest.NewServer(app.handler)
	defer server.Close()

	list := func() map[string]string {
		resp, err := http.Get(server.URL + "/api/urls")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var all map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&all))
		return all
	}

	empty := list()
	require.NotNil(t, empty)
	assert.Empty(t, empty)

	want := make(map[string]string)
	for i := 0; i < 3; i++ {
		originalURL := "https://example.com/" + strings.Repeat("x", i+1)
		_, result := shorten(t, server.URL, `{"url": "`+originalURL+`"}`)
		want[result.Code] = originalURL
	}

	assert.Equal(t, want, list())
}

func TestApp_Name(t *testing.T) {
	app := NewApp(&config.Config{ServerAddress: ":8080"})

	server := httptest.NewServer(app.handler)
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/name")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "URL Shortener", string(body))
}

func freeAddress(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestApp_RunAndShutdown(t *testing.T) {
	cfg := &config.Config{
		ServerAddress:   freeAddress(t),
		GRPCAddress:     freeAddress(t),
		ShutdownTimeout: 2 * time.Second,
	}

	app := NewApp(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- app.Run(ctx)
	}()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + cfg.ServerAddress + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 20*time.Millisecond)

	conn, err := grpc.NewClient(cfg.GRPCAddress, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	name, err := proto.NewShortenerServiceClient(conn).Name(context.Background(), &emptypb.Empty{})
	require.NoError(t, err)
	assert.Equal(t, "URL Shortener", name.GetValue())

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestApp_RunAddressInUse(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	app := NewApp(&config.Config{
		ServerAddress:   l.Addr().String(),
		ShutdownTimeout: time.Second,
	})

	done := make(chan error, 1)
	go func() {
		done <- app.Run(context.Background())
	}()

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not fail on an occupied address")
	}
}
