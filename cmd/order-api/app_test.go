package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BearBump/OrderBox/config"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		HTTPAddr:       "127.0.0.1:0",
		APIKey:         "k",
		OrderIDRegex:   `^\d{4,6}$`,
		SupportContact: "support",
		Commerce: config.CommerceConfig{
			Enable:   true,
			BaseURL:  "http://127.0.0.1:0",
			TimeoutS: 1,
			Shape:    config.ShapeSearchDetail,
		},
		Shipping: config.ShippingConfig{
			Mode:     config.ModeEnrichment,
			TimeoutS: 1,
		},
	}
}

func TestRunOrderAPI_HealthServed(t *testing.T) {
	cfg := testConfig()
	require.NoError(t, cfg.Validate())

	handler, err := buildHandler(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addrCh := make(chan string, 1)
	errCh := make(chan error, 1)
	go func() {
		errCh <- runOrderAPI(ctx, orderAPIOpts{
			httpAddr: cfg.HTTPAddr,
			onListen: func(addr string) { addrCh <- addr },
		}, handler)
	}()

	var addr string
	select {
	case addr = <-addrCh:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for listener")
	}

	resp, err := http.Get("http://" + addr + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	require.Contains(t, string(body), `"ok"`)

	cancel()
	select {
	case err := <-errCh:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for server to stop")
	}
}

func TestRunOrderAPI_SwaggerServed(t *testing.T) {
	dir := t.TempDir()
	sw := filepath.Join(dir, "openapi.json")
	require.NoError(t, os.WriteFile(sw, []byte(`{"swagger":"2.0"}`), 0o600))

	cfg := testConfig()
	require.NoError(t, cfg.Validate())
	handler, err := buildHandler(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	addrCh := make(chan string, 1)
	errCh := make(chan error, 1)
	go func() {
		errCh <- runOrderAPI(ctx, orderAPIOpts{
			httpAddr:    "127.0.0.1:0",
			swaggerPath: sw,
			onListen:    func(addr string) { addrCh <- addr },
		}, handler)
	}()

	addr := <-addrCh
	resp, err := http.Get("http://" + addr + "/swagger.json")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, 200, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	require.Contains(t, string(body), `"swagger"`)

	cancel()
	select {
	case <-errCh:
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for server to stop")
	}
}

func TestRunOrderAPI_SwaggerFileMissing(t *testing.T) {
	cfg := testConfig()
	require.NoError(t, cfg.Validate())
	handler, err := buildHandler(cfg)
	require.NoError(t, err)

	err = runOrderAPI(context.Background(), orderAPIOpts{
		httpAddr:    "127.0.0.1:0",
		swaggerPath: "/does/not/exist.json",
	}, handler)
	require.Error(t, err)
}
