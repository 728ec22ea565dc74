package inspect

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danmuck/datumctl/internal/config"
	"github.com/danmuck/datumctl/internal/datum"
	logs "github.com/danmuck/datumctl/internal/logging"
	"github.com/danmuck/datumctl/internal/testutil/datumtest"
	"github.com/danmuck/datumctl/internal/testutil/testlog"
	"github.com/danmuck/datumctl/internal/testutil/tlstest"
	"github.com/gin-gonic/gin"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	testlog.Start(t)
	s, err := New(config.Default().Server, "")
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	s.RegisterRoutes()
	return s
}

func post(t *testing.T, s *Server, body []byte) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/inspect", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/octet-stream")
	rr := httptest.NewRecorder()
	s.HTTPRouter().ServeHTTP(rr, req)

	var out map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body: %v body=%s", err, rr.Body.String())
	}
	return rr, out
}

func TestInspectValidHeader(t *testing.T) {
	s := newTestServer(t)
	payload := append(datumtest.FullFeatured().Bytes(), []byte("payload after header")...)

	rr, body := post(t, s, payload)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d body=%s", rr.Code, rr.Body.String())
	}
	if body["recognized"] != true || body["valid"] != true {
		t.Fatalf("unexpected response body: %#v", body)
	}
	header, ok := body["header"].(map[string]any)
	if !ok || header["opc"] != float64(2) || header["checksum"] != float64(1234567890) {
		t.Fatalf("unexpected header: %#v", body["header"])
	}
	if body["created"] != "2022-05-10T04:03:02.000000001Z" {
		t.Fatalf("unexpected created: %v", body["created"])
	}
	logs.Logf("inspect/http: POST /v1/inspect status=%d flags=%v", rr.Code, body["flags"])
}

func TestInspectStatusCodes(t *testing.T) {
	s := newTestServer(t)

	rr, body := post(t, s, datumtest.InvalidFullFeaturedHeader())
	if rr.Code != http.StatusUnprocessableEntity || body["rule"] != "metadata" || body["valid"] != false {
		t.Fatalf("expected 422 with rule, got %d %#v", rr.Code, body)
	}
	logs.Logf("inspect/http: invalid status=%d rule=%v", rr.Code, body["rule"])

	rr, body = post(t, s, bytes.Repeat([]byte{0x42}, datum.HeaderSize))
	if rr.Code != http.StatusUnsupportedMediaType || body["recognized"] != false {
		t.Fatalf("expected 415, got %d %#v", rr.Code, body)
	}
	logs.Logf("inspect/http: unsupported status=%d", rr.Code)

	rr, body = post(t, s, datumtest.Minimal()[:40])
	if rr.Code != http.StatusBadRequest || body["error"] == nil {
		t.Fatalf("expected 400, got %d %#v", rr.Code, body)
	}
	logs.Logf("inspect/http: short body status=%d error=%v", rr.Code, body["error"])
}

func TestHealthReadyAndMetrics(t *testing.T) {
	s := newTestServer(t)
	post(t, s, datumtest.Minimal())

	for _, path := range []string{"/health", "/ready"} {
		rr := httptest.NewRecorder()
		s.HTTPRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, rr.Code)
		}
	}

	rr := httptest.NewRecorder()
	s.HTTPRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `datumctl_header_checks_total{result="valid",source="http"}`) {
		t.Fatalf("metrics missing header check counter")
	}
}

func TestServeListenerTLSAndShutdown(t *testing.T) {
	testlog.Start(t)
	bundle := tlstest.ServerBundle(t, t.TempDir(), "127.0.0.1")
	cfg := config.Default().Server
	cfg.TLSCertFile = bundle.CertFile
	cfg.TLSKeyFile = bundle.KeyFile
	s, err := New(cfg, "")
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ServeListener(ctx, ln) }()

	client := &http.Client{
		Timeout:   5 * time.Second,
		Transport: &http.Transport{TLSClientConfig: &tls.Config{RootCAs: bundle.Pool}},
	}
	url := "https://" + ln.Addr().String() + "/v1/inspect"
	var resp *http.Response
	for i := 0; i < 50; i++ {
		resp, err = client.Post(url, "application/octet-stream", bytes.NewReader(datumtest.Minimal()))
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		t.Fatalf("https request: %v", err)
	}
	raw, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 over tls, got %d body=%s", resp.StatusCode, raw)
	}
	logs.Logf("inspect/tls: status=%d", resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("serve returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("server did not stop after cancel")
	}
}

func TestInspectRequiresTokenWhenConfigured(t *testing.T) {
	testlog.Start(t)
	cfg := config.Default().Server
	cfg.AuthToken = "s3cret"
	s, err := New(cfg, "")
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	s.RegisterRoutes()

	req := httptest.NewRequest(http.MethodPost, "/v1/inspect", bytes.NewReader(datumtest.Minimal()))
	rr := httptest.NewRecorder()
	s.HTTPRouter().ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/v1/inspect", bytes.NewReader(datumtest.Minimal()))
	req.Header.Set("Authorization", "Bearer s3cret")
	rr = httptest.NewRecorder()
	s.HTTPRouter().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d body=%s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	s.HTTPRouter().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("health must stay open, got %d", rr.Code)
	}
	logs.Logf("inspect/auth: token enforced on /v1 only")
}

func TestNewRejectsBadTrustedProxy(t *testing.T) {
	testlog.Start(t)
	cfg := config.Default().Server
	cfg.TrustedProxies = []string{"127.0.0.1", "not-an-ip"}
	if s, err := New(cfg, ""); err == nil || s != nil {
		t.Fatalf("expected trusted proxy error, got server=%v err=%v", s, err)
	}

	cfg.TrustedProxies = []string{"10.0.0.0/8"}
	s, err := New(cfg, "")
	if err != nil {
		t.Fatalf("new server with cidr proxy: %v", err)
	}
	s.HTTPRouter().GET("/ip", func(c *gin.Context) { c.String(http.StatusOK, c.ClientIP()) })
	req := httptest.NewRequest(http.MethodGet, "/ip", nil)
	req.RemoteAddr = "10.1.2.3:4000"
	req.Header.Set("X-Forwarded-For", "203.0.113.9")
	rr := httptest.NewRecorder()
	s.HTTPRouter().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK || rr.Body.String() != "203.0.113.9" {
		t.Fatalf("expected forwarded client ip from trusted proxy, got %d %q", rr.Code, rr.Body.String())
	}
	logs.Logf("inspect/proxies: bad entry rejected, cidr accepted")
}
