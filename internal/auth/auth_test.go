package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	logs "github.com/danmuck/datumctl/internal/logging"
	"github.com/gin-gonic/gin"
)

func TestStaticTokenValidate(t *testing.T) {
	tests := []struct {
		name    string
		stored  string
		input   string
		wantErr error
	}{
		{name: "empty token denied", stored: "", input: "abc", wantErr: ErrUnauthorized},
		{name: "mismatched token denied", stored: "abc", input: "xyz", wantErr: ErrUnauthorized},
		{name: "matching token accepted", stored: "abc", input: "abc", wantErr: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := (StaticToken{Token: tc.stored}).Validate(tc.input)
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected err %v, got %v", tc.wantErr, err)
			}
			logs.Logf("auth/static-token: stored=%q input=%q err=%v", tc.stored, tc.input, err)
		})
	}
}

func TestBearerToken(t *testing.T) {
	cases := map[string]string{
		"Bearer abc":    "abc",
		"bearer  abc ":  "abc",
		" BEARER x.y.z": "x.y.z",
	}
	for header, want := range cases {
		got, err := BearerToken(header)
		if err != nil || got != want {
			t.Fatalf("BearerToken(%q) = %q,%v want %q", header, got, err, want)
		}
	}
	for _, header := range []string{"", "Bearer", "Bearer   ", "Basic abc", "abc"} {
		if _, err := BearerToken(header); !errors.Is(err, ErrMissingToken) {
			t.Fatalf("BearerToken(%q): expected ErrMissingToken, got %v", header, err)
		}
	}
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware(StaticToken{Token: "s3cret"}))
	r.GET("/x", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	for header, want := range map[string]int{
		"":              http.StatusUnauthorized,
		"Bearer wrong":  http.StatusUnauthorized,
		"Bearer s3cret": http.StatusOK,
	} {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != want {
			t.Fatalf("header %q: expected %d, got %d", header, want, rr.Code)
		}
		if want == http.StatusUnauthorized && rr.Header().Get("WWW-Authenticate") == "" {
			t.Fatalf("header %q: missing WWW-Authenticate", header)
		}
	}
}
