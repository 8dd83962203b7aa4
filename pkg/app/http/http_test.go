package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/chainsafe/wallet-console/pkg/app/errors"
	"github.com/chainsafe/wallet-console/pkg/config"
)

func TestHandleError_StatusByCategory(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{"bad request", apperrors.BadRequestError(nil, "Please enter a valid amount"), http.StatusBadRequest, "Please enter a valid amount"},
		{"locked", apperrors.LockedError(nil, "form is busy"), http.StatusLocked, "form is busy"},
		{"rate limited", apperrors.TooManyRequestsError(nil, "slow down"), http.StatusTooManyRequests, "slow down"},
		{"dependency", apperrors.DependencyError(errors.New("rpc down"), "chain unavailable"), http.StatusBadGateway, "chain unavailable"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "Unexpected Service Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := HandleError(func(http.ResponseWriter, *http.Request) error { return tt.err })
			rec := httptest.NewRecorder()
			h(rec, httptest.NewRequest(http.MethodGet, "/", nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			var got ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("failed to decode response JSON: %v", err)
			}
			if got.Error != tt.wantMsg || got.Code != tt.wantStatus {
				t.Fatalf("unexpected body %+v", got)
			}
		})
	}
}

func TestDecodeJSON_Invalid(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{invalid"))
	var v map[string]any
	err := DecodeJSON(req, &v)
	if !apperrors.Is(err, apperrors.CategoryDataError) {
		t.Fatalf("expected data error, got %v", err)
	}
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("OK"))
	})

	done := make(chan error, 1)
	go func() {
		done <- Serve(ctx, ln, handler, zap.NewNop(), &config.ServerConfig{ShutdownTimeout: time.Second})
	}()

	resp, err := http.Get("http://" + ln.Addr().String())
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if string(body) != "OK" {
		t.Fatalf("unexpected body %q", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
