package console_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	apperrors "github.com/chainsafe/wallet-console/pkg/app/errors"
	"github.com/chainsafe/wallet-console/pkg/chain"
	"github.com/chainsafe/wallet-console/pkg/console"
	"github.com/chainsafe/wallet-console/pkg/console/mocks"
	"github.com/chainsafe/wallet-console/pkg/history"
	"github.com/chainsafe/wallet-console/pkg/operation"
)

type errorBody struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

func newConsoleTestServer(svc console.Service) http.Handler {
	r := chi.NewRouter()
	console.RegisterRoutes(r, svc, zap.NewNop())
	return r
}

func serve(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, bytes.NewBufferString(body))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, msg string) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("expected status %d, got %d (%s)", status, rec.Code, rec.Body.String())
	}
	var got errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response JSON: %v", err)
	}
	if got.Error != msg {
		t.Fatalf("expected error %q, got %q", msg, got.Error)
	}
	if got.Code != status {
		t.Fatalf("expected code %d, got %d", status, got.Code)
	}
}

func TestConsoleHTTP_Wallet(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().Wallet(mock.Anything).Return(&console.WalletInfo{
		Kind:      chain.KindSolana,
		Connected: true,
		Address:   "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T",
		Network:   "devnet",
		Networks:  []string{"devnet", "testnet"},
	}, nil)

	rec := serve(t, newConsoleTestServer(svc), http.MethodGet, "/wallet/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected content-type %q, got %q", "application/json", ct)
	}
	var got console.WalletInfo
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response JSON: %v", err)
	}
	if !got.Connected || got.Network != "devnet" || len(got.Networks) != 2 {
		t.Fatalf("unexpected wallet info: %+v", got)
	}
}

func TestConsoleHTTP_SetNetwork(t *testing.T) {
	t.Run("missing network", func(t *testing.T) {
		svc := mocks.NewService(t)
		rec := serve(t, newConsoleTestServer(svc), http.MethodPut, "/wallet/network", `{"network":" "}`)
		expectError(t, rec, http.StatusBadRequest, "network is required")
	})

	t.Run("invalid JSON", func(t *testing.T) {
		svc := mocks.NewService(t)
		rec := serve(t, newConsoleTestServer(svc), http.MethodPut, "/wallet/network", `{invalid`)
		expectError(t, rec, http.StatusBadRequest, "invalid JSON")
	})

	t.Run("locked while a form is busy", func(t *testing.T) {
		svc := mocks.NewService(t)
		svc.EXPECT().SetNetwork(mock.Anything, "testnet").
			Return(nil, apperrors.LockedError(operation.ErrDisabled, "cannot switch network while airdrop is in progress"))
		rec := serve(t, newConsoleTestServer(svc), http.MethodPut, "/wallet/network", `{"network":"testnet"}`)
		expectError(t, rec, http.StatusLocked, "cannot switch network while airdrop is in progress")
	})

	t.Run("switched", func(t *testing.T) {
		svc := mocks.NewService(t)
		svc.EXPECT().SetNetwork(mock.Anything, "testnet").
			Return(&console.WalletInfo{Kind: chain.KindSolana, Network: "testnet"}, nil)
		rec := serve(t, newConsoleTestServer(svc), http.MethodPut, "/wallet/network", `{"network":"testnet"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
		}
	})
}

func TestConsoleHTTP_SetInput(t *testing.T) {
	t.Run("invalid JSON never reaches the service", func(t *testing.T) {
		svc := mocks.NewService(t)
		rec := serve(t, newConsoleTestServer(svc), http.MethodPut, "/forms/airdrop/input", `{"amount":`)
		expectError(t, rec, http.StatusBadRequest, "invalid JSON")
	})

	t.Run("passes the body through", func(t *testing.T) {
		svc := mocks.NewService(t)
		svc.EXPECT().
			SetInput(mock.Anything, "airdrop", json.RawMessage(`{"amount":"1.5"}`)).
			Return(&operation.View{Form: "airdrop", Phase: operation.PhaseIdle, Input: console.AirdropInput{Amount: "1.5"}}, nil)

		rec := serve(t, newConsoleTestServer(svc), http.MethodPut, "/forms/airdrop/input", `{"amount":"1.5"}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
		}
		var got struct {
			Form  string               `json:"form"`
			Phase string               `json:"phase"`
			Input console.AirdropInput `json:"input"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("failed to decode response JSON: %v", err)
		}
		if got.Phase != "idle" || got.Input.Amount != "1.5" {
			t.Fatalf("unexpected view: %+v", got)
		}
	})

	t.Run("disabled form", func(t *testing.T) {
		svc := mocks.NewService(t)
		svc.EXPECT().SetInput(mock.Anything, "transfer", mock.Anything).
			Return(nil, apperrors.LockedError(operation.ErrDisabled, "form is busy"))
		rec := serve(t, newConsoleTestServer(svc), http.MethodPut, "/forms/transfer/input", `{"recipient":"x","amount":"1"}`)
		expectError(t, rec, http.StatusLocked, "form is busy")
	})
}

func TestConsoleHTTP_Submit(t *testing.T) {
	t.Run("accepted", func(t *testing.T) {
		svc := mocks.NewService(t)
		svc.EXPECT().Submit(mock.Anything, "sign").
			Return(&operation.View{Form: "sign", Phase: operation.PhasePending, Disabled: true}, nil)

		rec := serve(t, newConsoleTestServer(svc), http.MethodPost, "/forms/sign/submit", "")
		if rec.Code != http.StatusAccepted {
			t.Fatalf("expected status %d, got %d", http.StatusAccepted, rec.Code)
		}
		var got operation.View
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("failed to decode response JSON: %v", err)
		}
		if got.Form != "sign" || got.Phase != operation.PhasePending || !got.Disabled {
			t.Fatalf("unexpected view: %+v", got)
		}
	})

	t.Run("validation message is returned", func(t *testing.T) {
		svc := mocks.NewService(t)
		svc.EXPECT().Submit(mock.Anything, "airdrop").
			Return(nil, apperrors.BadRequestError(operation.Invalid("Please connect your wallet"), "Please connect your wallet"))
		rec := serve(t, newConsoleTestServer(svc), http.MethodPost, "/forms/airdrop/submit", "")
		expectError(t, rec, http.StatusBadRequest, "Please connect your wallet")
	})

	t.Run("unknown form", func(t *testing.T) {
		svc := mocks.NewService(t)
		svc.EXPECT().Submit(mock.Anything, "stake").
			Return(nil, apperrors.ResourceNotFoundError(nil, `unknown form "stake"`))
		rec := serve(t, newConsoleTestServer(svc), http.MethodPost, "/forms/stake/submit", "")
		expectError(t, rec, http.StatusNotFound, `unknown form "stake"`)
	})

	t.Run("unexpected error is hidden", func(t *testing.T) {
		svc := mocks.NewService(t)
		svc.EXPECT().Submit(mock.Anything, "sign").Return(nil, errors.New("boom"))
		rec := serve(t, newConsoleTestServer(svc), http.MethodPost, "/forms/sign/submit", "")
		expectError(t, rec, http.StatusInternalServerError, "Unexpected Service Error")
	})
}

func TestConsoleHTTP_Operations(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantLimit int
		wantCode  int
	}{
		{"default limit", "", 0, http.StatusOK},
		{"explicit limit", "?limit=5", 5, http.StatusOK},
		{"negative limit", "?limit=-1", 0, http.StatusBadRequest},
		{"non-numeric limit", "?limit=ten", 0, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := mocks.NewService(t)
			if tt.wantCode == http.StatusOK {
				svc.EXPECT().History(mock.Anything, tt.wantLimit).
					Return([]*history.Operation{{Form: "airdrop", Status: history.StatusSucceeded}}, nil)
			}

			rec := serve(t, newConsoleTestServer(svc), http.MethodGet, "/operations"+tt.query, "")
			if rec.Code != tt.wantCode {
				t.Fatalf("expected status %d, got %d", tt.wantCode, rec.Code)
			}
			if tt.wantCode != http.StatusOK {
				return
			}
			var got []history.Operation
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("failed to decode response JSON: %v", err)
			}
			if len(got) != 1 || got[0].Status != history.StatusSucceeded {
				t.Fatalf("unexpected operations: %+v", got)
			}
		})
	}
}

func TestConsoleHTTP_Stats(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().Stats(mock.Anything).Return(&history.Stats{Total: 4, Succeeded: 3, Failed: 1, SuccessRate: 75}, nil)

	rec := serve(t, newConsoleTestServer(svc), http.MethodGet, "/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	var got struct {
		Total       int     `json:"total"`
		SuccessRate float64 `json:"success_rate"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("failed to decode response JSON: %v", err)
	}
	if got.Total != 4 || got.SuccessRate != 75 {
		t.Fatalf("unexpected stats: %+v", got)
	}
}
