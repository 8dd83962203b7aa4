package reconciler

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/chainsafe/wallet-console/pkg/balance"
	"github.com/chainsafe/wallet-console/pkg/console"
	"github.com/chainsafe/wallet-console/pkg/console/mocks"
	"github.com/chainsafe/wallet-console/pkg/operation"
)

func knownBalance(value string) balance.Snapshot {
	return balance.Snapshot{Units: big.NewInt(1), Value: value, Symbol: "SOL", Network: "devnet"}
}

func TestReconcile_SkipsWhenDisconnected(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().Wallet(mock.Anything).Return(&console.WalletInfo{Connected: false}, nil)

	done, err := New(svc, zap.NewNop()).Reconcile(context.Background())
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if done {
		t.Fatal("expected no refresh while disconnected")
	}
}

func TestReconcile_SkipsWhileFormPending(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().Wallet(mock.Anything).Return(&console.WalletInfo{Connected: true}, nil)
	svc.EXPECT().Forms(mock.Anything).Return([]operation.View{
		{Form: console.FormAirdrop, Phase: operation.PhaseIdle},
		{Form: console.FormTransfer, Phase: operation.PhasePending, Disabled: true},
	}, nil)

	done, err := New(svc, zap.NewNop()).Reconcile(context.Background())
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if done {
		t.Fatal("expected no refresh while a form is pending")
	}
}

func TestReconcile_RefreshesBalance(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().Wallet(mock.Anything).Return(&console.WalletInfo{Connected: true, Balance: knownBalance("1")}, nil)
	svc.EXPECT().Forms(mock.Anything).Return([]operation.View{
		{Form: console.FormAirdrop, Phase: operation.PhaseSucceeded, Disabled: true},
	}, nil)
	svc.EXPECT().RefreshBalance(mock.Anything).Return(&console.WalletInfo{Connected: true, Balance: knownBalance("2.5")}, nil)

	done, err := New(svc, zap.NewNop()).Reconcile(context.Background())
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if !done {
		t.Fatal("expected a refresh")
	}
}

func TestReconcile_PropagatesRefreshError(t *testing.T) {
	svc := mocks.NewService(t)
	svc.EXPECT().Wallet(mock.Anything).Return(&console.WalletInfo{Connected: true}, nil)
	svc.EXPECT().Forms(mock.Anything).Return(nil, nil)
	svc.EXPECT().RefreshBalance(mock.Anything).Return(nil, errors.New("rpc down"))

	if _, err := New(svc, zap.NewNop()).Reconcile(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestStartPeriodicReconciliation_StopsCleanly(t *testing.T) {
	svc := mocks.NewService(t)
	called := make(chan struct{}, 8)
	svc.EXPECT().Wallet(mock.Anything).
		Run(func(context.Context) {
			select {
			case called <- struct{}{}:
			default:
			}
		}).
		Return(&console.WalletInfo{Connected: false}, nil)

	r := New(svc, zap.NewNop())
	r.StartPeriodicReconciliation(10 * time.Millisecond)

	select {
	case <-called:
	case <-time.After(2 * time.Second):
		t.Fatal("reconciliation never ran")
	}
	r.Stop()
	r.Stop()
}
