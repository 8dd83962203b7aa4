package console

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/wallet-console/pkg/history"
	"github.com/chainsafe/wallet-console/pkg/operation"
)

const serviceName = "ConsoleService"

const (
	logInputMaxLen       = 64
	signatureDisplaySize = 16
)

// logService wraps Service with logging of every state-changing call.
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the console Service. Read-only
// calls pass through; signatures are redacted.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{svc: svc, logger: logger}
}

func (ls *logService) Wallet(ctx context.Context) (*WalletInfo, error) {
	return ls.svc.Wallet(ctx)
}

func (ls *logService) Connect(ctx context.Context) (info *WalletInfo, err error) {
	defer ls.logWallet("Connect", time.Now(), &info, &err)
	return ls.svc.Connect(ctx)
}

func (ls *logService) Disconnect(ctx context.Context) (info *WalletInfo, err error) {
	defer ls.logWallet("Disconnect", time.Now(), &info, &err)
	return ls.svc.Disconnect(ctx)
}

func (ls *logService) RefreshBalance(ctx context.Context) (info *WalletInfo, err error) {
	defer ls.logWallet("RefreshBalance", time.Now(), &info, &err)
	return ls.svc.RefreshBalance(ctx)
}

func (ls *logService) SetNetwork(ctx context.Context, network string) (info *WalletInfo, err error) {
	ls.logger.Info("SetNetwork started",
		zap.String("service", serviceName),
		zap.String("method", "SetNetwork"),
		zap.String("network", network))
	defer ls.logWallet("SetNetwork", time.Now(), &info, &err)
	return ls.svc.SetNetwork(ctx, network)
}

func (ls *logService) Forms(ctx context.Context) ([]operation.View, error) {
	return ls.svc.Forms(ctx)
}

func (ls *logService) Form(ctx context.Context, name string) (*operation.View, error) {
	return ls.svc.Form(ctx, name)
}

func (ls *logService) SetInput(ctx context.Context, name string, input json.RawMessage) (view *operation.View, err error) {
	start := time.Now()
	defer func() {
		if err != nil {
			ls.logger.Warn("SetInput failed",
				zap.String("service", serviceName),
				zap.String("method", "SetInput"),
				zap.String("form", name),
				zap.Duration("duration", time.Since(start)),
				zap.Error(err))
			return
		}
		ls.logger.Debug("SetInput completed",
			zap.String("service", serviceName),
			zap.String("method", "SetInput"),
			zap.String("form", name),
			zap.String("input", truncateString(string(input), logInputMaxLen)))
	}()
	return ls.svc.SetInput(ctx, name, input)
}

func (ls *logService) Submit(ctx context.Context, name string) (view *operation.View, err error) {
	start := time.Now()
	ls.logger.Info("Submit started",
		zap.String("service", serviceName),
		zap.String("method", "Submit"),
		zap.String("form", name))
	defer func() {
		if err != nil {
			ls.logger.Warn("Submit rejected",
				zap.String("service", serviceName),
				zap.String("method", "Submit"),
				zap.String("form", name),
				zap.Duration("duration", time.Since(start)),
				zap.Error(err))
			return
		}
		ls.logger.Info("Submit accepted",
			zap.String("service", serviceName),
			zap.String("method", "Submit"),
			zap.String("form", name),
			zap.Stringer("phase", view.Phase),
			zap.Duration("duration", time.Since(start)))
	}()
	return ls.svc.Submit(ctx, name)
}

func (ls *logService) Run(ctx context.Context, name string, input json.RawMessage) (out *Outcome, err error) {
	start := time.Now()
	ls.logger.Info("Run started",
		zap.String("service", serviceName),
		zap.String("method", "Run"),
		zap.String("form", name))
	defer func() {
		duration := time.Since(start)
		if err != nil {
			ls.logger.Error("Run failed",
				zap.String("service", serviceName),
				zap.String("method", "Run"),
				zap.String("form", name),
				zap.Duration("duration", duration),
				zap.Error(err))
			return
		}
		fields := []zap.Field{
			zap.String("service", serviceName),
			zap.String("method", "Run"),
			zap.String("form", name),
			zap.Stringer("phase", out.Phase),
			zap.Duration("duration", duration),
		}
		switch res := out.Result.(type) {
		case AirdropResult:
			fields = append(fields, zap.String("tx_id", res.TxID))
		case TransferResult:
			fields = append(fields, zap.String("tx_id", res.TxID), zap.String("recipient", res.Recipient))
		case SignResult:
			fields = append(fields, zap.String("signature", redactSignature(res.Signature)))
		}
		if out.Err != nil {
			fields = append(fields, zap.Stringer("kind", out.Kind), zap.Error(out.Err))
		}
		ls.logger.Info("Run completed", fields...)
	}()
	return ls.svc.Run(ctx, name, input)
}

func (ls *logService) History(ctx context.Context, limit int) ([]*history.Operation, error) {
	return ls.svc.History(ctx, limit)
}

func (ls *logService) Stats(ctx context.Context) (*history.Stats, error) {
	return ls.svc.Stats(ctx)
}

func (ls *logService) logWallet(method string, start time.Time, info **WalletInfo, err *error) {
	duration := time.Since(start)
	if *err != nil {
		ls.logger.Error(method+" failed",
			zap.String("service", serviceName),
			zap.String("method", method),
			zap.Duration("duration", duration),
			zap.Error(*err))
		return
	}
	ls.logger.Info(method+" completed",
		zap.String("service", serviceName),
		zap.String("method", method),
		zap.Bool("connected", (*info).Connected),
		zap.String("address", (*info).Address),
		zap.String("network", (*info).Network),
		zap.String("balance", (*info).Balance.Value),
		zap.Duration("duration", duration))
}

// truncateString limits string length for logging
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// redactSignature shows only the edges and length of a signature
func redactSignature(sig string) string {
	if sig == "" {
		return "<empty>"
	}
	if n := len(sig); n > signatureDisplaySize {
		return fmt.Sprintf("%s...%s (%d chars)", sig[:8], sig[n-4:], n)
	}
	return fmt.Sprintf("<%d chars>", len(sig))
}
