package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OperationsTotal counts resolved form submissions by form and outcome
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_operations_total",
			Help: "Total number of resolved form submissions",
		},
		[]string{"form", "outcome"},
	)

	// OperationDuration tracks the time from Pending to resolution
	OperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "console_operation_duration_seconds",
			Help:    "Form submission duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"form"},
	)

	// FormsPending tracks forms with an external call in flight
	FormsPending = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "console_forms_pending",
			Help: "Number of forms currently pending",
		},
		[]string{"form"},
	)

	// ValidationRejections counts submissions refused by local validation
	ValidationRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_validation_rejections_total",
			Help: "Total number of submissions rejected before the external call",
		},
		[]string{"form"},
	)

	// WalletBalance tracks the last observed wallet balance in whole tokens
	WalletBalance = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "console_wallet_balance",
			Help: "Last observed wallet balance by network",
		},
		[]string{"network"},
	)

	// NotificationsTotal counts notifications by level
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_notifications_total",
			Help: "Total number of notifications emitted",
		},
		[]string{"level"},
	)

	// FaucetRequests counts EVM faucet requests by status
	FaucetRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_faucet_requests_total",
			Help: "Total number of faucet requests",
		},
		[]string{"status"},
	)

	// RPCErrors counts chain RPC failures by method
	RPCErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_rpc_errors_total",
			Help: "Total number of chain RPC errors",
		},
		[]string{"chain", "method"},
	)

	// HubClients tracks connected notification stream clients
	HubClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "console_notification_clients",
			Help: "Number of connected notification stream clients",
		},
	)

	// BalanceReconciliations counts background balance refreshes by result
	BalanceReconciliations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "console_balance_reconciliations_total",
			Help: "Total number of background balance reconciliations",
		},
		[]string{"result"},
	)
)
