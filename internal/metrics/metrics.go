// Package metrics exposes the domain counters of the service to Prometheus.
package metrics

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "fluxshare"

const (
	outcomeSuccess = "success"
	outcomeError   = "error"
)

type Service struct {
	registerer prometheus.Registerer
	gatherer   prometheus.Gatherer

	rebalancerOperations *prometheus.CounterVec
	builtTransactions    *prometheus.CounterVec
	ledgerCalls          *prometheus.CounterVec
}

// New creates a registry of its own holding the Go runtime and process collectors next to
// the domain counters. The HTTP middleware and the /metrics endpoint use the same registry.
func New() (*Service, error) {
	reg := prometheus.NewRegistry()
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, errors.Wrap(err, "failed to register go collector")
	}
	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, errors.Wrap(err, "failed to register process collector")
	}

	return NewWithRegisterer(reg)
}

// NewWithRegisterer registers the domain counters with reg. Collectors that are already
// registered are reused. Metrics are gathered from reg if it is a Gatherer, otherwise
// from the default gatherer.
func NewWithRegisterer(reg prometheus.Registerer) (*Service, error) {
	gatherer, ok := reg.(prometheus.Gatherer)
	if !ok {
		gatherer = prometheus.DefaultGatherer
	}

	rebalancerOperations, err := registerCounterVec(reg, prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "splitter",
		Name:      "rebalancer_operations_total",
		Help:      "Recipient set mutations by operation and outcome.",
	}, "operation", "outcome")
	if err != nil {
		return nil, err
	}

	builtTransactions, err := registerCounterVec(reg, prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "built_transactions_total",
		Help:      "Unsigned transactions built by move call function.",
	}, "function")
	if err != nil {
		return nil, err
	}

	ledgerCalls, err := registerCounterVec(reg, prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ledger",
		Name:      "rpc_calls_total",
		Help:      "JSON-RPC calls to ledger nodes by method and outcome.",
	}, "method", "outcome")
	if err != nil {
		return nil, err
	}

	return &Service{
		registerer:           reg,
		gatherer:             gatherer,
		rebalancerOperations: rebalancerOperations,
		builtTransactions:    builtTransactions,
		ledgerCalls:          ledgerCalls,
	}, nil
}

func registerCounterVec(reg prometheus.Registerer, opts prometheus.CounterOpts, labels ...string) (*prometheus.CounterVec, error) {
	vec := prometheus.NewCounterVec(opts, labels)
	if err := reg.Register(vec); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}

		return nil, errors.Wrapf(err, "failed to register %s", opts.Name)
	}

	return vec, nil
}

//nolint:ireturn
func (s *Service) Registerer() prometheus.Registerer {
	return s.registerer
}

//nolint:ireturn
func (s *Service) Gatherer() prometheus.Gatherer {
	return s.gatherer
}

func (s *Service) ObserveRebalancerOperation(operation string, err error) {
	s.rebalancerOperations.WithLabelValues(operation, outcome(err)).Inc()
}

func (s *Service) ObserveLedgerCall(method string, err error) {
	s.ledgerCalls.WithLabelValues(method, outcome(err)).Inc()
}

func (s *Service) ObserveBuiltTransaction(function string) {
	s.builtTransactions.WithLabelValues(function).Inc()
}

func outcome(err error) string {
	if err != nil {
		return outcomeError
	}

	return outcomeSuccess
}
