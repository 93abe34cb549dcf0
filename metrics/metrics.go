// Package metrics exports ledger activity as Prometheus metrics.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/luca-patrignani/hashledger/ledger"
)

const namespace = "hashledger"

// Collector implements ledger.Observer by updating Prometheus metrics.
type Collector struct {
	blocks       prometheus.Counter
	transactions prometheus.Counter
	validations  *prometheus.CounterVec
	length       prometheus.Gauge
}

var _ ledger.Observer = (*Collector)(nil)

// NewCollector creates the ledger metrics and registers them with reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		blocks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "blocks_appended_total",
			Help:      "Number of blocks appended to the ledger.",
		}),
		transactions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transactions_added_total",
			Help:      "Number of transactions added to tail blocks.",
		}),
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validations_total",
			Help:      "Number of chain validations by result.",
		}, []string{"result"}),
		length: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "chain_length",
			Help:      "Number of blocks in the ledger.",
		}),
	}
	for _, m := range []prometheus.Collector{c.blocks, c.transactions, c.validations, c.length} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func (c *Collector) BlockAppended(b ledger.Block) {
	c.blocks.Inc()
	c.length.Set(float64(b.Index + 1))
}

func (c *Collector) TransactionAdded(ledger.Block, ledger.Transaction) {
	c.transactions.Inc()
}

func (c *Collector) Validated(length int, err error) {
	c.length.Set(float64(length))
	switch {
	case err == nil:
		c.validations.WithLabelValues("valid").Inc()
	case isMismatch(err):
		c.validations.WithLabelValues("invalid").Inc()
	default:
		c.validations.WithLabelValues("error").Inc()
	}
}

func isMismatch(err error) bool {
	var m *ledger.MismatchError
	return errors.As(err, &m)
}
