package metrics

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luca-patrignani/hashledger/ledger"
)

func TestCollectorTracksLedger(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	bc := ledger.New(ledger.WithObserver(c))
	_, err = bc.Append("Genesis Block")
	require.NoError(t, err)
	_, err = bc.Append("Block A")
	require.NoError(t, err)
	_, err = bc.AddTransactionToTail("alice", "bob", decimal.RequireFromString("10.50"))
	require.NoError(t, err)
	require.True(t, bc.Validate())

	assert.Equal(t, 2.0, testutil.ToFloat64(c.blocks))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.transactions))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.length))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.validations.WithLabelValues("valid")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.validations.WithLabelValues("invalid")))
}

func TestCollectorResults(t *testing.T) {
	c, err := NewCollector(prometheus.NewRegistry())
	require.NoError(t, err)

	c.Validated(3, &ledger.MismatchError{Index: 1, Kind: ledger.MismatchDigest})
	c.Validated(3, context.Canceled)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.validations.WithLabelValues("invalid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.validations.WithLabelValues("error")))
}

func TestCollectorCountsCancelledValidation(t *testing.T) {
	c, err := NewCollector(prometheus.NewRegistry())
	require.NoError(t, err)

	bc := ledger.New(ledger.WithObserver(c))
	for _, p := range []string{"Genesis Block", "Block A", "Block B", "Block C"} {
		_, err = bc.Append(p)
		require.NoError(t, err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, bc.VerifyConcurrent(ctx, 2), context.Canceled)

	assert.Equal(t, 1.0, testutil.ToFloat64(c.validations.WithLabelValues("error")))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.validations.WithLabelValues("valid")))
}

func TestNewCollectorDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewCollector(reg)
	require.NoError(t, err)
	_, err = NewCollector(reg)
	assert.Error(t, err)
}

func TestServerExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)
	c.BlockAppended(ledger.Block{Index: 0})

	srv, err := Listen("127.0.0.1:0", reg)
	require.NoError(t, err)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Close(ctx)
	})

	resp, err := http.Get("http://" + srv.Addr() + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "hashledger_blocks_appended_total 1")
	assert.Contains(t, string(body), "hashledger_chain_length 1")
}
