package ledger

import (
	"io"
	"log/slog"
	"time"

	"github.com/luca-patrignani/hashledger/digest"
)

// Observer is notified of ledger events. Implementations must not call back
// into the ledger.
type Observer interface {
	BlockAppended(b Block)
	TransactionAdded(b Block, tx Transaction)
	Validated(length int, err error)
}

type nopObserver struct{}

func (nopObserver) BlockAppended(Block)                 {}
func (nopObserver) TransactionAdded(Block, Transaction) {}
func (nopObserver) Validated(int, error)                {}

type settings struct {
	hasher   digest.Hasher
	policy   FieldPolicy
	maxTx    int
	clock    func() time.Time
	logger   *slog.Logger
	observer Observer
}

func defaultSettings() settings {
	return settings{
		hasher:   digest.Default,
		policy:   Reject,
		maxTx:    DefaultMaxTransactions,
		clock:    time.Now,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		observer: nopObserver{},
	}
}

// Option configures a Blockchain or a Builder.
type Option func(settings) settings

func applyOptions(opts []Option) settings {
	s := defaultSettings()
	for _, opt := range opts {
		s = opt(s)
	}
	return s
}

// WithHasher sets the digest function.
func WithHasher(h digest.Hasher) Option {
	return func(s settings) settings {
		s.hasher = h
		return s
	}
}

// WithFieldPolicy sets how over-length text fields are handled.
func WithFieldPolicy(p FieldPolicy) Option {
	return func(s settings) settings {
		s.policy = p
		return s
	}
}

// WithMaxTransactions sets the transaction capacity of each block. Values
// below 1 are ignored.
func WithMaxTransactions(n int) Option {
	return func(s settings) settings {
		if n >= 1 {
			s.maxTx = n
		}
		return s
	}
}

// WithClock sets the time source used for block and transaction timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s settings) settings {
		if clock != nil {
			s.clock = clock
		}
		return s
	}
}

// WithLogger sets the logger for ledger events; nil is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(s settings) settings {
		if logger != nil {
			s.logger = logger
		}
		return s
	}
}

// WithObserver registers o to be notified of ledger events; nil is ignored.
func WithObserver(o Observer) Option {
	return func(s settings) settings {
		if o != nil {
			s.observer = o
		}
		return s
	}
}
