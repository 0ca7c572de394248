package hashing

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnknownStrategy is returned for a strategy name that is not supported.
var ErrUnknownStrategy = errors.New("unknown hash strategy")

// Strategy selects how much of a volume is hashed in one run.
type Strategy string

const (
	// StrategyAll hashes every candidate.
	StrategyAll Strategy = "all"
	// StrategyNone hashes nothing.
	StrategyNone Strategy = "none"
	// StrategyPercentage stops once the hashed bytes reach a share of the total bytes.
	StrategyPercentage Strategy = "percentage"
	// StrategyData stops once a number of bytes was hashed.
	StrategyData Strategy = "data"
	// StrategyTime stops once a duration elapsed.
	StrategyTime Strategy = "time"
	// StrategyFiles stops once a number of files was hashed.
	StrategyFiles Strategy = "files"
)

// Config holds the hashing settings.
type Config struct {
	// Algorithm is the digest name (sha256, sha1, md5, sha512, blake2b-256, sha3-256).
	Algorithm string `mapstructure:"algorithm" default:"sha256"`
	// Strategy is one of all, none, percentage, data, time, files.
	Strategy string `mapstructure:"strategy" default:"percentage"`
	// Percentage is the share of total bytes to hash, in [0, 100].
	Percentage float64 `mapstructure:"percentage" default:"10"`
	// DataBytes is the byte budget for the data strategy.
	DataBytes int64 `mapstructure:"data_bytes" default:"0"`
	// Time is the duration budget for the time strategy.
	Time time.Duration `mapstructure:"time" default:"0s"`
	// Files is the file count budget for the files strategy.
	Files int `mapstructure:"files" default:"0"`
}

// Budget is a validated strategy with its limit.
type Budget struct {
	Strategy   Strategy
	Percentage float64
	Bytes      int64
	Duration   time.Duration
	Files      int
}

// All returns a budget hashing every candidate.
func All() Budget { return Budget{Strategy: StrategyAll} }

// None returns a budget hashing nothing.
func None() Budget { return Budget{Strategy: StrategyNone} }

// Percentage returns a budget hashing p percent of the candidate bytes.
func Percentage(p float64) Budget { return Budget{Strategy: StrategyPercentage, Percentage: p} }

// ParseBudget validates the strategy section of cfg.
func ParseBudget(cfg Config) (Budget, error) {
	b := Budget{Strategy: Strategy(strings.ToLower(strings.TrimSpace(cfg.Strategy)))}

	switch b.Strategy {
	case StrategyAll, StrategyNone:
	case StrategyPercentage:
		if cfg.Percentage < 0 || cfg.Percentage > 100 {
			return Budget{}, fmt.Errorf("hash percentage %v out of range [0, 100]", cfg.Percentage)
		}
		b.Percentage = cfg.Percentage
	case StrategyData:
		if cfg.DataBytes < 0 {
			return Budget{}, fmt.Errorf("hash data budget %d must not be negative", cfg.DataBytes)
		}
		b.Bytes = cfg.DataBytes
	case StrategyTime:
		if cfg.Time < 0 {
			return Budget{}, fmt.Errorf("hash time budget %s must not be negative", cfg.Time)
		}
		b.Duration = cfg.Time
	case StrategyFiles:
		if cfg.Files < 0 {
			return Budget{}, fmt.Errorf("hash files budget %d must not be negative", cfg.Files)
		}
		b.Files = cfg.Files
	default:
		return Budget{}, fmt.Errorf("%w: %q", ErrUnknownStrategy, cfg.Strategy)
	}
	return b, nil
}

// progress is what a budget is measured against.
type progress struct {
	totalBytes  int64
	hashedBytes int64
	hashedFiles int
	elapsed     time.Duration
}

// exhausted is checked before each file; the file that crosses a limit is hashed in full.
func (b Budget) exhausted(p progress) bool {
	switch b.Strategy {
	case StrategyAll:
		return false
	case StrategyPercentage:
		if p.totalBytes == 0 {
			// Only empty files are left; any positive share covers them.
			return b.Percentage <= 0
		}
		return 100*float64(p.hashedBytes)/float64(p.totalBytes) >= b.Percentage
	case StrategyData:
		return p.hashedBytes >= b.Bytes
	case StrategyTime:
		return p.elapsed >= b.Duration
	case StrategyFiles:
		return p.hashedFiles >= b.Files
	default:
		return true
	}
}

// String renders the budget for logs.
func (b Budget) String() string {
	switch b.Strategy {
	case StrategyPercentage:
		return fmt.Sprintf("percentage(%g)", b.Percentage)
	case StrategyData:
		return fmt.Sprintf("data(%d)", b.Bytes)
	case StrategyTime:
		return fmt.Sprintf("time(%s)", b.Duration)
	case StrategyFiles:
		return fmt.Sprintf("files(%d)", b.Files)
	default:
		return string(b.Strategy)
	}
}
