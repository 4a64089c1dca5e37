// Package workout reduces a stream of decoded FIT records into a workout
// summary.
//
// Parsing runs in two steps. Accumulate files each record into a State,
// then Synthesize derives the ordered summary from that State. Parse runs
// both over a whole record slice with a fresh State.
package workout

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/lucasjlepore/fit-summary/activity"
	"github.com/lucasjlepore/fit-summary/mesg"
	"github.com/lucasjlepore/fit-summary/summary"
)

// ErrNoSession is returned by Synthesize when no session record was
// accumulated.
var ErrNoSession = errors.New("workout has no session record")

// Activity is what a parse produces for the caller to persist or render.
type Activity struct {
	Name      string        `json:"name"`
	Kind      activity.Kind `json:"kind"`
	StartTime time.Time     `json:"start_time"`
	// EndTime is set only when the session reports its elapsed time.
	EndTime *time.Time       `json:"end_time,omitempty"`
	Summary *summary.Summary `json:"summary"`
}

// Parser holds the immutable configuration for parsing workouts. It is safe
// for concurrent use; all per-file state lives in State.
type Parser struct {
	logger            *zap.Logger
	formatter         Formatter
	uniformSingletons bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithFormatter replaces DefaultFormatter.
func WithFormatter(f Formatter) Option {
	return func(p *Parser) {
		if f != nil {
			p.formatter = f
		}
	}
}

// WithUniformSingletons makes PhysiologicalMetrics first-wins like Session,
// Sport and UserProfile. By default the last PhysiologicalMetrics record
// wins.
func WithUniformSingletons(on bool) Option {
	return func(p *Parser) {
		p.uniformSingletons = on
	}
}

// NewParser returns a Parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		logger:    zap.NewNop(),
		formatter: DefaultFormatter{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Stats describes one Parse call.
type Stats struct {
	Records   int
	Unhandled int
	Took      time.Duration
}

// Parse accumulates records into a new State and synthesizes act from it.
// On error act is left as it was.
func (p *Parser) Parse(records []mesg.Record, act *Activity) (Stats, error) {
	start := time.Now()
	st := NewState()
	stats := Stats{Records: len(records)}
	for _, rec := range records {
		if !p.Accumulate(st, rec) {
			stats.Unhandled++
		}
	}
	err := p.Synthesize(st, act)
	stats.Took = time.Since(start)
	p.logger.Debug("parsed workout",
		zap.Int("records", stats.Records),
		zap.Int("unhandled", stats.Unhandled),
		zap.Duration("took", stats.Took))
	return stats, err
}
