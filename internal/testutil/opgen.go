package testutil

import (
	"fmt"
	"time"
)

// OpKind identifies a lifecycle operation.
type OpKind int

// Operation kinds.
const (
	OpStart OpKind = iota
	OpStop
	OpPause
	OpResume
	OpResumeNamed
	OpStatus
	OpSummary
)

// Op is one generated lifecycle operation, applied after the clock has
// moved forward by Advance.
type Op struct {
	Kind        OpKind
	Description string
	Window      time.Duration
	Advance     time.Duration
}

func (o Op) String() string {
	switch o.Kind {
	case OpStart:
		return fmt.Sprintf("+%s start %q", o.Advance, o.Description)
	case OpStop:
		return fmt.Sprintf("+%s stop", o.Advance)
	case OpPause:
		return fmt.Sprintf("+%s pause", o.Advance)
	case OpResume:
		return fmt.Sprintf("+%s resume", o.Advance)
	case OpResumeNamed:
		return fmt.Sprintf("+%s resume %q", o.Advance, o.Description)
	case OpStatus:
		return fmt.Sprintf("+%s status", o.Advance)
	case OpSummary:
		return fmt.Sprintf("+%s summary window=%s", o.Advance, o.Window)
	default:
		return fmt.Sprintf("+%s op(%d)", o.Advance, int(o.Kind))
	}
}

// OpGenConfig configures the operation generator. Rates are percentages of
// generated ops; whatever remains after the listed rates becomes status.
type OpGenConfig struct {
	StartRate   int
	StopRate    int
	PauseRate   int
	ResumeRate  int
	SummaryRate int

	// NamedResumeRate is the percentage of resumes that name a task.
	NamedResumeRate int

	// MaxAdvanceSeconds bounds the clock step before each op.
	MaxAdvanceSeconds int
}

// DefaultOpGenConfig returns a balanced configuration.
func DefaultOpGenConfig() OpGenConfig {
	return OpGenConfig{
		StartRate:         35,
		StopRate:          15,
		PauseRate:         15,
		ResumeRate:        15,
		SummaryRate:       10,
		NamedResumeRate:   40,
		MaxAdvanceSeconds: 4 * 3600,
	}
}

// descriptions is a small pool so generated ops revisit the same tasks.
var descriptions = []string{ //nolint:gochecknoglobals // fixed generator pool
	"write report #work",
	"write report #work on Q3",
	"review #work",
	"read book",
	"#home dishes",
	"gym #health #later",
	"trailing #",
	"plan # week",
}

// windows are the summary windows the generator picks from.
var windows = []time.Duration{ //nolint:gochecknoglobals // fixed generator pool
	time.Hour,
	24 * time.Hour,
	7 * 24 * time.Hour,
	0,
}

// OpGenerator generates deterministic operations from a byte stream.
type OpGenerator struct {
	stream *ByteStream
	config OpGenConfig
}

// NewOpGenerator creates a new operation generator.
func NewOpGenerator(fuzzBytes []byte, cfg OpGenConfig) *OpGenerator {
	return &OpGenerator{
		stream: NewByteStream(fuzzBytes),
		config: cfg,
	}
}

// HasMore reports whether more operations can be generated.
func (g *OpGenerator) HasMore() bool {
	return g.stream.HasMore()
}

// NextOp generates the next operation.
func (g *OpGenerator) NextOp() Op {
	choice := int(g.stream.NextByte()) % 100
	op := Op{Advance: g.stream.NextSeconds(g.config.MaxAdvanceSeconds)}

	cumulative := g.config.StartRate
	if choice < cumulative {
		op.Kind = OpStart
		op.Description = NextPick(g.stream, descriptions)

		return op
	}

	cumulative += g.config.StopRate
	if choice < cumulative {
		op.Kind = OpStop

		return op
	}

	cumulative += g.config.PauseRate
	if choice < cumulative {
		op.Kind = OpPause

		return op
	}

	cumulative += g.config.ResumeRate
	if choice < cumulative {
		op.Kind = OpResume

		if g.stream.NextInt(100) < g.config.NamedResumeRate {
			op.Kind = OpResumeNamed
			op.Description = NextPick(g.stream, descriptions)
		}

		return op
	}

	cumulative += g.config.SummaryRate
	if choice < cumulative {
		op.Kind = OpSummary
		op.Window = NextPick(g.stream, windows)

		return op
	}

	op.Kind = OpStatus

	return op
}
