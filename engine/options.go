package engine

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/oceandepth/zhl16gf/ascent"
	"github.com/oceandepth/zhl16gf/kernel"
)

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithLogger sets the logger the engine reports notable-but-non-fatal
// events to (aborted gas switches). The default, also kept when log is
// nil, is a logrus logger writing to io.Discard, so callers that don't
// care about this pay nothing for it.
func WithLogger(log logrus.FieldLogger) Option {
	return func(e *Engine) {
		if log == nil {
			return
		}
		e.log = log
	}
}

// WithFirstStopFinder overrides the default StepwiseChase strategy, e.g.
// with ascent.BisectionChase.
func WithFirstStopFinder(f ascent.FirstStopFinder) Option {
	return func(e *Engine) { e.finder = f }
}

// WithExpProvider overrides the default math.Exp-backed exp(-k*t)
// provider, e.g. with a kernel.TableExp for a fixed set of hold times.
func WithExpProvider(exp kernel.ExpProvider) Option {
	return func(e *Engine) { e.exp = exp }
}

func silentLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
