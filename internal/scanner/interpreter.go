// Package scanner interprets a raw keystroke stream as wedge-scanner input.
//
// A hardware wedge scanner types its code as a fast burst of characters
// terminated by Enter. With no dedicated input channel, the only way to tell
// a scan apart from incidental typing is timing: humans pause between keys,
// scanners do not. The interpreter keeps a single growing buffer and resets
// it whenever the gap between keystrokes exceeds a fixed threshold.
package scanner

import (
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Sink receives each completed scan code exactly once.
type Sink func(code string)

type Interpreter struct {
	gap    time.Duration
	minLen int
	sink   Sink
	logger *zap.Logger

	// now is swappable for tests.
	now func() time.Time

	mu      sync.Mutex
	buffer  strings.Builder
	lastKey time.Time
}

func New(gap time.Duration, minLen int, sink Sink, logger *zap.Logger) *Interpreter {
	return &Interpreter{
		gap:    gap,
		minLen: minLen,
		sink:   sink,
		logger: logger,
		now:    time.Now,
	}
}

// Key consumes one raw keyboard event. Printable single characters feed the
// buffer; Enter flushes it; everything else (modifiers, arrows) is ignored.
// Keys typed into a focused text input must not be forwarded here; that
// passthrough is the presentation layer's responsibility.
func (i *Interpreter) Key(key string) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if key == "Enter" {
		i.flushLocked()
		return
	}

	r := []rune(key)
	if len(r) != 1 {
		return
	}

	now := i.now()
	if i.buffer.Len() > 0 && now.Sub(i.lastKey) > i.gap {
		// Pause too long for a scanner burst; whatever came before was noise.
		i.logger.Debug("scan buffer reset after pause",
			zap.Duration("gap", now.Sub(i.lastKey)),
			zap.Int("discarded", i.buffer.Len()),
		)
		i.buffer.Reset()
	}
	i.buffer.WriteRune(r[0])
	i.lastKey = now
}

func (i *Interpreter) flushLocked() {
	code := i.buffer.String()
	i.buffer.Reset()

	// Short buffers are stray Enter noise, not scans. Length in characters,
	// not bytes, so multibyte input is measured the same as ASCII.
	length := utf8.RuneCountInString(code)
	if length <= i.minLen {
		return
	}

	i.logger.Debug("scan code dispatched", zap.Int("length", length))
	i.sink(code)
}
