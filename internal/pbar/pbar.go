// Package pbar renders progress bars and progress text on stderr.
//
// Text prints a throttled single-line status message, redrawn in place.
// Bar prints a pv(1)-inspired progress bar for file or stream
// processing:
//
//	2.02GiB 0:00:04 [ 424MiB/s] [=============>      ]  70% ETA 0:00:02
//
// Both types are single-writer: they are meant to be driven from one
// goroutine, and once Finish has been called every further operation
// returns an error.
package pbar

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/zmwangx/docpub/internal/humansize"
	"github.com/zmwangx/docpub/internal/humantime"
)

// ErrFinished is returned by operations on a finished instance.
var ErrFinished = errors.New("operation on finished instance")

// Auto reports whether printing a progress bar is desirable: stderr
// must be connected to a terminal.
func Auto() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// Option configures NewText and NewBar.
type Option func(*settings)

type settings struct {
	w             io.Writer
	interval      time.Duration
	hideElapsed   bool
	initialText   string
	preprocessed  int64
	instantSpeed  bool
	terminalWidth int
	now           func() time.Time
}

// WithWriter redirects output. Default is os.Stderr.
func WithWriter(w io.Writer) Option {
	return func(s *settings) { s.w = w }
}

// WithInterval sets the refresh interval. Defaults: 100ms for Text,
// 1s for Bar.
func WithInterval(d time.Duration) Option {
	return func(s *settings) { s.interval = d }
}

// WithoutElapsedTime drops the "H:MM:SS: " prefix from Text output.
func WithoutElapsedTime() Option {
	return func(s *settings) { s.hideElapsed = true }
}

// WithInitialText sets the text printed by NewText. Default is empty.
func WithInitialText(text string) Option {
	return func(s *settings) { s.initialText = text }
}

// WithPreprocessed marks part of a Bar's total as already processed.
// The preprocessed portion counts toward the percentage but not toward
// the speed.
func WithPreprocessed(n int64) Option {
	return func(s *settings) { s.preprocessed = n }
}

// WithInstantSpeed computes speed from the last refresh interval only,
// instead of cumulatively. Cumulative is the default as it is more
// stable.
func WithInstantSpeed() Option {
	return func(s *settings) { s.instantSpeed = true }
}

// WithTerminalWidth overrides terminal width detection for Bar sizing.
func WithTerminalWidth(cols int) Option {
	return func(s *settings) { s.terminalWidth = cols }
}

// withClock overrides the time source in tests.
func withClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// core holds the state shared by Text and Bar.
type core struct {
	w        io.Writer
	start    time.Time
	last     time.Time
	interval time.Duration
	finished bool
	elapsed  time.Duration
	now      func() time.Time
}

func newCore(s *settings) core {
	c := core{w: s.w, interval: s.interval, now: s.now}
	if c.w == nil {
		c.w = os.Stderr
	}
	if c.now == nil {
		c.now = time.Now
	}
	c.start = c.now()
	c.last = c.start
	return c
}

// due reports whether the refresh interval has passed since the last
// redraw.
func (c *core) due() bool {
	return c.now().Sub(c.last) >= c.interval
}

// draw redraws the status line in place.
func (c *core) draw(text string) {
	fmt.Fprintf(c.w, "\r\x1b[K%s", text)
	c.last = c.now()
}

// Elapsed returns the total processing time after Finish, or the time
// elapsed so far before it.
func (c *core) Elapsed() time.Duration {
	if c.finished {
		return c.elapsed
	}
	return c.now().Sub(c.start)
}

// seal marks the instance finished and records the elapsed time,
// keeping it above zero for use as a divisor.
func (c *core) seal() {
	c.elapsed = max(c.now().Sub(c.start), time.Millisecond)
	c.finished = true
}

// Text prints textual progress information on a single redrawn line.
type Text struct {
	core
	showElapsed bool
}

// NewText creates a progress text printer and draws the initial text.
func NewText(opts ...Option) *Text {
	s := settings{interval: 100 * time.Millisecond}
	for _, opt := range opts {
		opt(&s)
	}
	t := &Text{core: newCore(&s), showElapsed: !s.hideElapsed}
	t.draw(t.compose(s.initialText))
	return t
}

// Update redraws the progress text if the refresh interval has passed.
func (t *Text) Update(content string) error {
	if t.finished {
		return ErrFinished
	}
	if !t.due() {
		return nil
	}
	t.draw(t.compose(content))
	return nil
}

// ForceUpdate redraws the progress text regardless of the interval.
func (t *Text) ForceUpdate(content string) error {
	if t.finished {
		return ErrFinished
	}
	t.draw(t.compose(content))
	return nil
}

// Finish draws the final text, terminates the line, and seals the
// instance.
func (t *Text) Finish(content string) error {
	if t.finished {
		return ErrFinished
	}
	t.seal()
	t.draw(t.compose(content))
	fmt.Fprintln(t.w)
	return nil
}

func (t *Text) compose(content string) string {
	if !t.showElapsed {
		return content
	}
	return timeString(t.now().Sub(t.start)) + ": " + content
}

// Bar is a progress bar for processing a stream of known total size.
type Bar struct {
	core
	total         int64
	processed     int64
	preprocessed  int64
	lastProcessed int64
	instant       bool
	barLen        int
}

// NewBar creates a progress bar for a stream of totalSize bytes and
// draws its initial state.
func NewBar(totalSize int64, opts ...Option) (*Bar, error) {
	if totalSize <= 0 {
		return nil, fmt.Errorf("total size must be positive; got %d", totalSize)
	}
	s := settings{interval: time.Second}
	for _, opt := range opts {
		opt(&s)
	}
	b := &Bar{
		core:         newCore(&s),
		total:        totalSize,
		processed:    s.preprocessed,
		preprocessed: s.preprocessed,
		instant:      s.instantSpeed,
		barLen:       barLength(s.terminalWidth),
	}
	b.draw(b.render())
	return b, nil
}

// Add registers a newly processed chunk and redraws the bar if the
// refresh interval has passed. The processed size saturates at the
// total.
func (b *Bar) Add(chunkSize int64) error {
	if b.finished {
		return ErrFinished
	}
	b.processed = min(b.processed+chunkSize, b.total)
	if !b.due() {
		return nil
	}
	b.draw(b.render())
	return nil
}

// SetProcessed overwrites the processed size and redraws immediately.
func (b *Bar) SetProcessed(processedSize int64) error {
	if b.finished {
		return ErrFinished
	}
	b.processed = min(processedSize, b.total)
	b.draw(b.render())
	return nil
}

// Finish draws the completed bar, terminates the line, and seals the
// instance.
func (b *Bar) Finish() error {
	if b.finished {
		return ErrFinished
	}
	b.seal()
	b.draw(b.renderFinished())
	fmt.Fprintln(b.w)
	return nil
}

// barFormat lays out: processed size, elapsed time, speed, the bar
// itself, percent done, and the ETA (11 columns, space-filled when
// done).
const barFormat = "%7s %s [%7s/s] [%s] %3s%% %s"

func (b *Bar) render() string {
	now := b.now()
	var speed float64
	if b.instant {
		dt := max(now.Sub(b.last), time.Millisecond)
		speed = float64(b.processed-b.lastProcessed) / dt.Seconds()
		if speed < 0 {
			speed = 0
		}
	} else {
		elapsed := max(now.Sub(b.start), time.Millisecond)
		speed = float64(b.processed-b.preprocessed) / elapsed.Seconds()
	}
	b.lastProcessed = b.processed

	pct := float64(b.processed) / float64(b.total)
	filled := int(math.Round(float64(b.barLen) * pct))
	var bar string
	if filled == 0 {
		bar = strings.Repeat(" ", b.barLen)
	} else {
		bar = strings.Repeat("=", filled-1) + ">" + strings.Repeat(" ", b.barLen-filled)
	}

	eta := "ETA unknown"
	if speed > 0 {
		remaining := time.Duration(float64(b.total-b.processed) / speed * float64(time.Second))
		eta = "ETA " + timeString(remaining)
	}

	return fmt.Sprintf(barFormat,
		sizeString(b.processed),
		timeString(now.Sub(b.start)),
		sizeString(int64(speed)),
		bar,
		strconv.Itoa(int(pct*100)),
		eta)
}

func (b *Bar) renderFinished() string {
	speed := float64(b.total-b.preprocessed) / b.elapsed.Seconds()
	return fmt.Sprintf(barFormat,
		sizeString(b.total),
		timeString(b.elapsed),
		sizeString(int64(speed)),
		strings.Repeat("=", b.barLen-1)+">",
		"100",
		strings.Repeat(" ", 11))
}

// barLength derives the bar width from the terminal width, leaving 48
// columns for the surrounding fields. Narrow and undetectable
// terminals get a minimal 10-column bar on an assumed 80-column line.
func barLength(cols int) int {
	if cols == 0 {
		var err error
		cols, _, err = term.GetSize(int(os.Stderr.Fd()))
		if err != nil {
			cols = 80
		}
	}
	if cols >= 58 {
		return cols - 48
	}
	return 10
}

func sizeString(n int64) string {
	if n < 0 {
		n = 0
	}
	s, _ := humansize.Format(uint64(n))
	return s
}

func timeString(d time.Duration) string {
	s, _ := humantime.Format(d.Seconds(), humantime.WithOneHourDigit())
	return s
}
