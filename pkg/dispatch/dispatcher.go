package dispatch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Lesliedc339/linux-terminal/pkg/events"
	"github.com/Lesliedc339/linux-terminal/pkg/history"
	"github.com/Lesliedc339/linux-terminal/pkg/logging"
	"github.com/Lesliedc339/linux-terminal/pkg/registry"
	"github.com/Lesliedc339/linux-terminal/pkg/surface"
)

// ErrClosed is returned by Submit after Close.
var ErrClosed = errors.New("dispatcher closed")

// Options configures a Dispatcher. Registry, History and Surface are required.
type Options struct {
	Registry   *registry.Registry
	History    *history.History
	Surface    surface.Surface
	CurrentDir string
	Canned     Canned
	// Prompt re-issues the prompt after every submission.
	Prompt func()
	Bus    *events.Bus
	Logger logging.Logger
}

// Dispatcher turns submitted lines into handler runs. Submissions are queued
// and run one at a time, in order, on a single worker goroutine; Submit never
// blocks on a running handler.
type Dispatcher struct {
	registry   *registry.Registry
	history    *history.History
	surface    surface.Surface
	currentDir string
	canned     Canned
	prompt     func()
	bus        *events.Bus
	logger     logging.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	queue   []submission
	pending int
	idle    chan struct{}
	closed  bool
	wake    chan struct{}
	stopped chan struct{}
}

type submission struct {
	id      string
	line    string
	history []string
}

// New creates a dispatcher and starts its worker.
func New(opts Options) *Dispatcher {
	if opts.Logger == nil {
		opts.Logger = logging.NewDisabledLogger()
	}
	if opts.Prompt == nil {
		opts.Prompt = func() {}
	}

	idle := make(chan struct{})
	close(idle)
	ctx, cancel := context.WithCancel(context.Background())

	d := &Dispatcher{
		registry:   opts.Registry,
		history:    opts.History,
		surface:    opts.Surface,
		currentDir: opts.CurrentDir,
		canned:     opts.Canned,
		prompt:     opts.Prompt,
		bus:        opts.Bus,
		logger:     opts.Logger.With("component", "dispatch"),
		ctx:        ctx,
		cancel:     cancel,
		idle:       idle,
		wake:       make(chan struct{}, 1),
		stopped:    make(chan struct{}),
	}
	go d.run()
	return d
}

// Submit handles a finished input line. Blank lines only re-issue the
// prompt. Anything else is recorded in history immediately and queued for
// dispatch behind any command still running.
func (d *Dispatcher) Submit(rawLine string) error {
	line := strings.TrimSpace(rawLine)
	if line == "" {
		d.prompt()
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}

	d.history.Push(line)
	sub := submission{
		id:      uuid.NewString(),
		line:    line,
		history: d.history.Entries(),
	}
	if d.pending == 0 {
		d.idle = make(chan struct{})
	}
	d.pending++
	d.queue = append(d.queue, sub)
	d.signal()

	d.logger.Debug("submission queued", "dispatch_id", sub.id, "line", line, "queued", len(d.queue))
	return nil
}

// Wait blocks until every submission made so far has been fully written.
func (d *Dispatcher) Wait(ctx context.Context) error {
	d.mu.Lock()
	idle := d.idle
	d.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting submissions and waits for queued ones to finish.
// If ctx expires first, running handlers see their context cancelled and
// Close returns without waiting further.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.signal()
	d.mu.Unlock()

	select {
	case <-d.stopped:
		d.cancel()
		return nil
	case <-ctx.Done():
		d.cancel()
		return ctx.Err()
	}
}

// signal wakes the worker. Callers hold d.mu.
func (d *Dispatcher) signal() {
	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *Dispatcher) run() {
	defer close(d.stopped)
	for {
		sub, ok := d.next()
		if !ok {
			return
		}
		d.dispatch(sub)
		d.finish()
	}
}

func (d *Dispatcher) next() (submission, bool) {
	for {
		d.mu.Lock()
		if len(d.queue) > 0 {
			sub := d.queue[0]
			d.queue = d.queue[1:]
			d.mu.Unlock()
			return sub, true
		}
		closed := d.closed
		d.mu.Unlock()
		if closed {
			return submission{}, false
		}
		<-d.wake
	}
}

func (d *Dispatcher) finish() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending--
	if d.pending == 0 {
		close(d.idle)
	}
}

// dispatch runs one submission and always ends by re-issuing the prompt.
func (d *Dispatcher) dispatch(sub submission) {
	log := d.logger.With("dispatch_id", sub.id)
	defer d.prompt()

	if out, ok := d.canned.Lookup(sub.line); ok {
		log.Debug("canned input matched", "line", sub.line)
		for _, line := range out {
			d.surface.Writeln(line)
		}
		d.emit(events.TopicCommandExecuted, events.CommandExecuted{
			DispatchID: sub.id,
			Command:    sub.line,
			Output:     strings.Join(out, "\n"),
		})
		return
	}

	fields := strings.Fields(sub.line)
	name, args := fields[0], fields[1:]

	descriptor, ok := d.registry.Resolve(name)
	if !ok {
		log.Debug("command not found", "command", name)
		d.surface.Writeln(surface.Error("Command not found: " + name))
		d.emit(events.TopicCommandNotFound, events.CommandNotFound{DispatchID: sub.id, Name: name})
		return
	}

	ec := &registry.ExecContext{
		CurrentDir: d.currentDir,
		History:    sub.history,
		Output:     d.surface.Writeln,
	}

	result, err := d.invoke(descriptor, args, ec)
	if err != nil {
		log.Warn("command failed", "command", name, "error", err)
		d.surface.Writeln(surface.Error("Error: " + err.Error()))
		d.emit(events.TopicCommandFailed, events.CommandFailed{DispatchID: sub.id, Command: sub.line, Err: err})
		return
	}

	lines := result.Lines()
	for _, line := range lines {
		d.surface.Writeln(line)
	}
	log.Debug("command executed", "command", name, "lines", len(lines))
	d.emit(events.TopicCommandExecuted, events.CommandExecuted{
		DispatchID: sub.id,
		Command:    sub.line,
		Output:     strings.Join(lines, "\n"),
	})
}

// invoke runs the handler, turning a rejected Validate or a panic into an error.
func (d *Dispatcher) invoke(descriptor registry.Descriptor, args []string, ec *registry.ExecContext) (result registry.Result, err error) {
	if descriptor.Validate != nil && !descriptor.Validate(args) {
		return registry.Result{}, fmt.Errorf("%w for %s", registry.ErrInvalidArguments, descriptor.Name)
	}
	if descriptor.Handler == nil {
		return registry.Empty(), nil
	}

	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
			} else {
				err = fmt.Errorf("%v", r)
			}
			d.logger.Error("command panicked", "command", descriptor.Name, "panic", err)
		}
	}()
	return descriptor.Handler(d.ctx, args, ec)
}

func (d *Dispatcher) emit(topic string, event interface{}) {
	if d.bus != nil {
		d.bus.Emit(topic, event)
	}
}
