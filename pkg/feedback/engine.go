package feedback

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/formfeedback/pkg/async"
	"github.com/dmitrymomot/formfeedback/pkg/broadcast"
	"github.com/dmitrymomot/formfeedback/pkg/logger"
	"github.com/dmitrymomot/formfeedback/pkg/validity"
)

// Engine tracks the feedback of every registered field of one form.
// All methods are safe for concurrent use.
type Engine struct {
	mu     sync.Mutex
	fields map[string]*entry
	order  []string
	closed bool

	strict       bool
	defaultStop  StopPolicy
	notifyBuffer int
	onChange     []func(Event)
	logger       *slog.Logger
	events       *broadcast.MemoryBroadcaster[Event]
}

// New creates an empty Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		fields:       make(map[string]*entry),
		defaultStop:  StopFirstError,
		notifyBuffer: 16,
		logger:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.events = broadcast.NewMemoryBroadcaster[Event](e.notifyBuffer)
	for _, fn := range e.onChange {
		e.events.Listen(func(msg broadcast.Message[Event]) { fn(msg.Data) })
	}
	return e
}

// Register adds field with its rule groups. Groups without a Field name are
// assigned to field.
func (e *Engine) Register(field string, groups ...Group) error {
	groups, err := normalizeGroups(field, groups)
	if err != nil {
		return err
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrEngineClosed
	}
	if _, ok := e.fields[field]; ok {
		e.mu.Unlock()
		return &DuplicateFieldError{Field: field}
	}
	e.fields[field] = newEntry(field, groups)
	e.order = append(e.order, field)
	valid := e.validLocked(nil)
	e.mu.Unlock()

	e.notify(context.Background(), Event{Kind: EventUpdated, Fields: []string{field}, Valid: valid})
	return nil
}

// Update replaces the rule groups of a registered field. Feedback of rules
// that kept their key and identity survives until the next pass, and their
// pending async results still merge when they resolve.
func (e *Engine) Update(field string, groups ...Group) error {
	groups, err := normalizeGroups(field, groups)
	if err != nil {
		return err
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrEngineClosed
	}
	en, ok := e.fields[field]
	if !ok {
		e.mu.Unlock()
		return &UnknownFieldError{Field: field}
	}
	if !en.replace(groups) {
		e.mu.Unlock()
		return nil
	}
	valid := e.validLocked(nil)
	e.mu.Unlock()

	e.logger.Debug("field rules changed", logger.Field(field))
	e.notify(context.Background(), Event{Kind: EventUpdated, Fields: []string{field}, Valid: valid})
	return nil
}

// Reconcile makes the registry match tree: new fields are registered,
// present ones updated and missing ones deregistered. Groups declaring the
// same field are concatenated in order. Nothing is applied on error.
func (e *Engine) Reconcile(tree []Group) error {
	byField := make(map[string][]Group)
	var names []string
	for _, g := range tree {
		if g.Field == "" {
			return ErrEmptyFieldName
		}
		if _, ok := byField[g.Field]; !ok {
			names = append(names, g.Field)
		}
		byField[g.Field] = append(byField[g.Field], g)
	}
	for _, name := range names {
		groups, err := normalizeGroups(name, byField[name])
		if err != nil {
			return err
		}
		byField[name] = groups
	}

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrEngineClosed
	}
	var removed []string
	for _, name := range e.order {
		if _, ok := byField[name]; !ok {
			removed = append(removed, name)
		}
	}
	e.removeLocked(removed)
	var updated []string
	for _, name := range names {
		if en, ok := e.fields[name]; ok {
			if en.replace(byField[name]) {
				updated = append(updated, name)
			}
			continue
		}
		e.fields[name] = newEntry(name, byField[name])
		updated = append(updated, name)
	}
	e.order = names
	valid := e.validLocked(nil)
	e.mu.Unlock()

	if len(removed) > 0 {
		e.notify(context.Background(), Event{Kind: EventDeregistered, Fields: removed, Valid: valid})
	}
	if len(updated) > 0 {
		e.logger.Debug("field rules changed", logger.Fields(updated))
		e.notify(context.Background(), Event{Kind: EventUpdated, Fields: updated, Valid: valid})
	}
	return nil
}

// Deregister removes fields and discards their in-flight async results.
// Unknown names are ignored.
func (e *Engine) Deregister(names ...string) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrEngineClosed
	}
	var removed []string
	for _, name := range names {
		if _, ok := e.fields[name]; ok && !slices.Contains(removed, name) {
			removed = append(removed, name)
		}
	}
	e.removeLocked(removed)
	valid := e.validLocked(nil)
	e.mu.Unlock()

	if len(removed) > 0 {
		e.notify(context.Background(), Event{Kind: EventDeregistered, Fields: removed, Valid: valid})
	}
	return nil
}

func (e *Engine) removeLocked(names []string) {
	if len(names) == 0 {
		return
	}
	for _, name := range names {
		if en, ok := e.fields[name]; ok {
			en.epoch++
			delete(e.fields, name)
		}
	}
	e.order = slices.DeleteFunc(e.order, func(n string) bool {
		_, ok := e.fields[n]
		return !ok
	})
}

type passTarget struct {
	en     *entry
	groups []Group
	epoch  uint64
	rev    uint64
}

type passOutcome struct {
	passTarget
	state validity.State
	found bool
	eval  evaluation
}

type startedJob struct {
	en    *entry
	epoch uint64
	job   asyncJob
}

// Validate runs a pass over names, or over every registered field when none
// are given, using snapshots from src. It returns once synchronous results
// are stored; async resolvers keep running and are tracked by the Pass.
//
// Unknown names fail with UnknownFieldError. In strict mode nothing is
// evaluated and the Pass is nil; otherwise the other names proceed and the
// errors are joined into the returned error, which also carries predicate
// failures and missing snapshots.
func (e *Engine) Validate(ctx context.Context, src validity.Source, names ...string) (*Pass, error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil, ErrEngineClosed
	}
	entries, unknown := e.targetsLocked(names)
	if unknown != nil && e.strict {
		e.mu.Unlock()
		return nil, unknown
	}
	targets := make([]passTarget, 0, len(entries))
	for _, en := range entries {
		en.epoch++
		targets = append(targets, passTarget{en: en, groups: en.groups, epoch: en.epoch, rev: en.rev})
	}
	stop := e.defaultStop
	e.mu.Unlock()

	pass := newPass(uuid.NewString())

	// Snapshots and predicates are caller code: run them without the lock.
	outcomes := make([]passOutcome, len(targets))
	for i, t := range targets {
		o := passOutcome{passTarget: t}
		if src != nil {
			o.state, o.found = src.Snapshot(t.en.name)
		}
		if o.found {
			if o.state.Name == "" {
				o.state.Name = t.en.name
			}
			o.eval = evaluate(t.en.name, o.state, t.groups, stop)
		}
		outcomes[i] = o
	}

	errs := []error{unknown}
	var (
		jobs    []startedJob
		touched []string
	)

	e.mu.Lock()
	for _, o := range outcomes {
		en := o.en
		if e.fields[en.name] != en || en.epoch != o.epoch || en.rev != o.rev {
			e.logger.DebugContext(ctx, "superseded pass result discarded",
				logger.PassID(pass.ID), logger.Field(en.name), logger.Epoch(o.epoch))
			continue
		}
		touched = append(touched, en.name)
		if !o.found {
			en.snapshot = validity.State{Name: en.name}
			en.results = nil
			en.err = fmt.Errorf("%w: %q", ErrMissingSnapshot, en.name)
			errs = append(errs, en.err)
		} else {
			en.snapshot = o.state
			en.results = o.eval.results
			en.validated = true
			en.err = o.eval.err
			if o.eval.err != nil {
				errs = append(errs, o.eval.err)
				e.logger.WarnContext(ctx, "rule predicate failed",
					logger.PassID(pass.ID), logger.Field(en.name), logger.Error(o.eval.err))
			}
			for _, j := range o.eval.jobs {
				jobs = append(jobs, startedJob{en: en, epoch: o.epoch, job: j})
			}
		}
		pass.Fields = append(pass.Fields, en.state())
	}
	valid := e.validLocked(nil)
	e.mu.Unlock()

	pass.Err = errors.Join(errs...)

	e.logger.DebugContext(ctx, "validation pass",
		logger.PassID(pass.ID), logger.Fields(touched), slog.Int("async", len(jobs)), slog.Bool("valid", valid))
	if len(touched) > 0 {
		e.notify(ctx, Event{Kind: EventValidated, PassID: pass.ID, Fields: touched, Valid: valid})
	}

	for _, sj := range jobs {
		pass.wg.Add(1)
		fut := async.Async[string, bool](ctx, sj.job.value, sj.job.fn)
		go e.settle(ctx, pass, sj, fut)
	}
	pass.seal()

	return pass, pass.Err
}

// settle merges one async result unless its field moved on to a newer epoch
// or the rule was removed. Rule changes may move the result, so it is looked
// up by key and identity.
func (e *Engine) settle(ctx context.Context, p *Pass, sj startedJob, fut *async.Future[bool]) {
	defer p.wg.Done()

	show, err := fut.Await()
	en, job := sj.en, sj.job
	if err != nil {
		err = &RulePredicateError{Field: en.name, Rule: job.key, Err: err}
	}

	e.mu.Lock()
	if e.fields[en.name] != en || en.epoch != sj.epoch {
		e.mu.Unlock()
		e.logger.DebugContext(ctx, "stale async result discarded",
			logger.PassID(p.ID), logger.Field(en.name), logger.Rule(job.key), logger.Epoch(sj.epoch))
		return
	}
	i, found := en.pending(job.key, job.identity)
	if !found {
		e.mu.Unlock()
		e.logger.DebugContext(ctx, "async result of removed rule discarded",
			logger.PassID(p.ID), logger.Field(en.name), logger.Rule(job.key))
		return
	}
	if i < 0 {
		inv := fmt.Errorf("%w: no pending result %q for field %q", ErrInvariant, job.key, en.name)
		en.addErr(inv)
		e.mu.Unlock()
		e.logger.ErrorContext(ctx, "async merge failed",
			logger.PassID(p.ID), logger.Field(en.name), logger.Error(inv))
		p.fail(inv)
		return
	}
	res := &en.results[i]
	res.Status = StatusResolved
	res.Show = err == nil && show
	res.Err = err
	if err != nil {
		en.addErr(err)
	}
	valid := e.validLocked(nil)
	e.mu.Unlock()

	if err != nil {
		msg := "async rule failed"
		if async.IsPanic(err) {
			msg = "async rule panicked"
		}
		e.logger.WarnContext(ctx, msg,
			logger.PassID(p.ID), logger.Field(en.name), logger.Rule(job.key), logger.Error(err))
		p.fail(err)
	}
	e.notify(ctx, Event{Kind: EventAsyncResolved, PassID: p.ID, Fields: []string{en.name}, Valid: valid})
}

// ResetFields clears feedback, snapshot and validated flag of names, or of
// every field when none are given, and discards their in-flight async
// results. Unknown names follow the same policy as Validate.
func (e *Engine) ResetFields(names ...string) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return ErrEngineClosed
	}
	entries, unknown := e.targetsLocked(names)
	if unknown != nil && e.strict {
		e.mu.Unlock()
		return unknown
	}
	reset := make([]string, 0, len(entries))
	for _, en := range entries {
		en.reset()
		reset = append(reset, en.name)
	}
	valid := e.validLocked(nil)
	e.mu.Unlock()

	if len(reset) > 0 {
		e.notify(context.Background(), Event{Kind: EventReset, Fields: reset, Valid: valid})
	}
	return unknown
}

// IsValid reports whether no targeted field blocks a submit. No names means
// every field; unknown names are ignored.
func (e *Engine) IsValid(names ...string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.validLocked(names)
}

// HasFeedbacks reports whether any targeted field shows any result.
func (e *Engine) HasFeedbacks(names ...string) bool {
	return e.any(names, FieldState.HasFeedbacks)
}

func (e *Engine) HasErrors(names ...string) bool {
	return e.any(names, FieldState.HasErrors)
}

func (e *Engine) HasWarnings(names ...string) bool {
	return e.any(names, FieldState.HasWarnings)
}

func (e *Engine) HasInfos(names ...string) bool {
	return e.any(names, FieldState.HasInfos)
}

// IsPending reports whether any targeted field waits for an async result.
func (e *Engine) IsPending(names ...string) bool {
	return e.any(names, func(f FieldState) bool { return f.Pending > 0 })
}

// Field returns a copy of one field's state.
func (e *Engine) Field(name string) (FieldState, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	en, ok := e.fields[name]
	if !ok {
		return FieldState{}, false
	}
	return en.state(), true
}

// Fields returns copies of every field's state in registration order.
func (e *Engine) Fields() []FieldState {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]FieldState, 0, len(e.order))
	for _, name := range e.order {
		out = append(out, e.fields[name].state())
	}
	return out
}

// Subscribe returns a subscriber receiving every Event until ctx ends or it
// is closed. Slow subscribers miss events.
func (e *Engine) Subscribe(ctx context.Context) broadcast.Subscriber[Event] {
	return e.events.Subscribe(ctx)
}

// Close stops notifications. Mutating calls afterwards return
// ErrEngineClosed; queries keep working.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mu.Unlock()
	return e.events.Close()
}

func (e *Engine) any(names []string, fn func(FieldState) bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, en := range e.knownLocked(names) {
		if fn(en.state()) {
			return true
		}
	}
	return false
}

func (e *Engine) validLocked(names []string) bool {
	for _, en := range e.knownLocked(names) {
		if !en.state().IsValid() {
			return false
		}
	}
	return true
}

// targetsLocked resolves names, deduplicated, to entries. Unknown names are
// returned as joined UnknownFieldErrors.
func (e *Engine) targetsLocked(names []string) ([]*entry, error) {
	if len(names) == 0 {
		return e.knownLocked(nil), nil
	}
	var (
		out  []*entry
		errs []error
		seen = make(map[string]struct{}, len(names))
	)
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		en, ok := e.fields[name]
		if !ok {
			errs = append(errs, &UnknownFieldError{Field: name})
			continue
		}
		out = append(out, en)
	}
	return out, errors.Join(errs...)
}

func (e *Engine) knownLocked(names []string) []*entry {
	if len(names) == 0 {
		out := make([]*entry, 0, len(e.order))
		for _, name := range e.order {
			out = append(out, e.fields[name])
		}
		return out
	}
	var out []*entry
	for _, name := range names {
		if en, ok := e.fields[name]; ok {
			out = append(out, en)
		}
	}
	return out
}

func (e *Engine) notify(ctx context.Context, ev Event) {
	if err := e.events.Broadcast(ctx, broadcast.Message[Event]{Data: ev}); err != nil && !errors.Is(err, broadcast.ErrClosed) {
		e.logger.WarnContext(ctx, "notification failed", logger.Error(err))
	}
}
