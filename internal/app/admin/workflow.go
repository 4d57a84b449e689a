// Package admin is the password-gated content editor.
//
// A Workflow starts Unauthenticated. Authenticate with the shared secret
// loads all three kinds concurrently, each falling back to the snapshot on
// its own. Every successful write is followed by a re-list of the kind; that
// re-list is the only way the workflow learns about store changes.
package admin

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rotary-puebla/club-site-api/internal/domain"
	"github.com/rotary-puebla/club-site-api/internal/fallback"
	"github.com/rotary-puebla/club-site-api/internal/platform/secret"
	"github.com/rotary-puebla/club-site-api/internal/ports/out/contentapi"
)

type State int

const (
	Unauthenticated State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "unauthenticated"
}

// DeletePrompt is the question put to the operator before every delete.
const DeletePrompt = "¿Estás seguro de eliminar este elemento?"

// Confirmer asks the operator a yes/no question and blocks for the answer.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) { return f(ctx, prompt) }

// SecretSetter is implemented by Content API clients that forward the
// operator's secret on writes.
type SecretSetter interface {
	SetAdminSecret(secret string)
}

type Config struct {
	API       contentapi.API
	Verifier  secret.Verifier
	Fallback  fallback.Dataset
	Confirmer Confirmer
	Logger    zerolog.Logger
	// NewKey mints form idempotency keys. Defaults to uuid.NewString.
	NewKey func() string
}

type Workflow struct {
	api       contentapi.API
	verifier  secret.Verifier
	confirmer Confirmer
	log       zerolog.Logger
	newKey    func() string
	ops       map[domain.Kind]kindOps

	mu        sync.Mutex
	state     State
	tab       domain.Kind
	lists     map[domain.Kind][]domain.Record
	fallbacks map[domain.Kind]bool
	form      *Form
	lastErr   error
}

func New(cfg Config) (*Workflow, error) {
	if cfg.API == nil {
		return nil, errors.New("admin: nil content api")
	}
	if cfg.Verifier == nil {
		return nil, errors.New("admin: no admin secret configured")
	}
	if cfg.Confirmer == nil {
		return nil, errors.New("admin: nil confirmer")
	}
	newKey := cfg.NewKey
	if newKey == nil {
		newKey = uuid.NewString
	}
	w := &Workflow{
		api:       cfg.API,
		verifier:  cfg.Verifier,
		confirmer: cfg.Confirmer,
		log:       cfg.Logger,
		newKey:    newKey,
		ops:       newOpsTable(cfg.API, cfg.Fallback),
	}
	w.reset()
	return w, nil
}

// reset returns to the initial Unauthenticated state. Callers hold mu or own w exclusively.
func (w *Workflow) reset() {
	w.state = Unauthenticated
	w.tab = domain.KindMembers
	w.lists = make(map[domain.Kind][]domain.Record, 3)
	w.fallbacks = make(map[domain.Kind]bool, 3)
	w.form = nil
	w.lastErr = nil
}

func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Authenticate checks candidate against the configured secret and, on a
// match, loads every kind. A mismatch makes no Content API call.
func (w *Workflow) Authenticate(ctx context.Context, candidate string) error {
	if err := w.verifier.Verify(candidate); err != nil {
		w.log.Warn().Msg("admin login rejected")
		return ErrInvalidSecret
	}
	if s, ok := w.api.(SecretSetter); ok {
		s.SetAdminSecret(candidate)
	}
	w.mu.Lock()
	w.state = Authenticated
	w.mu.Unlock()
	w.log.Info().Msg("admin authenticated")
	return w.LoadAll(ctx)
}

// Exit leaves the admin surface. Loaded data, the form and any error are dropped.
func (w *Workflow) Exit() {
	if s, ok := w.api.(SecretSetter); ok {
		s.SetAdminSecret("")
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.reset()
}

// LoadAll lists all kinds concurrently. A failing kind shows its fallback
// snapshot without affecting the others.
func (w *Workflow) LoadAll(ctx context.Context) error {
	if err := w.requireAuth(); err != nil {
		return err
	}
	g, gctx := errgroup.WithContext(ctx)
	for _, k := range domain.Kinds() {
		g.Go(func() error {
			w.load(gctx, k)
			return nil
		})
	}
	return g.Wait()
}

// Refresh re-lists one kind.
func (w *Workflow) Refresh(ctx context.Context, k domain.Kind) error {
	if err := w.requireAuth(); err != nil {
		return err
	}
	if _, ok := w.ops[k]; !ok {
		return fmt.Errorf("admin: unknown kind %q", k)
	}
	w.load(ctx, k)
	return nil
}

func (w *Workflow) load(ctx context.Context, k domain.Kind) {
	op := w.ops[k]
	items, err := op.list(ctx)
	isFallback := false
	if err != nil {
		w.log.Warn().Err(err).Str("kind", string(k)).Msg("using fallback data")
		items = op.fallback()
		isFallback = true
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	// Exit while the list was in flight discards the result.
	if w.state != Authenticated {
		return
	}
	w.lists[k] = items
	w.fallbacks[k] = isFallback
}

func (w *Workflow) Tab() domain.Kind {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tab
}

// SetTab switches the active kind. An open form is closed.
func (w *Workflow) SetTab(k domain.Kind) error {
	if _, ok := w.ops[k]; !ok {
		return fmt.Errorf("admin: unknown kind %q", k)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.tab != k {
		w.form = nil
	}
	w.tab = k
	return nil
}

func (w *Workflow) Members() []domain.Member {
	w.mu.Lock()
	defer w.mu.Unlock()
	ms := typed[domain.Member](w.lists[domain.KindMembers])
	for i := range ms {
		ms[i] = ms[i].Clone()
	}
	return ms
}

func (w *Workflow) Events() []domain.Event {
	w.mu.Lock()
	defer w.mu.Unlock()
	return typed[domain.Event](w.lists[domain.KindEvents])
}

func (w *Workflow) Gallery() []domain.GalleryItem {
	w.mu.Lock()
	defer w.mu.Unlock()
	gs := typed[domain.GalleryItem](w.lists[domain.KindGallery])
	for i := range gs {
		gs[i] = gs[i].Clone()
	}
	return gs
}

// Records returns the loaded records of kind k in list order.
func (w *Workflow) Records(k domain.Kind) []domain.Record {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]domain.Record(nil), w.lists[k]...)
}

// Fallback reports whether kind k is showing the fallback snapshot.
func (w *Workflow) Fallback(k domain.Kind) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.fallbacks[k]
}

// OpenCreate opens an empty form for the active kind.
func (w *Workflow) OpenCreate() (*Form, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != Authenticated {
		return nil, ErrNotAuthenticated
	}
	w.form = newForm(w.tab, nil, w.newKey())
	return w.form, nil
}

// OpenEdit opens a form prefilled from r and switches to its kind's tab.
// Gallery items return ErrEditUnsupported.
func (w *Workflow) OpenEdit(r domain.Record) (*Form, error) {
	if r == nil {
		return nil, errors.New("admin: nil record")
	}
	target, err := targetFor(r)
	if err != nil {
		return nil, err
	}
	if w.ops[target.Kind()].update == nil {
		return nil, ErrEditUnsupported
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != Authenticated {
		return nil, ErrNotAuthenticated
	}
	w.tab = target.Kind()
	w.form = newForm(target.Kind(), target, w.newKey())
	return w.form, nil
}

// Form returns the open form, if any.
func (w *Workflow) Form() (*Form, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.form, w.form != nil
}

func (w *Workflow) CloseForm() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.form = nil
}

// LastError is the most recent failed write, cleared by the next success.
func (w *Workflow) LastError() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

// Submit writes the open form. Edit targets are updated; everything else,
// gallery included, is created. On success the form closes and the kind is
// re-listed. On failure the form stays open with its values for a retry and
// the error wraps ErrSaveFailed.
func (w *Workflow) Submit(ctx context.Context) error {
	w.mu.Lock()
	if w.state != Authenticated {
		w.mu.Unlock()
		return ErrNotAuthenticated
	}
	f := w.form
	w.mu.Unlock()
	if f == nil {
		return ErrNoForm
	}
	if err := f.Validate(); err != nil {
		return err
	}

	op := w.ops[f.Kind()]
	payload := f.Payload()
	var err error
	if f.Editing() && op.update != nil {
		err = op.update(ctx, payload)
	} else {
		err = op.create(contentapi.WithIdempotencyKey(ctx, f.Key()), payload)
	}
	if err != nil {
		return w.fail(f.Kind(), "save", err)
	}

	w.mu.Lock()
	if w.form == f {
		w.form = nil
	}
	w.lastErr = nil
	w.mu.Unlock()
	w.log.Info().Str("kind", string(f.Kind())).Bool("update", f.Editing()).Msg("content saved")
	w.load(ctx, f.Kind())
	return nil
}

// Delete asks for confirmation and then deletes id from kind k. It returns
// false without calling the Content API when the operator declines.
func (w *Workflow) Delete(ctx context.Context, k domain.Kind, id string) (bool, error) {
	if err := w.requireAuth(); err != nil {
		return false, err
	}
	op, ok := w.ops[k]
	if !ok {
		return false, fmt.Errorf("admin: unknown kind %q", k)
	}
	yes, err := w.confirmer.Confirm(ctx, DeletePrompt)
	if err != nil {
		return false, fmt.Errorf("admin: confirm: %w", err)
	}
	if !yes {
		return false, nil
	}
	if err := op.remove(ctx, id); err != nil {
		return false, w.fail(k, "delete", err)
	}
	w.mu.Lock()
	w.lastErr = nil
	w.mu.Unlock()
	w.log.Info().Str("kind", string(k)).Str("id", id).Msg("content deleted")
	w.load(ctx, k)
	return true, nil
}

func (w *Workflow) fail(k domain.Kind, action string, err error) error {
	wrapped := fmt.Errorf("%w: %s %s: %w", ErrSaveFailed, action, k, err)
	w.log.Error().Err(err).Str("kind", string(k)).Str("action", action).Msg("admin write failed")
	w.mu.Lock()
	w.lastErr = wrapped
	w.mu.Unlock()
	return wrapped
}

func (w *Workflow) requireAuth() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != Authenticated {
		return ErrNotAuthenticated
	}
	return nil
}
