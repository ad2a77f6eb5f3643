package variant

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-variants/internal/logging"
	"github.com/jonathan/resume-variants/internal/merge"
	"github.com/jonathan/resume-variants/internal/overrides"
	"github.com/jonathan/resume-variants/internal/types"
)

// Registry owns the master document, every variant and the current selection.
// It is safe for concurrent use; the merge itself never holds a lock longer
// than one clone.
type Registry struct {
	mu       sync.RWMutex
	master   *types.Document
	variants []*Variant
	active   string

	logger *zap.Logger
	newID  func() string
	now    func() time.Time
}

// Option configures a Registry
type Option func(*Registry)

// WithLogger sets the logger for registry events
func WithLogger(l *zap.Logger) Option {
	return func(r *Registry) { r.logger = logging.OrNop(l) }
}

// WithIDGenerator replaces uuid v4 generation, mostly for tests
func WithIDGenerator(fn func() string) Option {
	return func(r *Registry) { r.newID = fn }
}

// WithClock replaces time.Now
func WithClock(fn func() time.Time) Option {
	return func(r *Registry) { r.now = fn }
}

// WithVariants preloads variants, e.g. from a saved workspace. Each is copied.
func WithVariants(vs ...Variant) Option {
	return func(r *Registry) {
		for _, v := range vs {
			c := v.Clone()
			if c.Overrides == nil {
				c.Overrides = overrides.Empty()
			}
			r.variants = append(r.variants, &c)
		}
	}
}

// New creates a registry around a copy of master with no variant selected
func New(master *types.Document, opts ...Option) *Registry {
	r := &Registry{
		master: master.Clone(),
		logger: zap.NewNop(),
		newID:  func() string { return uuid.New().String() },
		now:    time.Now,
	}
	if r.master == nil {
		r.master = &types.Document{}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Master returns a copy of the master document
func (r *Registry) Master() *types.Document {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.master.Clone()
}

// ReplaceMaster swaps in a new master. Existing variants keep their stores
// untouched; ids that no longer resolve are reported by Lint.
func (r *Registry) ReplaceMaster(doc *types.Document) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.master = doc.Clone()
	if r.master == nil {
		r.master = &types.Document{}
	}
	r.logger.Info("master replaced", zap.Int("sections", len(r.master.Sections)))
}

// CreateVariant adds a variant whose store snapshots the master's current
// enabled flags and section order. It returns the new id.
func (r *Registry) CreateVariant(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	v := &Variant{
		ID:        r.newID(),
		Name:      name,
		CreatedAt: r.now().UTC(),
		Overrides: overrides.NewStore(r.master),
	}
	r.variants = append(r.variants, v)
	r.logger.Info("variant created", zap.String("variant_id", v.ID), zap.String("name", name))
	return v.ID, nil
}

// DeleteVariant discards a variant and its store. Deleting the active
// variant reverts the selection to the master.
func (r *Registry) DeleteVariant(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, v := range r.variants {
		if v.ID != id {
			continue
		}
		r.variants = append(r.variants[:i], r.variants[i+1:]...)
		if r.active == id {
			r.active = ""
		}
		r.logger.Info("variant deleted", zap.String("variant_id", id))
		return nil
	}
	return &NotFoundError{ID: id}
}

// SelectVariant makes id the active variant; "" selects the master
func (r *Registry) SelectVariant(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id != "" && r.find(id) == nil {
		return &NotFoundError{ID: id}
	}
	r.active = id
	r.logger.Debug("variant selected", zap.String("variant_id", id))
	return nil
}

// ActiveID returns the selected variant id, or "" for the master
func (r *Registry) ActiveID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// List summarizes variants in creation order
func (r *Registry) List() []Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Summary, 0, len(r.variants))
	for _, v := range r.variants {
		out = append(out, Summary{
			ID:                v.ID,
			Name:              v.Name,
			CreatedAt:         v.CreatedAt,
			HasJobDescription: v.JobDescription != "",
			Active:            v.ID == r.active,
		})
	}
	return out
}

// Get returns a copy of one variant
func (r *Registry) Get(id string) (Variant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v := r.find(id)
	if v == nil {
		return Variant{}, &NotFoundError{ID: id}
	}
	return v.Clone(), nil
}

// GetEffectiveDocument merges the master with the active variant, or returns
// a copy of the master when none is selected.
func (r *Registry) GetEffectiveDocument() *types.Document {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if v := r.find(r.active); v != nil {
		return merge.Merge(r.master, v.Overrides)
	}
	return merge.Merge(r.master, nil)
}

// EffectiveDocument merges the master with one variant
func (r *Registry) EffectiveDocument(id string) (*types.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v := r.find(id)
	if v == nil {
		return nil, &NotFoundError{ID: id}
	}
	return merge.Merge(r.master, v.Overrides), nil
}

// Lint reports overrides of one variant that no longer match the master
func (r *Registry) Lint(id string) ([]merge.Drift, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v := r.find(id)
	if v == nil {
		return nil, &NotFoundError{ID: id}
	}
	return merge.Lint(r.master, v.Overrides), nil
}

// Snapshot copies the whole registry state for persistence
func (r *Registry) Snapshot() Workspace {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ws := Workspace{
		Master:   r.master.Clone(),
		Variants: make([]Variant, 0, len(r.variants)),
		ActiveID: r.active,
	}
	for _, v := range r.variants {
		ws.Variants = append(ws.Variants, v.Clone())
	}
	return ws
}

// Restore replaces the registry state with ws. An active id that names no
// variant falls back to the master.
func (r *Registry) Restore(ws Workspace) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.master = ws.Master.Clone()
	if r.master == nil {
		r.master = &types.Document{}
	}
	r.variants = r.variants[:0]
	WithVariants(ws.Variants...)(r)
	r.active = ""
	if r.find(ws.ActiveID) != nil {
		r.active = ws.ActiveID
	}
	r.logger.Info("workspace restored", zap.Int("variants", len(r.variants)), zap.String("active", r.active))
}

func (r *Registry) find(id string) *Variant {
	if id == "" {
		return nil
	}
	for _, v := range r.variants {
		if v.ID == id {
			return v
		}
	}
	return nil
}
