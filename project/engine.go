// SPDX-License-Identifier: EPL-2.0

package project

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ik5/sktapes/ingest"
	"go.uber.org/zap"
)

// Ingester is the part of ingest.Engine the project engine needs.
type Ingester interface {
	Process(ctx context.Context, raw ingest.RawFile) (*ingest.Result, error)
	ProcessAll(ctx context.Context, raws []ingest.RawFile) ([]*ingest.Result, []error)
}

// Engine applies operations to project states. It keeps no state of its
// own; the caller owns the current *State and swaps it for each result.
type Engine struct {
	ingester Ingester
	newID    func() string
	now      func() time.Time
	log      *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger. A nil logger is ignored.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithIDGenerator replaces uuid.NewString for file and version ids.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		if fn != nil {
			e.newID = fn
		}
	}
}

// WithClock replaces time.Now for record timestamps.
func WithClock(fn func() time.Time) Option {
	return func(e *Engine) {
		if fn != nil {
			e.now = fn
		}
	}
}

// New builds an engine. A nil ingester gets ingest.New().
func New(ing Ingester, opts ...Option) *Engine {
	if ing == nil {
		ing = ingest.New()
	}
	e := &Engine{
		ingester: ing,
		newID:    uuid.NewString,
		now:      time.Now,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// commit runs the reconcile pass over a state the operation built.
func (e *Engine) commit(next *State) *State {
	for _, r := range reconcilePlacements(next) {
		e.log.Warn("project repaired", zap.Error(r), zap.String("kind", r.Kind), zap.String("file", r.FileID))
	}
	return next
}

// Reconcile repairs st and logs each repair.
func (e *Engine) Reconcile(st *State) *State {
	return e.commit(st.Clone())
}

// newRecord wraps an ingest result as a record with one version.
func (e *Engine) newRecord(res *ingest.Result, description string) *FileRecord {
	v := AudioVersion{
		ID:          e.newID(),
		Timestamp:   e.now(),
		Description: description,
		Artifact:    res.Artifact,
		Duration:    res.Duration,
	}
	return &FileRecord{
		ID:               e.newID(),
		DisplayName:      displayName(res.Name),
		OriginalName:     res.Name,
		Versions:         []AudioVersion{v},
		CurrentVersionID: v.ID,
		IsParked:         true,
	}
}

func displayName(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, `\`, "/"))
	if base == "." || base == "/" {
		return name
	}
	if stem := strings.TrimSuffix(base, filepath.Ext(base)); stem != "" {
		return stem
	}
	return base
}

func validLocation(loc Location) error {
	if !loc.Valid() {
		return ErrInvalidLocation
	}
	return nil
}

func (e *Engine) file(st *State, id string) (*FileRecord, error) {
	f, ok := st.Files[id]
	if !ok || f == nil {
		return nil, ErrFileNotFound
	}
	return f, nil
}
