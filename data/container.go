package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/rxbridge/generics-api/catalog"
)

// Container owns the branded and generic catalog stores plus the bookkeeping
// the health endpoint and the scheduler need: last ingestion time, the
// audit-in-progress flag and the server start time.
type Container struct {
	branded *Store
	generic *Store

	lastIngested    atomic.Value // time.Time
	auditing        atomic.Bool
	serverStartTime atomic.Value // time.Time
}

// NewContainer creates a container with two empty catalogs.
func NewContainer() *Container {
	c := &Container{
		branded: NewStore(),
		generic: NewStore(),
	}
	c.lastIngested.Store(time.Time{})
	c.serverStartTime.Store(time.Time{})
	return c
}

// Branded returns the branded catalog store.
func (c *Container) Branded() *Store { return c.branded }

// Generic returns the generic catalog store.
func (c *Container) Generic() *Store { return c.generic }

// ByKind returns the store for the given catalog.
func (c *Container) ByKind(k catalog.Kind) *Store {
	if k == catalog.Branded {
		return c.branded
	}
	return c.generic
}

// Counterpart returns the other catalog's store, the one cross-referencing
// joins into.
func (c *Container) Counterpart(k catalog.Kind) *Store {
	return c.ByKind(k.Other())
}

// MarkIngested records the time of the latest successful upload.
func (c *Container) MarkIngested() {
	c.lastIngested.Store(time.Now())
}

// LastIngested returns the time of the latest successful upload, or the zero
// time if nothing was ever ingested.
func (c *Container) LastIngested() time.Time {
	if v := c.lastIngested.Load(); v != nil {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	return time.Time{}
}

// BeginAudit marks the start of a quality audit. It returns false if another
// audit is already running.
func (c *Container) BeginAudit() bool {
	return c.auditing.CompareAndSwap(false, true)
}

// EndAudit marks the end of a quality audit.
func (c *Container) EndAudit() {
	c.auditing.Store(false)
}

// IsAuditing reports whether a quality audit is currently running.
func (c *Container) IsAuditing() bool {
	return c.auditing.Load()
}

// SetServerStartTime sets the server start time.
func (c *Container) SetServerStartTime(t time.Time) {
	c.serverStartTime.Store(t)
}

// ServerStartTime returns the server start time.
func (c *Container) ServerStartTime() time.Time {
	if v := c.serverStartTime.Load(); v != nil {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	return time.Time{}
}

// snapshot is the on-disk shape of both catalogs.
type snapshot struct {
	Branded []catalog.Record `json:"branded"`
	Generic []catalog.Record `json:"generic"`
	SavedAt time.Time        `json:"saved_at"`
}

// SaveSnapshot writes both catalogs to path as JSON, via a temp file and
// rename so a crash mid-write never leaves a truncated snapshot.
func (c *Container) SaveSnapshot(path string) error {
	snap := snapshot{
		Branded: c.branded.FindAll(),
		Generic: c.generic.FindAll(),
		SavedAt: time.Now(),
	}

	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog snapshot: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o644); err != nil {
		return fmt.Errorf("failed to write catalog snapshot: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace catalog snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads a snapshot written by SaveSnapshot and upserts its
// records into the two catalogs. A missing file surfaces as os.ErrNotExist
// so callers can treat first boot as a non-event.
func (c *Container) LoadSnapshot(path string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var snap snapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return fmt.Errorf("failed to parse catalog snapshot: %w", err)
	}

	for _, rec := range snap.Branded {
		c.branded.Upsert(rec)
	}
	for _, rec := range snap.Generic {
		c.generic.Upsert(rec)
	}
	return nil
}
