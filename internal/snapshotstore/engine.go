package snapshotstore

import (
	"encoding/json"
	"fmt"

	"github.com/luhouxiang/chartcore/internal/chartengine"
)

const (
	kindSnapshot    = "snapshot"
	kindDiagnostics = "diagnostics"
)

// PutEngineSnapshot marshals the engine's schema_version:1 state snapshot
// (spec §6) and stores it under scopeKey.
func (s *Store) PutEngineSnapshot(scopeKey string, e *chartengine.Engine) error {
	data, err := e.MarshalSnapshotJSON()
	if err != nil {
		return err
	}
	return s.Put(scopeKey, kindSnapshot, chartengine.SnapshotSchemaVersion, data)
}

// GetEngineSnapshot restores an Engine from the stored state snapshot under
// scopeKey. found is false with a nil error when nothing is stored there.
func (s *Store) GetEngineSnapshot(scopeKey string) (e *chartengine.Engine, found bool, err error) {
	rec, found, err := s.Get(scopeKey, kindSnapshot)
	if err != nil || !found {
		return nil, found, err
	}
	if rec.SchemaVersion != chartengine.SnapshotSchemaVersion {
		return nil, false, fmt.Errorf("snapshotstore: unsupported snapshot schema_version %d", rec.SchemaVersion)
	}
	e, err = chartengine.RestoreSnapshotJSON(rec.Payload)
	if err != nil {
		return nil, false, err
	}
	return e, true, nil
}

// PutEngineDiagnostics marshals and stores the engine's current crosshair
// formatter diagnostics contract (spec §6) under scopeKey.
func (s *Store) PutEngineDiagnostics(scopeKey string, e *chartengine.Engine) error {
	diag, err := e.CrosshairDiagnostics()
	if err != nil {
		return err
	}
	data, err := json.Marshal(diag)
	if err != nil {
		return fmt.Errorf("snapshotstore: diagnostics marshal failed: %w", err)
	}
	return s.Put(scopeKey, kindDiagnostics, chartengine.SnapshotSchemaVersion, data)
}
