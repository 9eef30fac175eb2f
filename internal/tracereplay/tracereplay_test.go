package tracereplay_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/luhouxiang/chartcore/internal/chartengine"
	"github.com/luhouxiang/chartcore/internal/tracereplay"
)

func newTestEngine(t *testing.T) *chartengine.Engine {
	t.Helper()
	cfg := chartengine.DefaultConfig()
	e, err := chartengine.New(cfg)
	if err != nil {
		t.Fatalf("chartengine.New() error = %v", err)
	}
	return e
}

func TestPlayerReplaysPanSequence(t *testing.T) {
	e := newTestEngine(t)
	player := tracereplay.NewPlayer()
	tracereplay.RegisterEngineHandlers(player, e)

	commands := []tracereplay.Command{
		{Op: tracereplay.OpPanTimeVisibleByDelta, Args: []float64{10}},
		{Op: tracereplay.OpPanTimeVisibleByDelta, Args: []float64{10}},
	}
	if err := player.Play(context.Background(), commands, "fast", 0); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	status := player.Status()
	if status.Status != tracereplay.StatusDone {
		t.Fatalf("status.Status = %q, want %q", status.Status, tracereplay.StatusDone)
	}
	if status.Dispatched != 2 {
		t.Fatalf("status.Dispatched = %d, want 2", status.Dispatched)
	}

	start, end := e.VisibleTimeRange()
	if start != 20 || end != 120 {
		t.Fatalf("visible range = (%v,%v), want (20,120)", start, end)
	}
}

func TestPlayerUnknownOpFails(t *testing.T) {
	e := newTestEngine(t)
	player := tracereplay.NewPlayer()
	tracereplay.RegisterEngineHandlers(player, e)

	err := player.Play(context.Background(), []tracereplay.Command{{Op: "does_not_exist"}}, "fast", 0)
	if err == nil {
		t.Fatalf("Play() error = nil, want non-nil for unknown op")
	}
	if player.Status().Status != tracereplay.StatusError {
		t.Fatalf("status = %q, want %q", player.Status().Status, tracereplay.StatusError)
	}
}

func TestRecorderRoundTripsThroughFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.jsonl")
	rec, err := tracereplay.NewFileRecorder(path)
	if err != nil {
		t.Fatalf("NewFileRecorder() error = %v", err)
	}
	cmds := []tracereplay.Command{
		{OccurredAt: time.Unix(1000, 0), Op: tracereplay.OpPanTimeVisibleByDelta, Args: []float64{5}},
		{OccurredAt: time.Unix(1001, 0), Op: tracereplay.OpPointerMove, Args: []float64{1, 2}},
	}
	for _, c := range cmds {
		if err := rec.Record(c); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}
	if err := rec.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	loaded, err := tracereplay.LoadCommands(path)
	if err != nil {
		t.Fatalf("LoadCommands() error = %v", err)
	}
	if len(loaded) != len(cmds) {
		t.Fatalf("len(loaded) = %d, want %d", len(loaded), len(cmds))
	}
	for i, c := range loaded {
		if c.Op != cmds[i].Op {
			t.Fatalf("loaded[%d].Op = %q, want %q", i, c.Op, cmds[i].Op)
		}
	}
}
