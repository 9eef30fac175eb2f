package model

import (
	"math"
	"testing"
)

func TestCanonicalizePointsSortsDedupsAndDropsNonFinite(t *testing.T) {
	in := []DataPoint{
		{X: 10, Y: 2},
		{X: math.NaN(), Y: 1},
		{X: 5, Y: 1},
		{X: 10, Y: 99}, // later write for X=10 should win
	}
	out := CanonicalizePoints(in)
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
	if out[0].X != 5 || out[1].X != 10 {
		t.Fatalf("out x values = %v, %v, want 5, 10", out[0].X, out[1].X)
	}
	if out[1].Y != 99 {
		t.Fatalf("out[1].Y = %v, want 99 (latest write wins)", out[1].Y)
	}
}

func TestOhlcBarValid(t *testing.T) {
	valid := OhlcBar{Time: 1, Open: 10, High: 12, Low: 9, Close: 11}
	if !valid.Valid() {
		t.Fatalf("Valid() = false, want true")
	}
	invalid := OhlcBar{Time: 1, Open: 10, High: 9, Low: 9, Close: 11}
	if invalid.Valid() {
		t.Fatalf("Valid() = true, want false (high < close)")
	}
}

func TestCanonicalizeBarsDropsInvalidOHLC(t *testing.T) {
	bars := []OhlcBar{
		{Time: 2, Open: 1, High: 0.5, Low: 0.4, Close: 1.1},
		{Time: 1, Open: 1, High: 2, Low: 0.5, Close: 1.5},
	}
	out := CanonicalizeBars(bars)
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	if out[0].Time != 1 {
		t.Fatalf("out[0].Time = %v, want 1", out[0].Time)
	}
}

func TestPaneCollectionMainPaneCannotBeRemoved(t *testing.T) {
	panes := NewPaneCollection()
	if _, err := panes.RemovePane(panes.MainPaneID()); err == nil {
		t.Fatalf("RemovePane(main) error = nil, want non-nil")
	}
}

func TestPaneCollectionLayoutRegionsSplitProportionally(t *testing.T) {
	panes := NewPaneCollection()
	id, err := panes.CreatePane(1)
	if err != nil {
		t.Fatalf("CreatePane() error = %v", err)
	}
	regions := panes.LayoutRegions(0, 400)
	if len(regions) != 2 {
		t.Fatalf("len(regions) = %d, want 2", len(regions))
	}
	if regions[0].Height() != 200 || regions[1].Height() != 200 {
		t.Fatalf("region heights = %v, %v, want 200, 200", regions[0].Height(), regions[1].Height())
	}
	if regions[1].PaneID != id {
		t.Fatalf("regions[1].PaneID = %v, want %v", regions[1].PaneID, id)
	}
}
