package axislayout

import (
	"fmt"
	"math"
	"time"
)

// niceTimeSteps lists the candidate tick granularities (in seconds),
// ascending, covering sub-minute through multi-day spans.
var niceTimeSteps = []float64{
	1, 5, 10, 15, 30,
	60, 300, 600, 900, 1800,
	3600, 7200, 14400, 21600, 43200,
	86400, 2 * 86400, 7 * 86400, 30 * 86400,
}

// NiceTimeStep returns the smallest candidate step >= raw, or the largest
// candidate if raw exceeds every one of them.
func NiceTimeStep(raw float64) float64 {
	if raw <= 0 || math.IsNaN(raw) || math.IsInf(raw, 0) {
		return niceTimeSteps[0]
	}
	for _, step := range niceTimeSteps {
		if step >= raw {
			return step
		}
	}
	return niceTimeSteps[len(niceTimeSteps)-1]
}

// GenerateTimeTicks produces tick values on a NiceTimeStep grid covering
// [start, end], anchored to multiples of the step from the Unix epoch so
// ticks stay stable as the visible range pans.
func GenerateTimeTicks(start, end, targetStep float64) []float64 {
	step := NiceTimeStep(targetStep)
	if step <= 0 {
		return nil
	}
	first := math.Ceil(start/step) * step
	var out []float64
	for t := first; t <= end+step*1e-9; t += step {
		out = append(out, t)
	}
	return out
}

// TimeTick pairs a logical time with its major/minor classification.
type TimeTick struct {
	Value   float64
	IsMajor bool
}

// ClassifyMajorTick reports whether t (Unix seconds) falls on a midnight
// boundary in the given timezone, or on the configured session-boundary
// minute-of-day at second 0 when hasSessionBoundary is true.
func ClassifyMajorTick(t float64, timezone string, sessionBoundaryMinuteOfDay int, hasSessionBoundary bool) (bool, error) {
	loc, err := resolveLoc(timezone)
	if err != nil {
		return false, err
	}
	instant := time.Unix(int64(t), 0).In(loc)
	if instant.Hour() == 0 && instant.Minute() == 0 && instant.Second() == 0 {
		return true, nil
	}
	if hasSessionBoundary {
		minuteOfDay := instant.Hour()*60 + instant.Minute()
		if minuteOfDay == sessionBoundaryMinuteOfDay && instant.Second() == 0 {
			return true, nil
		}
	}
	return false, nil
}

func resolveLoc(timezone string) (*time.Location, error) {
	if timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("axislayout: unknown timezone %q: %w", timezone, err)
	}
	return loc, nil
}

// SelectTimeAxisLabels applies the time-axis label-packing filter: a
// width budget derived from font size, then a minimum-spacing requirement
// of max(measured label width, minSpacingPx), preferring major ticks over
// minor when spacing forces a choice, followed by an edge-cleanup pass
// (spec §4.5). ticks and labels must be the same length, ascending by
// pixel position as produced by project.
func SelectTimeAxisLabels(ticks []TimeTick, labels []string, project func(float64) float64, fontSizePx, minSpacingPx float64) []TimeTick {
	if len(ticks) == 0 {
		return nil
	}
	budget := (fontSizePx + 4) * 5
	measured := maxLabelWidth(labels, fontSizePx)
	if measured > budget {
		measured = budget
	}
	spacing := measured
	if minSpacingPx > spacing {
		spacing = minSpacingPx
	}

	kept := make([]int, 0, len(ticks))
	lastX := math.Inf(-1)
	for i, tk := range ticks {
		x := project(tk.Value)
		if tk.IsMajor {
			if len(kept) == 0 || x-lastX >= spacing {
				kept = append(kept, i)
				lastX = x
				continue
			}
			if !ticks[kept[len(kept)-1]].IsMajor {
				kept[len(kept)-1] = i
				lastX = x
			}
			continue
		}
		if x-lastX >= spacing {
			kept = append(kept, i)
			lastX = x
		}
	}

	out := make([]TimeTick, len(kept))
	for i, idx := range kept {
		out[i] = ticks[idx]
	}
	return edgeCleanup(out, project)
}

// edgeCleanup drops a non-major first/last label whose adjacent gap
// exceeds 1.70x the next gap (a visually isolated straggler).
func edgeCleanup(ticks []TimeTick, project func(float64) float64) []TimeTick {
	const edgeGapRatio = 1.70
	if len(ticks) < 3 {
		return ticks
	}
	gap0 := project(ticks[1].Value) - project(ticks[0].Value)
	gap1 := project(ticks[2].Value) - project(ticks[1].Value)
	if !ticks[0].IsMajor && gap0 > edgeGapRatio*gap1 {
		ticks = ticks[1:]
	}
	n := len(ticks)
	if n >= 3 {
		last := n - 1
		gapLast := project(ticks[last].Value) - project(ticks[last-1].Value)
		gapPrev := project(ticks[last-1].Value) - project(ticks[last-2].Value)
		if !ticks[last].IsMajor && gapLast > edgeGapRatio*gapPrev {
			ticks = ticks[:last]
		}
	}
	return ticks
}
