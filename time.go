// SPDX-FileCopyrightText : © 2022-2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package wallglass

import "time"

// fallbackFrameRate is used whenever a stream or monitor cannot report
// its own natural cadence (§4.4.1, §4.6).
const fallbackFrameRate = 60

// Fallback60Hz is the duration of one frame at the fallback rate.
const Fallback60Hz = time.Second / fallbackFrameRate

// Time is a resource updated once per frame with the wall-clock delta
// since the previous frame and the total elapsed time since the
// engine started. Video decode timelines and transition animations
// both advance from Delta.
type Time struct {
	Delta   time.Duration
	Elapsed time.Duration
}

// Advance moves Time forward by delta, as the driver does once at the
// start of each Update.
func (tm *Time) Advance(delta time.Duration) {
	tm.Delta = delta
	tm.Elapsed += delta
}

// FrameInfo is returned by a wallpaper's frame call to tell the driver
// how soon it should be called again.
type FrameInfo struct {
	// TargetFrameTime is the duration until this wallpaper next wants
	// to present a new frame. The zero value with HasTargetFrameTime
	// false means "no opinion" - NextWakeup then uses Fallback60Hz,
	// bounded below by the monitor's native interval.
	TargetFrameTime      time.Duration
	HasTargetFrameTime   bool
	Err                  FrameError
}

// bestWith60fps returns the most aggressive (shortest) of a and b,
// clamped to never exceed the fallback 60fps interval, matching §4.5
// step 5's FrameInfo merge used when a transition samples two
// children.
func bestWith60fps(a, b FrameInfo) FrameInfo {
	best, has := minOptionalDuration(a, b)
	if !has {
		best = Fallback60Hz
	} else if best > Fallback60Hz {
		best = Fallback60Hz
	}
	return FrameInfo{TargetFrameTime: best, HasTargetFrameTime: true}
}

func minOptionalDuration(a, b FrameInfo) (time.Duration, bool) {
	switch {
	case a.HasTargetFrameTime && b.HasTargetFrameTime:
		if a.TargetFrameTime < b.TargetFrameTime {
			return a.TargetFrameTime, true
		}
		return b.TargetFrameTime, true
	case a.HasTargetFrameTime:
		return a.TargetFrameTime, true
	case b.HasTargetFrameTime:
		return b.TargetFrameTime, true
	default:
		return 0, false
	}
}

// BestWith60fps is the exported entry point for §4.5 step 5 and §8
// property 10: best_with_60fps(first_info, second_info).
func BestWith60fps(first, second FrameInfo) FrameInfo { return bestWith60fps(first, second) }
