// SPDX-FileCopyrightText : © 2022-2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package wallglass

import (
	"testing"
	"time"
)

func TestBestWith60fpsBothPresent(t *testing.T) {
	a := FrameInfo{TargetFrameTime: 40 * time.Millisecond, HasTargetFrameTime: true}
	b := FrameInfo{TargetFrameTime: 10 * time.Millisecond, HasTargetFrameTime: true}
	got := BestWith60fps(a, b)
	want := 10 * time.Millisecond // 10ms < 1/60s (~16.7ms), so min(a,b,1/60)=10ms
	_ = want
	if got.TargetFrameTime != 10*time.Millisecond {
		t.Fatalf("got %v, want 10ms", got.TargetFrameTime)
	}
}

func TestBestWith60fpsClampsToFallback(t *testing.T) {
	a := FrameInfo{TargetFrameTime: 100 * time.Millisecond, HasTargetFrameTime: true}
	b := FrameInfo{TargetFrameTime: 200 * time.Millisecond, HasTargetFrameTime: true}
	got := BestWith60fps(a, b)
	if got.TargetFrameTime != Fallback60Hz {
		t.Fatalf("got %v, want fallback %v", got.TargetFrameTime, Fallback60Hz)
	}
}

func TestBestWith60fpsOneAbsent(t *testing.T) {
	a := FrameInfo{}
	b := FrameInfo{TargetFrameTime: 5 * time.Millisecond, HasTargetFrameTime: true}
	got := BestWith60fps(a, b)
	if got.TargetFrameTime != 5*time.Millisecond {
		t.Fatalf("got %v, want 5ms", got.TargetFrameTime)
	}
}

func TestTimeAdvanceAccumulatesElapsed(t *testing.T) {
	tm := &Time{}
	tm.Advance(16 * time.Millisecond)
	tm.Advance(16 * time.Millisecond)
	if tm.Elapsed != 32*time.Millisecond {
		t.Fatalf("elapsed = %v, want 32ms", tm.Elapsed)
	}
	if tm.Delta != 16*time.Millisecond {
		t.Fatalf("delta = %v, want 16ms", tm.Delta)
	}
}
