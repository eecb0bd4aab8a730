// SPDX-FileCopyrightText : © 2022-2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package video

import (
	"testing"
	"time"
)

// fakeDemuxer produces n packets for the video stream then EOF, looping
// back to the start on SeekStart.
type fakeDemuxer struct {
	total  int
	pos    int
	seeks  int
}

func (d *fakeDemuxer) VideoStreamIndex() int { return 0 }

func (d *fakeDemuxer) ReadPacket() (Packet, error) {
	if d.pos >= d.total {
		return Packet{}, ErrEndOfStream
	}
	d.pos++
	return Packet{StreamIndex: 0}, nil
}

func (d *fakeDemuxer) SeekStart() error {
	d.pos = 0
	d.seeks++
	return nil
}

// fakeDecoder emits exactly one frame per packet sent.
type fakeDecoder struct {
	pending  int
	duration time.Duration
}

func (d *fakeDecoder) Send(Packet) error {
	d.pending++
	return nil
}

func (d *fakeDecoder) Receive() (Frame, error) {
	if d.pending == 0 {
		return Frame{}, ErrDecoderNeedsMore
	}
	d.pending--
	return Frame{Duration: d.duration}, nil
}

func TestVideoRejectsUnsupportedPixelFormat(t *testing.T) {
	_, err := New(&fakeDemuxer{}, &fakeDecoder{}, PixelFormatUnknown, [2]uint32{1920, 1080}, false)
	if err == nil {
		t.Fatalf("expected error for unsupported pixel format")
	}
}

func TestVideoFramePacingMatchesStreamCadence(t *testing.T) {
	const frameDur = time.Second / 24
	const totalFrames = 240
	dem := &fakeDemuxer{total: totalFrames}
	dec := &fakeDecoder{duration: frameDur}
	v, err := New(dem, dec, PixelFormatYUV420P, [2]uint32{1920, 1080}, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	advanced := 0
	for i := 0; i < totalFrames; i++ {
		advanced += v.Update(frameDur)
	}

	if diff := advanced - totalFrames; diff < -1 || diff > 1 {
		t.Fatalf("advanced %d frames over %d ticks, want within 1 of %d", advanced, totalFrames, totalFrames)
	}
}

func TestVideoEOFLoopingReopensWithoutNewDecoder(t *testing.T) {
	dem := &fakeDemuxer{total: 3}
	dec := &fakeDecoder{duration: time.Millisecond}
	v, err := New(dem, dec, PixelFormatYUV420P, [2]uint32{640, 480}, true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := 0; i < 10; i++ {
		v.Update(time.Millisecond)
	}

	if dem.seeks == 0 {
		t.Fatalf("expected at least one loop-seek to start")
	}
	if v.Stopped() {
		t.Fatalf("looping video should never report Stopped")
	}
}

func TestVideoEOFWithoutLoopStops(t *testing.T) {
	dem := &fakeDemuxer{total: 2}
	dec := &fakeDecoder{duration: time.Millisecond}
	v, err := New(dem, dec, PixelFormatYUV420P, [2]uint32{640, 480}, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := 0; i < 10; i++ {
		v.Update(time.Millisecond)
	}

	if !v.Stopped() {
		t.Fatalf("expected Stopped after end of stream without looping")
	}
}

func TestVideoAspectRatio(t *testing.T) {
	v, err := New(&fakeDemuxer{total: 1}, &fakeDecoder{}, PixelFormatYUV420P, [2]uint32{1920, 1080}, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := v.AspectRatio(); got < 1.77 || got > 1.78 {
		t.Fatalf("aspect ratio = %v, want ~16:9", got)
	}
}
