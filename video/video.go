// SPDX-FileCopyrightText : © 2022-2025 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

// Package video implements the demuxer/decoder pull loop described in
// §4.4.1: a small state machine that advances a Video's current Frame
// in step with the main world's delta time. The demuxer and decoder
// themselves are external collaborators (§6, hardware-accelerated
// VA-API decode) - this package only depends on the narrow Demuxer and
// Decoder interfaces they must satisfy, grounded on the engine's own
// load.Loader-style "own the algorithm, not the codec" split.
package video

import (
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Error kinds crossing the video pipeline boundary, per the core's
// error table (§7).
var (
	ErrDecoderUnavailable     = errors.New("video: no decoder registered for stream codec")
	ErrUnsupportedPixelFormat = errors.New("video: stream is not yuv420p")
	ErrDemuxerTransient       = errors.New("video: packet read failed")
	ErrDecoderNeedsMore       = errors.New("video: decoder needs more input")
	ErrEndOfStream            = errors.New("video: demuxer reached end of stream")
	ErrVaSyncFailed           = errors.New("video: gpu did not retire the va surface")
	ErrVaExportFailed         = errors.New("video: drm-prime export unavailable")
)

// PlaneLayout is one plane's byte offset and row pitch within a
// DMA-BUF's backing allocation, as reported by DRM-PRIME export.
type PlaneLayout struct {
	Offset uint64
	Pitch  uint64
}

// DmaBufDescriptor is the result of exporting a VA surface as a
// DRM-PRIME buffer (§4.4.2 step 2): a file descriptor, its DRM format
// modifier, and the per-plane layout needed to describe the backing
// memory to Vulkan without a pixel copy.
type DmaBufDescriptor struct {
	Fd                int32
	DrmFormatModifier uint64
	Planes            []PlaneLayout // NV12: index 0 = Y, index 1 = UV.
	Width, Height     uint32
}

// DmaBufExporter performs the VA-API side of §4.4.2 steps 1-2: sync
// the surface (block until the decoder has finished writing it) then
// export it as a DRM-PRIME descriptor with READ_ONLY|SEPARATE_LAYERS.
// LibvaExporter (vaapi_linux.go) is this package's libva-backed
// implementation; Video itself depends only on the interface.
type DmaBufExporter interface {
	SyncAndExport(surface VASurfaceID, vaDisplay uintptr) (DmaBufDescriptor, error)
}

// PixelFormat names the subset of pixel layouts this pipeline accepts.
// Only YUV420P is supported; anything else fails fast at construction
// per §4.4.1's "required pixel format" clause and §8 scenario S6.
type PixelFormat int

const (
	PixelFormatUnknown PixelFormat = iota
	PixelFormatYUV420P
)

// VASurfaceID identifies a decoder-owned GPU surface, the "internal
// data[3]" handle §6's decoder collaborator contract exposes.
type VASurfaceID uint32

// Packet is one demuxed chunk belonging to a particular stream.
type Packet struct {
	StreamIndex int
}

// Demuxer reads packets from a container. ReadPacket returns
// ErrEndOfStream when the container is exhausted.
type Demuxer interface {
	ReadPacket() (Packet, error)
	SeekStart() error
	VideoStreamIndex() int
}

// Decoder turns packets into decoded frames. Send may be called
// multiple times before a frame is available; Receive returns
// ErrDecoderNeedsMore when no frame is ready yet.
type Decoder interface {
	Send(Packet) error
	Receive() (Frame, error)
}

// Frame is one decoded, displayable picture: a VA-API surface plus its
// presentation duration derived from the stream's timebase.
type Frame struct {
	Surface  VASurfaceID
	Duration time.Duration // duration_in(timebase); zero means "use fallback".
	VaDisplay uintptr
}

// pullState is the per-video pull loop state of §4.4.1.
type pullState int

const (
	stateNoPacket pullState = iota
	statePacketPending
	stateFramePresent
)

// Video owns a demuxer/decoder pair and the current decoded Frame plus
// the wall-clock accounting needed to advance it in step with the main
// world's delta time.
type Video struct {
	demuxer Demuxer
	decoder Decoder

	state pullState
	frame Frame

	// DoLoopVideo re-opens the stream at end-of-stream instead of
	// stopping, tracked per-Video rather than as a single global flag
	// (the original prototype's finer-grained design, §9).
	DoLoopVideo bool

	fallbackDuration time.Duration
	updateDelay      time.Duration

	frameWidth, frameHeight uint32

	framesPresented int
	stopped         bool
}

// New constructs a Video bound to demuxer/decoder, having already
// verified the stream's pixel format is YUV420P (format is supplied by
// the caller, which owns the actual codec probe - this constructor
// only enforces the invariant so it fails fast per S6 rather than
// allocating decode state for an unsupported stream).
func New(demuxer Demuxer, decoder Decoder, format PixelFormat, frameSize [2]uint32, loop bool) (*Video, error) {
	if format != PixelFormatYUV420P {
		return nil, fmt.Errorf("%w: got format %v", ErrUnsupportedPixelFormat, format)
	}
	return &Video{
		demuxer:          demuxer,
		decoder:          decoder,
		fallbackDuration: time.Second / 60,
		frameWidth:       frameSize[0],
		frameHeight:      frameSize[1],
		DoLoopVideo:      loop,
	}, nil
}

// FrameSize returns the decoded picture's pixel dimensions.
func (v *Video) FrameSize() (width, height uint32) { return v.frameWidth, v.frameHeight }

// AspectRatio returns the decoded picture's pixel aspect ratio (width
// over height, or 1 when the height is 0). Grounded on the original prototype's derivation from
// the codec parameters' video_size(), which spec.md itself does not
// name a source for.
func (v *Video) AspectRatio() float64 {
	if v.frameHeight == 0 {
		return 1
	}
	return float64(v.frameWidth) / float64(v.frameHeight)
}

// CurrentFrame returns the currently displayable frame, if any.
func (v *Video) CurrentFrame() (Frame, bool) {
	if v.state != stateFramePresent {
		return Frame{}, false
	}
	return v.frame, true
}

// Stopped reports whether the pull loop hit end-of-stream with looping
// disabled (§8 property 6: the driver observes a StopRequested).
func (v *Video) Stopped() bool { return v.stopped }

// currentFrameDuration is the timebase-derived duration of the
// currently displayed frame, falling back to 60fps when the stream
// can't report one (§4.4.1).
func (v *Video) currentFrameDuration() time.Duration {
	if v.state == stateFramePresent && v.frame.Duration > 0 {
		return v.frame.Duration
	}
	return v.fallbackDuration
}

// Update accumulates delta into updateDelay and advances the pull loop
// by calling NextFrame once per elapsed frame duration, per §4.4.1's
// timing rule. Returns the number of frames advanced this call.
func (v *Video) Update(delta time.Duration) int {
	if v.stopped {
		return 0
	}
	if v.state != stateFramePresent {
		// Nothing displayable yet; pull until one is, without consuming
		// the accumulator - the first frame is "free".
		if err := v.pullUntilFramePresent(); err != nil {
			slog.Warn("wallglass/video: initial pull failed", "error", err)
		}
	}

	v.updateDelay += delta
	advanced := 0
	for v.updateDelay >= v.currentFrameDuration() && !v.stopped {
		v.updateDelay -= v.currentFrameDuration()
		if err := v.NextFrame(); err != nil {
			slog.Warn("wallglass/video: next frame failed", "error", err)
			break
		}
		advanced++
	}
	return advanced
}

// NextFrame consumes the current frame and re-enters NoPacket, pulling
// until a new frame is present (or the stream stops).
func (v *Video) NextFrame() error {
	v.state = stateNoPacket
	v.framesPresented++
	return v.pullUntilFramePresent()
}

// pullUntilFramePresent runs the §4.4.1 state machine until a frame is
// present, the stream stops, or a fatal decode error occurs.
func (v *Video) pullUntilFramePresent() error {
	for v.state != stateFramePresent {
		switch v.state {
		case stateNoPacket:
			pkt, err := v.demuxer.ReadPacket()
			switch {
			case errors.Is(err, ErrEndOfStream):
				if !v.DoLoopVideo {
					v.stopped = true
					return nil
				}
				if err := v.demuxer.SeekStart(); err != nil {
					return fmt.Errorf("video: seek to start failed: %w", err)
				}
				continue
			case err != nil:
				// demuxer transient failure: skip this frame, keep the
				// last good display, and retry next Update tick.
				return fmt.Errorf("%w: %v", ErrDemuxerTransient, err)
			}
			if pkt.StreamIndex != v.demuxer.VideoStreamIndex() {
				continue // not our stream; keep pulling.
			}
			if err := v.decoder.Send(pkt); err != nil {
				return fmt.Errorf("video: decoder send failed: %w", err)
			}
			v.state = statePacketPending

		case statePacketPending:
			frame, err := v.decoder.Receive()
			switch {
			case errors.Is(err, ErrDecoderNeedsMore):
				v.state = stateNoPacket
			case err != nil:
				return fmt.Errorf("video: decoder receive failed: %w", err)
			default:
				v.frame = frame
				v.state = stateFramePresent
			}
		}
	}
	return nil
}
