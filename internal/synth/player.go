package synth

import (
	"encoding/binary"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// DeviceSampleRate and DeviceBlockFrames are the audio device contract
// from spec.md §4.5/§6.2: mono f32 output at 22050 Hz, 512-frame blocks.
const (
	DeviceSampleRate  = 22050
	DeviceBlockFrames = 512
)

// Player is the real-time audio output device: an unbounded
// producer/consumer queue plus an internal buffer, feeding an
// ebiten/v2/audio.Player (backed by ebitengine/oto) through an
// io.Reader bridge, grounded on the teacher's internal/ui/audio.go
// apuStream and original_source/qns/synth/player.py's AudioPlayer.
//
// ebiten's audio.Player consumes 16-bit little-endian PCM, stereo
// interleaved, at the context's sample rate; Read duplicates the mono
// stream to both channels, the same stereo-duplication apuStream
// performs for its mono fallback path.
type Player struct {
	mu      sync.Mutex
	queue   [][]float32
	buffer  []float32
	playing bool

	ctx    *audio.Context
	stream *audio.Player
}

// NewPlayer constructs a Player bound to the given ebiten audio
// context. ctx may be nil in tests that only exercise the queue/buffer
// logic without opening a real device.
func NewPlayer(ctx *audio.Context) *Player {
	return &Player{ctx: ctx}
}

// Start opens the output device. Safe to call multiple times.
func (p *Player) Start() error {
	p.mu.Lock()
	already := p.stream != nil
	ctx := p.ctx
	p.mu.Unlock()
	if already || ctx == nil {
		return nil
	}
	stream, err := ctx.NewPlayer(p)
	if err != nil {
		return err
	}
	stream.Play()
	p.mu.Lock()
	p.stream = stream
	p.mu.Unlock()
	return nil
}

// Stop closes the device and drains the queue and internal buffer. It
// never waits for the emulation thread; pending samples are discarded.
func (p *Player) Stop() {
	p.mu.Lock()
	stream := p.stream
	p.stream = nil
	p.queue = nil
	p.buffer = nil
	p.playing = false
	p.mu.Unlock()
	if stream != nil {
		_ = stream.Pause()
		_ = stream.Close()
	}
}

// Play enqueues a contiguous block of float32 samples (-1.0 to 1.0) for
// playback. Never blocks: the queue is unbounded (memory-bounded by
// the rate of phoneme emission, per spec.md §5).
func (p *Player) Play(samples []float32) {
	if len(samples) == 0 {
		return
	}
	p.mu.Lock()
	p.queue = append(p.queue, samples)
	p.mu.Unlock()
}

// IsPlaying reports whether the device is open and producing, or
// whether samples remain queued or buffered.
func (p *Player) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing || len(p.queue) > 0 || len(p.buffer) > 0
}

// Read implements io.Reader for the audio thread: it drains queued
// blocks into the internal buffer until at least frames samples are
// available or the queue is empty, converts to 16-bit stereo PCM, and
// pads the tail with silence on underrun rather than blocking the
// caller (spec.md §4.5: "glitching over blocking is the correct choice
// for an emulator").
func (p *Player) Read(out []byte) (int, error) {
	if len(out) < 4 {
		for i := range out {
			out[i] = 0
		}
		return len(out), nil
	}
	frames := len(out) / 4

	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.buffer) < frames && len(p.queue) > 0 {
		p.buffer = append(p.buffer, p.queue[0]...)
		p.queue = p.queue[1:]
	}

	available := len(p.buffer)
	n := frames
	if available < n {
		n = available
	}

	i := 0
	for ; i < n; i++ {
		v := int16(p.buffer[i] * 32767)
		binary.LittleEndian.PutUint16(out[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(v))
	}
	for ; i < frames; i++ {
		binary.LittleEndian.PutUint16(out[i*4:], 0)
		binary.LittleEndian.PutUint16(out[i*4+2:], 0)
	}
	p.buffer = p.buffer[n:]
	p.playing = n > 0

	return frames * 4, nil
}
