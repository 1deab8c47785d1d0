package player

import (
	"encoding/binary"
	"errors"
	"io"
	"os/exec"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/llehouerou/go-mp3"
)

// ffmpegArgs builds the transcode command line. Input seeking (-ss before -i)
// lets ffmpeg skip ahead with range requests instead of decoding the prefix.
func ffmpegArgs(url string, offset time.Duration, sampleRate int) []string {
	args := []string{"-nostdin", "-hide_banner", "-loglevel", "error"}
	if offset > 0 {
		args = append(args, "-ss", strconv.FormatFloat(offset.Seconds(), 'f', 3, 64))
	}
	return append(args,
		"-reconnect", "1", "-reconnect_streamed", "1",
		"-i", url,
		"-vn",
		"-ac", "2",
		"-ar", strconv.Itoa(sampleRate),
		"-f", "mp3",
		"pipe:1",
	)
}

// mp3Decoder wraps llehouerou/go-mp3 to implement beep.Streamer over a pipe.
type mp3Decoder struct {
	decoder *mp3.Decoder
	format  beep.Format
	err     error
	readBuf []byte
	played  atomic.Int64
}

func decodeMP3(r io.Reader) (*mp3Decoder, error) {
	decoder, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, err
	}

	sampleRate := decoder.SampleRate()
	if sampleRate == 0 {
		return nil, errors.New("mp3: invalid sample rate")
	}

	return &mp3Decoder{
		decoder: decoder,
		format: beep.Format{
			SampleRate:  beep.SampleRate(sampleRate),
			NumChannels: 2,
			Precision:   2,
		},
		readBuf: make([]byte, 8192),
	}, nil
}

func (d *mp3Decoder) Stream(samples [][2]float64) (n int, ok bool) {
	if d.err != nil {
		return 0, false
	}

	// 4 bytes per sample (stereo 16-bit)
	bytesNeeded := len(samples) * 4
	if len(d.readBuf) < bytesNeeded {
		d.readBuf = make([]byte, bytesNeeded)
	}

	bytesRead, err := io.ReadFull(d.decoder, d.readBuf[:bytesNeeded])
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		d.err = err
		return 0, false
	}

	n = pcm16ToFloat(samples, d.readBuf[:bytesRead])
	if n == 0 {
		return 0, false
	}
	d.played.Add(int64(n))
	return n, true
}

func (d *mp3Decoder) Err() error { return d.err }

// Played returns the number of samples handed to the speaker so far.
func (d *mp3Decoder) Played() int { return int(d.played.Load()) }

// pcm16ToFloat converts interleaved little-endian stereo int16 frames into
// dst and returns the number of whole frames written.
func pcm16ToFloat(dst [][2]float64, src []byte) int {
	n := min(len(src)/4, len(dst))
	for i := range n {
		off := i * 4
		left := int16(binary.LittleEndian.Uint16(src[off:]))    //nolint:gosec // audio samples
		right := int16(binary.LittleEndian.Uint16(src[off+2:])) //nolint:gosec // audio samples
		dst[i][0] = float64(left) / 32768.0
		dst[i][1] = float64(right) / 32768.0
	}
	return n
}

// frameSource is what a stream decodes from once it is ready.
type frameSource interface {
	beep.Streamer
	Played() int
}

// stream is the beep.Streamer fed to the speaker for one load or seek.
// The decoder is opened in the background; until it is ready the stream
// yields silence so the speaker never blocks on the network.
type stream struct {
	offset time.Duration
	rate   beep.SampleRate

	ready  atomic.Pointer[frameSource]
	failed atomic.Bool
	closed atomic.Bool

	mu      sync.Mutex
	openErr error
	closer  func() error
}

func newStream(offset time.Duration, rate beep.SampleRate) *stream {
	return &stream{offset: offset, rate: rate}
}

// attach makes src the active decoder. Returns false if the stream was
// closed in the meantime.
func (s *stream) attach(src frameSource) bool {
	if s.closed.Load() {
		return false
	}
	s.ready.Store(&src)
	return true
}

// fail records an open error; the stream then ends on the next pull.
func (s *stream) fail(err error) {
	s.mu.Lock()
	s.openErr = err
	s.mu.Unlock()
	s.failed.Store(true)
}

func (s *stream) Stream(samples [][2]float64) (int, bool) {
	if src := s.ready.Load(); src != nil {
		return (*src).Stream(samples)
	}
	if s.failed.Load() || s.closed.Load() {
		return 0, false
	}
	clear(samples)
	return len(samples), true
}

func (s *stream) Err() error {
	if src := s.ready.Load(); src != nil {
		return (*src).Err()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.openErr
}

// Position returns the media position: seek offset plus samples played.
func (s *stream) Position() time.Duration {
	src := s.ready.Load()
	if src == nil {
		return s.offset
	}
	return s.offset + s.rate.D((*src).Played())
}

func (s *stream) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	s.mu.Lock()
	closer := s.closer
	s.mu.Unlock()
	if closer != nil {
		return closer()
	}
	return nil
}

// openFFmpeg starts the transcoder synchronously so a missing binary is
// reported by Load, then decodes its output in the background.
func openFFmpeg(
	bin, url string,
	offset time.Duration,
	rate beep.SampleRate,
	stderr io.Writer,
) (*stream, error) {
	cmd := exec.Command(bin, ffmpegArgs(url, offset, int(rate))...)
	cmd.Stderr = stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	s := newStream(offset, rate)
	s.closer = func() error {
		_ = cmd.Process.Kill()
		_ = stdout.Close()
		_ = cmd.Wait()
		return nil
	}

	go func() {
		dec, err := decodeMP3(stdout)
		if err != nil {
			s.fail(err)
			return
		}
		if dec.format.SampleRate != rate {
			s.fail(errors.New("mp3: unexpected sample rate " + strconv.Itoa(int(dec.format.SampleRate))))
			return
		}
		s.attach(dec)
	}()

	return s, nil
}
