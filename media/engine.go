package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	apperrors "github.com/lucasbecker/upload-ai/errors"
)

// Target format for extracted audio: audio stream only, low-bitrate mp3.
// Matches what the transcription backend expects.
const (
	audioBitrate = "20k"
	audioCodec   = "libmp3lame"
)

type Config struct {
	FFmpegPath  string
	FFprobePath string
	TempDir     string
}

// Engine wraps the ffmpeg transcoder. Binary lookup happens lazily exactly
// once; the engine runs one job at a time, callers queue on its mutex.
// Multiple engines in separate processes do not serialize against each
// other.
type Engine struct {
	cfg Config
	run runner

	initOnce sync.Once
	initErr  error
	ffmpeg   string
	ffprobe  string

	mu sync.Mutex
}

func New(cfg Config) *Engine {
	if cfg.TempDir == "" {
		cfg.TempDir = os.TempDir()
	}
	return &Engine{cfg: cfg, run: execRunner{}}
}

var (
	sharedOnce sync.Once
	shared     *Engine
)

// Shared returns the process-wide engine.
func Shared() *Engine {
	sharedOnce.Do(func() {
		shared = New(Config{})
	})
	return shared
}

func (e *Engine) ensureInit() error {
	e.initOnce.Do(func() {
		e.ffmpeg = e.cfg.FFmpegPath
		e.ffprobe = e.cfg.FFprobePath

		if e.ffmpeg == "" {
			path, err := exec.LookPath("ffmpeg")
			if err != nil {
				e.initErr = errors.Wrap(err, "locate ffmpeg")
				return
			}
			e.ffmpeg = path
		}
		if e.ffprobe == "" {
			path, err := exec.LookPath("ffprobe")
			if err != nil {
				e.initErr = errors.Wrap(err, "locate ffprobe")
				return
			}
			e.ffprobe = path
		}
	})
	return e.initErr
}

// Extract pulls the audio stream out of the video at videoPath into a fresh
// mp3 file and returns its path. The input file is never modified.
// onProgress is advisory: it receives floats in [0,1] and may be nil.
func (e *Engine) Extract(ctx context.Context, videoPath string, onProgress func(float64)) (string, error) {
	const op = "Engine.Extract"

	if err := e.ensureInit(); err != nil {
		return "", apperrors.Conversion(op, err, "transcoder initialization failed")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	// Duration probe feeds the progress ratio; without it progress is
	// simply not reported.
	duration, _ := e.probe(ctx, videoPath)

	out := filepath.Join(e.cfg.TempDir, "audio-"+uuid.New().String()+".mp3")
	args := []string{
		"-y",
		"-i", videoPath,
		"-map", "0:a",
		"-b:a", audioBitrate,
		"-acodec", audioCodec,
		"-nostats",
		"-loglevel", "error",
		"-progress", "pipe:1",
		out,
	}

	if err := e.run.Run(ctx, e.ffmpeg, args, progressParser(duration, onProgress)); err != nil {
		os.Remove(out)
		return "", apperrors.Conversion(op, err, "audio extraction failed")
	}

	info, err := os.Stat(out)
	if err != nil || info.Size() == 0 {
		os.Remove(out)
		return "", apperrors.Conversion(op, err, "transcoder produced no audio")
	}

	if onProgress != nil {
		onProgress(1)
	}
	return out, nil
}

// Probe returns the duration of the first audio stream.
func (e *Engine) Probe(ctx context.Context, path string) (time.Duration, error) {
	const op = "Engine.Probe"

	if err := e.ensureInit(); err != nil {
		return 0, apperrors.Conversion(op, err, "transcoder initialization failed")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	return e.probe(ctx, path)
}

func (e *Engine) probe(ctx context.Context, path string) (time.Duration, error) {
	const op = "Engine.probe"

	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}

	var lines []string
	err := e.run.Run(ctx, e.ffprobe, args, func(line string) {
		lines = append(lines, strings.TrimSpace(line))
	})
	if err != nil {
		return 0, apperrors.Conversion(op, err, "failed to probe media")
	}
	if len(lines) == 0 {
		return 0, apperrors.Conversion(op, nil, "probe returned no duration")
	}

	seconds, err := strconv.ParseFloat(lines[0], 64)
	if err != nil {
		return 0, apperrors.Conversion(op, err, fmt.Sprintf("unexpected probe output: %q", lines[0]))
	}

	return time.Duration(seconds * float64(time.Second)), nil
}

// progressParser turns ffmpeg -progress key=value output into a ratio.
// out_time_ms is microseconds despite the name.
func progressParser(total time.Duration, onProgress func(float64)) func(string) {
	if onProgress == nil || total <= 0 {
		return nil
	}
	return func(line string) {
		value, ok := strings.CutPrefix(line, "out_time_ms=")
		if !ok {
			return
		}
		us, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return
		}
		ratio := float64(us) / 1e6 / total.Seconds()
		if ratio < 0 {
			ratio = 0
		}
		if ratio > 1 {
			ratio = 1
		}
		onProgress(ratio)
	}
}
