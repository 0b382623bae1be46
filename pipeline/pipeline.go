package pipeline

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Status is the pipeline session state. Transitions follow the fixed order
// waiting, converting, uploading, generating, then success or error; no state
// is reachable out of order. The error state is recoverable: selecting a
// new file resets to waiting.
type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusConverting Status = "converting"
	StatusUploading  Status = "uploading"
	StatusGenerating Status = "generating"
	StatusSuccess    Status = "success"
	StatusError      Status = "error"
)

// Busy reports whether a pipeline session is in flight.
func (s Status) Busy() bool {
	return s == StatusConverting || s == StatusUploading || s == StatusGenerating
}

// Extractor turns a video file into a compact audio artifact.
type Extractor interface {
	Extract(ctx context.Context, videoPath string, onProgress func(float64)) (string, error)
	Probe(ctx context.Context, path string) (time.Duration, error)
}

// Uploader transfers the audio artifact and returns a durable video id.
type Uploader interface {
	UploadAudio(ctx context.Context, audioPath string) (string, error)
}

// Transcriber asks the server to transcribe an uploaded artifact.
type Transcriber interface {
	CreateTranscription(ctx context.Context, videoID, hint string) (string, error)
}

// Snapshot is a value copy of the controller state, safe to hand to a
// presentation layer.
type Snapshot struct {
	Status        Status
	File          string
	FileSize      int64
	Duration      time.Duration
	Progress      float64
	VideoID       string
	Transcription string
	Err           error
}

// Controller drives one upload session at a time through extract, upload
// and transcribe. It is a single-flight driver: a submit
// while a session is in flight is silently rejected, as is selecting a
// file. Stages run strictly in sequence in the calling goroutine; no
// stage is retried.
type Controller struct {
	extractor   Extractor
	uploader    Uploader
	transcriber Transcriber
	notify      func(Snapshot)
	logger      *logrus.Logger

	mu   sync.Mutex
	snap Snapshot
}

type Option func(*Controller)

// WithNotify registers an observer invoked after every state change.
func WithNotify(fn func(Snapshot)) Option {
	return func(c *Controller) { c.notify = fn }
}

func WithLogger(logger *logrus.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

func NewController(extractor Extractor, uploader Uploader, transcriber Transcriber, opts ...Option) *Controller {
	c := &Controller{
		extractor:   extractor,
		uploader:    uploader,
		transcriber: transcriber,
		logger:      logrus.StandardLogger(),
		snap:        Snapshot{Status: StatusWaiting},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snap
}

// SelectFile stores the source file reference and probes preview metadata.
// It resets a finished or failed session back to waiting. While a session
// is in flight the selection is ignored.
func (c *Controller) SelectFile(ctx context.Context, path string) {
	c.mu.Lock()
	if c.snap.Status.Busy() {
		c.mu.Unlock()
		return
	}
	c.snap = Snapshot{Status: StatusWaiting, File: path}
	c.mu.Unlock()

	// Preview metadata is advisory; probe failures leave the zero values.
	if info, err := os.Stat(path); err == nil {
		c.update(func(s *Snapshot) { s.FileSize = info.Size() })
	}
	if d, err := c.extractor.Probe(ctx, path); err == nil {
		c.update(func(s *Snapshot) { s.Duration = d })
	}

	c.emit()
}

// Submit runs the pipeline for the selected file. It is a no-op unless the
// controller is waiting and a file has been selected. Returns the terminal
// snapshot.
func (c *Controller) Submit(ctx context.Context, hint string) Snapshot {
	c.mu.Lock()
	if c.snap.Status != StatusWaiting || c.snap.File == "" {
		snap := c.snap
		c.mu.Unlock()
		return snap
	}
	c.snap.Status = StatusConverting
	file := c.snap.File
	c.mu.Unlock()
	c.emit()

	logger := c.logger.WithField("file", file)
	logger.Info("Pipeline started")

	audioPath, err := c.extractor.Extract(ctx, file, func(p float64) {
		c.update(func(s *Snapshot) { s.Progress = p })
		c.emit()
	})
	if err != nil {
		return c.fail(err)
	}
	defer os.Remove(audioPath)

	c.transition(StatusUploading)

	videoID, err := c.uploader.UploadAudio(ctx, audioPath)
	if err != nil {
		return c.fail(err)
	}
	// The file reference is only held until the upload completes.
	c.update(func(s *Snapshot) {
		s.VideoID = videoID
		s.File = ""
	})

	c.transition(StatusGenerating)

	text, err := c.transcriber.CreateTranscription(ctx, videoID, hint)
	if err != nil {
		return c.fail(err)
	}

	c.update(func(s *Snapshot) {
		s.Status = StatusSuccess
		s.Transcription = text
	})
	c.emit()

	logger.WithField("video_id", videoID).Info("Pipeline finished")
	return c.Snapshot()
}

func (c *Controller) transition(status Status) {
	c.update(func(s *Snapshot) { s.Status = status })
	c.emit()
}

func (c *Controller) fail(err error) Snapshot {
	c.update(func(s *Snapshot) {
		s.Status = StatusError
		s.Err = err
	})
	c.emit()

	c.logger.WithError(err).Error("Pipeline failed")
	return c.Snapshot()
}

func (c *Controller) update(fn func(*Snapshot)) {
	c.mu.Lock()
	fn(&c.snap)
	c.mu.Unlock()
}

func (c *Controller) emit() {
	if c.notify == nil {
		return
	}
	c.notify(c.Snapshot())
}
