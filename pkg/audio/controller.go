// Package audio implements the alert sound controller: a looping, pulsing
// alarm tone with an independent lifecycle, started and stopped by the alarm
// state machine's effects.
package audio

import (
	"bytes"
	"errors"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/google/uuid"

	"github.com/borgmon/daybreak/pkg/logger"
)

// ErrUnavailable reports that the audio subsystem could not be initialized.
// Callers treat sound as best-effort: the alarm still rings visually.
var ErrUnavailable = errors.New("audio output unavailable")

// Global audio context singleton. oto supports a single context per process.
var (
	globalCtx     *oto.Context
	globalCtxOnce sync.Once
	ctxReady      bool
)

// initContext initializes the global audio context once. The first call
// blocks until the hardware audio device reports ready; on some platforms
// this only succeeds once the process has an active user session, so the
// first alarm may start from a user-triggered code path.
func initContext() error {
	globalCtxOnce.Do(func() {
		op := &oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 1,
			Format:       oto.FormatSignedInt16LE,
		}

		ctx, readyChan, err := oto.NewContext(op)
		if err != nil {
			logger.Errorf("failed to initialize audio context: %v", err)
			return
		}

		// Wait for the hardware audio devices to be ready.
		<-readyChan

		globalCtx = ctx
		ctxReady = true
		logger.Infof("audio context initialized")
	})

	if !ctxReady || globalCtx == nil {
		return ErrUnavailable
	}
	return nil
}

// Controller manages the alert sound session. Start and Stop are idempotent;
// at most one session plays at a time, and stopping releases everything the
// session created.
type Controller struct {
	mu      sync.Mutex
	session *session
}

// NewController creates an idle controller.
func NewController() *Controller {
	return &Controller{}
}

// Start begins the looping alert tone. Calling Start while a session is
// already active is a no-op. Returns ErrUnavailable when the audio subsystem
// cannot start; no session is created in that case.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session != nil {
		return nil
	}

	if err := initContext(); err != nil {
		return err
	}

	s := &session{
		id:       uuid.New().String(),
		stopChan: make(chan struct{}),
	}
	c.session = s

	go s.playLoop(alertPattern())

	logger.InfoKV("alert sound started", "session", s.id)
	return nil
}

// Stop ends the active session, if any, and releases its audio resources.
// Safe to call repeatedly and before any Start.
func (c *Controller) Stop() {
	c.mu.Lock()
	s := c.session
	c.session = nil
	c.mu.Unlock()

	if s == nil {
		return
	}

	s.stop()
	logger.InfoKV("alert sound stopped", "session", s.id)
}

// Active reports whether a sound session is currently running.
func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session != nil
}

// session is one run of the looping alert tone. All of its resources are
// created on start and released on stop; nothing persists between sessions.
type session struct {
	id       string
	stopChan chan struct{}
	player   *oto.Player

	mu      sync.Mutex
	stopped bool
}

func (s *session) playLoop(pcm []byte) {
	for {
		// A fresh player per iteration; oto players are single-shot.
		player := globalCtx.NewPlayer(bytes.NewReader(pcm))

		// Published under the lock so stop() can pause the current player.
		s.mu.Lock()
		s.player = player
		s.mu.Unlock()

		player.Play()

		for player.IsPlaying() {
			select {
			case <-s.stopChan:
				player.Pause()
				player.Close()
				return
			case <-time.After(10 * time.Millisecond):
			}
		}

		if err := player.Close(); err != nil {
			logger.Warnf("failed to close audio player: %v", err)
		}

		select {
		case <-s.stopChan:
			return
		default:
		}
	}
}

func (s *session) stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.stopped = true
	close(s.stopChan)

	if s.player != nil {
		s.player.Pause()
	}
}
