// Package record implements the record subcommand: run the rolling capture
// and save the trailing window to a clip file whenever a trigger arrives.
package record

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/tphakala/replay-go/internal/conf"
	"github.com/tphakala/replay-go/internal/errors"
	"github.com/tphakala/replay-go/internal/logging"
	"github.com/tphakala/replay-go/internal/myaudio"
	"github.com/tphakala/replay-go/internal/observability"
)

// fillUpdateInterval controls how often the buffer fill gauge is refreshed.
const fillUpdateInterval = 5 * time.Second

// captureSession tracks the goroutines of one capture run so a restart waits
// only for them, not for unrelated long-lived goroutines.
type captureSession struct {
	quit chan struct{}
	wg   sync.WaitGroup
}

// stop signals the session's goroutines and waits until they have exited.
func (s *captureSession) stop() {
	close(s.quit)
	s.wg.Wait()
}

// Command returns the record subcommand.
func Command(settings *conf.Settings) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Capture audio and save the trailing window on demand",
		Long: "Captures audio from the configured source, keeping only the most recent window in memory. " +
			"Press Enter or send SIGUSR1 to save the buffered window to a clip file. Ctrl-C stops.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecord(settings)
		},
	}
	return cmd
}

func runRecord(settings *conf.Settings) error {
	log := logging.ForService("record")
	if log == nil {
		log = slog.Default()
	}

	rc := myaudio.NewRollingCapture(settings.Capture.WindowSeconds)

	// The metrics endpoint goroutines run until quitChan closes and wait on
	// their own group; a capture session waits on its own. Restarting a dead
	// capture session must never wait on endpoint goroutines that only exit
	// at shutdown.
	var endpointWg sync.WaitGroup
	quitChan := make(chan struct{})
	var metrics *observability.CaptureMetrics

	if settings.Metrics.Enabled {
		var err error
		metrics, err = observability.NewCaptureMetrics(prometheus.NewRegistry())
		if err != nil {
			return fmt.Errorf("failed to create capture metrics: %w", err)
		}
		myaudio.SetCaptureMetrics(metrics)
		metrics.UpdateWindowSeconds(rc.WindowSeconds())

		endpoint, err := observability.NewEndpoint(settings, metrics)
		if err != nil {
			return err
		}
		endpoint.Start(&endpointWg, quitChan)
	}

	// Save triggers: a line on stdin, or SIGUSR1 on unix.
	saveChan := make(chan struct{}, 1)
	go watchStdin(saveChan)
	notifySaveSignal(saveChan)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	audioLevelChan := make(chan myaudio.AudioLevelData, 10)
	restartChan := make(chan struct{}, 1)

	startCapture := func() *captureSession {
		sess := &captureSession{quit: make(chan struct{})}
		myaudio.CaptureAudio(settings, rc, &sess.wg, sess.quit, restartChan, audioLevelChan)
		return sess
	}
	sess := startCapture()

	fillTicker := time.NewTicker(fillUpdateInterval)
	defer fillTicker.Stop()

	log.Info("recording started",
		"window_seconds", settings.Capture.WindowSeconds,
		"source", settings.Capture.Source,
		"export_path", settings.Export.Path)

	for {
		select {
		case <-sigChan:
			log.Info("shutting down")
			sess.stop()
			close(quitChan)
			endpointWg.Wait()
			return nil

		case <-restartChan:
			log.Warn("capture died, restarting")
			sess.stop()
			sess = startCapture()

		case <-saveChan:
			exportClip(settings, rc, metrics, log)

		case level := <-audioLevelChan:
			if settings.Debug && level.Clipping {
				log.Debug("input clipping", "level", level.Level)
			}

		case <-fillTicker.C:
			if metrics != nil {
				metrics.UpdateBufferFill(rc.BufferFill())
			}
		}
	}
}

func exportClip(settings *conf.Settings, rc *myaudio.RollingCapture, metrics *observability.CaptureMetrics, log *slog.Logger) {
	clip, err := rc.ExportSnapshot()
	if err != nil {
		if errors.Is(err, myaudio.ErrCaptureBufferEmpty) {
			log.Warn("nothing to save yet, no audio buffered")
		} else {
			log.Error("snapshot export failed", "error", err)
		}
		if metrics != nil {
			metrics.RecordExport("error", 0)
		}
		return
	}

	path := myaudio.ClipFileName(settings.Export.Path, "wav", time.Now())
	if err := myaudio.SaveClipToWAV(path, clip); err != nil {
		log.Error("saving clip failed", "error", err, "path", path)
		if metrics != nil {
			metrics.RecordExport("error", 0)
		}
		return
	}

	if metrics != nil {
		metrics.RecordExport("success", clip.Duration.Seconds())
	}
	log.Info("clip saved",
		"path", path,
		"duration", clip.Duration.Round(time.Millisecond).String(),
		"sample_rate", clip.SampleRate)
}

// watchStdin turns every line on stdin into a save trigger.
func watchStdin(saveChan chan<- struct{}) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		select {
		case saveChan <- struct{}{}:
		default:
		}
	}
}
