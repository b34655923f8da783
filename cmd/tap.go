package cmd

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/eiannone/keyboard"
	"github.com/gosuri/uilive"
	"github.com/jsphweid/musixbooth/clock"
	"github.com/jsphweid/musixbooth/db"
	"github.com/jsphweid/musixbooth/logger"
	"github.com/jsphweid/musixbooth/model"
	"github.com/jsphweid/musixbooth/tapper"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(tapCmd)
}

var tapCmd = &cobra.Command{
	Use:   "tap",
	Short: "Tap a tempo on the keyboard",
	Long: `Tap space or enter in rhythm to measure the tempo. Press r to reset and
q or esc to quit. The session resets itself after a few seconds without a
tap, and the last tempo is remembered for the delay command.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTap()
	},
}

func FormatTempo(s model.TempoState) string {
	if !s.Defined {
		return fmt.Sprintf("BPM: --   (taps: %d)", s.Taps)
	}
	return fmt.Sprintf("BPM: %d   (taps: %d)", s.BPM, s.Taps)
}

func runTap() error {
	store, err := openStore()
	if err != nil {
		logger.Warnf("tempo will not be saved: %v", err)
		store = db.NewMemoryStore()
	}
	defer store.Close()

	saver := db.NewDebouncedSaver(store, cfg.Store.SaveDebounce())
	defer func() {
		if err := saver.Flush(context.Background()); err != nil {
			logger.Warnf("could not persist tempo: %v", err)
		}
	}()

	writer := uilive.New()
	writer.Start()
	defer writer.Stop()

	// log lines go above the live BPM line instead of overwriting it
	logger.Default().SetOutput(writer.Bypass())
	defer logger.Default().SetOutput(os.Stderr)

	est := tapper.New(cfg.Tapper.Estimator(), clock.New())
	defer est.Dispose()

	var mu sync.Mutex
	render := func(s model.TempoState) {
		mu.Lock()
		defer mu.Unlock()
		fmt.Fprintln(writer, FormatTempo(s))
	}
	est.OnExpire(render)

	if err := keyboard.Open(); err != nil {
		return errors.Wrap(err, "opening keyboard")
	}
	defer keyboard.Close()

	render(est.State())
	for {
		char, key, err := keyboard.GetKey()
		if err != nil {
			return errors.Wrap(err, "reading key")
		}
		switch {
		case key == keyboard.KeyEsc || key == keyboard.KeyCtrlC || char == 'q':
			return nil
		case key == keyboard.KeySpace || key == keyboard.KeyEnter || char == 't':
			s := est.Tap()
			if s.Defined {
				saver.Save(s.BPM)
			}
			render(s)
		case char == 'r':
			est.Reset()
			render(est.State())
		}
	}
}
