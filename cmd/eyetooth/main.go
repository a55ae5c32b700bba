// Command eyetooth scans for nearby Bluetooth devices, reports which ones
// look like audio devices and plays audio from a YouTube link while an
// audio device is selected.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/ytget/eyetooth/internal/audio"
	"github.com/ytget/eyetooth/internal/config"
	"github.com/ytget/eyetooth/internal/console"
	"github.com/ytget/eyetooth/internal/download"
	"github.com/ytget/eyetooth/internal/media"
	"github.com/ytget/eyetooth/internal/platform"
	"github.com/ytget/eyetooth/internal/probe"
	"github.com/ytget/eyetooth/internal/radio"
	"github.com/ytget/eyetooth/internal/scanner"
	"github.com/ytget/eyetooth/internal/session"
	"github.com/ytget/eyetooth/internal/transcode"
)

var version = "dev"

func main() {
	settings, err := loadSettings(os.Args[0], os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Exit(run(settings))
}

// loadSettings applies defaults, then the YAML file named by -config, then
// the remaining flags.
func loadSettings(name string, args []string) (*config.Settings, error) {
	pre := flag.NewFlagSet(name, flag.ContinueOnError)
	pre.SetOutput(io.Discard)
	path := pre.String("config", "", "")
	config.NewSettings().RegisterFlags(pre)
	_ = pre.Parse(args) // the real flag set reports errors

	settings := config.NewSettings()
	if *path != "" {
		if err := settings.LoadFile(*path); err != nil {
			return nil, err
		}
	}

	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.String("config", *path, "Path to a YAML config file")
	settings.RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return settings, nil
}

func run(settings *config.Settings) int {
	term, err := console.NewTerminal()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer term.Close()

	setupLogging(term.Stderr(), settings.GetLogLevel())
	log.Info().Str("version", version).Msg("Starting eyetooth")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	adapter := radio.NewAdapter(settings.GetScanDuration())
	if err := adapter.Enable(); err != nil {
		// scans retry enabling and report the failure themselves
		log.Warn().Err(err).Msg("Bluetooth is not available yet")
	}

	dir := settings.GetDownloadDirectory()
	if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
		log.Error().Err(err).Str("dir", dir).Msg("Failed to prepare download directory")
		return 1
	}

	out := term.Stdout()
	prober := probe.New(adapter, out, settings.GetConnectTimeout())
	player := media.NewPlayer(
		download.NewService(settings.GetQualityPreset(), settings.GetInstallYTDLP()),
		transcode.NewService(settings.GetFFmpegPath(), settings.GetFFprobePath()),
		audio.NewSpeaker(),
		platform.NewPlaylistResolver(),
		out,
		dir,
		settings.GetTempBasename(),
	)
	selector := session.NewSelector(term, console.NewPresenter(out), player, out)
	menu := session.NewMenu(term, scanner.New(adapter, out), prober, selector, out)

	err = menu.Run(ctx)
	switch {
	case err == nil, errors.Is(err, console.ErrInputClosed), errors.Is(err, context.Canceled):
		log.Info().Msg("Bye")
		return 0
	default:
		log.Error().Err(err).Msg("Session ended")
		return 1
	}
}

func setupLogging(w io.Writer, level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
}
