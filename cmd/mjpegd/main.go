package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"

	"github.com/lanikai/mjpegcast"
	"github.com/lanikai/mjpegcast/internal/capture"
	"github.com/lanikai/mjpegcast/internal/cliconfig"
	"github.com/lanikai/mjpegcast/internal/logging"
)

// Populated via -ldflags="-X ...".
var GitRevisionId string

var log = logging.New("mjpegd")

func main() {
	flag.Parse()

	if flagHelp {
		help()
		os.Exit(0)
	}
	if flagVersion {
		version()
		os.Exit(0)
	}

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	// Without a working source there is nothing to serve.
	src, err := capture.OpenSource(cfg.Source, capture.Config{
		Width:  cfg.Width,
		Height: cfg.Height,
		FPS:    cfg.FPS,
	})
	if err != nil {
		log.Fatalf("Cannot open capture source: %v", err)
	}
	defer src.Close()

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		log.Fatalf("Cannot bind %s: %v", cfg.Addr, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b := mjpegcast.NewBroadcaster(cfg.QueueCapacity)
	enc := mjpegcast.JPEGEncoder{Quality: cfg.Quality}

	loop := mjpegcast.NewCaptureLoop(src, enc, b, cfg)
	done := make(chan struct{})
	go func() {
		loop.Run(ctx)
		close(done)
	}()

	srv := mjpegcast.NewServer(b, enc, cfg)
	if err := srv.Serve(ctx, ln); err != nil {
		log.Error("Server: %v", err)
	}
	stop()
	<-done

	st, cs := b.Stats(), loop.Stats()
	log.Info("Published %d frames, dropped %d slow clients, %d capture and %d encode failures",
		st.Published, st.Pruned, cs.CaptureErrors, cs.EncodeErrors)
}

// loadConfig combines defaults, the optional config file and command-line
// flags, in increasing order of precedence.
func loadConfig() (mjpegcast.Config, error) {
	cfg := mjpegcast.DefaultConfig()
	cfg.Width = flagWidth
	cfg.Height = flagHeight
	cfg.FPS = flagFPS
	cfg.Source = flagInput
	cfg.Quality = flagQuality
	cfg.QueueCapacity = flagQueue
	cfg.Addr = flagListen
	cfg.MaxClients = flagMaxClients

	d, err := time.ParseDuration(flagWriteTimeout)
	if err != nil {
		return cfg, errors.Wrap(err, "--write-timeout")
	}
	cfg.WriteTimeout = d

	path := flagConfig
	if path == "" {
		if p := cliconfig.DefaultConfigPath(); p != "" && cliconfig.FileExists(p) {
			path = p
		}
	}
	if path != "" {
		fc, err := cliconfig.LoadFileConfig(path)
		if err != nil {
			return cfg, errors.Wrap(err, "config file")
		}
		changed := make(map[string]bool)
		flag.Visit(func(f *flag.Flag) { changed[f.Name] = true })
		if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
			return cfg, errors.Wrapf(err, "config file %s", path)
		}
		log.Info("Loaded configuration from %s", path)
	}

	return cfg, cfg.Validate()
}
