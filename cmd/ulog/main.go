package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/DarryZh/ulog"
	"github.com/DarryZh/ulog/pkg/backends"
	"github.com/DarryZh/ulog/pkg/platform"
)

func main() {
	app := &cli.Command{
		Name:  "ulog",
		Usage: "Demo driver for the ulog logging facility",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "TOML config file path",
			},
			&cli.StringFlag{
				Name:  "file",
				Usage: "Also write log lines to this file",
			},
			&cli.StringFlag{
				Name:  "nats",
				Usage: "Publish log lines to this NATS URL",
			},
			&cli.StringFlag{
				Name:  "subject",
				Usage: "NATS subject for published lines",
				Value: backends.DefaultNATSSubject,
			},
			&cli.StringFlag{
				Name:  "platform",
				Usage: "Platform variant: posix, rtos or noos",
				Value: "posix",
			},
		},
		Commands: []*cli.Command{
			demoCommand(),
			watchCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func demoCommand() *cli.Command {
	return &cli.Command{
		Name:  "demo",
		Usage: "Emit sample lines at every severity plus buffer dumps",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			logger, cleanup, err := buildLogger(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			logger.Errorf("main", "flash write failed at 0x%08x", 0x1000)
			logger.Warnf("wifi", "rssi low: %d dBm", -87)
			logger.Infof("main", "boot complete after %d ms", 412)
			logger.Debugf("heap", "free=%d largest=%d", 182344, 65536)
			logger.Verbosef("wifi", "beacon seen, bssid=%s", "aa:bb:cc:dd:ee:ff")

			payload := []byte("ESP32 is great, working along with the IDF.\x00")
			logger.DumpHexdump("dump", payload, ulog.LevelInfo)
			logger.DumpHexInfo("dump", payload[:8])
			return nil
		},
	}
}

func watchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Emit a heartbeat each second, reloading levels when the config file changes",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			path := cmd.String("config")
			if path == "" {
				return fmt.Errorf("watch requires --config")
			}
			logger, cleanup, err := buildLogger(cmd)
			if err != nil {
				return err
			}
			defer cleanup()

			watcher, err := ulog.WatchConfig(logger, path, func(err error) {
				fmt.Fprintf(os.Stderr, "config reload: %v\n", err)
			})
			if err != nil {
				return err
			}
			defer watcher.Close()

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
			defer stop()

			ticker := time.NewTicker(time.Second)
			defer ticker.Stop()
			for n := 0; ; n++ {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					logger.Infof("heartbeat", "tick %d", n)
					logger.Debugf("heartbeat", "tick %d (debug)", n)
				}
			}
		},
	}
}

// buildLogger assembles a Logger from the config file and flags. The
// returned cleanup restores the default sink and closes any backend.
func buildLogger(cmd *cli.Command) (*ulog.Logger, func(), error) {
	var opts []ulog.Option

	var cfg *ulog.Config
	if path := cmd.String("config"); path != "" {
		loaded, err := ulog.LoadConfig(path)
		if err != nil {
			return nil, nil, err
		}
		cfg = loaded
		cfgOpts, err := cfg.Options()
		if err != nil {
			return nil, nil, err
		}
		opts = append(opts, cfgOpts...)
	}

	switch cmd.String("platform") {
	case "posix":
		opts = append(opts, ulog.WithPlatform(platform.NewPOSIX()))
	case "rtos":
		rtos := platform.NewRTOS()
		rtos.StartScheduler()
		opts = append(opts, ulog.WithPlatform(rtos))
	case "noos":
		opts = append(opts, ulog.WithPlatform(platform.NewNoOS()))
	default:
		return nil, nil, fmt.Errorf("unknown platform %q", cmd.String("platform"))
	}

	logger := ulog.New(opts...)
	if cfg != nil {
		if err := cfg.Apply(logger); err != nil {
			return nil, nil, err
		}
	}

	cleanup := func() {}
	switch {
	case cmd.String("file") != "":
		backend, err := backends.NewFileBackend(cmd.String("file"))
		if err != nil {
			return nil, nil, err
		}
		old := logger.SetSink(backend.Sink())
		cleanup = func() {
			logger.SetSink(old)
			backend.Close() //nolint:errcheck
		}
	case cmd.String("nats") != "":
		backend, err := backends.NewNATSBackend(cmd.String("nats"), cmd.String("subject"))
		if err != nil {
			return nil, nil, err
		}
		old := logger.SetSink(backend.Sink())
		cleanup = func() {
			logger.SetSink(old)
			backend.Close() //nolint:errcheck
		}
	}
	return logger, cleanup, nil
}
