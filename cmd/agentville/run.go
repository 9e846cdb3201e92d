package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/agentville"
	"github.com/hupe1980/agentville/core"
	"github.com/hupe1980/agentville/logging"
	"github.com/hupe1980/agentville/store/sqlite"
	"github.com/hupe1980/agentville/world"
)

func newRunCmd() *cobra.Command {
	var (
		templatePath string
		worldID      string
		speed        float64
		interval     time.Duration
		saveEvery    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a world from a YAML template, ticking on a wall-clock timer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dbPath, _ := cmd.Flags().GetString("db")
			st, err := sqlite.New(dbPath)
			if err != nil {
				return err
			}
			defer st.Close()

			tmpl, err := world.LoadTemplateFile(templatePath)
			if err != nil {
				return err
			}

			logger := logging.NewSlogLogger(logging.LogLevelInfo, "text", false)
			mgr := agentville.New(func(o *agentville.Options) {
				o.Store = st
				o.Logger = logger
			})
			mgr.RegisterTemplate("default", tmpl)

			ctx := cmd.Context()
			var w *world.World
			if worldID != "" {
				w, err = mgr.LoadWorld(ctx, worldID, "default")
				if err != nil {
					return err
				}
			} else {
				w, err = mgr.CreateWorld("default")
				if err != nil {
					return err
				}
			}

			w.Bus().SubscribeAll(func(ev core.Event) {
				switch ev.Type {
				case core.EventTimeTick:
					// too chatty for the terminal
				default:
					fmt.Printf("[%s] %v\n", ev.Type, ev.Payload)
				}
			})

			w.SetSpeed(speed)
			w.Start()
			fmt.Printf("world %s running at %s (speed %.1f); ctrl-c to stop\n", w.ID, w.Clock().Time(), w.Clock().Speed())

			runLoop(ctx, mgr, w, logger, interval, saveEvery)

			done := logger.StartTimer("final_save")
			saveErr := mgr.SaveWorld(context.Background(), w.ID)
			done()
			return saveErr
		},
	}

	cmd.Flags().StringVar(&templatePath, "template", "world.yaml", "world template file")
	cmd.Flags().StringVar(&worldID, "world", "", "resume a stored world by id")
	cmd.Flags().Float64Var(&speed, "speed", 1, "simulated minutes per tick")
	cmd.Flags().DurationVar(&interval, "interval", time.Second, "wall-clock time between ticks")
	cmd.Flags().DurationVar(&saveEvery, "save-every", time.Minute, "autosave interval")
	return cmd
}

// runLoop drives ticks and autosaves until the context is cancelled or an
// interrupt arrives.
func runLoop(ctx context.Context, mgr *agentville.Manager, w *world.World, logger *logging.SimLogger, interval, saveEvery time.Duration) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	saver := time.NewTicker(saveEvery)
	defer saver.Stop()

	for {
		select {
		case <-ticker.C:
			start := time.Now()
			w.Tick()
			now := w.Clock().Time()
			logger.LogTick(now.Day, now.Hour, now.Minute, w.Clock().Speed(), time.Since(start))
		case <-saver.C:
			start := time.Now()
			err := mgr.SaveWorld(ctx, w.ID)
			logger.LogPersistence("save", w.ID, time.Since(start), err)
			if err != nil {
				fmt.Fprintf(os.Stderr, "autosave failed: %v\n", err)
			}
		case <-stop:
			fmt.Println("\nstopping")
			w.Pause()
			return
		case <-ctx.Done():
			w.Pause()
			return
		}
	}
}
