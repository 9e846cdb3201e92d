// Command agentville runs and manages simulated worlds from the terminal.
// It is the external periodic driver the core requests but does not
// implement: run drives World.Tick from a wall-clock ticker.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// best effort; a missing .env is fine
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "agentville",
		Short:         "Run and manage agent simulation worlds",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("db", defaultDBPath(), "path to the sqlite world database")
	root.AddCommand(newRunCmd(), newWorldsCmd(), newExportCmd())
	return root
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "agentville.db"
	}
	return home + "/.agentville/worlds.db"
}
