package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/agentville/store/sqlite"
)

func newWorldsCmd() *cobra.Command {
	worlds := &cobra.Command{
		Use:   "worlds",
		Short: "Manage stored worlds",
	}
	worlds.AddCommand(newWorldsListCmd(), newWorldsRmCmd())
	return worlds
}

func newWorldsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored worlds",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dbPath, _ := cmd.Flags().GetString("db")
			st, err := sqlite.New(dbPath)
			if err != nil {
				return err
			}
			defer st.Close()

			metas, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(metas) == 0 {
				fmt.Println("no stored worlds")
				return nil
			}
			for _, m := range metas {
				name := m.Name
				if name == "" {
					name = "(unnamed)"
				}
				fmt.Printf("%s  %s  updated %s\n", m.ID, name, m.UpdatedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
}

func newWorldsRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <world-id>",
		Short: "Delete a stored world",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dbPath, _ := cmd.Flags().GetString("db")
			st, err := sqlite.New(dbPath)
			if err != nil {
				return err
			}
			defer st.Close()

			deleted, err := st.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !deleted {
				return fmt.Errorf("no stored world with id %q", args[0])
			}
			fmt.Printf("deleted %s\n", args[0])
			return nil
		},
	}
}
