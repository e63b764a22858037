package main

import (
	"fmt"

	"noteful/db/seed"
	"noteful/model"

	"github.com/spf13/cobra"
)

func NewSeedCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load sample notes",
		Long: `Insert the bundled sample notes, or the notes in --file, into the collection.
With --drop the collection is emptied first, which makes the command repeatable.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			file, _ := cmd.Flags().GetString("file")
			drop, _ := cmd.Flags().GetBool("drop")

			var (
				notes []*model.Note
				err   error
			)
			if file != "" {
				notes, err = seed.Load(file)
			} else {
				notes, err = seed.Notes()
			}
			if err != nil {
				return err
			}

			if drop {
				if err := a.store.DropNotes(cmd.Context()); err != nil {
					return fmt.Errorf("drop notes: %w", err)
				}
			}

			n, err := a.store.InsertNotes(cmd.Context(), notes)
			if err != nil {
				return fmt.Errorf("seed notes: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "inserted %d notes\n", n)
			return nil
		},
	}

	cmd.Flags().StringP("file", "f", "", "YAML file with notes (defaults to the bundled set)")
	cmd.Flags().Bool("drop", false, "Drop the collection before inserting")
	return cmd
}
