package main

import (
	"fmt"

	"noteful/dto"

	"github.com/spf13/cobra"
)

func NewListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notes",
		Long:    `List every note oldest first, or the notes matching --search ranked by relevance.`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			searchTerm, _ := cmd.Flags().GetString("search")

			notes, err := a.notes.ListNotes(cmd.Context(), searchTerm)
			if err != nil {
				return fmt.Errorf("list notes: %w", err)
			}
			return outputJSON(cmd, dto.ToNoteResponses(notes))
		},
	}

	cmd.Flags().StringP("search", "s", "", "Full-text search term")
	return cmd
}

func NewGetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a single note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			note, err := a.notes.GetNote(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get note: %w", err)
			}
			return outputJSON(cmd, dto.ToNoteResponse(note))
		},
	}
}

func addNoteFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("title", "t", "", "Note title (required)")
	cmd.Flags().StringP("content", "c", "", "Note body")
}

func NewCreateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			title, _ := cmd.Flags().GetString("title")
			content, _ := cmd.Flags().GetString("content")

			note, err := a.notes.CreateNote(cmd.Context(), title, content)
			if err != nil {
				return fmt.Errorf("create note: %w", err)
			}
			return outputJSON(cmd, dto.ToNoteResponse(note))
		},
	}

	addNoteFlags(cmd)
	return cmd
}

func NewUpdateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace the title and content of a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, _ := cmd.Flags().GetString("title")
			content, _ := cmd.Flags().GetString("content")

			note, err := a.notes.UpdateNote(cmd.Context(), args[0], title, content)
			if err != nil {
				return fmt.Errorf("update note: %w", err)
			}
			return outputJSON(cmd, dto.ToNoteResponse(note))
		},
	}

	addNoteFlags(cmd)
	return cmd
}

func NewDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.notes.DeleteNote(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete note: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}
