package main

import (
	"context"
	"encoding/json"
	"fmt"

	"noteful/config"
	"noteful/model"
	"noteful/repository"
	"noteful/usecase"
	"noteful/utils"

	"github.com/spf13/cobra"
)

// noteStore is the part of repository.NotesRepo the CLI needs, seeding
// included.
type noteStore interface {
	usecase.NoteStore
	InsertNotes(ctx context.Context, notes []*model.Note) (int, error)
	DropNotes(ctx context.Context) error
}

type app struct {
	store  noteStore
	notes  *usecase.NotesService
	// disconnect releases whatever connect opened; nil when nothing is open.
	disconnect func(ctx context.Context) error
}

func NewRootCmd(version string, a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "notesctl",
		Short:         "Manage noteful notes directly in MongoDB",
		Long:          `Inspect, edit and seed the notes collection without going through the HTTP API.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.connect(cmd)
		},
	}

	addPersistentFlags(rootCmd)

	rootCmd.AddCommand(
		NewListCmd(a),
		NewGetCmd(a),
		NewCreateCmd(a),
		NewUpdateCmd(a),
		NewDeleteCmd(a),
		NewSeedCmd(a),
	)

	return rootCmd
}

func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("env-file", ".env", "Env file to load before reading the environment")
	cmd.PersistentFlags().String("mongo-uri", "", "MongoDB connection string (overrides MONGO_URI)")
	cmd.PersistentFlags().String("db", "", "Database name (overrides MONGO_DB)")
}

// connect opens the Mongo pool unless a store was injected already.
func (a *app) connect(cmd *cobra.Command) error {
	if a.store == nil {
		envFile, _ := cmd.Flags().GetString("env-file")
		cfg, err := config.Load(envFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if uri, _ := cmd.Flags().GetString("mongo-uri"); uri != "" {
			cfg.Database.URI = uri
		}
		if db, _ := cmd.Flags().GetString("db"); db != "" {
			cfg.Database.DatabaseName = db
		}
		utils.InitLogger(cfg.LogLevel, cmd.ErrOrStderr())

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Database.ConnectTimeout)
		defer cancel()
		client, err := utils.NewMongoClient(ctx, cfg.Database.ClientOptions())
		if err != nil {
			return fmt.Errorf("connect to MongoDB: %w", err)
		}

		repo := repository.GetNotesRepo(client, cfg.Database.DatabaseName, cfg.Database.Collection)
		repo.OpTimeout = cfg.Database.OpTimeout
		if err := repository.SetupIndexes(ctx, repo.MongoCollection); err != nil {
			_ = client.Disconnect(context.Background())
			return fmt.Errorf("create indexes: %w", err)
		}

		a.disconnect = client.Disconnect
		a.store = repo
	}
	if a.notes == nil {
		a.notes = &usecase.NotesService{NotesRepo: a.store}
	}
	return nil
}

// close runs after every command, failed ones included, since cobra skips
// post-run hooks when RunE errors.
func (a *app) close(ctx context.Context) error {
	if a.disconnect == nil {
		return nil
	}
	err := a.disconnect(ctx)
	a.disconnect = nil
	return err
}

func outputJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
