package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/tutor/internal/catalog"
	"github.com/abhisek/tutor/internal/config"
	"github.com/abhisek/tutor/internal/state"
	"github.com/abhisek/tutor/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "tutor",
	Short: "AI tutor chat",
	Long:  "Tutor: pick a subject and a difficulty, ask questions, answer the ones it asks back, and track your progress.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is normal; a malformed one is not.
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load .env: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides TUTOR_DB env var)")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to YAML config file (overrides TUTOR_CONFIG env var)")
	rootCmd.Flags().String("subject", "", "Preselect a subject by ID (see `tutor subjects`)")
	rootCmd.Flags().String("difficulty", "", "Preselect a difficulty: beginner, intermediate or advanced")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(subjectsCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then TUTOR_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// loadConfig reads the config named by --config, then TUTOR_CONFIG.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = os.Getenv("TUTOR_CONFIG")
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// applyPreselection copies --subject and --difficulty into sel.
func applyPreselection(cmd *cobra.Command, sel *state.Selection) error {
	if id, _ := cmd.Flags().GetString("subject"); id != "" {
		s, ok := catalog.SubjectByID(id)
		if !ok {
			return fmt.Errorf("unknown subject %q", id)
		}
		sel.SetSubject(s)
	}
	if id, _ := cmd.Flags().GetString("difficulty"); id != "" {
		d, ok := catalog.DifficultyByID(id)
		if !ok {
			return fmt.Errorf("unknown difficulty %q", id)
		}
		sel.SetDifficulty(d)
	}
	return nil
}
