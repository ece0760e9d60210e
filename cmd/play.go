package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/abhisek/probatequiz/internal/advisor"
	"github.com/abhisek/probatequiz/internal/app"
	"github.com/abhisek/probatequiz/internal/llm"
	"github.com/abhisek/probatequiz/internal/quiz"
	"github.com/abhisek/probatequiz/internal/scoring"
	"github.com/abhisek/probatequiz/internal/store"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Take the assessment in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

// runPlay opens the store, builds dependencies, and launches the TUI.
func runPlay(cmd *cobra.Command) error {
	ctx := cmd.Context()
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	// The TUI owns the terminal, so logs go to a file next to the database.
	dbPath, _ := resolveDBPath()
	logFile, err := cfg.Logging.SetupFile(filepath.Join(filepath.Dir(dbPath), "probatequiz.log"))
	if err != nil {
		return err
	}
	defer logFile.Close()

	var provider llm.Provider
	if settings := cfg.LLMSettings(); settings.Enabled() {
		provider, err = llm.NewProvider(ctx, settings, st.EventRepo())
		if err != nil {
			fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
			fmt.Fprintln(os.Stderr, "Explanations will use the built-in text.")
			provider = nil
		}
	}

	catalog := quiz.Default()
	log.Info().Str("db", dbPath).Bool("llm", provider != nil).Msg("starting assessment")
	return app.Run(app.Options{
		Catalog:          catalog,
		Engine:           scoring.New(catalog),
		Advisor:          advisor.New(catalog, provider),
		Recorder:         store.NewRecorder(st.AssessmentRepo()),
		AutoAdvanceDelay: cfg.Quiz.AutoAdvanceDelay,
		HandoffTimeout:   cfg.Server.HandoffTimeout,
	})
}
