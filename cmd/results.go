package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/probatequiz/internal/quiz"
	"github.com/abhisek/probatequiz/internal/store"
	"github.com/abhisek/probatequiz/internal/tierinfo"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Inspect stored assessments",
}

var resultsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent assessments",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		rows, err := s.AssessmentRepo().List(context.Background(), store.QueryOpts{Limit: limit})
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Println("No assessments recorded yet.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-14s  %-28s  %-28s  %5s\n",
			"ID", "Completed", "Name", "Email", "Recommendation", "Conf")
		fmt.Println(strings.Repeat("─", 108))
		for _, a := range rows {
			fmt.Printf("%-5d  %-19s  %-14s  %-28s  %-28s  %4.0f%%\n",
				a.ID,
				a.CompletedAt.Local().Format("2006-01-02 15:04:05"),
				truncate(a.FirstName, 14),
				truncate(a.Email, 28),
				truncate(outcomeName(a.Primary), 28),
				a.Confidence*100,
			)
		}
		return nil
	},
}

var resultsViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show one assessment with its answers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		a, err := s.AssessmentRepo().Get(context.Background(), id)
		if err != nil {
			return err
		}
		if a == nil {
			return fmt.Errorf("assessment %d not found", id)
		}

		fmt.Printf("ID:          %d\n", a.ID)
		fmt.Printf("Session:     %s\n", a.SessionID)
		fmt.Printf("Started:     %s\n", a.StartedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Completed:   %s\n", a.CompletedAt.Local().Format("2006-01-02 15:04:05"))
		if a.Email != "" {
			fmt.Printf("Contact:     %s <%s>", a.FirstName, a.Email)
			if a.Phone != "" {
				fmt.Printf(" %s", a.Phone)
			}
			if a.ScheduleCall {
				fmt.Print(" (wants a call)")
			}
			fmt.Println()
		}
		fmt.Printf("Primary:     %s\n", outcomeName(a.Primary))
		if a.Secondary != "" {
			fmt.Printf("Secondary:   %s\n", outcomeName(a.Secondary))
		}
		fmt.Printf("Confidence:  %.0f%%\n", a.Confidence*100)
		if a.Rule != "" {
			fmt.Printf("Rule:        %s\n", a.Rule)
		}

		sep := strings.Repeat("─", 60)
		fmt.Println()
		fmt.Println(sep)
		fmt.Println("ANSWERS")
		fmt.Println(sep)
		c := quiz.Default()
		for _, q := range c.Questions() {
			ans, ok := a.Answers.Get(q.ID)
			if !ok {
				continue
			}
			b, _ := json.Marshal(ans)
			fmt.Printf("%-4s %s\n     %s\n", q.ID, q.Prompt, b)
		}
		return nil
	},
}

var resultsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export assessments to an Excel workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")

		s, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		rows, err := s.AssessmentRepo().List(context.Background(), store.QueryOpts{})
		if err != nil {
			return err
		}

		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		if err := store.ExportXLSX(f, rows); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Printf("Exported %d assessments to %s\n", len(rows), out)
		return nil
	},
}

func outcomeName(o string) string {
	if info, ok := tierinfo.Lookup(quiz.Outcome(o)); ok {
		return info.Name
	}
	return o
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func init() {
	resultsListCmd.Flags().Int("limit", 20, "Max number of assessments to show")
	resultsExportCmd.Flags().String("out", "assessments.xlsx", "Output file")

	resultsCmd.AddCommand(resultsListCmd)
	resultsCmd.AddCommand(resultsViewCmd)
	resultsCmd.AddCommand(resultsExportCmd)
}
