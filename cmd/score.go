package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/probatequiz/internal/advisor"
	"github.com/abhisek/probatequiz/internal/llm"
	"github.com/abhisek/probatequiz/internal/quiz"
	"github.com/abhisek/probatequiz/internal/scoring"
	"github.com/abhisek/probatequiz/internal/tierinfo"
)

var scoreCmd = &cobra.Command{
	Use:   "score <answers.yaml|answers.json>",
	Short: "Score a saved answer set",
	Long: "Score reads a YAML or JSON document mapping question ids to answers,\n" +
		"for example `q1: under_100k` and `q3: [none]`, and prints the recommendation.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		explain, _ := cmd.Flags().GetBool("explain")
		route, _ := cmd.Flags().GetBool("route")

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read answers: %w", err)
		}
		answers, err := quiz.ParseAnswers(data)
		if err != nil {
			return err
		}

		catalog := quiz.Default()
		res := scoring.New(catalog).Score(answers)
		if route {
			if o, ok := catalog.EarlyOutcome(answers); ok {
				res = scoring.Terminal(o)
			}
		}

		var ex *advisor.Explanation
		if explain {
			var provider llm.Provider
			if settings := cfg.LLMSettings(); settings.Enabled() {
				provider, err = llm.NewProvider(cmd.Context(), settings, nil)
				if err != nil {
					fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
					provider = nil
				}
			}
			e := advisor.New(catalog, provider).Explain(cmd.Context(), answers, res)
			ex = &e
		}

		if asJSON {
			out := struct {
				Result      scoring.Result        `json:"result"`
				Explanation *advisor.Explanation `json:"explanation,omitempty"`
			}{res, ex}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		printResult(res)
		if ex != nil {
			fmt.Println()
			fmt.Println(ex.Headline)
			fmt.Println(ex.Summary)
			for _, r := range ex.Reasons {
				fmt.Println("  •", r)
			}
			fmt.Println("Next step:", ex.NextStep)
		}
		return nil
	},
}

func printResult(res scoring.Result) {
	info, _ := tierinfo.Lookup(res.Primary)
	fmt.Printf("Recommendation:  %s (%s)\n", info.Name, info.Price)
	if second, ok := tierinfo.Lookup(res.Secondary); ok && res.Secondary != "" {
		fmt.Printf("Also consider:   %s\n", second.Name)
	}
	fmt.Printf("Confidence:      %.0f%%\n", res.Confidence*100)
	if res.Rule != "" {
		fmt.Printf("Rule:            %s\n", res.Rule)
	}
	if len(res.Flags) > 0 {
		fmt.Printf("Flags:           %s\n", strings.Join(res.Flags, ", "))
	}
	if res.Rule == scoring.RuleRouting {
		return
	}

	fmt.Println()
	fmt.Printf("%-28s  %5s\n", "Tier", "Score")
	fmt.Println(strings.Repeat("─", 35))
	for _, t := range res.Scores.Ranked() {
		ti, _ := tierinfo.Lookup(quiz.TierOutcome(t))
		fmt.Printf("%-28s  %5d\n", ti.Name, res.Scores.Get(t))
	}
}

func init() {
	scoreCmd.Flags().Bool("json", false, "Print the result as JSON")
	scoreCmd.Flags().Bool("explain", false, "Include the advisor's explanation")
	scoreCmd.Flags().Bool("route", false, "Apply early-termination routes before scoring")
}
