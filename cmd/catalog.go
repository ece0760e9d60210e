package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/probatequiz/internal/quiz"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the question catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every question and its options",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := quiz.Default()
		for i, q := range c.Questions() {
			fmt.Printf("%d. [%s] %s  (%s)\n", i+1, q.ID, q.Prompt, q.Kind)
			for _, o := range q.Options {
				extra := ""
				if o.Flag != "" {
					extra = "  flag=" + o.Flag
				}
				fmt.Printf("     %-22s %s%s\n", o.Value, o.Label, extra)
			}
			for _, f := range q.Fields {
				req := ""
				if f.Required {
					req = "*"
				}
				fmt.Printf("     %-22s %s%s\n", f.Name, f.Label, req)
			}
			if r := q.Route; r.Policy != quiz.RouteLinear {
				fmt.Printf("     route: %s -> %s\n", r.Policy, r.Outcome)
			}
		}
		return nil
	},
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the catalog for structural problems",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := quiz.Default()
		if err := c.Validate(); err != nil {
			return err
		}
		ids := make([]string, 0, c.Len())
		for _, q := range c.Questions() {
			ids = append(ids, q.ID)
		}
		fmt.Printf("Catalog OK: %d questions (%s)\n", c.Len(), strings.Join(ids, ", "))
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
}
