package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fairyhunter13/shortlist-engine/internal/engine"
	"github.com/fairyhunter13/shortlist-engine/internal/usecase"
)

func newValidateCmd() *cobra.Command {
	var criteria string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a criteria file against the schema and the field catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := readInput(criteria)
			if err != nil {
				return err
			}
			rules, err := usecase.DecodeCriteria(raw)
			if err != nil {
				return reportIssues(cmd, err)
			}
			issues := engine.Validate(rules)
			if asJSON {
				if err := writeJSON(cmd.OutOrStdout(), map[string]any{"valid": len(issues) == 0, "issues": issues}); err != nil {
					return err
				}
			} else if len(issues) > 0 {
				printIssues(cmd.ErrOrStderr(), issues)
			}
			if len(issues) > 0 {
				return fmt.Errorf("criteria invalid: %d issue(s)", len(issues))
			}
			if !asJSON {
				fmt.Fprintf(cmd.OutOrStdout(), "ok: %d rule(s)\n", len(rules))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&criteria, "criteria", "c", "", "criteria file, JSON or YAML (required)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	if err := cmd.MarkFlagRequired("criteria"); err != nil {
		panic(fmt.Sprintf("failed to mark criteria flag as required: %v", err))
	}
	return cmd
}
