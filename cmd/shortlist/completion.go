package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fairyhunter13/shortlist-engine/internal/config"
	"github.com/fairyhunter13/shortlist-engine/internal/engine"
)

func newCompletionCmd() *cobra.Command {
	var settingsPath, profilePath string
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Evaluate a profile against the required fields",
		Long: "Loads field settings (catalog defaults with optional YAML overrides from --settings) " +
			"and prints the eligibility result for --profile.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			settings, err := config.LoadFieldSettingsSeed(settingsPath)
			if err != nil {
				return err
			}
			profile, err := loadProfile(profilePath)
			if err != nil {
				return err
			}
			res, err := engine.Evaluate(profile, settings)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), res)
		},
	}
	cmd.Flags().StringVarP(&settingsPath, "settings", "s", "", "field settings YAML (default: catalog defaults)")
	cmd.Flags().StringVarP(&profilePath, "profile", "p", "", "candidate profile, JSON or YAML (required)")
	if err := cmd.MarkFlagRequired("profile"); err != nil {
		panic(fmt.Sprintf("failed to mark profile flag as required: %v", err))
	}
	return cmd
}
