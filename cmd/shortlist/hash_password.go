package main

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fairyhunter13/shortlist-engine/internal/adapter/httpserver"
	"github.com/fairyhunter13/shortlist-engine/pkg/textx"
)

func newHashPasswordCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Print an argon2id hash for ADMIN_PASSWORD_HASH",
		Long:  "Hashes --password, or the first line of stdin when the flag is omitted.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if password == "" {
				sc := bufio.NewScanner(cmd.InOrStdin())
				if sc.Scan() {
					password = sc.Text()
				}
				if err := sc.Err(); err != nil {
					return fmt.Errorf("read password: %w", err)
				}
			}
			password = textx.SanitizeText(password)
			if password == "" {
				return errors.New("empty password")
			}
			h, err := httpserver.HashPassword(password, httpserver.DefaultArgon2Params)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), h)
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "password to hash (default: read stdin)")
	return cmd
}
