package main

import (
	"fmt"
	"strings"

	"HRPolicyGateway/internal/auth"
	"HRPolicyGateway/internal/config"
	"HRPolicyGateway/internal/models"

	"github.com/spf13/cobra"
)

var (
	tokenUser  string
	tokenRoles []string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a bearer token signed with the configured key",
	Example: `  hrgw token --user carol --roles employee
  hrgw token --user hr1 --roles hr,admin`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		user := models.NormalizeUser(tokenUser)
		if user == "" {
			return fmt.Errorf("--user is required")
		}
		cfg := config.Load()
		if cfg.UsingDevKey {
			fmt.Fprintln(cmd.ErrOrStderr(), "warning: JWT_SECRET_KEY is not set, signing with the development key")
		}
		roles := make([]string, 0, len(tokenRoles))
		for _, r := range tokenRoles {
			if r = strings.TrimSpace(r); r != "" {
				roles = append(roles, r)
			}
		}
		tok, err := auth.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL).Issue(user, roles)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "token subject")
	tokenCmd.Flags().StringSliceVar(&tokenRoles, "roles", nil, "comma separated roles (employee, manager, hr, admin)")
}
