package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"example.com/dashboard/internal/auth"
)

var (
	tokenSubject string
	tokenTenant  string
	tokenName    string
	tokenAvatar  string
	tokenScopes  []string
	tokenTTL     time.Duration
)

func init() {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development bearer token",
		Args:  cobra.NoArgs,
		RunE:  runToken,
	}
	cmd.Flags().StringVar(&tokenSubject, "subject", "dev-user", "Token subject")
	cmd.Flags().StringVar(&tokenTenant, "tenant", "dev-tenant", "Tenant id claim")
	cmd.Flags().StringVar(&tokenName, "name", "Sarah Chen", "Display name claim")
	cmd.Flags().StringVar(&tokenAvatar, "avatar", "/avatars/sarah.jpg", "Avatar claim")
	cmd.Flags().StringSliceVar(&tokenScopes, "scope", auth.AllScopes, "Scopes to grant")
	cmd.Flags().DurationVar(&tokenTTL, "ttl", 12*time.Hour, "Token lifetime")

	RootCmd.AddCommand(cmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	token, err := auth.Issue(auth.Config{Secret: cfg.JWTSecret, Issuer: cfg.JWTIssuer}, auth.IssueInput{
		Subject:  tokenSubject,
		TenantID: tokenTenant,
		Name:     tokenName,
		Avatar:   tokenAvatar,
		Scopes:   tokenScopes,
		TTL:      tokenTTL,
	})
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
