package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	jwttoken "precheck/internal/jwt_token"
	"precheck/internal/platform/config"
)

func newTokenCmd() *cobra.Command {
	var (
		clientID     string
		prosecutorOU string
		expiresIn    time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for a submitting system",
		Long: `Issue a signed bearer token for the HTTP API. The signing key and issuer
are read from JWT_SIGNING_KEY and JWT_ISSUER, as the server reads them.

Example:
  precheck token --client tfl-spi --prosecutor-ou GAFTL00 --expires-in 24h`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.FromEnv()
			tokens := jwttoken.NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, jwttoken.Audience)
			token, err := tokens.GenerateClientToken(clientID, prosecutorOU, expiresIn)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	cmd.Flags().StringVar(&clientID, "client", "", "Submitting system identifier (required)")
	cmd.Flags().StringVar(&prosecutorOU, "prosecutor-ou", "", "Prosecuting authority OU code the client submits for")
	cmd.Flags().DurationVar(&expiresIn, "expires-in", time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("client")
	return cmd
}
