package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	lookupCompany string
	lookupDomain  string
)

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Build a profile for a single company",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := initEnv("lookup")
		if err != nil {
			return err
		}
		defer e.Close()

		p, err := e.Builder.Build(cmd.Context(), lookupCompany, lookupDomain)
		if err != nil {
			return eris.Wrap(err, "build profile")
		}

		zap.L().Info("profile built",
			zap.String("company", p.Company),
			zap.String("domain", p.Domain),
			zap.Int64("latency_ms", p.LatencyMS),
		)

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(p), "encode profile")
	},
}

func init() {
	lookupCmd.Flags().StringVar(&lookupCompany, "company", "", "company name")
	lookupCmd.Flags().StringVar(&lookupDomain, "domain", "", "company domain or URL")
	rootCmd.AddCommand(lookupCmd)
}
