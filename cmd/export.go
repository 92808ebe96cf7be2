package main

import (
	"os"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/profile-cli/internal/export"
	"github.com/sells-group/profile-cli/internal/model"
)

var (
	exportCompany string
	exportDomain  string
	exportFormat  string
	exportOut     string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Build a profile and write it as CSV or XLSX",
	RunE: func(cmd *cobra.Command, args []string) error {
		format := strings.ToLower(exportFormat)
		if format != "csv" && format != "xlsx" {
			return eris.Errorf("unsupported format %q (csv or xlsx)", exportFormat)
		}

		e, err := initEnv("export")
		if err != nil {
			return err
		}
		defer e.Close()

		p, err := e.Builder.Build(cmd.Context(), exportCompany, exportDomain)
		if err != nil {
			return eris.Wrap(err, "build profile")
		}

		out := exportOut
		if out == "" {
			out = "profile_" + safeFilename(p.Domain, p.Company) + "." + format
		}

		f, err := os.Create(out)
		if err != nil {
			return eris.Wrap(err, "create output file")
		}
		defer f.Close() //nolint:errcheck

		if err := writeProfiles(f, format, []model.Profile{p}); err != nil {
			return err
		}

		zap.L().Info("profile exported",
			zap.String("file", out),
			zap.String("format", format),
		)
		return nil
	},
}

func writeProfiles(f *os.File, format string, profiles []model.Profile) error {
	if format == "xlsx" {
		return export.XLSX(f, profiles)
	}
	return export.CSV(f, profiles)
}

var (
	unsafeFilenameRe = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
	dotRunRe         = regexp.MustCompile(`\.{2,}`)
	underscoreRunRe  = regexp.MustCompile(`_{2,}`)
)

// safeFilename picks the first non-empty candidate and strips characters
// that do not belong in a filename. Dot runs are squashed so path-traversal
// sequences cannot survive into the name.
func safeFilename(candidates ...string) string {
	for _, c := range candidates {
		c = unsafeFilenameRe.ReplaceAllString(strings.TrimSpace(c), "_")
		c = dotRunRe.ReplaceAllString(c, "_")
		c = underscoreRunRe.ReplaceAllString(c, "_")
		c = strings.Trim(c, "_")
		if c != "" {
			return c
		}
	}
	return "company"
}

func init() {
	exportCmd.Flags().StringVar(&exportCompany, "company", "", "company name")
	exportCmd.Flags().StringVar(&exportDomain, "domain", "", "company domain or URL")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "output format: csv or xlsx")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output file (default profile_<domain>.<format>)")
	rootCmd.AddCommand(exportCmd)
}
