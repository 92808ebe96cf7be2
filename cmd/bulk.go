package main

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/profile-cli/internal/profile"
)

var bulkFile string

var bulkCmd = &cobra.Command{
	Use:   "bulk",
	Short: "Build profiles for a CSV of companies",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := initEnv("bulk")
		if err != nil {
			return err
		}
		defer e.Close()

		raw, err := os.ReadFile(bulkFile)
		if err != nil {
			return eris.Wrap(err, "read input file")
		}
		rows, err := parseRows(raw)
		if err != nil {
			return err
		}

		zap.L().Info("bulk build starting", zap.Int("rows", len(rows)))

		profiles, err := e.Builder.BuildBulk(cmd.Context(), rows)
		if err != nil {
			return eris.Wrap(err, "bulk build")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(profiles), "encode profiles")
	},
}

// parseRows reads bulk input: a UTF-8 CSV, BOM tolerated, with optional
// company/domain headers. Without headers each line is "company,domain"
// or a bare company name. Empty rows are dropped.
func parseRows(raw []byte) ([]profile.Input, error) {
	text := strings.TrimPrefix(string(raw), "\uFEFF")

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "parse csv")
	}

	companyCol, domainCol := 0, 1
	if len(records) > 0 && isHeader(records[0]) {
		companyCol, domainCol = -1, -1
		for i, h := range records[0] {
			switch strings.ToLower(strings.TrimSpace(h)) {
			case "company":
				companyCol = i
			case "domain":
				domainCol = i
			}
		}
		records = records[1:]
	}

	rows := make([]profile.Input, 0, len(records))
	for _, rec := range records {
		in := profile.Input{
			Company: fieldAt(rec, companyCol),
			Domain:  fieldAt(rec, domainCol),
		}
		if in.Company == "" && in.Domain == "" {
			continue
		}
		rows = append(rows, in)
	}
	if len(rows) == 0 {
		return nil, eris.New("no valid rows found")
	}
	return rows, nil
}

func isHeader(rec []string) bool {
	for _, h := range rec {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "company", "domain":
			return true
		}
	}
	return false
}

func fieldAt(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func init() {
	bulkCmd.Flags().StringVar(&bulkFile, "file", "", "CSV file with company,domain rows")
	_ = bulkCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(bulkCmd)
}
