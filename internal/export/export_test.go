package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/profile-cli/internal/model"
)

func sampleProfiles() []model.Profile {
	return []model.Profile{
		{
			Company: "Acme",
			Domain:  "acme.com",
			Website: "https://acme.com",
			Socials: model.NewSocialLinks("https://acme.com", map[string]string{
				model.PlatformTwitter:  "https://x.com/acme",
				model.PlatformLinkedIn: "https://linkedin.com/company/acme",
			}),
			Contacts: model.NewContactSet(
				[]string{"press@acme.com", "ir@acme.com"},
				[]string{"+14155550132"},
				[]model.Address{{Value: "123 Main St, Springfield, IL, USA", Source: "test"}},
				"acme.com",
			),
			Category:    "Tech",
			GeneratedAt: "2026-08-26",
		},
		{Company: "Blank Co", Category: "Other"},
	}
}

func TestCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSV(&buf, sampleProfiles()))

	raw := buf.Bytes()
	require.True(t, bytes.HasPrefix(raw, utf8BOM), "Excel needs the BOM")

	records, err := csv.NewReader(bytes.NewReader(raw[len(utf8BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, Columns, records[0])
	acme := records[1]
	assert.Equal(t, "Acme", acme[0])
	assert.Equal(t, "https://x.com/acme", acme[6])
	assert.Equal(t, "press@acme.com; ir@acme.com", acme[8])
	assert.Equal(t, "123 Main St, Springfield, IL, USA", acme[10])
	assert.Equal(t, "Blank Co", records[2][0])
}

func TestXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, XLSX(&buf, sampleProfiles()))

	f, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	sheet, ok := f.Sheet[sheetName]
	require.True(t, ok)
	require.Len(t, sheet.Rows, 3)

	assert.Equal(t, "company", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "Acme", sheet.Rows[1].Cells[0].String())
	assert.Equal(t, "+14155550132", sheet.Rows[1].Cells[9].String())
}

func TestCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CSV(&buf, nil))

	records, err := csv.NewReader(bytes.NewReader(buf.Bytes()[len(utf8BOM):])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "header only")
}
