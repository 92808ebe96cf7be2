// Package export renders built profiles for download: flattened CSV and
// XLSX workbooks. Pure functions of the profile list.
package export

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/profile-cli/internal/model"
)

// Columns is the flattened export header, shared by CSV and XLSX.
var Columns = []string{
	"company", "domain", "website",
	"instagram", "facebook", "linkedin", "twitter", "youtube",
	"emails", "phones", "addresses",
	"category", "generated_at",
}

// utf8BOM keeps Excel from misreading the encoding of a downloaded CSV.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSV writes profiles as UTF-8 CSV with a BOM and header row.
func CSV(w io.Writer, profiles []model.Profile) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return eris.Wrap(err, "export: write bom")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return eris.Wrap(err, "export: write header")
	}
	for i := range profiles {
		if err := cw.Write(Row(&profiles[i])); err != nil {
			return eris.Wrap(err, "export: write row")
		}
	}
	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush")
}

// Row flattens one profile into export column order.
func Row(p *model.Profile) []string {
	addrs := make([]string, 0, len(p.Contacts.Addresses))
	for _, a := range p.Contacts.Addresses {
		addrs = append(addrs, a.Value)
	}
	return []string{
		p.Company,
		p.Domain,
		p.Website,
		p.Socials.Links[model.PlatformInstagram],
		p.Socials.Links[model.PlatformFacebook],
		p.Socials.Links[model.PlatformLinkedIn],
		p.Socials.Links[model.PlatformTwitter],
		p.Socials.Links[model.PlatformYouTube],
		strings.Join(p.Contacts.Emails, "; "),
		strings.Join(p.Contacts.Phones, "; "),
		strings.Join(addrs, "; "),
		p.Category,
		p.GeneratedAt,
	}
}
