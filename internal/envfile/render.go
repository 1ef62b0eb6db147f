package envfile

import (
	"bytes"
	"fmt"
	"time"
)

// Render produces the secrets file text. Values are written unquoted, one
// KEY=value per line, after a header naming the generator and the time.
func Render(doc *Document, now time.Time) []byte {
	var b bytes.Buffer

	fmt.Fprintf(&b, `# ETL GeoData secrets file
# Generated by: etlprov provision
# Generated at: %s
# Environment: %s
#
# WARNING: this file contains database passwords.
# Do not commit it to version control.
`, now.Format(time.RFC3339), doc.Environment)

	for _, s := range doc.Sections {
		fmt.Fprintf(&b, "\n# %s\n", s.Title)
		for _, kv := range s.Entries {
			fmt.Fprintf(&b, "%s=%s\n", kv.Key, kv.Value)
		}
	}

	return b.Bytes()
}
