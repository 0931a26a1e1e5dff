package imagewriter

import (
	"fmt"
	"time"

	"github.com/lestrrat-go/strftime"
)

const timestampPattern = "%d%b%Y-%H%M"

// Timestamp renders t (expected to be UTC) in the DDmonYYYY-HHMM
// format the original mlrpt tooling used for output filenames.
func Timestamp(t time.Time) string {
	f, err := strftime.Format(timestampPattern, t)
	if err != nil {
		// strftime.Format only fails on a malformed pattern, which
		// timestampPattern is not; fall back to an equivalent
		// time.Format just in case.
		return t.Format("02Jan2006-1504")
	}
	return f
}

// ChannelFilename builds "{timestamp}-Ch{apid}.{ext}".
func ChannelFilename(timestamp string, apid byte, ext string) string {
	return fmt.Sprintf("%s-Ch%d.%s", timestamp, apid, ext)
}

// ComboFilename builds "{timestamp}-Combo.{ext}".
func ComboFilename(timestamp string, ext string) string {
	return fmt.Sprintf("%s-Combo.%s", timestamp, ext)
}
