package throne

import "time"

// formatTimestamp renders epoch milliseconds as "YYYY-MM-DD HH:MM:SS" in
// the local timezone of the process. No UTC normalization happens, which
// makes rendered timestamps machine-dependent; callers that need
// reproducible output should pin TZ.
func formatTimestamp(epochMs int64) string {
	return time.UnixMilli(epochMs).Format("2006-01-02 15:04:05")
}
