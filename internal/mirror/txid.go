package mirror

import "strings"

// FormatTransactionID rewrites an SDK-format transaction id into the
// mirror REST path format: the "@" between payer and seconds and the "."
// between seconds and nanos both become "-".
//
//	0.0.5@1700000000.123456789 -> 0.0.5-1700000000-123456789
//
// Ids already in mirror format pass through unchanged. This reformatting is
// required before any transaction lookup; the mirror rejects the SDK form.
func FormatTransactionID(id string) string {
	id = strings.TrimSpace(id)
	payer, rest, found := strings.Cut(id, "@")
	if !found {
		return id
	}
	return payer + "-" + strings.ReplaceAll(rest, ".", "-")
}
