package wanotify

import (
	"strings"
)

// NormalizePhone converts an Indonesian phone number to the international
// form the gateway expects: digits only, 62 prefix. "0812..." becomes
// "62812...", a bare "812..." gets the prefix added, "62812..." passes
// through unchanged. Empty input stays empty.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	p := b.String()
	if p == "" {
		return ""
	}
	if strings.HasPrefix(p, "0") {
		p = "62" + p[1:]
	}
	if !strings.HasPrefix(p, "62") {
		p = "62" + p
	}
	return p
}
