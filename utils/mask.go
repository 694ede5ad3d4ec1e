package utils

import "strings"

// MaskEmail ซ่อนอีเมลก่อนเขียนลง log: "ana@example.com" -> "a*a@e******.com"
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(strings.TrimSpace(email), "@")
	if !ok {
		return maskMiddle(email)
	}

	host, tld, hasTLD := strings.Cut(domain, ".")
	if hasTLD {
		domain = maskTail(host) + "." + tld
	}
	return maskMiddle(local) + "@" + domain
}

func maskMiddle(s string) string {
	r := []rune(s)
	switch {
	case len(r) > 2:
		return string(r[0]) + strings.Repeat("*", len(r)-2) + string(r[len(r)-1])
	case len(r) == 2:
		return string(r[0]) + "*"
	default:
		return s
	}
}

func maskTail(s string) string {
	r := []rune(s)
	if len(r) <= 1 {
		return s
	}
	return string(r[0]) + strings.Repeat("*", len(r)-1)
}
