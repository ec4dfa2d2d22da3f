package logger

import "strings"

// MaskEmail masks the local part of an address, preserving the domain so
// log lines stay correlatable without exposing subscriber contacts.
func MaskEmail(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	at := strings.LastIndex(value, "@")
	if at <= 0 {
		return maskLast4(value)
	}
	local := value[:at]
	domain := value[at:]
	if len(local) <= 2 {
		return "**" + domain
	}
	return local[:1] + "***" + local[len(local)-1:] + domain
}

func maskLast4(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if len(value) <= 4 {
		return "****" + value
	}
	return "****" + value[len(value)-4:]
}
