package sshkey

import "strings"

const beginMarker = "-----BEGIN"

// Normalize rebuilds well-formed armored blocks from key text whose line
// breaks were altered by a secret store. CRLF line endings become LF, the text
// is split before every BEGIN marker, and each block is trimmed and
// terminated with exactly one newline. Text before the first BEGIN marker is
// dropped, so N markers always yield N blocks. Text without any marker is
// only trimmed.
func Normalize(key string) string {
	key = strings.ReplaceAll(key, "\r\n", "\n")

	parts := strings.Split(key, beginMarker)
	if len(parts) > 1 {
		parts = parts[1:]
		for i := range parts {
			parts[i] = beginMarker + parts[i]
		}
	}

	var b strings.Builder
	for _, block := range parts {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		b.WriteString(block)
		b.WriteByte('\n')
	}
	return b.String()
}
