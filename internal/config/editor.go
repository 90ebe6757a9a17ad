package config

import "strings"

// keyOf returns the key a config line sets. Comments, blank lines and
// lines without '=' set nothing.
func keyOf(line string) (key, rest string, ok bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || trimmed[0] == '#' {
		return "", "", false
	}
	key, rest, ok = strings.Cut(trimmed, "=")
	return strings.TrimSpace(key), rest, ok
}

// Set points the first line setting key at value, keeping a trailing
// comment, or appends a new line. It reports whether key was present.
func Set(lines []string, key, value string) ([]string, bool) {
	for i, line := range lines {
		k, rest, ok := keyOf(line)
		if !ok || k != key {
			continue
		}
		lines[i] = key + "=" + value
		if at := strings.Index(rest, "#"); at >= 0 {
			lines[i] += " " + strings.TrimSpace(rest[at:])
		}
		return lines, true
	}
	return append(lines, key+"="+value), false
}

// Unset returns lines without any line setting key, and whether one was
// dropped. Everything else is kept in order.
func Unset(lines []string, key string) ([]string, bool) {
	var kept []string
	for _, line := range lines {
		if k, _, ok := keyOf(line); ok && k == key {
			continue
		}
		kept = append(kept, line)
	}
	return kept, len(kept) != len(lines)
}
