package domain

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// NormalizeLocations убирает пробелы по краям, приводит к NFC и отбрасывает пустые и повторные значения.
// Порядок сохраняется.
func NormalizeLocations(locations []string) []string {
	if locations == nil {
		return nil
	}
	cleaned := make([]string, 0, len(locations))
	seen := make(map[string]struct{}, len(locations))
	for _, location := range locations {
		location = norm.NFC.String(strings.TrimSpace(location))
		if location == "" {
			continue
		}
		if _, dup := seen[location]; dup {
			continue
		}
		seen[location] = struct{}{}
		cleaned = append(cleaned, location)
	}
	return cleaned
}
