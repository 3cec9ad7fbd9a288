package config

import (
	"log"
	"sort"
	"strings"
)

// Missing returns the env names in required whose value is empty, sorted.
func Missing(required map[string]string) []string {
	var names []string
	for name, value := range required {
		if strings.TrimSpace(value) == "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// MustHave stops the process when any required setting is empty, naming all
// of them at once.
func MustHave(required map[string]string) {
	if missing := Missing(required); len(missing) > 0 {
		log.Fatalf("missing required env %s", strings.Join(missing, ", "))
	}
}
