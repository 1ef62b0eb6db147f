package handlers

import (
	"encoding/json"
	"fmt"

	"github.com/geodata/etlprov/internal/config"
	"github.com/geodata/etlprov/internal/envfile"
)

// showEntry is a single secrets file entry for display.
type showEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Show prints the entries of an existing secrets file. Passwords are
// masked unless reveal is set.
func Show(path string, reveal, jsonOutput bool) error {
	values, err := loadSecrets(path)
	if err != nil {
		return err
	}

	entries := showEntries(values, reveal)

	if jsonOutput {
		b, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		fmt.Println(string(b))
		return nil
	}

	fmt.Println()
	fmt.Println(styled(titleStyle, "Secrets file: "+path))
	fmt.Println()
	width := 0
	for _, e := range entries {
		width = max(width, len(e.Key))
	}
	for _, e := range entries {
		fmt.Printf("  %-*s  %s\n", width, e.Key, e.Value)
	}
	fmt.Println()
	return nil
}

func showEntries(values map[string]string, reveal bool) []showEntry {
	ordered := envfile.Ordered(values)
	entries := make([]showEntry, len(ordered))
	for i, kv := range ordered {
		value := kv.Value
		if !reveal && config.IsSecretKey(kv.Key) && value != "" {
			value = maskedValue
		}
		entries[i] = showEntry{Key: kv.Key, Value: value}
	}
	return entries
}
