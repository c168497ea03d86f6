package skills

import (
	"encoding/json"
	"fmt"
	"os"
)

// Dictionary maps a lowercase title keyword to the skill tags a task
// mentioning that keyword requires. Loaded once and treated as immutable.
type Dictionary map[string][]string

// DefaultDictionary returns the built-in keyword table.
func DefaultDictionary() Dictionary {
	return Dictionary{
		"frontend":    {"frontend", "react", "tailwind", "ui", "css"},
		"backend":     {"backend", "api", "go", "node"},
		"api":         {"backend", "api", "rest"},
		"database":    {"database", "sql", "postgres"},
		"migration":   {"database", "sql"},
		"docker":      {"devops", "docker"},
		"deploy":      {"devops", "ci", "docker"},
		"infra":       {"devops", "terraform", "cloud"},
		"kubernetes":  {"devops", "kubernetes"},
		"auth":        {"backend", "security", "auth"},
		"security":    {"security"},
		"test":        {"testing", "qa"},
		"design":      {"design", "ui", "figma"},
		"mobile":      {"mobile", "ios", "android"},
		"performance": {"performance", "profiling"},
		"docs":        {"documentation", "writing"},
	}
}

// LoadDictionary reads a keyword table from a JSON file with the shape
// {"keyword": ["tag", ...], ...}.
func LoadDictionary(path string) (Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read skill dictionary: %w", err)
	}

	var dict Dictionary
	if err := json.Unmarshal(data, &dict); err != nil {
		return nil, fmt.Errorf("parse skill dictionary: %w", err)
	}

	return dict, nil
}
