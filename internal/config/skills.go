package config

import "os"

const skillDictionaryPathEnv = "SKILL_DICTIONARY_PATH"

// SkillsConfig points the skill matcher at an external keyword dictionary.
// When DictionaryPath is empty the built-in table is used.
type SkillsConfig struct {
	DictionaryPath string
}

func LoadSkillsConfig() *SkillsConfig {
	return &SkillsConfig{
		DictionaryPath: os.Getenv(skillDictionaryPathEnv),
	}
}
