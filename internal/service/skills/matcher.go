package skills

import (
	"log/slog"
	"sort"
	"strings"

	"github.com/planvane/allocation-advisor/internal/config"
	"github.com/planvane/allocation-advisor/internal/domain"
)

// neutralScore is returned when there is no signal either way: the title
// matched no keyword, or the member declared no skills.
const neutralScore = 0.5

type Matcher struct {
	dict Dictionary
}

// NewMatcher creates a matcher over the given dictionary. A nil dictionary
// falls back to the built-in table.
func NewMatcher(dict Dictionary) *Matcher {
	if dict == nil {
		dict = DefaultDictionary()
	}
	return &Matcher{dict: dict}
}

// NewMatcherFromConfig loads the configured external dictionary when one
// is set, otherwise uses the built-in table.
func NewMatcherFromConfig(cfg *config.SkillsConfig) (*Matcher, error) {
	if cfg == nil || cfg.DictionaryPath == "" {
		return NewMatcher(nil), nil
	}

	dict, err := LoadDictionary(cfg.DictionaryPath)
	if err != nil {
		return nil, err
	}

	slog.Info("skill dictionary loaded",
		slog.String("path", cfg.DictionaryPath),
		slog.Int("keywords", len(dict)),
	)

	return NewMatcher(dict), nil
}

// DictionarySize reports the number of loaded keyword entries.
func (m *Matcher) DictionarySize() int {
	return len(m.dict)
}

// RequiredSkills infers the skill tags a task title calls for by scanning
// it, case-insensitively, for dictionary keywords. The result is a sorted
// de-duplicated set; empty when no keyword matches.
func (m *Matcher) RequiredSkills(title string) []string {
	lower := strings.ToLower(title)

	set := make(map[string]struct{})
	for keyword, tags := range m.dict {
		if !strings.Contains(lower, keyword) {
			continue
		}
		for _, tag := range tags {
			set[strings.ToLower(tag)] = struct{}{}
		}
	}

	if len(set) == 0 {
		return nil
	}

	required := make([]string, 0, len(set))
	for tag := range set {
		required = append(required, tag)
	}
	sort.Strings(required)
	return required
}

// MatchScore scores how well a member's declared skills cover the skills
// a task title calls for, in [0,1]. Without signal on either side it
// returns the neutral 0.5.
func (m *Matcher) MatchScore(task *domain.TaskInfo, member *domain.CapacityInfo) float64 {
	required := m.RequiredSkills(task.Title)
	if len(required) == 0 {
		return neutralScore
	}
	if len(member.Skills) == 0 {
		return neutralScore
	}

	matched := 0
	for _, tag := range required {
		if memberHasSkill(member.Skills, tag) {
			matched++
		}
	}

	return float64(matched) / float64(len(required))
}

// memberHasSkill matches a required tag against declared skills by
// case-insensitive substring containment in either direction, so a
// required "react" matches a declared "reactjs" and a declared "sql"
// matches a required "postgresql".
func memberHasSkill(skills []string, tag string) bool {
	for _, skill := range skills {
		s := strings.ToLower(skill)
		if strings.Contains(s, tag) || strings.Contains(tag, s) {
			return true
		}
	}
	return false
}
