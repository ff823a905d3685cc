package skills

import "github.com/jonathan/skillmatrix/internal/types"

// Recognize returns the catalog skills mentioned at least once in text.
// Names are canonical, regardless of the casing used in text.
func Recognize(text string) types.SkillSet {
	found := types.NewSkillSet()
	if text == "" {
		return found
	}
	for _, e := range catalog {
		if e.pattern.MatchString(text) {
			found.Add(e.name)
		}
	}
	return found
}
