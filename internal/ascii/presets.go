// ABOUTME: Named ramp presets and lookup with fuzzy did-you-mean suggestions
// ABOUTME: Unknown preset names fail with the closest matches via sahilm/fuzzy

package ascii

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// presets maps preset names to ramp strings, darkest to brightest.
var presets = map[string]string{
	"classic": DefaultRamp,
	"blocks":  " ░▒▓█",
	"shade":   " .'`^\",:;Il!i><~+_-?][}{1)(|\\/tfjrxnuvczXYUJCLQ0OZmwqpdbkhao*#MW&8%B@$",
	"binary":  " █",
	"dots":    " .¨:·",
}

// Preset returns the ramp registered under name. On an unknown name the
// error carries fuzzy-matched suggestions from the preset table.
func Preset(name string) (Ramp, error) {
	s, ok := presets[name]
	if !ok {
		if hint := suggest(name); hint != "" {
			return Ramp{}, fmt.Errorf("unknown ramp preset %q (did you mean %s?)", name, hint)
		}
		return Ramp{}, fmt.Errorf("unknown ramp preset %q (available: %s)", name, strings.Join(PresetNames(), ", "))
	}
	return MustRamp(s), nil
}

// PresetNames returns all preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// suggest returns up to two fuzzy matches for a misspelled preset name.
func suggest(name string) string {
	matches := fuzzy.Find(name, PresetNames())
	if len(matches) == 0 {
		return ""
	}
	if len(matches) > 2 {
		matches = matches[:2]
	}
	parts := make([]string, len(matches))
	for i, m := range matches {
		parts[i] = fmt.Sprintf("%q", m.Str)
	}
	return strings.Join(parts, " or ")
}
