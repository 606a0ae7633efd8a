package dna

import (
	"fmt"
	"sort"

	core "github.com/GriffinCanCode/DesignOS/backend/internal/dna"
)

// diffDocuments compares two documents section by section. Metadata
// and raw payloads are excluded so only design values are diffed.
func diffDocuments(a, b core.Document) (map[string]interface{}, int) {
	diff := make(map[string]interface{})
	total := 0

	for _, name := range unionKeys(a, b) {
		if name == core.MetadataKey || name == core.RawAnalysisKey {
			continue
		}

		sectionA, okA := a[name].(map[string]interface{})
		sectionB, okB := b[name].(map[string]interface{})
		switch {
		case okA && okB:
			entry, count := diffSections(sectionA, sectionB)
			if count > 0 {
				diff[name] = entry
				total += count
			}
		case okA:
			diff[name] = map[string]interface{}{"only_in": "a"}
			total++
		case okB:
			diff[name] = map[string]interface{}{"only_in": "b"}
			total++
		default:
			if fmt.Sprint(a[name]) != fmt.Sprint(b[name]) {
				diff[name] = map[string]interface{}{"a": a[name], "b": b[name]}
				total++
			}
		}
	}

	return diff, total
}

func diffSections(a, b map[string]interface{}) (map[string]interface{}, int) {
	changed := make(map[string]interface{})
	var onlyA, onlyB []string
	count := 0

	for _, key := range unionKeys(a, b) {
		valA, okA := a[key]
		valB, okB := b[key]
		switch {
		case okA && okB:
			if fmt.Sprint(valA) != fmt.Sprint(valB) {
				changed[key] = map[string]interface{}{"a": valA, "b": valB}
				count++
			}
		case okA:
			onlyA = append(onlyA, key)
			count++
		default:
			onlyB = append(onlyB, key)
			count++
		}
	}

	entry := make(map[string]interface{})
	if len(changed) > 0 {
		entry["changed"] = changed
	}
	if len(onlyA) > 0 {
		entry["only_in_a"] = onlyA
	}
	if len(onlyB) > 0 {
		entry["only_in_b"] = onlyB
	}
	return entry, count
}

func unionKeys(a, b map[string]interface{}) []string {
	seen := make(map[string]bool, len(a)+len(b))
	for key := range a {
		seen[key] = true
	}
	for key := range b {
		seen[key] = true
	}
	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
