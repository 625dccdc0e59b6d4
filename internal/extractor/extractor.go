// Package extractor recovers a time entry from a free-form conversation by
// applying ordered pattern rules per field.
package extractor

import (
	"strings"

	"timesheet-assistant/internal/model"
)

// Extract scans the transcript and fills every field. For each field the
// first rule that matches wins, and within a rule the latest occurrence
// wins so a corrected statement replaces an earlier one. Extraction never
// fails; unmatched fields get their default and are reported in Misses.
func Extract(turns []model.Turn) Extraction {
	all, user := joinTurns(turns)
	x := Extraction{}

	pick := func(field string, rules []textRule, def string) string {
		if v, ok := applyText(rules, all, user); ok {
			return v
		}
		x.Misses = append(x.Misses, field)
		return def
	}

	x.TaskDescription = pick("task_description", taskRules, DefaultTaskDescription)
	if mins, ok := applyDuration(durationRules, all, user); ok {
		x.DurationMinutes = mins
	} else {
		x.Misses = append(x.Misses, "duration_minutes")
		x.DurationMinutes = DefaultDurationMinutes
	}
	x.WorkType = model.WorkType(pick("work_type", workTypeRules, DefaultWorkType))
	x.MatterName = pick("matter_name", matterRules, DefaultMatter)
	x.CostCentreName = pick("cost_centre_name", costCentreRules, DefaultCostCentre)
	x.BusinessAreaName = pick("business_area_name", businessAreaRules, DefaultBusinessArea)
	x.SubcategoryName = pick("subcategory_name", subcategoryRules, DefaultSubcategory)
	x.EnjoymentLevel = strings.ToLower(pick("enjoyment_level", enjoymentRules, DefaultEnjoyment))
	x.EnergyImpact = strings.ToLower(pick("energy_impact", energyRules, DefaultEnergy))
	x.TaskGoal = pick("task_goal", goalRules, DefaultGoal)

	return x
}

// IsComplete reports whether any of the last CompletionWindow turns contains
// a completion trigger, ignoring case. System turns are not counted.
func IsComplete(turns []model.Turn) bool {
	seen := 0
	for i := len(turns) - 1; i >= 0 && seen < CompletionWindow; i-- {
		if turns[i].Role == model.RoleSystem {
			continue
		}
		seen++
		text := strings.ToLower(turns[i].Content)
		for _, trigger := range CompletionTriggers {
			if strings.Contains(text, trigger) {
				return true
			}
		}
	}
	return false
}

func joinTurns(turns []model.Turn) (all, user string) {
	var a, u strings.Builder
	for _, t := range turns {
		if t.Role == model.RoleSystem {
			continue
		}
		a.WriteString(t.Content)
		a.WriteByte('\n')
		if t.Role == model.RoleUser {
			u.WriteString(t.Content)
			u.WriteByte('\n')
		}
	}
	return a.String(), u.String()
}

func textFor(from source, all, user string) string {
	if from == userTurns {
		return user
	}
	return all
}

func applyText(rules []textRule, all, user string) (string, bool) {
	for _, r := range rules {
		matches := r.pattern.FindAllStringSubmatch(textFor(r.from, all, user), -1)
		if len(matches) == 0 {
			continue
		}
		if r.value != "" {
			return r.value, true
		}
		v := cleanValue(matches[len(matches)-1][1])
		if v == "" {
			continue
		}
		return v, true
	}
	return "", false
}

func applyDuration(rules []durationRule, all, user string) (int, bool) {
	for _, r := range rules {
		matches := r.pattern.FindAllStringSubmatch(textFor(r.from, all, user), -1)
		if len(matches) == 0 {
			continue
		}
		if mins, ok := r.minutes(matches[len(matches)-1]); ok {
			return mins, true
		}
	}
	return 0, false
}

// cleanValue trims whitespace and a trailing "for 2 hours" style clause off
// a captured value.
func cleanValue(v string) string {
	v = strings.TrimSpace(v)
	if loc := trailingDuration.FindStringIndex(v); loc != nil {
		v = strings.TrimSpace(v[:loc[0]])
	}
	return strings.TrimSpace(strings.Trim(v, " \"'[]"))
}
