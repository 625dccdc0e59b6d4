// Package validator checks a drafted time entry for schema completeness
// before it is handed to delivery.
package validator

import (
	"strings"

	"timesheet-assistant/internal/model"
)

// PlaceholderDescription replaces an empty task description.
const PlaceholderDescription = "(no description provided)"

// Validate returns the normalized entry when every field required by its
// work type is present. Otherwise it returns a *MissingFieldsError naming
// the absent fields; the input entry is never modified.
func Validate(entry model.TimeEntry) (model.TimeEntry, error) {
	e := entry.Normalize()
	if strings.TrimSpace(e.TaskDescription) == "" {
		e.TaskDescription = PlaceholderDescription
	}

	var missing []string
	need := func(field string, ok bool) {
		if !ok {
			missing = append(missing, field)
		}
	}
	present := func(s string) bool { return strings.TrimSpace(s) != "" }

	need("duration_minutes", e.DurationMinutes > 0)
	need("start_time", !e.StartTime.IsZero())
	need("work_type", e.WorkType.Valid())

	switch e.WorkType {
	case model.WorkTypeBillable:
		need("matter_name", present(e.MatterName))
		need("cost_centre_name", present(e.CostCentreName))
	case model.WorkTypeNonBillable:
		need("business_area_name", present(e.BusinessAreaName))
		need("subcategory_name", present(e.SubcategoryName))
	}

	need("enjoyment_level", present(e.EnjoymentLevel))
	need("energy_impact", present(e.EnergyImpact))
	need("task_goal", present(e.TaskGoal))

	if len(missing) > 0 {
		return entry, &MissingFieldsError{Fields: missing}
	}
	return e, nil
}
