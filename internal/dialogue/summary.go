package dialogue

import (
	"strings"

	"timesheet-assistant/internal/model"
	"timesheet-assistant/pkg/timeexpr"
)

// Summary renders an entry as the bullet list shown before confirmation.
// Optional fields are listed only when set.
func Summary(e model.TimeEntry) string {
	var b strings.Builder
	b.WriteString("• Task: " + e.TaskDescription)
	b.WriteString("\n• Duration: " + timeexpr.Format(e.DurationMinutes))
	b.WriteString("\n• Work Type: " + string(e.WorkType))

	optional := []struct {
		label string
		value string
	}{
		{"Matter", e.MatterName},
		{"Cost Centre", e.CostCentreName},
		{"Business Area", e.BusinessAreaName},
		{"Subcategory", e.SubcategoryName},
		{"Enjoyment", e.EnjoymentLevel},
		{"Energy Impact", e.EnergyImpact},
		{"Future Goal", e.TaskGoal},
	}
	for _, f := range optional {
		if f.value != "" {
			b.WriteString("\n• " + f.label + ": " + f.value)
		}
	}
	return b.String()
}

// StepForField maps a validator field name to the step that collects it.
func StepForField(field string) (Step, bool) {
	step, ok := fieldSteps[field]
	return step, ok
}

var fieldSteps = map[string]Step{
	"task_description":   StepGreeting,
	"duration_minutes":   StepTime,
	"start_time":         StepTime,
	"work_type":          StepWorkType,
	"matter_name":        StepMatter,
	"cost_centre_name":   StepCostCentre,
	"business_area_name": StepBusinessArea,
	"subcategory_name":   StepSubcategory,
	"enjoyment_level":    StepEnjoyment,
	"energy_impact":      StepEnergy,
	"task_goal":          StepGoal,
}
