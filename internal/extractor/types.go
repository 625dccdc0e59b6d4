package extractor

import (
	"time"

	"timesheet-assistant/internal/model"
)

// Extraction holds every schema field recovered from a transcript. Fields no
// rule matched carry their default and are listed in Misses.
type Extraction struct {
	TaskDescription  string
	DurationMinutes  int
	WorkType         model.WorkType
	MatterName       string
	CostCentreName   string
	BusinessAreaName string
	SubcategoryName  string
	EnjoymentLevel   string
	EnergyImpact     string
	TaskGoal         string
	Misses           []string
}

// Entry converts the extraction into a time entry starting at start, keeping
// only the secondary fields that belong to the work type.
func (x Extraction) Entry(start time.Time) model.TimeEntry {
	return model.TimeEntry{
		TaskDescription:  x.TaskDescription,
		DurationMinutes:  x.DurationMinutes,
		StartTime:        start,
		WorkType:         x.WorkType,
		MatterName:       x.MatterName,
		CostCentreName:   x.CostCentreName,
		BusinessAreaName: x.BusinessAreaName,
		SubcategoryName:  x.SubcategoryName,
		EnjoymentLevel:   x.EnjoymentLevel,
		EnergyImpact:     x.EnergyImpact,
		TaskGoal:         x.TaskGoal,
	}.Normalize()
}
