package model

import "time"

// WorkType classifies a time entry and decides which secondary fields apply.
type WorkType string

const (
	WorkTypeBillable    WorkType = "billable"
	WorkTypeNonBillable WorkType = "non_billable"
	WorkTypePersonal    WorkType = "personal"
)

// Valid reports whether w is one of the known work types.
func (w WorkType) Valid() bool {
	switch w {
	case WorkTypeBillable, WorkTypeNonBillable, WorkTypePersonal:
		return true
	}
	return false
}

// TimeEntry is one unit of reported work. While a conversation is in
// progress the same struct holds the partial draft: zero values mean
// "not collected yet".
type TimeEntry struct {
	TaskDescription  string    `json:"task_description"`
	DurationMinutes  int       `json:"duration_minutes"`
	StartTime        time.Time `json:"start_time"`
	WorkType         WorkType  `json:"work_type"`
	MatterName       string    `json:"matter_name"`
	CostCentreName   string    `json:"cost_centre_name"`
	BusinessAreaName string    `json:"business_area_name"`
	SubcategoryName  string    `json:"subcategory_name"`
	EnjoymentLevel   string    `json:"enjoyment_level"`
	EnergyImpact     string    `json:"energy_impact"`
	TaskGoal         string    `json:"task_goal"`
}

// Normalize returns a copy with the secondary fields that do not belong to
// the entry's work type cleared. Billable keeps matter and cost centre,
// non-billable keeps business area and subcategory, personal keeps neither.
func (e TimeEntry) Normalize() TimeEntry {
	switch e.WorkType {
	case WorkTypeBillable:
		e.BusinessAreaName = ""
		e.SubcategoryName = ""
	case WorkTypeNonBillable:
		e.MatterName = ""
		e.CostCentreName = ""
	case WorkTypePersonal:
		e.MatterName = ""
		e.CostCentreName = ""
		e.BusinessAreaName = ""
		e.SubcategoryName = ""
	}
	return e
}

// EndTime is StartTime plus the reported duration.
func (e TimeEntry) EndTime() time.Time {
	return e.StartTime.Add(time.Duration(e.DurationMinutes) * time.Minute)
}
