package dialogue

import (
	"strings"

	"timesheet-assistant/internal/model"
)

// nonBillableMarkers are checked before "billable" since every one of them
// contains it.
var nonBillableMarkers = []string{"non-billable", "non billable", "nonbillable", "non_billable", "not billable"}

// ClassifyWorkType maps a free-text answer to a work type. Non-billable
// markers are tested first, then "billable"; anything else is personal.
func ClassifyWorkType(answer string) model.WorkType {
	lower := strings.ToLower(answer)
	for _, marker := range nonBillableMarkers {
		if strings.Contains(lower, marker) {
			return model.WorkTypeNonBillable
		}
	}
	if strings.Contains(lower, "billable") {
		return model.WorkTypeBillable
	}
	return model.WorkTypePersonal
}

// IsAffirmative reports whether a confirmation answer accepts the entry.
func IsAffirmative(answer string) bool {
	return strings.Contains(strings.ToLower(answer), "yes")
}
