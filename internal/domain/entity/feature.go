package entity

// Feature identifies one quota-gated AI capability. Each feature has its
// own independent counter column on the users table.
type Feature string

const (
	FeatureDoctorSearch     Feature = "doctor_search"
	FeatureDietPlan         Feature = "diet_plan"
	FeaturePrescriptionScan Feature = "prescription_scan"
)

// CounterColumn returns the users column holding the feature's usage count.
func (f Feature) CounterColumn() string {
	switch f {
	case FeatureDoctorSearch:
		return "search_count"
	case FeatureDietPlan:
		return "diet_plan_count"
	case FeaturePrescriptionScan:
		return "prescription_scan_count"
	}
	return ""
}

// Count picks the feature's counter value out of a loaded user row.
func (f Feature) Count(user *User) int {
	switch f {
	case FeatureDoctorSearch:
		return user.SearchCount
	case FeatureDietPlan:
		return user.DietPlanCount
	case FeaturePrescriptionScan:
		return user.PrescriptionScanCount
	}
	return 0
}
