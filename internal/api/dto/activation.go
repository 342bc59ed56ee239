package dto

// ActivationResult summarises one activation run
type ActivationResult struct {
	Total     int     `json:"total"`
	Activated int     `json:"activated"`
	Failed    int     `json:"failed"`
	Skipped   int     `json:"skipped"`
	FailedIDs []int64 `json:"failed_ids"`
}
