package audit

import "opsledger/models"

// PerformanceMetrics derives per-actor reliability counters from the audit
// feed in a single pass. Every entry counts toward its actor's total;
// COMPLETED entries additionally count as completions. Nothing is stored:
// the result is always consistent with the log by construction.
func (svc *DefaultAuditService) PerformanceMetrics() (map[string]models.PerformanceMetric, error) {
	entries, err := svc.Repo.ListAll()
	if err != nil {
		return nil, err
	}

	metrics := make(map[string]models.PerformanceMetric)
	for _, e := range entries {
		m := metrics[e.PerformedBy]
		m.Total++
		if e.Action == models.ActionCompleted {
			m.Completed++
		}
		metrics[e.PerformedBy] = m
	}
	return metrics, nil
}
