package handlers

import (
	"net/http"

	"adcraft/internal/sqlinline"
)

func (a *App) StatsSummary(w http.ResponseWriter, r *http.Request) {
	row := a.SQL.QueryRow(r.Context(), sqlinline.QStatsSummary)
	var totalUsers, jobsSucceeded, jobsFailed, images24, videos24, creativesTotal int64
	if err := row.Scan(&totalUsers, &jobsSucceeded, &jobsFailed, &images24, &videos24, &creativesTotal); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load stats")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"total_users":     totalUsers,
		"jobs_succeeded":  jobsSucceeded,
		"jobs_failed":     jobsFailed,
		"images_last_24h": images24,
		"videos_last_24h": videos24,
		"creatives_total": creativesTotal,
	})
}
