package request

import (
	"net/http"
	"time"

	"github.com/khairallah17/anomaly-tracker/internal/model"
	"github.com/khairallah17/anomaly-tracker/internal/rules"
)

// ParseAnomalyFilter extracts the anomaly list predicates from the query
// string. Status aliases are normalized here, at the boundary; an
// unrecognized status is passed through verbatim and will simply match
// nothing.
func ParseAnomalyFilter(r *http.Request) rules.AnomalyFilter {
	q := r.URL.Query()

	f := rules.AnomalyFilter{
		Search:           q.Get("search"),
		Description:      q.Get("description"),
		Equipment:        q.Get("equipment"),
		SystemUnit:       q.Get("system"),
		Service:          q.Get("service"),
		ShutdownRequired: q.Get("sys_shutdown_required"),
		Status:           q.Get("status"),
		Criticality:      q.Get("criticality"),
	}

	if f.Status != "" && f.Status != rules.FilterAll {
		if canonical, ok := model.NormalizeStatus(f.Status); ok {
			f.Status = canonical
		}
	}

	if dateStr := q.Get("detection_date"); dateStr != "" {
		if d, err := time.Parse("2006-01-02", dateStr); err == nil {
			f.DetectionDate = &d
		}
	}

	return f
}
