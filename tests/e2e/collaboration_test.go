package e2e

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestCommentsCRUD exercises the comment thread on an anomaly.
func TestCommentsCRUD(t *testing.T) {
	a := createAnomaly(t, map[string]interface{}{
		"description": "E2E commented anomaly",
		"equipment":   "Tank T-907",
		"service":     "e2e-tests",
	})
	id := anomalyID(t, a)

	resp, body := httpPost(t, fmt.Sprintf("%s/anomalies/%d/comments", apiBaseURL, id),
		map[string]interface{}{"author": "e2e", "body": "First observation"})
	require.Equal(t, 201, resp.StatusCode, "create comment: %s", body)
	comment := parseJSON(t, body)
	commentID := anomalyID(t, comment)
	require.Equal(t, float64(id), comment["anomalyId"])

	resp, body = httpGet(t, fmt.Sprintf("%s/anomalies/%d/comments", apiBaseURL, id))
	require.Equal(t, 200, resp.StatusCode, body)
	require.Len(t, parseArray(t, body), 1)

	resp, body = httpPatch(t, fmt.Sprintf("%s/comments/%d", apiBaseURL, commentID),
		map[string]interface{}{"body": "Amended observation"})
	require.Equal(t, 200, resp.StatusCode, "update comment: %s", body)
	require.Equal(t, "Amended observation", parseJSON(t, body)["body"])

	resp, body = httpDelete(t, fmt.Sprintf("%s/comments/%d", apiBaseURL, commentID))
	require.Equal(t, 204, resp.StatusCode, "delete comment: %s", body)

	resp, body = httpGet(t, fmt.Sprintf("%s/comments/%d", apiBaseURL, commentID))
	require.Equal(t, 404, resp.StatusCode, body)
}

// TestActionPlan builds an ordered action plan and patches item status.
func TestActionPlan(t *testing.T) {
	a := createAnomaly(t, map[string]interface{}{
		"description": "E2E planned anomaly",
		"equipment":   "Column C-908",
		"service":     "e2e-tests",
	})
	id := anomalyID(t, a)

	resp, body := httpPost(t, fmt.Sprintf("%s/anomalies/%d/action-plan", apiBaseURL, id),
		map[string]interface{}{"action": "Isolate and drain", "responsible": "Ops"})
	require.Equal(t, 201, resp.StatusCode, "add first item: %s", body)
	first := parseJSON(t, body)
	require.Equal(t, float64(0), first["position"])
	require.Equal(t, "pending", first["status"])

	resp, body = httpPost(t, fmt.Sprintf("%s/anomalies/%d/action-plan", apiBaseURL, id),
		map[string]interface{}{"action": "Replace gasket", "responsible": "Maintenance"})
	require.Equal(t, 201, resp.StatusCode, "add second item: %s", body)
	second := parseJSON(t, body)
	require.Equal(t, float64(1), second["position"])

	resp, body = httpPatch(t, fmt.Sprintf("%s/anomalies/%d/action-plan/%d", apiBaseURL, id, anomalyID(t, first)),
		map[string]interface{}{"status": "done"})
	require.Equal(t, 200, resp.StatusCode, "complete item: %s", body)
	require.Equal(t, "done", parseJSON(t, body)["status"])

	resp, body = httpGet(t, fmt.Sprintf("%s/anomalies/%d/action-plan", apiBaseURL, id))
	require.Equal(t, 200, resp.StatusCode, body)
	items := parseArray(t, body)
	require.Len(t, items, 2)
	require.Equal(t, "Isolate and drain", items[0]["action"])

	resp, body = httpDelete(t, fmt.Sprintf("%s/anomalies/%d/action-plan/%d", apiBaseURL, id, anomalyID(t, second)))
	require.Equal(t, 204, resp.StatusCode, "delete item: %s", body)
}
