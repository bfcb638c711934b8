package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avaolo/gatekeeper/internal/provenance"
)

func snapshotFrom(vars map[string]string) provenance.Snapshot {
	return provenance.CaptureFromEnv(func(key string) string { return vars[key] })
}

func TestDeploymentHandler_Provenance(t *testing.T) {
	h := &DeploymentHandler{Snapshot: snapshotFrom(map[string]string{
		"GITHUB_SHA": "abc123",
		"GITHUB_REF": "refs/heads/main",
	})}

	rec := httptest.NewRecorder()
	h.Provenance(rec, httptest.NewRequest("GET", "/api/deployment/provenance", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "abc123", body["github_sha"])
	assert.Equal(t, "refs/heads/main", body["github_ref"])
	assert.Equal(t, true, body["trusted"])
}

func TestDeploymentHandler_Audit_Untrusted(t *testing.T) {
	h := &DeploymentHandler{Snapshot: snapshotFrom(nil)}

	rec := httptest.NewRecorder()
	h.Audit(rec, httptest.NewRequest("GET", "/api/deployment/audit", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var report provenance.AuditReport
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
	assert.False(t, report.Audit.Passed)
	assert.Equal(t, "CRITICAL", report.Audit.RiskLevel)
	assert.NotEmpty(t, report.Recommendations)
}

func TestDeploymentHandler_Audit_Trusted(t *testing.T) {
	h := &DeploymentHandler{Snapshot: snapshotFrom(map[string]string{"GITHUB_SHA": "abc123"})}

	rec := httptest.NewRecorder()
	h.Audit(rec, httptest.NewRequest("GET", "/api/deployment/audit", nil))

	var report provenance.AuditReport
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&report))
	assert.True(t, report.Audit.Passed)
	assert.Equal(t, "LOW", report.Audit.RiskLevel)
	assert.Empty(t, report.Recommendations)
}

func TestDeploymentHandler_Verify(t *testing.T) {
	trusted := &DeploymentHandler{Snapshot: snapshotFrom(map[string]string{"GITHUB_SHA": "abc123"})}
	rec := httptest.NewRecorder()
	trusted.Verify(rec, httptest.NewRequest("GET", "/api/deployment/verify", nil))

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, true, body["secure"])
	assert.Equal(t, "abc123", body["github_sha"])
	assert.Nil(t, body["warning"])

	untrusted := &DeploymentHandler{Snapshot: snapshotFrom(nil)}
	rec = httptest.NewRecorder()
	untrusted.Verify(rec, httptest.NewRequest("GET", "/api/deployment/verify", nil))

	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, false, body["secure"])
	assert.NotEmpty(t, body["warning"])
}
