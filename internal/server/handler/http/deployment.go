package http

import (
	"net/http"

	"github.com/avaolo/gatekeeper/internal/provenance"
)

// DeploymentHandler serves the read-only deployment audit endpoints over
// the provenance snapshot captured at startup.
type DeploymentHandler struct {
	// Snapshot is the immutable provenance captured during startup.
	Snapshot provenance.Snapshot
}

// Provenance returns the raw provenance fields.
func (h *DeploymentHandler) Provenance(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Snapshot)
}

// Audit returns the computed audit report: pass/fail, risk level,
// compliance status, and remediation recommendations.
func (h *DeploymentHandler) Audit(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Snapshot.AuditReport())
}

// Verify returns the compact verification summary; warning is null when
// the deployment is trusted.
func (h *DeploymentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Snapshot.Verification())
}
