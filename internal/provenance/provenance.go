// Package provenance captures deployment provenance from the process
// environment and derives audit views over it.
//
// The snapshot is taken once during startup and is immutable afterwards.
// A deployment is considered trusted when it carries a CI commit sha;
// anything else is advisory only and never blocks startup or requests.
package provenance

import (
	"os"
	"time"
)

// unset is the sentinel recorded for CI variables absent from the environment.
const unset = "unknown"

// Snapshot is the deployment provenance captured at process start.
type Snapshot struct {
	// CommitSHA is the commit the deployment was built from.
	CommitSHA string `json:"github_sha"`
	// Ref is the git ref (branch or tag) the build ran against.
	Ref string `json:"github_ref"`
	// Actor is the user or system that triggered the deployment.
	Actor string `json:"github_actor"`
	// Workflow is the CI workflow that produced the build.
	Workflow string `json:"github_workflow"`
	// RunID is the CI run identifier.
	RunID string `json:"github_run_id"`
	// BuildTime is the timestamp recorded by the build pipeline.
	BuildTime string `json:"build_timestamp"`
	// Trusted is true when the deployment is traceable to a CI commit.
	Trusted bool `json:"trusted"`
	// Warning describes why the deployment is untrusted; empty when trusted.
	Warning string `json:"warning,omitempty"`
	// CapturedAt is when this snapshot was taken.
	CapturedAt time.Time `json:"captured_at"`
}

// Capture reads the CI environment once and returns the snapshot.
// It never fails: a missing or sentinel commit sha marks the snapshot
// untrusted and records a warning instead.
func Capture() Snapshot {
	return CaptureFromEnv(os.Getenv)
}

// CaptureFromEnv is Capture with an injectable environment lookup.
func CaptureFromEnv(getenv func(string) string) Snapshot {
	lookup := func(key string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return unset
	}

	s := Snapshot{
		CommitSHA:  lookup("GITHUB_SHA"),
		Ref:        lookup("GITHUB_REF"),
		Actor:      lookup("GITHUB_ACTOR"),
		Workflow:   lookup("GITHUB_WORKFLOW"),
		RunID:      lookup("GITHUB_RUN_ID"),
		BuildTime:  lookup("BUILD_TIMESTAMP"),
		CapturedAt: time.Now().UTC(),
	}

	if s.CommitSHA == unset {
		s.Warning = "deployment is not traceable to a CI commit"
	} else {
		s.Trusted = true
	}
	return s
}

// DeploymentInfo is the provenance portion of an audit report.
type DeploymentInfo struct {
	CommitSHA string `json:"commit_sha"`
	Ref       string `json:"ref"`
	Actor     string `json:"actor"`
	Workflow  string `json:"workflow"`
	RunID     string `json:"run_id"`
	BuildTime string `json:"build_time"`
}

// SecurityInfo summarizes the trust decision.
type SecurityInfo struct {
	TrustedCI bool   `json:"trusted_ci"`
	Warning   string `json:"warning,omitempty"`
}

// AuditResult is the pass/fail verdict with its risk classification.
type AuditResult struct {
	Passed       bool   `json:"passed"`
	GitTraceable bool   `json:"git_traceable"`
	RiskLevel    string `json:"risk_level"`
	Compliance   string `json:"compliance"`
}

// AuditReport is the full audit view over a snapshot.
type AuditReport struct {
	Deployment      DeploymentInfo `json:"deployment"`
	Security        SecurityInfo   `json:"security"`
	Audit           AuditResult    `json:"audit"`
	Recommendations []string       `json:"recommendations"`
	Timestamp       time.Time      `json:"timestamp"`
}

// AuditReport computes the audit view. An untrusted deployment fails the
// audit at CRITICAL risk with remediation suggestions; a trusted one
// passes with no recommendations.
func (s Snapshot) AuditReport() AuditReport {
	report := AuditReport{
		Deployment: DeploymentInfo{
			CommitSHA: s.CommitSHA,
			Ref:       s.Ref,
			Actor:     s.Actor,
			Workflow:  s.Workflow,
			RunID:     s.RunID,
			BuildTime: s.BuildTime,
		},
		Security: SecurityInfo{
			TrustedCI: s.Trusted,
			Warning:   s.Warning,
		},
		Recommendations: []string{},
		Timestamp:       time.Now().UTC(),
	}

	if s.Trusted {
		report.Audit = AuditResult{
			Passed:       true,
			GitTraceable: true,
			RiskLevel:    "LOW",
			Compliance:   "COMPLIANT",
		}
		return report
	}

	report.Audit = AuditResult{
		Passed:       false,
		GitTraceable: false,
		RiskLevel:    "CRITICAL",
		Compliance:   "NON_COMPLIANT",
	}
	report.Recommendations = []string{
		"Redeploy through the CI pipeline so the commit sha is recorded",
		"Avoid manual deployments; they cannot be traced back to source",
		"Set GITHUB_SHA in the task environment if this deployment is legitimate",
	}
	return report
}

// Verification is the compact view served to monitoring clients.
type Verification struct {
	Secure    bool    `json:"secure"`
	GitHubSHA string  `json:"github_sha"`
	Warning   *string `json:"warning"`
}

// Verification returns the minimal trust summary. Warning is null for
// trusted deployments.
func (s Snapshot) Verification() Verification {
	v := Verification{
		Secure:    s.Trusted,
		GitHubSHA: s.CommitSHA,
	}
	if !s.Trusted {
		warning := s.Warning
		v.Warning = &warning
	}
	return v
}
