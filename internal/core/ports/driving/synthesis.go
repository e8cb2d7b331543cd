package driving

import (
	"context"

	"github.com/custodia-labs/syntha-cli/internal/core/domain"
)

// SynthesisOutcome is the persisted result of one synthesis run.
type SynthesisOutcome struct {
	// Result is the generated artifact.
	Result domain.SynthesisResult

	// Path is the vault-relative path the artifact was written to.
	Path string
}

// SynthesisService turns an accepted cluster into a persisted synthesis note.
type SynthesisService interface {
	// Synthesise assembles a request from the cluster, generates the
	// composite note and persists it to the vault.
	Synthesise(ctx context.Context, cluster domain.Cluster, synthesisType domain.SynthesisType, opts domain.SynthesisOptions) (*SynthesisOutcome, error)
}
