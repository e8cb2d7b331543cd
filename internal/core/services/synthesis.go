package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/syntha-cli/internal/core/domain"
	"github.com/custodia-labs/syntha-cli/internal/core/ports/driven"
	"github.com/custodia-labs/syntha-cli/internal/core/ports/driving"
	"github.com/custodia-labs/syntha-cli/internal/logger"
)

// Ensure SynthesisOrchestrator implements the interface.
var _ driving.SynthesisService = (*SynthesisOrchestrator)(nil)

// maxFileNameLength caps the sanitised file name derived from a title.
const maxFileNameLength = 100

// SynthesisOrchestrator runs one synthesis request end to end: assemble
// the request from a cluster, fetch source contents, generate, persist.
// Each stage can fail the request; a failed generation never writes a
// partial file.
type SynthesisOrchestrator struct {
	docs      driven.DocumentStore
	generator driven.SynthesisGenerator
	folder    string
}

// NewSynthesisOrchestrator creates a synthesis orchestrator. The generator
// may be nil; Synthesise then reports domain.ErrGeneratorUnavailable.
// An empty folder falls back to the default synthesis folder.
func NewSynthesisOrchestrator(
	docs driven.DocumentStore,
	generator driven.SynthesisGenerator,
	folder string,
) *SynthesisOrchestrator {
	if folder == "" {
		folder = domain.DefaultSynthesisFolder
	}
	return &SynthesisOrchestrator{
		docs:      docs,
		generator: generator,
		folder:    strings.Trim(folder, "/"),
	}
}

// Synthesise turns an accepted cluster into a persisted synthesis note.
func (o *SynthesisOrchestrator) Synthesise(
	ctx context.Context,
	cluster domain.Cluster,
	synthesisType domain.SynthesisType,
	opts domain.SynthesisOptions,
) (*driving.SynthesisOutcome, error) {
	if o.generator == nil {
		return nil, domain.ErrGeneratorUnavailable
	}
	if !synthesisType.IsValid() {
		return nil, fmt.Errorf("%w: unknown synthesis type %q", domain.ErrInvalidInput, synthesisType)
	}

	req, err := o.assemble(cluster, synthesisType, opts)
	if err != nil {
		return nil, err
	}

	contents, sources, err := o.fetchContents(ctx, req.SourceDocumentIDs)
	if err != nil {
		return nil, err
	}

	result, err := o.generator.Generate(ctx, req, contents)
	if err != nil {
		return nil, fmt.Errorf("generate synthesis: %w", err)
	}
	o.finalise(result, req, sources)

	path, err := o.persist(ctx, result, opts)
	if err != nil {
		return nil, err
	}

	logger.Debug("Synthesis %s persisted to %s", result.ID, path)
	return &driving.SynthesisOutcome{Result: *result, Path: path}, nil
}

// assemble builds the immutable request from the cluster's members.
func (o *SynthesisOrchestrator) assemble(
	cluster domain.Cluster,
	synthesisType domain.SynthesisType,
	opts domain.SynthesisOptions,
) (domain.SynthesisRequest, error) {
	ids := cluster.MemberIDs()
	if len(ids) == 0 {
		return domain.SynthesisRequest{}, fmt.Errorf("%w: cluster %q has no members", domain.ErrEmptyInput, cluster.Name)
	}
	return domain.SynthesisRequest{
		ID:                uuid.NewString(),
		SourceDocumentIDs: ids,
		TargetTitle:       cluster.Name,
		Type:              synthesisType,
		Options:           opts,
		CreatedAt:         time.Now(),
	}, nil
}

// fetchContents resolves source documents. Unresolved IDs are dropped;
// generation proceeds on whatever resolves. All-failed is fatal.
func (o *SynthesisOrchestrator) fetchContents(
	ctx context.Context, ids []string,
) ([]driven.SourceContent, []domain.Document, error) {
	contents := make([]driven.SourceContent, 0, len(ids))
	sources := make([]domain.Document, 0, len(ids))
	for _, id := range ids {
		doc, err := o.docs.Get(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				logger.Debug("Synthesis: dropping unresolved source %s", id)
				continue
			}
			return nil, nil, fmt.Errorf("fetch source %s: %w", id, err)
		}
		sources = append(sources, *doc)
		contents = append(contents, driven.SourceContent{
			ID:      doc.ID,
			Path:    doc.Path,
			Title:   doc.Title,
			Content: doc.Content,
		})
	}
	if len(contents) == 0 {
		return nil, nil, fmt.Errorf("%w: no source documents resolved", domain.ErrEmptyInput)
	}
	return contents, sources, nil
}

// finalise fills in the result fields the generator does not own.
func (o *SynthesisOrchestrator) finalise(
	result *domain.SynthesisResult,
	req domain.SynthesisRequest,
	sources []domain.Document,
) {
	if result.ID == "" {
		result.ID = uuid.NewString()
	}
	result.RequestID = req.ID
	result.Type = req.Type
	if result.Title == "" {
		result.Title = req.TargetTitle
	}
	if result.CreatedAt.IsZero() {
		result.CreatedAt = time.Now()
	}

	links := make([]string, len(sources))
	for i, doc := range sources {
		links[i] = doc.Link()
	}
	result.SourceLinks = links
}

// persist renders the envelope and writes the note into the vault.
// Create-then-update: an existing file at the target path is overwritten
// rather than corrupted or duplicated.
func (o *SynthesisOrchestrator) persist(
	ctx context.Context, result *domain.SynthesisResult, opts domain.SynthesisOptions,
) (string, error) {
	body := result.Content
	if opts.IncludeBacklinks && len(result.SourceLinks) > 0 {
		var b strings.Builder
		b.WriteString(strings.TrimRight(body, "\n"))
		b.WriteString("\n\n## Sources\n\n")
		for _, link := range result.SourceLinks {
			fmt.Fprintf(&b, "- %s\n", link)
		}
		body = b.String()
	}

	envelope := domain.Envelope{
		Title:       result.Title,
		Type:        result.Type,
		CreatedAt:   result.CreatedAt,
		SourceLinks: result.SourceLinks,
		Tags:        result.SuggestedTags,
	}
	content := envelope.Render(body)

	path := o.folder + "/" + SanitiseFileName(result.Title) + ".md"
	err := o.docs.Create(ctx, path, content)
	if errors.Is(err, domain.ErrAlreadyExists) {
		err = o.docs.Update(ctx, path, content)
	}
	if err != nil {
		return "", fmt.Errorf("persist synthesis to %s: %w", path, err)
	}
	return path, nil
}

// SanitiseFileName turns a title into a safe file name: filesystem-reserved
// characters are stripped, whitespace runs collapse to single spaces, and
// the result is capped at maxFileNameLength bytes on a rune boundary.
func SanitiseFileName(title string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case '\\', '/', ':', '*', '?', '"', '<', '>', '|':
			return -1
		}
		return r
	}, title)
	cleaned = strings.Join(strings.Fields(cleaned), " ")
	if cleaned == "" {
		cleaned = "Untitled synthesis"
	}
	return truncate(cleaned, maxFileNameLength)
}
