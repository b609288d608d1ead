package service

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"precheck/internal/validation"
	"precheck/internal/validation/chains"
	"precheck/internal/validation/models"
	"precheck/internal/validation/ports"
	id "precheck/pkg/domain"
)

// CaseSubmission is a case together with every defendant submitted on it.
type CaseSubmission struct {
	Case       models.CaseDetails
	Defendants []models.Defendant
	Flags      validation.Flags
}

// DefendantSubmission is one defendant added to an existing case.
type DefendantSubmission struct {
	Case      models.CaseDetails
	Defendant models.Defendant
	Flags     validation.Flags
}

// DocumentSubmission is a document uploaded against a case. MatchPolicy may
// be empty to use the service default.
type DocumentSubmission struct {
	CaseID                  id.CaseID
	DocumentID              id.DocumentID
	Unbundled               bool
	Defendants              []validation.DefendantSubject
	ProsecutorDefendantID   string
	CaseDefendants          []models.Defendant
	DocumentType            string
	DocumentCategory        string
	HasApplication          bool
	CourtApplicationSubject string
	ProsecutionCaseSubject  string
	MaterialContentType     string
	MatchPolicy             string
}

// DefendantResult is the outcome of one defendant pass with the reference
// entries the pass resolved.
type DefendantResult struct {
	DefendantID id.DefendantID
	Result      validation.ValidationResult
	Resolved    validation.Resolved
}

// CaseResult holds the case-level problems and one result per submitted
// defendant, in submission order.
type CaseResult struct {
	CaseID     id.CaseID
	Case       validation.ValidationResult
	Prosecutor *ports.Prosecutor
	Defendants []DefendantResult
}

// Valid reports whether neither the case nor any defendant raised a problem.
func (r *CaseResult) Valid() bool {
	if !r.Case.Valid() {
		return false
	}
	for _, d := range r.Defendants {
		if !d.Result.Valid() {
			return false
		}
	}
	return true
}

// DocumentResult is the outcome of a document pass with the enrichment it produced.
type DocumentResult struct {
	DocumentID        id.DocumentID
	Result            validation.ValidationResult
	DocumentCategory  string
	DocumentType      *ports.DocumentTypeAccess
	ValidDefendantIDs map[string]id.DefendantID
}

// ValidateCase runs the case rules once, then each defendant through the
// chain for the case's initiation code. Defendants are validated in parallel
// up to the configured limit, each with its own pass cache. The first
// gateway failure cancels the remaining defendants.
func (s *Service) ValidateCase(ctx context.Context, sub CaseSubmission) (*CaseResult, error) {
	ctx, span := s.startPass(ctx, validation.KindCase,
		attribute.String("case.id", sub.Case.CaseID.String()),
		attribute.String("case.initiation_code", sub.Case.InitiationCode),
		attribute.Int("case.defendant_count", len(sub.Defendants)),
	)
	defer span.End()
	start := time.Now()

	caseCtx := validation.NewCaseContext(sub.Case)
	caseRes, err := chains.Case().Run(ctx, caseCtx, s.gateway)
	if err != nil {
		return nil, s.abort(ctx, span, validation.KindCase, err)
	}

	chain := chains.Defendant(sub.Case.InitiationCode)
	results := make([]DefendantResult, len(sub.Defendants))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)
	for i, d := range sub.Defendants {
		g.Go(func() error {
			res, err := s.runDefendant(gctx, chain, d, sub.Case, sub.Flags)
			if err != nil {
				return fmt.Errorf("defendant %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, s.abort(ctx, span, validation.KindCase, err)
	}

	out := &CaseResult{
		CaseID:     sub.Case.CaseID,
		Case:       caseRes,
		Prosecutor: caseCtx.ReferenceData().Resolved.Prosecutor,
		Defendants: results,
	}
	s.finish(ctx, span, validation.KindCase, start, sub.Case.URN, sub.Case.CaseID.String(), caseRes, out.Valid())
	return out, nil
}

// ValidateDefendant runs a single defendant pass.
func (s *Service) ValidateDefendant(ctx context.Context, sub DefendantSubmission) (*DefendantResult, error) {
	ctx, span := s.startPass(ctx, validation.KindDefendant,
		attribute.String("case.id", sub.Case.CaseID.String()),
		attribute.String("case.initiation_code", sub.Case.InitiationCode),
	)
	defer span.End()

	res, err := s.runDefendant(ctx, chains.Defendant(sub.Case.InitiationCode), sub.Defendant, sub.Case, sub.Flags)
	if err != nil {
		return nil, s.abort(ctx, span, validation.KindDefendant, err)
	}
	return &res, nil
}

// runDefendant validates one defendant in a fresh context and records its outcome.
func (s *Service) runDefendant(
	ctx context.Context,
	chain *validation.Chain[*validation.DefendantContext],
	d models.Defendant,
	caseDetails models.CaseDetails,
	flags validation.Flags,
) (DefendantResult, error) {
	ctx, span := s.tracer.Start(ctx, "validation.defendant.run")
	defer span.End()
	start := time.Now()

	dc := validation.NewDefendantContext(d, caseDetails, flags)
	res, err := chain.Run(ctx, dc, s.gateway)
	if err != nil {
		span.RecordError(err)
		return DefendantResult{}, err
	}
	s.finish(ctx, span, validation.KindDefendant, start, defendantSubject(d), caseDetails.CaseID.String(), res, res.Valid())
	return DefendantResult{
		DefendantID: d.ID,
		Result:      res,
		Resolved:    dc.ReferenceData().Resolved,
	}, nil
}

// ValidateDocument runs the document chain and returns the resolved category,
// document type and defendant ids alongside the problems.
func (s *Service) ValidateDocument(ctx context.Context, sub DocumentSubmission) (*DocumentResult, error) {
	policy := s.matchPolicy
	if sub.MatchPolicy != "" {
		p, err := chains.ParseMatchPolicy(sub.MatchPolicy)
		if err != nil {
			return nil, err
		}
		policy = p
	}

	ctx, span := s.startPass(ctx, validation.KindDocument,
		attribute.String("case.id", sub.CaseID.String()),
		attribute.String("document.id", sub.DocumentID.String()),
		attribute.String("document.match_policy", string(policy)),
	)
	defer span.End()
	start := time.Now()

	dc := &validation.CaseDocumentContext{
		DocumentID:              sub.DocumentID,
		Unbundled:               sub.Unbundled,
		Defendants:              sub.Defendants,
		ProsecutorDefendantID:   sub.ProsecutorDefendantID,
		CaseDefendants:          sub.CaseDefendants,
		DocumentType:            sub.DocumentType,
		DocumentCategory:        sub.DocumentCategory,
		HasApplication:          sub.HasApplication,
		CourtApplicationSubject: sub.CourtApplicationSubject,
		ProsecutionCaseSubject:  sub.ProsecutionCaseSubject,
		MaterialContentType:     sub.MaterialContentType,
		Cache:                   validation.NewReferenceDataCache(),
	}
	res, err := chains.Document(policy).Run(ctx, dc, s.gateway)
	if err != nil {
		return nil, s.abort(ctx, span, validation.KindDocument, err)
	}

	s.finish(ctx, span, validation.KindDocument, start, sub.DocumentID.String(), sub.CaseID.String(), res, res.Valid())
	return &DocumentResult{
		DocumentID:        sub.DocumentID,
		Result:            res,
		DocumentCategory:  dc.DocumentCategory,
		DocumentType:      dc.ResolvedDocumentType,
		ValidDefendantIDs: dc.ValidDefendantIDs,
	}, nil
}

// defendantSubject picks the identifier an outcome is keyed on.
func defendantSubject(d models.Defendant) string {
	switch {
	case d.ProsecutorDefendantReference != "":
		return d.ProsecutorDefendantReference
	case d.CPSDefendantID != "":
		return d.CPSDefendantID
	default:
		return d.ID.String()
	}
}
