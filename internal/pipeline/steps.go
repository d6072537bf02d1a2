package pipeline

import (
	"context"
	"fmt"

	"github.com/seoscan/seoscan/internal/audit"
	"github.com/seoscan/seoscan/internal/backlinks"
	"github.com/seoscan/seoscan/internal/clustering"
	"github.com/seoscan/seoscan/internal/extractor"
	"github.com/seoscan/seoscan/internal/keywords"
	"github.com/seoscan/seoscan/internal/linking"
	"github.com/seoscan/seoscan/internal/model"
	"github.com/seoscan/seoscan/internal/serp"
)

// Step names, in default execution order.
const (
	StepKeywordResearch = "keyword-research"
	StepSerpAnalysis    = "serp-analysis"
	StepBacklinkGaps    = "backlink-gaps"
	StepClustering      = "content-clustering"
	StepInternalLinking = "internal-linking"
	StepTechnicalAudit  = "technical-audit"
)

// KeywordResearchStep expands the configured seeds into the scored
// keyword universe. It is the root of the dependency chain: SERP
// analysis and clustering consume its output.
type KeywordResearchStep struct {
	aggregator *keywords.Aggregator
}

// NewKeywordResearchStep creates the keyword research step.
func NewKeywordResearchStep(aggregator *keywords.Aggregator) *KeywordResearchStep {
	return &KeywordResearchStep{aggregator: aggregator}
}

// Name returns the step name.
func (s *KeywordResearchStep) Name() string { return StepKeywordResearch }

// Do executes keyword research and publishes the universe artifact.
func (s *KeywordResearchStep) Do(ctx context.Context, rc *RunContext) error {
	universe, err := s.aggregator.Research(ctx, rc.Seeds)
	if err != nil {
		return err
	}

	path, err := rc.Store.Save(PrefixKeywords, universe)
	if err != nil {
		return err
	}
	rc.Universe = universe
	rc.Publish(s.Name(), path)
	return nil
}

// universeFor returns the keyword universe for a dependent step: the
// handle published this run, or the latest stored artifact when the
// producing step was skipped.
func universeFor(rc *RunContext) (*model.KeywordUniverse, error) {
	if rc.Universe != nil {
		return rc.Universe, nil
	}
	var universe model.KeywordUniverse
	if err := rc.Store.Load(PrefixKeywords, &universe); err != nil {
		return nil, fmt.Errorf("keyword universe unavailable: %w", err)
	}
	return &universe, nil
}

// pagesFor returns the extracted content pages, scanning the content
// directory once per run and sharing the result between steps.
func pagesFor(ctx context.Context, rc *RunContext, ex *extractor.Extractor) ([]*model.Page, error) {
	if rc.pagesScanned {
		return rc.Pages, nil
	}
	pages, err := ex.Scan(ctx, rc.ContentDir)
	if err != nil {
		return nil, err
	}
	rc.Pages = pages
	rc.pagesScanned = true
	return pages, nil
}

// SerpAnalysisStep finds ranking gaps for the keyword universe.
type SerpAnalysisStep struct {
	analyzer *serp.Analyzer
}

// NewSerpAnalysisStep creates the SERP analysis step.
func NewSerpAnalysisStep(analyzer *serp.Analyzer) *SerpAnalysisStep {
	return &SerpAnalysisStep{analyzer: analyzer}
}

// Name returns the step name.
func (s *SerpAnalysisStep) Name() string { return StepSerpAnalysis }

// Do executes SERP analysis over the keyword universe.
func (s *SerpAnalysisStep) Do(ctx context.Context, rc *RunContext) error {
	universe, err := universeFor(rc)
	if err != nil {
		return err
	}

	texts := make([]string, 0, len(universe.Keywords))
	for _, kw := range universe.Keywords {
		texts = append(texts, kw.Keyword)
	}

	report, err := s.analyzer.Analyze(ctx, rc.Run.Domain, rc.Run.Competitors, texts)
	if err != nil {
		return err
	}

	path, err := rc.Store.Save(PrefixSerpGaps, report)
	if err != nil {
		return err
	}
	rc.SerpReport = report
	rc.Publish(s.Name(), path)
	return nil
}

// BacklinkGapsStep computes the referring-domain gap against
// competitors. It has no upstream dependency.
type BacklinkGapsStep struct {
	finder *backlinks.Finder
}

// NewBacklinkGapsStep creates the backlink gap step.
func NewBacklinkGapsStep(finder *backlinks.Finder) *BacklinkGapsStep {
	return &BacklinkGapsStep{finder: finder}
}

// Name returns the step name.
func (s *BacklinkGapsStep) Name() string { return StepBacklinkGaps }

// Do executes the backlink gap analysis.
func (s *BacklinkGapsStep) Do(ctx context.Context, rc *RunContext) error {
	report, err := s.finder.Find(ctx, rc.Run.Domain, rc.Run.Competitors)
	if err != nil {
		return err
	}

	path, err := rc.Store.Save(PrefixBacklinks, report)
	if err != nil {
		return err
	}
	rc.BacklinkGaps = report
	rc.Publish(s.Name(), path)
	return nil
}

// ContentClusteringStep groups the keyword universe into topical
// clusters and derives the content calendar.
type ContentClusteringStep struct {
	engine    *clustering.Engine
	extractor *extractor.Extractor
}

// NewContentClusteringStep creates the clustering step.
func NewContentClusteringStep(engine *clustering.Engine, ex *extractor.Extractor) *ContentClusteringStep {
	return &ContentClusteringStep{engine: engine, extractor: ex}
}

// Name returns the step name.
func (s *ContentClusteringStep) Name() string { return StepClustering }

// Do executes content clustering against the keyword universe and the
// local content tree.
func (s *ContentClusteringStep) Do(ctx context.Context, rc *RunContext) error {
	universe, err := universeFor(rc)
	if err != nil {
		return err
	}
	pages, err := pagesFor(ctx, rc, s.extractor)
	if err != nil {
		return err
	}

	report := s.engine.Cluster(universe.Keywords, pages)

	path, err := rc.Store.Save(PrefixClusters, report)
	if err != nil {
		return err
	}
	rc.Clusters = report
	rc.Publish(s.Name(), path)
	return nil
}

// InternalLinkingStep recommends new internal links between content
// pages.
type InternalLinkingStep struct {
	recommender *linking.Recommender
	extractor   *extractor.Extractor
}

// NewInternalLinkingStep creates the internal linking step.
func NewInternalLinkingStep(recommender *linking.Recommender, ex *extractor.Extractor) *InternalLinkingStep {
	return &InternalLinkingStep{recommender: recommender, extractor: ex}
}

// Name returns the step name.
func (s *InternalLinkingStep) Name() string { return StepInternalLinking }

// Do executes the internal linking analysis over the content tree.
func (s *InternalLinkingStep) Do(ctx context.Context, rc *RunContext) error {
	pages, err := pagesFor(ctx, rc, s.extractor)
	if err != nil {
		return err
	}

	report := s.recommender.Recommend(pages)

	path, err := rc.Store.Save(PrefixLinking, report)
	if err != nil {
		return err
	}
	rc.Linking = report
	rc.Publish(s.Name(), path)
	return nil
}

// TechnicalAuditStep crawls the live site and classifies technical
// findings.
type TechnicalAuditStep struct {
	auditor *audit.Auditor
}

// NewTechnicalAuditStep creates the technical audit step.
func NewTechnicalAuditStep(auditor *audit.Auditor) *TechnicalAuditStep {
	return &TechnicalAuditStep{auditor: auditor}
}

// Name returns the step name.
func (s *TechnicalAuditStep) Name() string { return StepTechnicalAudit }

// Do executes the technical audit.
func (s *TechnicalAuditStep) Do(ctx context.Context, rc *RunContext) error {
	target := rc.AuditURL
	if target == "" {
		target = "https://" + rc.Run.Domain
	}

	report, err := s.auditor.Audit(ctx, target)
	if err != nil {
		return err
	}

	path, err := rc.Store.Save(PrefixAudit, report)
	if err != nil {
		return err
	}
	rc.Audit = report
	rc.Publish(s.Name(), path)
	return nil
}
