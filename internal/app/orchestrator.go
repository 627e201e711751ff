// Package app wires the classifier, analyzer, scorer, risk model and registry
// into the operations the API surface exposes.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/avel9n/privacylens/internal/analyzer"
	"github.com/avel9n/privacylens/internal/classify"
	"github.com/avel9n/privacylens/internal/domainscore"
	"github.com/avel9n/privacylens/internal/logging"
	"github.com/avel9n/privacylens/internal/model"
	"github.com/avel9n/privacylens/internal/registry"
	"github.com/avel9n/privacylens/internal/report"
	"github.com/avel9n/privacylens/internal/score"
	"github.com/avel9n/privacylens/internal/urlutil"
)

// ErrDifferentPages is returned by CompareAnalyses when the two analyses do
// not belong to the same page domain.
var ErrDifferentPages = errors.New("analyses belong to different page domains")

// Orchestrator runs the full analysis pipeline and owns the shared
// classifier, scorer and risk model instances.
type Orchestrator struct {
	cfg        *Config
	classifier *classify.Classifier
	analyzer   *analyzer.Analyzer
	scorer     *score.Scorer
	riskModel  *domainscore.Model
	registry   *registry.Registry
	logger     logging.Logger
}

// NewOrchestrator builds the pipeline from cfg. The registry may be nil, in
// which case analyses are computed but not persisted.
func NewOrchestrator(cfg *Config, reg *registry.Registry, logger logging.Logger) (*Orchestrator, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = logging.NopLogger{}
	}

	trackers := classify.DefaultTrackerSet()
	if cfg.TrackerListPath != "" {
		var err error
		trackers, err = classify.LoadTrackerSet(cfg.TrackerListPath)
		if err != nil {
			return nil, fmt.Errorf("loading tracker list: %w", err)
		}
	}

	riskModel := domainscore.Default()
	if cfg.ModelPath != "" {
		var err error
		riskModel, err = domainscore.Load(cfg.ModelPath)
		if err != nil {
			return nil, fmt.Errorf("loading risk model: %w", err)
		}
	}

	classifier := classify.New(trackers)
	return &Orchestrator{
		cfg:        cfg,
		classifier: classifier,
		analyzer:   analyzer.New(classifier, logger),
		scorer:     score.NewScorer(cfg.Weights),
		riskModel:  riskModel,
		registry:   reg,
		logger:     logger.With(logging.Field{Key: "component", Value: "orchestrator"}),
	}, nil
}

// Classifier exposes the shared classifier for streaming sessions.
func (o *Orchestrator) Classifier() *classify.Classifier { return o.classifier }

// Trackers returns the sorted tracker domains in use.
func (o *Orchestrator) Trackers() []string { return o.classifier.Trackers().Domains() }

// ModelType identifies the loaded risk model artifact.
func (o *Orchestrator) ModelType() string { return o.riskModel.ModelType() }

// KnownDomains is the number of domains the risk model was trained on.
func (o *Orchestrator) KnownDomains() int { return o.riskModel.Known() }

// AnalyzePage runs the full pipeline for one observation and persists the
// resulting report when a registry is configured.
func (o *Orchestrator) AnalyzePage(ctx context.Context, req *model.AnalyzeRequest) (*model.AnalysisReport, error) {
	if req == nil {
		return nil, errors.New("nil analyze request")
	}

	pageURL := req.PageURL
	if canon, err := urlutil.Canonicalize(pageURL, o.cfg.URLOpts); err == nil {
		pageURL = canon
	}

	ext := o.analyzer.Extract(req)
	outcome := o.scorer.Score(ext.Features)

	var thirdParty, trackers []string
	counts := make([]domainscore.DomainCount, 0, len(ext.Verdicts))
	for _, v := range ext.Verdicts {
		counts = append(counts, domainscore.DomainCount{Domain: v.Domain, Count: v.Count})
		if v.ThirdParty {
			thirdParty = append(thirdParty, v.Domain)
		}
		if v.KnownTracker {
			trackers = append(trackers, v.Domain)
		}
	}

	rep := &model.AnalysisReport{
		PageURL:           pageURL,
		PageTitle:         req.PageTitle,
		PageDomain:        ext.PageDomain,
		Score:             outcome.Score,
		Level:             outcome.Level,
		Features:          ext.Features,
		Verdicts:          ext.Verdicts,
		ThirdPartyDomains: thirdParty,
		KnownTrackers:     trackers,
		Findings:          outcome.Findings,
		Recommendations:   outcome.Recommendations,
		Risk:              o.riskModel.ScoreDomains(counts),
		CookiesAnalyzed:   ext.CookiesAnalyzed,
		ScriptsAnalyzed:   ext.ScriptsAnalyzed,
	}

	if o.registry == nil {
		return rep, nil
	}
	saved, err := o.registry.SaveAnalysis(ctx, rep)
	if err != nil {
		return nil, fmt.Errorf("persisting analysis: %w", err)
	}
	o.logger.Info("analysis stored",
		logging.Field{Key: "id", Value: saved.ID},
		logging.Field{Key: "page_domain", Value: saved.PageDomain},
		logging.Field{Key: "score", Value: saved.Score})
	return saved, nil
}

// ScoreDomains runs the risk model over an explicit domain count list.
func (o *Orchestrator) ScoreDomains(counts []domainscore.DomainCount) *model.RiskSummary {
	return o.riskModel.ScoreDomains(counts)
}

// GetAnalysis loads a stored report by id.
func (o *Orchestrator) GetAnalysis(ctx context.Context, id string) (*model.AnalysisReport, error) {
	if o.registry == nil {
		return nil, registry.ErrAnalysisNotFound
	}
	return o.registry.GetAnalysis(ctx, id)
}

// ListAnalyses lists stored reports, newest first, optionally filtered by
// page domain.
func (o *Orchestrator) ListAnalyses(ctx context.Context, pageDomain string, limit int) ([]*model.AnalysisReport, error) {
	if o.registry == nil {
		return nil, nil
	}
	return o.registry.ListAnalyses(ctx, pageDomain, limit)
}

// CompareAnalyses diffs two stored reports for the same page.
func (o *Orchestrator) CompareAnalyses(ctx context.Context, baseID, headID string) (*report.Diff, error) {
	base, err := o.GetAnalysis(ctx, baseID)
	if err != nil {
		return nil, fmt.Errorf("loading base analysis: %w", err)
	}
	head, err := o.GetAnalysis(ctx, headID)
	if err != nil {
		return nil, fmt.Errorf("loading head analysis: %w", err)
	}
	if base.PageDomain != head.PageDomain {
		return nil, ErrDifferentPages
	}
	return report.Compare(base, head), nil
}
