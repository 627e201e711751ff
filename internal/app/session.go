package app

import (
	"context"
	"errors"
	"sync"

	"github.com/avel9n/privacylens/internal/classify"
	"github.com/avel9n/privacylens/internal/model"
)

// Observation is one incremental event from a live page session: a network
// request, a script load or a cookie write.
type Observation struct {
	Kind           string  `json:"kind"` // "request", "script" or "cookie"
	URL            string  `json:"url,omitempty"`
	Domain         string  `json:"domain,omitempty"`
	Method         string  `json:"method,omitempty"`
	Type           string  `json:"type,omitempty"`
	Inline         bool    `json:"inline,omitempty"`
	Secure         bool    `json:"secure,omitempty"`
	SessionCookie  *bool   `json:"session,omitempty"`
	ExpirationDate float64 `json:"expiration_date,omitempty"`
}

// Verdict is the immediate per-observation answer sent back over the stream.
type Verdict struct {
	Domain       string `json:"domain"`
	ThirdParty   bool   `json:"third_party"`
	KnownTracker bool   `json:"known_tracker"`
}

// ErrUnknownObservation is returned for observation kinds the session does
// not understand.
var ErrUnknownObservation = errors.New("unknown observation kind")

// Session accumulates live observations for one page and produces a full
// report when the page is done. Safe for a single reader goroutine feeding
// observations; Finish must be called at most once.
type Session struct {
	orch *Orchestrator

	mu  sync.Mutex
	req model.AnalyzeRequest
}

// NewSession starts a streaming analysis session for pageURL.
func (o *Orchestrator) NewSession(pageURL, pageTitle string) *Session {
	s := &Session{orch: o}
	s.req.PageURL = pageURL
	s.req.PageTitle = pageTitle
	s.req.PageDomain = classify.DomainFromURL(pageURL)
	return s
}

// Observe records one event and returns the immediate classification for its
// domain. Observations without a resolvable domain classify third-party.
func (s *Session) Observe(obs Observation) (Verdict, error) {
	domain := obs.Domain
	if domain == "" {
		domain = classify.DomainFromURL(obs.URL)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch obs.Kind {
	case "request":
		s.req.NetworkRequests = append(s.req.NetworkRequests, model.NetworkRequest{
			URL:    obs.URL,
			Method: obs.Method,
			Type:   obs.Type,
			Domain: domain,
		})
	case "script":
		s.req.Scripts = append(s.req.Scripts, model.Script{
			Domain: domain,
			Inline: obs.Inline,
		})
	case "cookie":
		s.req.Cookies = append(s.req.Cookies, model.Cookie{
			Domain:         domain,
			Secure:         obs.Secure,
			Session:        obs.SessionCookie,
			ExpirationDate: obs.ExpirationDate,
		})
	default:
		return Verdict{}, ErrUnknownObservation
	}

	res := s.orch.classifier.Classify(domain, s.req.PageDomain)
	return Verdict{
		Domain:       domain,
		ThirdParty:   res.ThirdParty,
		KnownTracker: res.KnownTracker,
	}, nil
}

// Finish runs the full pipeline over everything observed so far.
func (s *Session) Finish(ctx context.Context) (*model.AnalysisReport, error) {
	s.mu.Lock()
	req := s.req
	s.mu.Unlock()
	return s.orch.AnalyzePage(ctx, &req)
}
