package server

import "github.com/avel9n/privacylens/internal/domainscore"

// ScoreDomainsRequest carries the per-domain observation counts to score.
type ScoreDomainsRequest struct {
	Domains []domainscore.DomainCount `json:"domains"`
}

// TrackersResponse lists the tracker domains the classifier is loaded with.
type TrackersResponse struct {
	Count   int      `json:"count" example:"33"`
	Domains []string `json:"domains"`
}

// HealthResponse reports service liveness and model provenance.
type HealthResponse struct {
	Status       string `json:"status" example:"ok"`
	ModelType    string `json:"model_type" example:"domain-intensity"`
	KnownDomains int    `json:"known_domains" example:"28"`
	Trackers     int    `json:"trackers" example:"33"`
}

// ErrorResponse is a uniform error payload returned by the API.
type ErrorResponse struct {
	Error string `json:"error" example:"not found"`
}
