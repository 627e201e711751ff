// Package report renders analysis reports to stable text and computes diffs
// between two analyses of the same page, so a user can see what changed in a
// site's tracking behavior between visits.
package report

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/avel9n/privacylens/internal/model"
)

// Chunk is a single change between two rendered reports.
type Chunk struct {
	Type    string `json:"type"` // "added" or "removed"
	Content string `json:"content"`
}

// Diff is the structured comparison of two stored analyses.
type Diff struct {
	BaseID     string  `json:"base_id,omitempty"`
	HeadID     string  `json:"head_id,omitempty"`
	ScoreDelta int     `json:"score_delta"`
	Chunks     []Chunk `json:"chunks"`
}

// Render serializes a report into one line per fact, sorted stably, so that
// diffing two renderings yields meaningful per-fact chunks rather than
// byte noise.
func Render(r *model.AnalysisReport) string {
	if r == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "page: %s\n", r.PageDomain)
	fmt.Fprintf(&b, "score: %d (%s)\n", r.Score, r.Level)
	for _, v := range r.Verdicts {
		role := "first-party"
		if v.ThirdParty {
			role = "third-party"
		}
		if v.KnownTracker {
			role += " tracker"
		}
		fmt.Fprintf(&b, "domain: %s [%s]\n", v.Domain, role)
	}
	for _, f := range r.Findings {
		fmt.Fprintf(&b, "finding: %s\n", f)
	}
	return b.String()
}

// Compare diffs two reports line by line and returns the added/removed
// chunks. Equal lines are dropped; a nil report renders as empty.
func Compare(base, head *model.AnalysisReport) *Diff {
	d := &Diff{}
	if base != nil {
		d.BaseID = base.ID
	}
	if head != nil {
		d.HeadID = head.ID
	}
	if base != nil && head != nil {
		d.ScoreDelta = head.Score - base.Score
	}

	dmp := diffmatchpatch.New()

	// Line-mode diff keeps chunks aligned to rendered facts.
	baseLines, headLines, lines := dmp.DiffLinesToChars(Render(base), Render(head))
	diffs := dmp.DiffMain(baseLines, headLines, false)
	diffs = dmp.DiffCharsToLines(diffs, lines)

	for _, df := range diffs {
		var chunkType string
		switch df.Type {
		case diffmatchpatch.DiffInsert:
			chunkType = "added"
		case diffmatchpatch.DiffDelete:
			chunkType = "removed"
		case diffmatchpatch.DiffEqual:
			continue
		}
		for _, line := range strings.Split(df.Text, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			d.Chunks = append(d.Chunks, Chunk{Type: chunkType, Content: line})
		}
	}
	return d
}
