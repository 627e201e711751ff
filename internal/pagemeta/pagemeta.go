// Package pagemeta recovers script information from raw page markup the
// extension submitted alongside its observations. It is a fallback for
// collectors that cannot enumerate scripts directly.
package pagemeta

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ScriptInfo summarizes the script tags found in one document.
type ScriptInfo struct {
	// ExternalSources are the src attributes of external script tags, in
	// document order, duplicates preserved.
	ExternalSources []string

	// InlineCount is the number of script tags without a src attribute that
	// carry a non-empty body.
	InlineCount int
}

// ExtractScripts parses html and collects script sources and inline script
// counts. A parse failure is returned as an error; an empty document yields
// an empty result, not an error.
func ExtractScripts(html string) (*ScriptInfo, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing page html: %w", err)
	}

	info := &ScriptInfo{}
	doc.Find("script").Each(func(_ int, sel *goquery.Selection) {
		if src, ok := sel.Attr("src"); ok && strings.TrimSpace(src) != "" {
			info.ExternalSources = append(info.ExternalSources, strings.TrimSpace(src))
			return
		}
		if strings.TrimSpace(sel.Text()) != "" {
			info.InlineCount++
		}
	})
	return info, nil
}
