package pagemeta

import "testing"

func TestExtractScripts(t *testing.T) {
	html := `<!DOCTYPE html>
<html><head>
<script src="https://cdn.example.com/app.js"></script>
<script>var inline = 1;</script>
<script src=" https://www.google-analytics.com/analytics.js "></script>
<script></script>
</head><body>
<script>
  console.log("second inline");
</script>
</body></html>`

	info, err := ExtractScripts(html)
	if err != nil {
		t.Fatalf("ExtractScripts: %v", err)
	}

	wantSrcs := []string{
		"https://cdn.example.com/app.js",
		"https://www.google-analytics.com/analytics.js",
	}
	if len(info.ExternalSources) != len(wantSrcs) {
		t.Fatalf("external sources = %v, want %v", info.ExternalSources, wantSrcs)
	}
	for i, src := range wantSrcs {
		if info.ExternalSources[i] != src {
			t.Errorf("external source %d = %q, want %q", i, info.ExternalSources[i], src)
		}
	}

	// The empty script tag counts as neither external nor inline.
	if info.InlineCount != 2 {
		t.Errorf("inline count = %d, want 2", info.InlineCount)
	}
}

func TestExtractScriptsEmptyDocument(t *testing.T) {
	info, err := ExtractScripts("")
	if err != nil {
		t.Fatalf("ExtractScripts: %v", err)
	}
	if len(info.ExternalSources) != 0 || info.InlineCount != 0 {
		t.Errorf("expected empty result, got %+v", info)
	}
}
