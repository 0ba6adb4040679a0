package recovery

import (
	"context"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/edslclee/legacy-csharp-analyzer/core/analysis"
	"github.com/edslclee/legacy-csharp-analyzer/providers/observability"
)

// NewSnippetMarkdownMiddleware creates a Middleware that rewrites HTML
// documentation snippets on recovered records into Markdown. Legacy C#
// codebases frequently carry XML doc comments or help pages whose extracts
// arrive as raw markup; Markdown keeps them readable in downstream reports.
//
// Only snippets that look like markup are converted. Snippets that fail to
// convert are left as they were. The middleware works on a deep copy, so an
// inner middleware that captured the outcome never sees the rewrite.
//
// [New] appends this middleware to the chain when [WithSnippetMarkdown] is
// set, placing it closest to the pipeline so that user middleware and the
// observer already see converted snippets.
func NewSnippetMarkdownMiddleware() Middleware {
	return func(next RecoverFunc) RecoverFunc {
		return func(ctx context.Context, rawText string) Outcome {
			outcome := next(ctx, rawText)
			if outcome.Kind != OutcomeRecovered || outcome.Record == nil {
				return outcome
			}

			// Most records carry no markup at all; scan before paying for a
			// deep copy.
			if !hasHTMLSnippet(outcome.Record.DocLinks) {
				return outcome
			}

			record := outcome.Record.Clone()
			converted := 0
			for i, link := range record.DocLinks {
				if !looksLikeHTML(link.Snippet) {
					continue
				}
				markdown, err := htmltomarkdown.ConvertString(link.Snippet)
				if err != nil {
					// Conversion is best effort; keep the original snippet.
					continue
				}
				record.DocLinks[i].Snippet = strings.TrimSpace(markdown)
				converted++
			}
			if converted == 0 {
				return outcome
			}

			if span := observability.SpanFromContext(ctx); span != nil {
				span.AddEvent(observability.EventSnippetsConverted,
					observability.Int("snippets", converted),
				)
			}

			outcome.Record = record
			return outcome
		}
	}
}

func hasHTMLSnippet(links []analysis.DocLink) bool {
	for _, link := range links {
		if looksLikeHTML(link.Snippet) {
			return true
		}
	}
	return false
}

// looksLikeHTML reports whether s contains at least one complete tag. This is
// deliberately loose: a stray "<" in prose has no closing ">" after it, while
// real markup always does.
func looksLikeHTML(s string) bool {
	open := strings.IndexByte(s, '<')
	if open < 0 {
		return false
	}
	return strings.IndexByte(s[open:], '>') > 0
}
