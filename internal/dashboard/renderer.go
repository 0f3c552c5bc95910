// Package dashboard renders the chat analytics dashboard: it fetches the
// summary once, writes the stat cards and lists, and mounts the chart
// configurations.
package dashboard

import (
	"context"
)

// Renderer runs one fetch-then-render pass per Render call.
type Renderer struct {
	fetcher   Fetcher
	localizer *Localizer
}

// NewRenderer creates a Renderer. A nil localizer means English.
func NewRenderer(fetcher Fetcher, loc *Localizer) *Renderer {
	if loc == nil {
		loc = NewLocalizer(English)
	}
	return &Renderer{fetcher: fetcher, localizer: loc}
}

// Render fetches the summary and paints doc. When no summary is available,
// only the summary region receives the error placeholder; every other region
// is left untouched.
func (r *Renderer) Render(ctx context.Context, doc Document) {
	summary := r.fetcher.Fetch(ctx)
	if summary == nil {
		if el := doc.Element(RegionSummary); el != nil {
			el.ShowMessage(r.localizer.Text(msgLoadError))
		}
		return
	}

	UpdateView(doc, summary, r.localizer)
	RenderCharts(doc, summary, r.localizer)
}
