package dashboard

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/dashboard.html.tmpl
var templateFiles embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFiles, "templates/dashboard.html.tmpl"))

// PageOptions controls the parts of the page that are not regions.
type PageOptions struct {
	// UploadAction is the form target for new exports; empty hides the form.
	UploadAction string
	// ChartScriptURL overrides the Chart.js script location.
	ChartScriptURL string
}

const defaultChartScriptURL = "https://cdn.jsdelivr.net/npm/chart.js@4.4.1/dist/chart.umd.min.js"

// Page is a Document backed by in-memory regions that renders to HTML.
// A Page belongs to one render pass and is not safe for concurrent use.
type Page struct {
	regions   map[string]*Region
	localizer *Localizer
	options   PageOptions
}

// NewPage creates a page holding every region in AllRegions.
func NewPage(loc *Localizer, opts PageOptions) *Page {
	return NewPageWithRegions(loc, opts, AllRegions...)
}

// NewPageWithRegions creates a page holding only the given regions.
func NewPageWithRegions(loc *Localizer, opts PageOptions, ids ...string) *Page {
	if opts.ChartScriptURL == "" {
		opts.ChartScriptURL = defaultChartScriptURL
	}

	regions := make(map[string]*Region, len(ids))
	for _, id := range ids {
		regions[id] = &Region{ID: id}
	}

	return &Page{regions: regions, localizer: loc, options: opts}
}

// Element implements Document.
func (p *Page) Element(id string) Element {
	region, ok := p.regions[id]
	if !ok {
		return nil
	}
	return region
}

// Region returns the region with the given id, or nil.
func (p *Page) Region(id string) *Region {
	return p.regions[id]
}

// WriteHTML renders the page. Region content is escaped by html/template.
func (p *Page) WriteHTML(w io.Writer) error {
	if err := pageTemplate.Execute(w, pageView{page: p}); err != nil {
		return fmt.Errorf("failed to render dashboard page: %w", err)
	}
	return nil
}

// pageView is the template data; its methods are called from the template.
type pageView struct {
	page *Page
}

func (v pageView) Lang() string {
	return string(v.page.localizer.Language())
}

func (v pageView) T(key string) string {
	return v.page.localizer.Text(key)
}

func (v pageView) Region(id string) *Region {
	return v.page.regions[id]
}

func (v pageView) Options() PageOptions {
	return v.page.options
}

// ShowProfanity reports whether any profanity region received content.
func (v pageView) ShowProfanity() bool {
	for _, id := range []string{RegionTotalProfanity, RegionProfanityList, RegionProfanityWords, RegionProfanityChart} {
		if v.page.regions[id].Populated() {
			return true
		}
	}
	return false
}
