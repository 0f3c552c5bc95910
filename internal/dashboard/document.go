package dashboard

// Region ids written by the renderer.
const (
	RegionSummary         = "summary"
	RegionTotalMessages   = "total-messages"
	RegionUniqueSenders   = "unique-senders"
	RegionTotalWords      = "total-words"
	RegionTotalCharacters = "total-characters"
	RegionTotalProfanity  = "total-profanity"
	RegionParticipants    = "participants-list"
	RegionProfanityList   = "profanity-list"
	RegionProfanityWords  = "profanity-words"
	RegionSenderChart     = "senderChart"
	RegionCharactersChart = "charactersChart"
	RegionWordsChart      = "wordsChart"
	RegionProfanityChart  = "profanityChart"
)

// AllRegions lists every region of the full dashboard page.
var AllRegions = []string{
	RegionSummary,
	RegionTotalMessages,
	RegionUniqueSenders,
	RegionTotalWords,
	RegionTotalCharacters,
	RegionTotalProfanity,
	RegionParticipants,
	RegionProfanityList,
	RegionProfanityWords,
	RegionSenderChart,
	RegionCharactersChart,
	RegionWordsChart,
	RegionProfanityChart,
}

// Element is one named region of the page. Every setter replaces the
// region's previous content, so rendering twice gives the same result.
type Element interface {
	// SetText sets plain text content.
	SetText(text string)
	// SetItems replaces the region's list entries.
	SetItems(items []string)
	// MountChart hands a chart configuration to the region.
	MountChart(chart *ChartConfig)
	// ShowMessage replaces the region's content with a placeholder message.
	ShowMessage(message string)
}

// Document looks up regions by id. Element returns nil when the region does
// not exist, and callers must skip rendering into it.
type Document interface {
	Element(id string) Element
}

// Region is the in-memory state of one page region. At most one of Text,
// Items, Chart, or Message is meaningful at a time.
type Region struct {
	ID        string
	Text      string
	Items     []string
	Chart     *ChartConfig
	Message   string
	populated bool
}

func (r *Region) reset() {
	r.Text = ""
	r.Items = nil
	r.Chart = nil
	r.Message = ""
	r.populated = true
}

func (r *Region) SetText(text string) {
	r.reset()
	r.Text = text
}

func (r *Region) SetItems(items []string) {
	r.reset()
	r.Items = append([]string{}, items...)
}

func (r *Region) MountChart(chart *ChartConfig) {
	r.reset()
	r.Chart = chart
}

func (r *Region) ShowMessage(message string) {
	r.reset()
	r.Message = message
}

// Populated reports whether anything was rendered into the region.
func (r *Region) Populated() bool {
	return r != nil && r.populated
}
