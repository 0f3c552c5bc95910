package dashboard

import (
	"github.com/vdavid/chatlens/internal/models"
)

// RenderCharts mounts the message pie, the character and word bar charts,
// and, when the summary has profanity data, the flagged pie.
func RenderCharts(doc Document, summary *models.Summary, loc *Localizer) {
	renderSenderChart(doc, summary, loc)
	renderBarChart(doc, RegionCharactersChart, summary.UniqueSendersList, summary.CharacterCountPerSender,
		loc.Text(msgCharactersTitle), MetricCharacters, loc)
	renderBarChart(doc, RegionWordsChart, summary.UniqueSendersList, summary.WordCountPerSender,
		loc.Text(msgWordsTitle), MetricWords, loc)
	renderProfanityChart(doc, summary, loc)
}

func renderSenderChart(doc Document, summary *models.Summary, loc *Localizer) {
	el := doc.Element(RegionSenderChart)
	if el == nil {
		return
	}

	labels, values := splitRanked(rankSenders(summary.UniqueSendersList, summary.MessagesPerSender))
	el.MountChart(BuildPieChart(labels, values, loc.Text(msgMessagesTitle), nil))
}

func renderBarChart(doc Document, id string, senders []string, metric map[string]int, title, metricName string, loc *Localizer) {
	el := doc.Element(id)
	if el == nil {
		return
	}

	labels, values := splitRanked(rankSenders(senders, metric))
	el.MountChart(BuildBarChart(labels, values, title, metricName, nil, loc))
}

// renderProfanityChart charts only senders with a positive count. With none,
// the mount shows the no-data message instead of an empty chart.
func renderProfanityChart(doc Document, summary *models.Summary, loc *Localizer) {
	if !summary.HasProfanity() {
		return
	}

	el := doc.Element(RegionProfanityChart)
	if el == nil {
		return
	}

	ranked := positive(rankSenders(summary.UniqueSendersList, summary.ProfanityCountPerSender))
	if len(ranked) == 0 {
		el.ShowMessage(loc.Text(msgNoData))
		return
	}

	labels, values := splitRanked(ranked)
	el.MountChart(BuildPieChart(labels, values, loc.Text(msgProfanityTitle), GenerateFlaggedColors(len(labels))))
}
