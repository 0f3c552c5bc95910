package dashboard

import (
	"github.com/vdavid/chatlens/internal/models"
)

// UpdateView writes the stat cards, the participant list, and the profanity
// regions. Each step skips regions missing from doc.
func UpdateView(doc Document, summary *models.Summary, loc *Localizer) {
	updateStats(doc, summary, loc)
	updateParticipants(doc, summary, loc)
	updateProfanity(doc, summary, loc)
}

func updateStats(doc Document, summary *models.Summary, loc *Localizer) {
	setText(doc, RegionTotalMessages, loc.Number(summary.TotalMessages))
	setText(doc, RegionUniqueSenders, loc.Number(summary.UniqueSenders))
	setText(doc, RegionTotalWords, loc.Number(summary.TotalWords))
	setText(doc, RegionTotalCharacters, loc.Number(summary.TotalCharacters))

	if summary.HasProfanity() {
		setText(doc, RegionTotalProfanity, loc.Number(summary.ProfanityTotal()))
	}
}

// updateParticipants lists senders by descending message count, ties in
// discovery order.
func updateParticipants(doc Document, summary *models.Summary, loc *Localizer) {
	el := doc.Element(RegionParticipants)
	if el == nil {
		return
	}

	ranked := rankSenders(summary.UniqueSendersList, summary.MessagesPerSender)
	items := make([]string, len(ranked))
	for i, sv := range ranked {
		items[i] = loc.Text(msgParticipantEntry, sv.name, sv.value)
	}
	el.SetItems(items)
}

// updateProfanity fills the per-sender profanity list and the flagged words.
// Nothing is written when the summary carries no profanity data.
func updateProfanity(doc Document, summary *models.Summary, loc *Localizer) {
	if !summary.HasProfanity() {
		return
	}

	none := []string{loc.Text(msgNoneDetected)}

	if el := doc.Element(RegionProfanityList); el != nil {
		ranked := positive(rankSenders(summary.UniqueSendersList, summary.ProfanityCountPerSender))
		if len(ranked) == 0 {
			el.SetItems(none)
		} else {
			items := make([]string, len(ranked))
			for i, sv := range ranked {
				items[i] = loc.Text(msgProfanityEntry, sv.name, sv.value)
			}
			el.SetItems(items)
		}
	}

	if el := doc.Element(RegionProfanityWords); el != nil {
		if len(summary.ProfanityList) == 0 {
			el.SetItems(none)
		} else {
			el.SetItems(summary.ProfanityList)
		}
	}
}

func setText(doc Document, id, text string) {
	if el := doc.Element(id); el != nil {
		el.SetText(text)
	}
}

// positive keeps the entries with a value above zero.
func positive(ranked []senderValue) []senderValue {
	kept := ranked[:0:0]
	for _, sv := range ranked {
		if sv.value > 0 {
			kept = append(kept, sv)
		}
	}
	return kept
}
