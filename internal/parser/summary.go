package parser

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/vdavid/chatlens/internal/models"
)

// Summarize computes the Summary of the given messages. Senders are listed in
// the order they first appear. A nil profanity list leaves every profanity
// field out of the result.
func Summarize(messages []models.ChatMessage, profanity *ProfanityList) (*models.Summary, error) {
	if len(messages) == 0 {
		return nil, ErrNoMessages
	}

	summary := &models.Summary{
		UniqueSendersList:       []string{},
		MessagesPerSender:       make(map[string]int),
		CharacterCountPerSender: make(map[string]int),
		WordCountPerSender:      make(map[string]int),
	}
	if profanity != nil {
		summary.ProfanityCountPerSender = make(map[string]int)
		summary.ProfanityList = []string{}
	}

	found := make(map[string]bool)
	totalProfanity := 0

	for _, msg := range messages {
		if _, seen := summary.MessagesPerSender[msg.Sender]; !seen {
			summary.UniqueSendersList = append(summary.UniqueSendersList, msg.Sender)
			summary.CharacterCountPerSender[msg.Sender] = 0
			summary.WordCountPerSender[msg.Sender] = 0
			if profanity != nil {
				summary.ProfanityCountPerSender[msg.Sender] = 0
			}
		}

		characters := utf8.RuneCountInString(msg.Content)
		words := len(strings.Fields(msg.Content))

		summary.MessagesPerSender[msg.Sender]++
		summary.CharacterCountPerSender[msg.Sender] += characters
		summary.WordCountPerSender[msg.Sender] += words
		summary.TotalMessages++
		summary.TotalCharacters += characters
		summary.TotalWords += words

		if profanity == nil {
			continue
		}
		for _, hit := range profanity.Match(msg.Content) {
			summary.ProfanityCountPerSender[msg.Sender] += hit.Count
			totalProfanity += hit.Count
			if !found[hit.Word] {
				found[hit.Word] = true
				summary.ProfanityList = append(summary.ProfanityList, hit.Word)
			}
		}
	}

	summary.UniqueSenders = len(summary.UniqueSendersList)
	if profanity != nil {
		summary.TotalProfanity = &totalProfanity
	}

	return summary, nil
}

// SummarizeExport parses an export and summarizes it in one step.
func SummarizeExport(r io.Reader, profanity *ProfanityList) (*models.Summary, error) {
	messages, err := Parse(r)
	if err != nil {
		return nil, err
	}

	summary, err := Summarize(messages, profanity)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize chat export: %w", err)
	}

	return summary, nil
}
