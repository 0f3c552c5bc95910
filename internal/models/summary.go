package models

// Summary is the precomputed analytics snapshot of one chat export.
// It is served as-is by GET /api/summary and never mutated after it is built.
//
// The profanity fields are optional as a group: when ProfanityCountPerSender
// is nil, the whole profanity feature set is considered absent.
type Summary struct {
	TotalMessages           int            `json:"total_messages"`
	UniqueSenders           int            `json:"unique_senders"`
	TotalWords              int            `json:"total_words"`
	TotalCharacters         int            `json:"total_characters"`
	TotalProfanity          *int           `json:"total_profanity,omitempty"`
	UniqueSendersList       []string       `json:"unique_senders_list"`
	MessagesPerSender       map[string]int `json:"messages_per_sender"`
	CharacterCountPerSender map[string]int `json:"character_count_per_sender"`
	WordCountPerSender      map[string]int `json:"word_count_per_sender"`
	ProfanityCountPerSender map[string]int `json:"profanity_count_per_sender,omitempty"`
	ProfanityList           []string       `json:"profanity_list,omitempty"`
}

// HasProfanity reports whether the summary carries profanity data.
func (s *Summary) HasProfanity() bool {
	return s != nil && s.ProfanityCountPerSender != nil
}

// ProfanityTotal returns total_profanity, falling back to the sum of the
// per-sender counts when the total is missing.
func (s *Summary) ProfanityTotal() int {
	if s.TotalProfanity != nil {
		return *s.TotalProfanity
	}
	total := 0
	for _, count := range s.ProfanityCountPerSender {
		total += count
	}
	return total
}
