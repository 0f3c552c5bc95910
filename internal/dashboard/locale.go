package dashboard

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Language is a supported display language.
type Language string

const (
	English Language = "en"
	French  Language = "fr"
)

// Display strings. English text doubles as the catalog key.
const (
	msgLoadError        = "Error loading summary data"
	msgNoData           = "No data found"
	msgNoneDetected     = "None detected"
	msgParticipantEntry = "%s: %d messages"
	msgProfanityEntry   = "%s: %d"
	msgUnitCharacters   = "characters"
	msgUnitWords        = "words"
	msgMessagesTitle    = "Messages per participant"
	msgCharactersTitle  = "Characters per participant"
	msgWordsTitle       = "Words per participant"
	msgProfanityTitle   = "Profanity per participant"
)

var supportedTags = []language.Tag{language.English, language.French}

var languageMatcher = language.NewMatcher(supportedTags)

var translations = map[string]string{
	msgLoadError:        "Erreur lors du chargement du résumé",
	msgNoData:           "Aucune donnée trouvée",
	msgNoneDetected:     "Aucun détecté",
	msgParticipantEntry: "%s : %d messages",
	msgProfanityEntry:   "%s : %d",
	msgUnitCharacters:   "caractères",
	msgUnitWords:        "mots",
	msgMessagesTitle:    "Messages par participant",
	msgCharactersTitle:  "Caractères par participant",
	msgWordsTitle:       "Mots par participant",
	msgProfanityTitle:   "Grossièretés par participant",

	"Chat analytics":             "Statistiques de discussion",
	"Total messages":             "Messages au total",
	"Participants":               "Participants",
	"Total words":                "Mots au total",
	"Total characters":           "Caractères au total",
	"Profanity":                  "Grossièretés",
	"Flagged words":              "Mots signalés",
	"Profanity by sender":        "Grossièretés par personne",
	"Upload a chat export":       "Importer une discussion",
	"Upload":                     "Importer",
	"Messages":                   "Messages",
	"Characters":                 "Caractères",
	"Words":                      "Mots",
	"Export file (.txt or .eml)": "Fichier exporté (.txt ou .eml)",
}

var messageCatalog = func() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, text := range translations {
		if err := b.SetString(language.French, key, text); err != nil {
			panic(err)
		}
	}
	return b
}()

// Localizer formats numbers and display strings for one language.
type Localizer struct {
	lang    Language
	printer *message.Printer
}

// NewLocalizer returns a Localizer; unknown languages fall back to English.
func NewLocalizer(lang Language) *Localizer {
	tag := language.English
	if lang == French {
		tag = language.French
	} else {
		lang = English
	}
	return &Localizer{
		lang:    lang,
		printer: message.NewPrinter(tag, message.Catalog(messageCatalog)),
	}
}

// Language returns the display language.
func (l *Localizer) Language() Language {
	return l.lang
}

// Number formats n with the language's thousands grouping.
func (l *Localizer) Number(n int) string {
	return l.printer.Sprintf("%d", n)
}

// Text translates a display string and applies args to it.
func (l *Localizer) Text(key string, args ...any) string {
	return l.printer.Sprintf(key, args...)
}

// MatchLanguage picks the best supported language for an Accept-Language
// header, or fallback when nothing matches.
func MatchLanguage(acceptLanguage string, fallback Language) Language {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}

	_, index, confidence := languageMatcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}
	if supportedTags[index] == language.French {
		return French
	}
	return English
}

// ParseLanguage maps "en"/"fr" to a Language.
func ParseLanguage(s string) (Language, bool) {
	switch Language(s) {
	case English, French:
		return Language(s), true
	default:
		return "", false
	}
}
