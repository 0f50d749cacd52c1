package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var (
	ErrEmptyInput   = errors.New("input is empty")
	ErrInputTooLong = errors.New("input is too long")
)

// Entities are coarse keyword matches pulled out of the sanitized text.
// Best-effort hints, not real NLP.
type Entities struct {
	Products  []string
	Topics    []string
	Emotions  []string
	Audiences []string
}

// All returns every entity in category order, preserving match order
// within each category.
func (e Entities) All() []string {
	out := make([]string, 0, len(e.Products)+len(e.Topics)+len(e.Emotions)+len(e.Audiences))
	out = append(out, e.Products...)
	out = append(out, e.Topics...)
	out = append(out, e.Emotions...)
	out = append(out, e.Audiences...)
	return out
}

func (e Entities) Count() int {
	return len(e.Products) + len(e.Topics) + len(e.Emotions) + len(e.Audiences)
}

type Input struct {
	Text     string
	Language string
	Entities Entities
}

type Validator struct {
	maxLength int
}

func New(maxLength int) *Validator {
	if maxLength <= 0 {
		maxLength = 2000
	}
	return &Validator{maxLength: maxLength}
}

// Validate sanitizes raw text, guesses its language, and extracts
// entity keywords. It has no side effects.
func (v *Validator) Validate(raw string) (Input, error) {
	text := sanitize(raw)
	if text == "" {
		return Input{}, ErrEmptyInput
	}
	if len([]rune(text)) > v.maxLength {
		return Input{}, fmt.Errorf("%w: %d characters exceeds limit of %d", ErrInputTooLong, len([]rune(text)), v.maxLength)
	}

	return Input{
		Text:     text,
		Language: DetectLanguage(text),
		Entities: ExtractEntities(text),
	}, nil
}

var (
	htmlTagRe  = regexp.MustCompile(`<[^>]+>`)
	dangerRres = []*regexp.Regexp{
		regexp.MustCompile(`(?i)javascript:`),
		regexp.MustCompile(`(?i)on\w+\s*=`),
		regexp.MustCompile(`(?i)data:text/html`),
	}
)

func sanitize(raw string) string {
	clean := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			return -1
		}
		return r
	}, raw)

	clean = htmlTagRe.ReplaceAllString(clean, "")
	for _, re := range dangerRres {
		clean = re.ReplaceAllString(clean, "")
	}

	return strings.Join(strings.Fields(clean), " ")
}

// Indonesian marker words. Two or more hits classify the text as "id";
// anything else falls back to "en".
var indonesianMarkers = []string{
	"yang", "dan", "untuk", "buat", "bisa", "tidak", "nggak", "gak",
	"ini", "itu", "dengan", "dari", "kamu", "saya", "aku", "biar",
	"udah", "kayak", "banget", "pagi", "hari", "bagus", "wajah",
	"jualan", "jualin", "cara", "tips", "kulit", "murah", "promo",
	"berminyak", "sehat", "enak", "seru",
}

const supportedDefault = "en"

// DetectLanguage is a keyword heuristic over the supported set
// {"id", "en"}. Inconclusive input falls back to English.
func DetectLanguage(text string) string {
	words := strings.Fields(strings.ToLower(text))
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		seen[strings.Trim(w, ".,!?;:\"'()")] = true
	}

	hits := 0
	for _, marker := range indonesianMarkers {
		if seen[marker] {
			hits++
		}
	}
	if hits >= 2 {
		return "id"
	}
	return supportedDefault
}

// SupportedLanguages lists the language codes DetectLanguage can return.
func SupportedLanguages() []string {
	return []string{"id", "en"}
}

var productKeywords = []string{
	"skincare", "makeup", "clothing", "pakaian", "baju", "food",
	"makanan", "drink", "minuman", "gadget", "phone", "handphone",
	"hp", "shoes", "sepatu", "bag", "tas", "book", "buku",
}

var topicKeywords = []string{
	"review", "tutorial", "tips", "vlog", "challenge", "reaction",
	"unboxing", "testimoni", "promosi", "promo",
}

var emotionKeywords = []string{
	"excited", "exciting", "seru", "happy", "joyful", "bahagia",
	"senang", "sad", "sedih", "angry", "marah", "funny", "lucu",
	"inspiring", "motivational", "inspiratif", "motivasi", "calm",
	"tenang", "energetic",
}

var audienceKeywords = []string{
	"teen", "teens", "remaja", "kids", "children", "anak-anak",
	"adult", "adults", "dewasa", "student", "students", "mahasiswa",
	"pelajar", "mom", "mother", "moms", "ibu", "professionals",
	"profesional", "gamer", "gamers",
}

// ExtractEntities scans the text for known keywords per category.
// Matches keep first-seen order and are de-duplicated.
func ExtractEntities(text string) Entities {
	lower := strings.ToLower(text)
	return Entities{
		Products:  matchKeywords(lower, productKeywords),
		Topics:    matchKeywords(lower, topicKeywords),
		Emotions:  matchKeywords(lower, emotionKeywords),
		Audiences: matchKeywords(lower, audienceKeywords),
	}
}

func matchKeywords(lower string, keywords []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, kw := range keywords {
		if seen[kw] {
			continue
		}
		if strings.Contains(lower, kw) {
			out = append(out, kw)
			seen[kw] = true
		}
	}
	return out
}
