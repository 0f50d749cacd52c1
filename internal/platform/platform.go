package platform

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnsupportedPlatform = errors.New("unsupported platform")

// Profile holds the per-platform output constraints. Pure configuration,
// no computation beyond the lookup.
type Profile struct {
	ID              string
	AspectRatio     string
	MaxDuration     string
	Resolution      string
	OptimalLength   string
	Characteristics string
	CaptionStyle    string
	MusicSuggestion string
	EditingTips     string
	PostingTimes    []string
}

var profiles = map[string]Profile{
	"tiktok": {
		ID:              "tiktok",
		AspectRatio:     "9:16",
		MaxDuration:     "60s",
		Resolution:      "1080x1920",
		OptimalLength:   "15-30s",
		Characteristics: "fast-paced, energetic, trending sounds, hook in first 3 seconds",
		CaptionStyle:    "catchy, short, include trending hashtags",
		MusicSuggestion: "Use trending sounds from TikTok library",
		EditingTips:     "Quick cuts, text overlays, green screen effects",
		PostingTimes:    []string{"7:00 AM - 9:00 AM", "12:00 PM - 3:00 PM", "7:00 PM - 11:00 PM"},
	},
	"instagram": {
		ID:              "instagram",
		AspectRatio:     "9:16",
		MaxDuration:     "90s",
		Resolution:      "1080x1920",
		OptimalLength:   "15-60s",
		Characteristics: "high production quality, aesthetic, saveable content, carousel ready",
		CaptionStyle:    "engaging, include questions for engagement",
		MusicSuggestion: "Use trending Instagram Reels audio",
		EditingTips:     "High quality, smooth transitions, aesthetic",
		PostingTimes:    []string{"11:00 AM", "7:00 PM", "9:00 PM"},
	},
	"youtube": {
		ID:              "youtube",
		AspectRatio:     "9:16",
		MaxDuration:     "60s",
		Resolution:      "1080x1920",
		OptimalLength:   "30-60s",
		Characteristics: "engaging, teaser for longer content, subscribe CTA",
		CaptionStyle:    "informative, include subscribe reminder",
		MusicSuggestion: "Use royalty-free or trending Shorts audio",
		EditingTips:     "Engaging hook, subscribe CTA at end",
		PostingTimes:    []string{"2:00 PM - 4:00 PM", "7:00 PM - 10:00 PM"},
	},
}

var aliases = map[string]string{
	"reels":           "instagram",
	"instagram reels": "instagram",
	"ig":              "instagram",
	"shorts":          "youtube",
	"youtube shorts":  "youtube",
	"yt":              "youtube",
}

// Default is the platform used when the caller gives no hint.
const Default = "tiktok"

// Supported returns the canonical platform identifiers in stable order.
func Supported() []string {
	return []string{"tiktok", "instagram", "youtube"}
}

// Resolve maps a platform identifier (case-insensitive, aliases
// allowed) to its Profile.
func Resolve(id string) (Profile, error) {
	key := strings.ToLower(strings.TrimSpace(id))
	if key == "" {
		key = Default
	}
	if canonical, ok := aliases[key]; ok {
		key = canonical
	}
	profile, ok := profiles[key]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %q", ErrUnsupportedPlatform, id)
	}
	return profile, nil
}

// Recommend picks the best platform for a detected content type.
var contentPreferences = map[string][]string{
	"tutorial":       {"instagram", "youtube"},
	"review":         {"youtube", "tiktok"},
	"challenge":      {"tiktok"},
	"vlog":           {"youtube", "instagram"},
	"transformation": {"tiktok", "instagram"},
	"asmr":           {"tiktok", "instagram"},
}

func Recommend(contentType string) string {
	preferred, ok := contentPreferences[strings.ToLower(strings.TrimSpace(contentType))]
	if !ok || len(preferred) == 0 {
		return Default
	}
	return preferred[0]
}

// PostingSchedule returns the recommended posting windows for a
// platform, falling back to the default platform's windows.
func PostingSchedule(id string) []string {
	profile, err := Resolve(id)
	if err != nil {
		profile = profiles[Default]
	}
	return profile.PostingTimes
}

// CaptionSuggestions returns ready-to-post caption ideas per platform
// and language ("id" or anything else for English).
func CaptionSuggestions(id, language string) []string {
	profile, err := Resolve(id)
	if err != nil {
		profile = profiles[Default]
	}

	if language == "id" {
		return captionsID[profile.ID]
	}
	return captionsEN[profile.ID]
}

var captionsID = map[string][]string{
	"tiktok": {
		"Gak nyangka bisa se-viral ini! 🤯",
		"Wajib coba sebelum nyesel!",
		"Share ke temen kamu yang butuh ini! 👯",
		"Ini dia rahasianya! ✨",
	},
	"instagram": {
		"Simpan biar nggak lupa! 🔖",
		"Kamu pernah coba ini? Drop di komen! 💬",
		"Tag temen yang wajib tau ini! 👇",
		"Double tap kalau suka! ❤️",
	},
	"youtube": {
		"Subscribe buat konten seru lainnya! 🔔",
		"Nyesel baru tau sekarang! 😅",
		"Yang masih belum tau, angkat tangan! 🙋",
		"Share ke yang belum tahu! 📢",
	},
}

var captionsEN = map[string][]string{
	"tiktok": {
		"Can't believe how viral this got! 🤯",
		"Must try before you regret it!",
		"Share with a friend who needs this! 👯",
		"Here's the secret! ✨",
	},
	"instagram": {
		"Save this for later! 🔖",
		"Have you tried this? Drop a comment! 💬",
		"Tag a friend who needs to know this! 👇",
		"Double tap if you like it! ❤️",
	},
	"youtube": {
		"Subscribe for more content like this! 🔔",
		"Can't believe I just found out! 😅",
		"Raise your hand if you didn't know! 🙋",
		"Share with someone who doesn't know yet! 📢",
	},
}
