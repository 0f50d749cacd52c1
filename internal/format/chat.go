package format

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"rekakata/internal/engine"
)

// Telegram caps messages at 4096 bytes; stay under it with headroom
// for the transport's own framing.
const chatMessageLimit = 3900

const chatSectionLimit = 600

// ChatMessage renders the short, chat-friendly variant: every section
// header survives, long section bodies are truncated.
func ChatMessage(out engine.Output) string {
	var b strings.Builder

	b.WriteString("🎬 *MASTER PROMPT*\n")
	b.WriteString(truncateRunes(out.MasterPrompt, chatSectionLimit))
	b.WriteString("\n\n")

	b.WriteString("🎥 *VISUAL SPECIFICATIONS*\n")
	writeSpecLine(&b, "Style", out.VisualSpecs.Style)
	writeSpecLine(&b, "Camera", out.VisualSpecs.Camera)
	writeSpecLine(&b, "Lighting", out.VisualSpecs.Lighting)
	writeSpecLine(&b, "Aspect Ratio", out.VisualSpecs.AspectRatio)
	writeSpecLine(&b, "Mood", out.VisualSpecs.Mood)
	b.WriteString("\n")

	b.WriteString("📝 *SCRIPT*\n")
	fmt.Fprintf(&b, "Hook: %s\n", truncateRunes(out.Script.Hook, 200))
	fmt.Fprintf(&b, "Body: %s\n", truncateRunes(out.Script.Body, chatSectionLimit))
	fmt.Fprintf(&b, "CTA: %s\n", truncateRunes(out.Script.CTA, 200))
	b.WriteString("\n")

	fmt.Fprintf(&b, "📱 *PLATFORM*: %s (%s, %s)\n\n",
		out.Platform.ID, out.Platform.AspectRatio, out.Platform.OptimalLength)

	b.WriteString("🏷 *HASHTAGS*\n")
	b.WriteString(HashtagLine(out.Hashtags))

	return TruncateBytes(b.String(), chatMessageLimit)
}

func writeSpecLine(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, value)
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "…"
}

// TruncateBytes cuts at a byte bound without splitting a rune.
func TruncateBytes(text string, maxBytes int) string {
	if len(text) <= maxBytes || maxBytes <= 0 {
		return text
	}

	var buf strings.Builder
	buf.Grow(maxBytes)
	for _, r := range text {
		if buf.Len()+utf8.RuneLen(r) > maxBytes {
			break
		}
		buf.WriteRune(r)
	}
	return buf.String()
}
