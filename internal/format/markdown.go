// Package format renders a generated output into its delivery shapes:
// a Markdown document, a chat-sized message, and JSON. All renderers
// are pure functions of the output.
package format

import (
	"encoding/json"
	"fmt"
	"strings"

	"rekakata/internal/engine"
)

// Markdown renders the canonical export document. Section order and
// header spelling are fixed: the engine's reply parser re-parses this
// exact shape, so changes here must keep that round trip intact.
func Markdown(out engine.Output) string {
	var b strings.Builder

	b.WriteString("# MASTER PROMPT\n\n")
	b.WriteString(out.MasterPrompt)
	b.WriteString("\n\n")

	b.WriteString("# VISUAL SPECIFICATIONS\n\n")
	b.WriteString("| Element | Value |\n")
	b.WriteString("|---------|-------|\n")
	fmt.Fprintf(&b, "| Style | %s |\n", out.VisualSpecs.Style)
	fmt.Fprintf(&b, "| Camera | %s |\n", out.VisualSpecs.Camera)
	fmt.Fprintf(&b, "| Lighting | %s |\n", out.VisualSpecs.Lighting)
	fmt.Fprintf(&b, "| Aspect Ratio | %s |\n", out.VisualSpecs.AspectRatio)
	fmt.Fprintf(&b, "| Mood | %s |\n", out.VisualSpecs.Mood)
	b.WriteString("\n")

	b.WriteString("# SCRIPT\n\n")
	b.WriteString("## Hook [0:00-0:03]\n")
	b.WriteString(out.Script.Hook)
	b.WriteString("\n\n")
	b.WriteString("## Body [0:03-0:45]\n")
	b.WriteString(out.Script.Body)
	b.WriteString("\n\n")
	b.WriteString("## CTA [0:45-0:60]\n")
	b.WriteString(out.Script.CTA)
	b.WriteString("\n\n")

	b.WriteString("# PLATFORM OPTIMIZATION\n\n")
	b.WriteString(out.PlatformNotes)
	b.WriteString("\n\n")

	b.WriteString("# HASHTAGS\n\n")
	b.WriteString(HashtagLine(out.Hashtags))
	b.WriteString("\n")

	return b.String()
}

// HashtagLine joins tags into a single #-prefixed line.
func HashtagLine(tags []string) string {
	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimPrefix(strings.TrimSpace(t), "#")
		if t == "" {
			continue
		}
		parts = append(parts, "#"+t)
	}
	return strings.Join(parts, " ")
}

// JSON renders the structured output for machine consumers.
func JSON(out engine.Output) (string, error) {
	type visualSpecs struct {
		Style       string `json:"style"`
		Camera      string `json:"camera"`
		Lighting    string `json:"lighting"`
		AspectRatio string `json:"aspect_ratio"`
		Mood        string `json:"mood"`
	}
	type script struct {
		Hook string `json:"hook"`
		Body string `json:"body"`
		CTA  string `json:"cta"`
	}
	doc := struct {
		MasterPrompt  string      `json:"master_prompt"`
		VisualSpecs   visualSpecs `json:"visual_specifications"`
		Script        script      `json:"script"`
		PlatformNotes string      `json:"platform_notes"`
		Hashtags      []string    `json:"hashtags"`
		Language      string      `json:"language"`
		Platform      string      `json:"platform"`
	}{
		MasterPrompt: out.MasterPrompt,
		VisualSpecs: visualSpecs{
			Style:       out.VisualSpecs.Style,
			Camera:      out.VisualSpecs.Camera,
			Lighting:    out.VisualSpecs.Lighting,
			AspectRatio: out.VisualSpecs.AspectRatio,
			Mood:        out.VisualSpecs.Mood,
		},
		Script: script{
			Hook: out.Script.Hook,
			Body: out.Script.Body,
			CTA:  out.Script.CTA,
		},
		PlatformNotes: out.PlatformNotes,
		Hashtags:      out.Hashtags,
		Language:      out.Language,
		Platform:      out.Platform.ID,
	}

	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal output: %w", err)
	}
	return string(raw), nil
}
