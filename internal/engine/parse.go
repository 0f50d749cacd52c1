package engine

import (
	"strings"

	"rekakata/internal/platform"
	"rekakata/internal/trends"
	"rekakata/internal/validate"
)

// Section names the parser recognizes in a model reply. The same rule
// is used to re-parse our own Markdown output, so renderer and parser
// must stay in sync.
const (
	sectionMaster   = "MASTER PROMPT"
	sectionVisual   = "VISUAL SPECIFICATION"
	sectionScript   = "SCRIPT"
	sectionPlatform = "PLATFORM OPTIMIZATION"
	sectionHashtags = "HASHTAG"
)

// parseReply turns the raw model reply into an Output. Missing sections
// become empty placeholders; the request is never aborted here.
func (e *Engine) parseReply(reply string, in validate.Input, sel trends.Selection, profile platform.Profile) Output {
	sections := SplitSections(reply)

	out := Output{
		MasterPrompt:  parseMasterPrompt(sections[sectionMaster], reply),
		VisualSpecs:   parseVisualSpecs(sections[sectionVisual], profile.AspectRatio),
		Script:        ParseScript(sectionOr(sections, sectionScript, reply)),
		PlatformNotes: strings.TrimSpace(sections[sectionPlatform]),
		Hashtags:      parseHashtags(sections[sectionHashtags], sel.Hashtags),
		Language:      in.Language,
		Platform:      profile,
		Selection:     sel,
		RawReply:      reply,
	}

	for _, missing := range []struct {
		name  string
		empty bool
	}{
		{"master prompt", out.MasterPrompt == ""},
		{"visual specifications", sections[sectionVisual] == ""},
		{"script hook", out.Script.Hook == ""},
		{"script body", out.Script.Body == ""},
		{"script cta", out.Script.CTA == ""},
		{"platform notes", out.PlatformNotes == ""},
		{"hashtags", len(out.Hashtags) == 0},
	} {
		if missing.empty {
			e.logger.Warn("model reply missing section, using placeholder", "section", missing.name)
		}
	}

	return out
}

// SplitSections slices the reply into the five known sections. A
// section header is a Markdown heading line ("# ...", "## ...") whose
// text contains the section name, case-insensitive.
func SplitSections(text string) map[string]string {
	names := []string{sectionMaster, sectionVisual, sectionScript, sectionPlatform, sectionHashtags}
	sections := make(map[string]string, len(names))

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	current := ""
	var buf []string

	flush := func() {
		if current != "" {
			sections[current] = strings.TrimSpace(strings.Join(buf, "\n"))
		}
		buf = nil
	}

	for _, line := range lines {
		if name := headerName(line, names); name != "" {
			flush()
			current = name
			continue
		}
		if current != "" {
			buf = append(buf, line)
		}
	}
	flush()

	return sections
}

func headerName(line string, names []string) string {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "#") {
		return ""
	}
	rest := strings.TrimLeft(trimmed, "#")
	if rest == "" || (rest[0] != ' ' && rest[0] != '\t') {
		// "#skincare" is a hashtag, not a heading.
		return ""
	}
	upper := strings.ToUpper(rest)
	for _, name := range names {
		if strings.Contains(upper, name) {
			// SCRIPT must not swallow more specific section names.
			if name == sectionScript && (strings.Contains(upper, sectionVisual) || strings.Contains(upper, sectionMaster)) {
				continue
			}
			return name
		}
	}
	return ""
}

func sectionOr(sections map[string]string, name, fallback string) string {
	if s := sections[name]; s != "" {
		return s
	}
	return fallback
}

// parseMasterPrompt joins the section body into a single line. When the
// reply has no MASTER PROMPT header at all, the first non-empty,
// non-heading line stands in (degraded, but better than nothing).
func parseMasterPrompt(section, reply string) string {
	if section != "" {
		var parts []string
		for _, line := range strings.Split(section, "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") || strings.Contains(line, "---") {
				break
			}
			parts = append(parts, strings.Trim(line, `"`))
		}
		return strings.Join(parts, " ")
	}

	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			return strings.Trim(line, `"`)
		}
	}
	return ""
}

func parseVisualSpecs(section, defaultAspectRatio string) VisualSpecs {
	specs := VisualSpecs{AspectRatio: defaultAspectRatio}
	for _, line := range strings.Split(section, "\n") {
		if !strings.Contains(line, "|") || strings.Contains(line, "---") {
			continue
		}
		var cells []string
		for _, c := range strings.Split(line, "|") {
			if c = strings.TrimSpace(c); c != "" {
				cells = append(cells, c)
			}
		}
		if len(cells) < 2 {
			continue
		}
		key, value := strings.ToLower(cells[0]), cells[1]
		switch key {
		case "style":
			specs.Style = value
		case "camera":
			specs.Camera = value
		case "lighting":
			specs.Lighting = value
		case "aspect ratio":
			specs.AspectRatio = value
		case "mood":
			specs.Mood = value
		}
	}
	return specs
}

// ParseScript pulls Hook/Body/CTA out of a script section. Models label
// these sections inconsistently ("## Hook [0:00-0:03]", "**Hook**",
// "1. Hook: inline text"), so labels are matched after stripping
// heading, bold, and list markers.
func ParseScript(section string) Script {
	var script Script
	current := ""
	var buf []string

	assign := func(label, content string) {
		content = cleanScriptContent(content)
		switch label {
		case "hook":
			if script.Hook == "" {
				script.Hook = content
			}
		case "body":
			if script.Body == "" {
				script.Body = content
			}
		case "cta":
			if script.CTA == "" {
				script.CTA = content
			}
		}
	}

	flush := func() {
		if current != "" {
			assign(current, strings.Join(buf, "\n"))
		}
		current = ""
		buf = nil
	}

	for _, line := range strings.Split(section, "\n") {
		label, inline, ok := scriptLabel(line)
		if ok {
			flush()
			if inline != "" {
				assign(label, inline)
			} else {
				current = label
			}
			continue
		}
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") || strings.Contains(trimmed, "---") {
			flush()
			continue
		}
		if current != "" {
			buf = append(buf, line)
		}
	}
	flush()

	return script
}

// scriptLabel reports whether the line introduces a Hook/Body/CTA
// section, and any inline content following a colon on the same line.
func scriptLabel(line string) (label, inline string, ok bool) {
	rest := strings.TrimLeft(strings.TrimSpace(line), "#*0123456789.) \t")

	for _, cand := range []struct{ prefix, label string }{
		{"call to action", "cta"},
		{"hook", "hook"},
		{"body", "body"},
		{"cta", "cta"},
	} {
		if len(rest) < len(cand.prefix) || !strings.EqualFold(rest[:len(cand.prefix)], cand.prefix) {
			continue
		}
		after := strings.TrimLeft(rest[len(cand.prefix):], "*")
		after = strings.TrimSpace(after)
		if after == "" {
			return cand.label, "", true
		}
		if strings.HasPrefix(after, ":") {
			return cand.label, strings.TrimSpace(after[1:]), true
		}
		if strings.HasPrefix(after, "[") {
			return cand.label, "", true
		}
		// "Hooked on..." or other prose, not a label.
	}
	return "", "", false
}

func cleanScriptContent(content string) string {
	content = strings.TrimSpace(content)
	content = strings.Trim(content, `"'`)
	content = strings.Trim(content, "*")
	return strings.TrimSpace(content)
}

// parseHashtags extracts #-prefixed words from the hashtags section,
// falling back to the trend selection. Stored without the leading '#'.
func parseHashtags(section string, fallback []string) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(tag string) {
		tag = strings.TrimPrefix(strings.TrimSpace(tag), "#")
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		out = append(out, tag)
	}

	for _, word := range strings.Fields(section) {
		if strings.HasPrefix(word, "#") {
			add(word)
		}
	}
	if len(out) > 0 {
		return out
	}

	for _, tag := range fallback {
		add(tag)
	}
	return out
}
