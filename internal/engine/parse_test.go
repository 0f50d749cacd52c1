package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSections(t *testing.T) {
	text := "# MASTER PROMPT\n\nprompt text\n\n" +
		"## Visual Specifications\n\n| Style | x |\n\n" +
		"# SCRIPT\n\nscript text\n\n" +
		"### Platform Optimization\n\nnotes\n\n" +
		"# HASHTAGS\n\n#a #b\n"

	sections := SplitSections(text)

	assert.Equal(t, "prompt text", sections["MASTER PROMPT"])
	assert.Equal(t, "| Style | x |", sections["VISUAL SPECIFICATION"])
	assert.Equal(t, "script text", sections["SCRIPT"])
	assert.Equal(t, "notes", sections["PLATFORM OPTIMIZATION"])
	assert.Equal(t, "#a #b", sections["HASHTAG"])
}

func TestSplitSectionsHashtagLineIsNotAHeader(t *testing.T) {
	text := "# HASHTAGS\n\n#skincare #fyp\n#viral\n"

	sections := SplitSections(text)
	assert.Equal(t, "#skincare #fyp\n#viral", sections["HASHTAG"])
}

func TestSplitSectionsCRLF(t *testing.T) {
	text := "# MASTER PROMPT\r\n\r\nprompt\r\n\r\n# SCRIPT\r\n\r\nbody\r\n"

	sections := SplitSections(text)
	assert.Equal(t, "prompt", sections["MASTER PROMPT"])
	assert.Equal(t, "body", sections["SCRIPT"])
}

func TestSplitSectionsScriptDoesNotSwallowOtherNames(t *testing.T) {
	// "MASTER PROMPT SCRIPT" style combined headings resolve to the more
	// specific section, not SCRIPT.
	text := "# MASTER PROMPT SCRIPT\n\ncontent\n"

	sections := SplitSections(text)
	assert.Equal(t, "content", sections["MASTER PROMPT"])
	assert.Empty(t, sections["SCRIPT"])
}

func TestParseScriptVariants(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want Script
	}{
		{
			name: "timed markdown headings",
			in: "## Hook [0:00-0:03]\nLihat ini dulu!\n\n" +
				"## Body [0:03-0:45]\nIni isinya.\n\n" +
				"## CTA [0:45-0:60]\nFollow sekarang!",
			want: Script{Hook: "Lihat ini dulu!", Body: "Ini isinya.", CTA: "Follow sekarang!"},
		},
		{
			name: "bold labels",
			in:   "**Hook**\nLihat ini!\n\n**Body**\nIsi.\n\n**CTA**\nFollow!",
			want: Script{Hook: "Lihat ini!", Body: "Isi.", CTA: "Follow!"},
		},
		{
			name: "heading plus bold",
			in:   "## **Hook**\nLihat!\n\n## **Body**\nIsi.\n\n## **CTA**\nFollow!",
			want: Script{Hook: "Lihat!", Body: "Isi.", CTA: "Follow!"},
		},
		{
			name: "numbered inline",
			in:   "1. Hook: Lihat ini!\n2. Body: Isi video.\n3. CTA: Follow ya!",
			want: Script{Hook: "Lihat ini!", Body: "Isi video.", CTA: "Follow ya!"},
		},
		{
			name: "call to action spelled out",
			in:   "Hook: Lihat!\nBody: Isi.\nCall to Action: Follow!",
			want: Script{Hook: "Lihat!", Body: "Isi.", CTA: "Follow!"},
		},
		{
			name: "deep headings",
			in:   "### Hook\nLihat!\n### Body\nIsi.\n### CTA\nFollow!",
			want: Script{Hook: "Lihat!", Body: "Isi.", CTA: "Follow!"},
		},
		{
			name: "missing cta",
			in:   "## Hook\nLihat!\n\n## Body\nIsi.",
			want: Script{Hook: "Lihat!", Body: "Isi."},
		},
		{
			name: "quoted content is unwrapped",
			in:   "Hook: \"Lihat ini!\"\nBody: *Isi.*\nCTA: 'Follow!'",
			want: Script{Hook: "Lihat ini!", Body: "Isi.", CTA: "Follow!"},
		},
		{
			name: "empty",
			in:   "",
			want: Script{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseScript(tc.in))
		})
	}
}

func TestParseScriptMultilineBody(t *testing.T) {
	in := "## Hook [0:00-0:03]\nLihat!\n\n## Body [0:03-0:45]\nBaris satu.\nBaris dua.\n\n## CTA [0:45-0:60]\nFollow!"

	s := ParseScript(in)
	assert.Contains(t, s.Body, "Baris satu.")
	assert.Contains(t, s.Body, "Baris dua.")
}

func TestParseScriptFirstLabelWins(t *testing.T) {
	in := "Hook: pertama\nHook: kedua"

	s := ParseScript(in)
	assert.Equal(t, "pertama", s.Hook)
}

func TestParseScriptIgnoresProseStartingWithLabelWord(t *testing.T) {
	in := "## Hook\nHooked on this product since day one.\n"

	s := ParseScript(in)
	assert.Equal(t, "Hooked on this product since day one.", s.Hook)
}

func TestParseVisualSpecsDefaults(t *testing.T) {
	specs := parseVisualSpecs("", "9:16")
	assert.Equal(t, "9:16", specs.AspectRatio)
	assert.Empty(t, specs.Style)
}

func TestParseVisualSpecsTable(t *testing.T) {
	section := "| Element | Value |\n" +
		"|---------|-------|\n" +
		"| Style | cinematic |\n" +
		"| Camera | handheld |\n" +
		"| Lighting | golden hour |\n" +
		"| Aspect Ratio | 1:1 |\n" +
		"| Mood | warm |\n"

	specs := parseVisualSpecs(section, "9:16")
	assert.Equal(t, VisualSpecs{
		Style:       "cinematic",
		Camera:      "handheld",
		Lighting:    "golden hour",
		AspectRatio: "1:1",
		Mood:        "warm",
	}, specs)
}

func TestParseMasterPromptJoinsLines(t *testing.T) {
	section := "First line of prompt,\nsecond line of prompt.\n\n---\nignored"
	got := parseMasterPrompt(section, "")
	assert.Equal(t, "First line of prompt, second line of prompt.", got)
}

func TestParseMasterPromptFallsBackToFirstLine(t *testing.T) {
	reply := "# Some Other Heading\nThe actual prompt text here.\nMore text."
	got := parseMasterPrompt("", reply)
	assert.Equal(t, "The actual prompt text here.", got)
}

func TestParseHashtags(t *testing.T) {
	got := parseHashtags("#skincare #GlowUp text #fyp #skincare", nil)
	assert.Equal(t, []string{"skincare", "GlowUp", "fyp"}, got)
}

func TestParseHashtagsFallback(t *testing.T) {
	got := parseHashtags("no tags here", []string{"fyp", "viral"})
	assert.Equal(t, []string{"fyp", "viral"}, got)
}

func TestParseHashtagsEmpty(t *testing.T) {
	require.Empty(t, parseHashtags("", nil))
}
