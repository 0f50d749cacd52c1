package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rekakata/internal/platform"
	"rekakata/internal/trends"
	"rekakata/internal/validate"
)

type fakeCompleter struct {
	reply string
	err   error
	calls int
	// last payload, for payload assertions
	system string
	user   string
}

func (f *fakeCompleter) Complete(_ context.Context, system, user string) (string, error) {
	f.calls++
	f.system = system
	f.user = user
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func testEngine(c Completer) *Engine {
	catalog := &trends.Catalog{
		Formats: []trends.Format{
			{Name: "Honest Review", Keywords: []string{"review"}},
			{Name: "POV", Keywords: []string{"pov"}},
		},
		VisualStyles: []trends.VisualStyle{
			{Name: "Clean Girl", Keywords: []string{"skincare"}, Style: "minimal", Camera: "soft focus"},
		},
		Hooks: []string{"POV: kamu nemu produk ini", "Jangan skip dulu!"},
		CTAs:  []string{"Follow untuk tips lainnya!", "Save dulu biar nggak lupa!"},
		Hashtags: map[string][]string{
			"general":  {"fyp", "viral"},
			"skincare": {"skincareroutine"},
		},
	}

	return New(Options{
		Validator: validate.New(2000),
		Injector:  trends.NewInjector(catalog, trends.InjectorOptions{}),
		Completer: c,
	})
}

const wellFormedReply = `# MASTER PROMPT

A young Indonesian woman applies skincare in a bright bathroom, morning light, soft focus, vertical video.

# VISUAL SPECIFICATIONS

| Element | Value |
|---------|-------|
| Style | minimal clean girl |
| Camera | soft focus close up |
| Lighting | natural morning light |
| Aspect Ratio | 9:16 |
| Mood | fresh |

# SCRIPT

## Hook [0:00-0:03]
Kulit berminyak tiap pagi? Tonton ini dulu!

## Body [0:03-0:45]
Pakai gel cleanser, lalu toner ringan, tutup dengan moisturizer bebas minyak.

## CTA [0:45-0:60]
Follow untuk tips skincare lainnya!

# PLATFORM OPTIMIZATION

Post antara jam 7-9 pagi. Gunakan trending sound.

# HASHTAGS

#skincare #glowup #fyp
`

func TestGenerateFullPipeline(t *testing.T) {
	fake := &fakeCompleter{reply: wellFormedReply}
	eng := testEngine(fake)

	out, err := eng.Generate(context.Background(), "Jualin skincare pagi hari yang bagus buat wajah berminyak", "tiktok")
	require.NoError(t, err)

	assert.Equal(t, 1, fake.calls)
	assert.Equal(t, "id", out.Language)
	assert.Equal(t, "tiktok", out.Platform.ID)
	assert.Equal(t, "9:16", out.VisualSpecs.AspectRatio)
	assert.NotEmpty(t, out.MasterPrompt)
	assert.NotEmpty(t, out.Hashtags)
	assert.Equal(t, "Kulit berminyak tiap pagi? Tonton ini dulu!", out.Script.Hook)
	assert.Contains(t, out.Script.Body, "gel cleanser")
	assert.Contains(t, out.PlatformNotes, "trending sound")
	assert.Equal(t, wellFormedReply, out.RawReply)
}

func TestGenerateEmptyInputSkipsCompleter(t *testing.T) {
	fake := &fakeCompleter{reply: wellFormedReply}
	eng := testEngine(fake)

	_, err := eng.Generate(context.Background(), "   ", "tiktok")
	require.ErrorIs(t, err, validate.ErrEmptyInput)
	assert.Zero(t, fake.calls)
}

func TestGenerateUnsupportedPlatformSkipsCompleter(t *testing.T) {
	fake := &fakeCompleter{reply: wellFormedReply}
	eng := testEngine(fake)

	_, err := eng.Generate(context.Background(), "review skincare", "snapchat")
	require.ErrorIs(t, err, platform.ErrUnsupportedPlatform)
	assert.Zero(t, fake.calls)
}

func TestGenerateCompleterErrorPropagates(t *testing.T) {
	wantErr := errors.New("boom")
	eng := testEngine(&fakeCompleter{err: wantErr})

	_, err := eng.Generate(context.Background(), "review skincare", "tiktok")
	require.ErrorIs(t, err, wantErr)
}

func TestGenerateDegradesOnMissingSections(t *testing.T) {
	reply := `# MASTER PROMPT

Just a prompt, nothing else.

# SCRIPT

## Hook
Lihat ini!

## Body
Isi video.
`
	eng := testEngine(&fakeCompleter{reply: reply})

	out, err := eng.Generate(context.Background(), "review skincare", "tiktok")
	require.NoError(t, err)

	assert.Equal(t, "Just a prompt, nothing else.", out.MasterPrompt)
	assert.Equal(t, "Lihat ini!", out.Script.Hook)
	assert.Empty(t, out.Script.CTA)
	assert.Empty(t, out.PlatformNotes)
	// Hashtags fall back to the trend selection.
	assert.NotEmpty(t, out.Hashtags)
	// Aspect ratio falls back to the platform profile.
	assert.Equal(t, "9:16", out.VisualSpecs.AspectRatio)
}

func TestGenerateDefaultPlatform(t *testing.T) {
	eng := testEngine(&fakeCompleter{reply: wellFormedReply})

	out, err := eng.Generate(context.Background(), "review skincare", "")
	require.NoError(t, err)
	assert.Equal(t, platform.Default, out.Platform.ID)
}

func TestBuildPayloadContents(t *testing.T) {
	in := validate.Input{
		Text:     "Jualin skincare pagi hari",
		Language: "id",
		Entities: validate.Entities{
			Products: []string{"skincare"},
			Topics:   []string{"review"},
		},
	}
	sel := trends.Selection{
		Format:      &trends.Format{Name: "Honest Review"},
		VisualStyle: &trends.VisualStyle{Name: "Clean Girl", Style: "minimal", Camera: "soft focus"},
		Hooks:       []string{"Jangan skip!"},
		CTAs:        []string{"Follow!"},
		Hashtags:    []string{"fyp"},
		Sounds:      []trends.Sound{{Title: "Song", Platform: "tiktok", Vibe: "upbeat"}},
	}
	profile, err := platform.Resolve("tiktok")
	require.NoError(t, err)

	p := BuildPayload(in, sel, profile)

	assert.Contains(t, p.User, "Jualin skincare pagi hari")
	assert.Contains(t, p.User, "products: skincare")
	assert.Contains(t, p.User, "topics: review")
	assert.Contains(t, p.User, "Format: Honest Review")
	assert.Contains(t, p.User, "Visual Style: Clean Girl (minimal, soft focus)")
	assert.Contains(t, p.User, "Example Hooks: Jangan skip!")
	assert.Contains(t, p.User, "Example CTAs: Follow!")
	assert.Contains(t, p.User, "Hashtags: fyp")
	assert.Contains(t, p.User, "Sound (tiktok): Song [upbeat]")
	assert.Contains(t, p.User, "Target Platform: tiktok")
	assert.Contains(t, p.User, "Aspect Ratio: 9:16")
}

func TestBuildPayloadSystemPromptFollowsLanguage(t *testing.T) {
	profile, err := platform.Resolve("tiktok")
	require.NoError(t, err)

	id := BuildPayload(validate.Input{Text: "x", Language: "id"}, trends.Selection{}, profile)
	en := BuildPayload(validate.Input{Text: "x", Language: "en"}, trends.Selection{}, profile)

	assert.Contains(t, id.System, "Anda adalah asisten AI")
	assert.Contains(t, en.System, "You are an AI assistant")
	assert.NotEqual(t, id.System, en.System)
}

func TestBuildPayloadOmitsEmptyEntities(t *testing.T) {
	profile, err := platform.Resolve("tiktok")
	require.NoError(t, err)

	p := BuildPayload(validate.Input{Text: "plain idea", Language: "en"}, trends.Selection{}, profile)
	assert.NotContains(t, p.User, "Detected Entities")
}
