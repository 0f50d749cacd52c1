package engine

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"rekakata/internal/platform"
	"rekakata/internal/trends"
	"rekakata/internal/validate"
)

// Completer is the inference boundary. groq.Client satisfies it; tests
// substitute a canned implementation.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Payload is the fully assembled instruction sent to the model.
type Payload struct {
	System string
	User   string
}

// Script is the Hook/Body/CTA breakdown of the generated video script.
type Script struct {
	Hook string
	Body string
	CTA  string
}

// VisualSpecs mirror the table the model is asked to emit.
type VisualSpecs struct {
	Style       string
	Camera      string
	Lighting    string
	AspectRatio string
	Mood        string
}

// Output is the parsed model reply plus the request context it was
// generated for.
type Output struct {
	MasterPrompt  string
	VisualSpecs   VisualSpecs
	Script        Script
	PlatformNotes string
	Hashtags      []string

	Language  string
	Platform  platform.Profile
	Selection trends.Selection
	RawReply  string
}

type Options struct {
	Validator *validate.Validator
	Injector  *trends.Injector
	Completer Completer
	Logger    *slog.Logger
}

type Engine struct {
	validator *validate.Validator
	injector  *trends.Injector
	completer Completer
	logger    *slog.Logger
}

func New(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Engine{
		validator: opts.Validator,
		injector:  opts.Injector,
		completer: opts.Completer,
		logger:    logger,
	}
}

// Generate runs the whole pipeline for one request: validate, inject
// trends, resolve the platform, call the model, parse the reply.
// Validation and platform errors return before any network call. A
// malformed model reply degrades the output with empty placeholders,
// it never aborts the request.
func (e *Engine) Generate(ctx context.Context, rawText, platformID string) (Output, error) {
	in, err := e.validator.Validate(rawText)
	if err != nil {
		return Output{}, err
	}

	selection := e.injector.Inject(in.Entities.All())

	profile, err := platform.Resolve(platformID)
	if err != nil {
		return Output{}, err
	}

	payload := BuildPayload(in, selection, profile)

	e.logger.Info("generating prompt",
		"language", in.Language,
		"platform", profile.ID,
		"entities", in.Entities.Count(),
	)

	reply, err := e.completer.Complete(ctx, payload.System, payload.User)
	if err != nil {
		return Output{}, err
	}

	out := e.parseReply(reply, in, selection, profile)
	return out, nil
}

// BuildPayload merges the validated input, trend selection, and
// platform profile into one instruction payload.
func BuildPayload(in validate.Input, sel trends.Selection, profile platform.Profile) Payload {
	var b strings.Builder

	fmt.Fprintf(&b, "# Content Idea:\n%s\n\n", in.Text)

	if in.Entities.Count() > 0 {
		b.WriteString("# Detected Entities:\n")
		writeEntityLine(&b, "products", in.Entities.Products)
		writeEntityLine(&b, "topics", in.Entities.Topics)
		writeEntityLine(&b, "emotions", in.Entities.Emotions)
		writeEntityLine(&b, "target audience", in.Entities.Audiences)
		b.WriteString("\n")
	}

	b.WriteString("# Trending Elements:\n")
	if sel.Format != nil {
		fmt.Fprintf(&b, "- Format: %s\n", sel.Format.Name)
	}
	if sel.VisualStyle != nil {
		fmt.Fprintf(&b, "- Visual Style: %s (%s, %s)\n", sel.VisualStyle.Name, sel.VisualStyle.Style, sel.VisualStyle.Camera)
	}
	if len(sel.Hooks) > 0 {
		fmt.Fprintf(&b, "- Example Hooks: %s\n", strings.Join(sel.Hooks, ", "))
	}
	if len(sel.CTAs) > 0 {
		fmt.Fprintf(&b, "- Example CTAs: %s\n", strings.Join(sel.CTAs, ", "))
	}
	if len(sel.Hashtags) > 0 {
		fmt.Fprintf(&b, "- Hashtags: %s\n", strings.Join(sel.Hashtags, ", "))
	}
	for _, s := range sel.Sounds {
		fmt.Fprintf(&b, "- Sound (%s): %s [%s]\n", s.Platform, s.Title, s.Vibe)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "# Target Platform: %s\n", profile.ID)
	fmt.Fprintf(&b, "- Aspect Ratio: %s\n", profile.AspectRatio)
	fmt.Fprintf(&b, "- Optimal Length: %s\n", profile.OptimalLength)
	fmt.Fprintf(&b, "- Characteristics: %s\n", profile.Characteristics)
	fmt.Fprintf(&b, "- Caption Style: %s\n", profile.CaptionStyle)
	b.WriteString("\n")

	b.WriteString("Based on the information above, generate a complete, detailed, and optimized prompt for text-to-video generation following the specified format.")

	return Payload{
		System: systemPrompt(in.Language),
		User:   b.String(),
	}
}

func writeEntityLine(b *strings.Builder, label string, values []string) {
	if len(values) == 0 {
		return
	}
	fmt.Fprintf(b, "- %s: %s\n", label, strings.Join(values, ", "))
}

func systemPrompt(language string) string {
	if language == "id" {
		return systemPromptID
	}
	return systemPromptEN
}

const systemPromptID = `Anda adalah asisten AI yang ahli dalam membuat prompt text-to-video berkualitas tinggi untuk konten UGC (User Generated Content).

Tugas Anda:
1. Analisis input pengguna dan buat prompt yang detail dan spesifik
2. Sertakan spesifikasi visual (style, camera, lighting, aspect ratio, mood)
3. Buat script yang terstruktur (Hook, Body, CTA)
4. Optimalkan untuk platform media sosial (TikTok/Instagram/YouTube)
5. Sertakan hashtag yang relevan

Format output yang diharapkan:
- MASTER PROMPT untuk AI video generator (RunwayML/Pika/Kling)
- VISUAL SPECIFICATIONS dalam format tabel
- SCRIPT dengan pembagian Hook [0:00-0:03], Body [0:03-0:45], CTA [0:45-0:60]
- PLATFORM OPTIMIZATION untuk platform target
- HASHTAGS yang relevan dan trending

Pastikan prompt:
- Spesifik dan detail
- Mudah dipahami oleh AI video generator
- Mengikuti tren terkini
- Sesuai dengan bahasa input pengguna`

const systemPromptEN = `You are an AI assistant expert in creating high-quality text-to-video prompts for UGC (User Generated Content).

Your tasks:
1. Analyze user input and create detailed, specific prompts
2. Include visual specifications (style, camera, lighting, aspect ratio, mood)
3. Create structured scripts (Hook, Body, CTA)
4. Optimize for social media platforms (TikTok/Instagram/YouTube)
5. Include relevant hashtags

Expected output format:
- MASTER PROMPT for AI video generator (RunwayML/Pika/Kling)
- VISUAL SPECIFICATIONS in table format
- SCRIPT with Hook [0:00-0:03], Body [0:03-0:45], CTA [0:45-0:60]
- PLATFORM OPTIMIZATION for the target platform
- HASHTAGS that are relevant and trending

Ensure prompts are:
- Specific and detailed
- Easy for AI video generators to understand
- Following current trends
- In the same language as user input`
