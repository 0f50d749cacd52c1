package groq

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Reason classifies a failed inference call.
type Reason string

const (
	ReasonRateLimited  Reason = "RATE_LIMITED"
	ReasonUnauthorized Reason = "UNAUTHORIZED"
	ReasonTimeout      Reason = "TIMEOUT"
	ReasonUnknown      Reason = "UNKNOWN"
)

// GenerationError is the uniform failure surface of the inference
// boundary: any non-success response maps to one of the Reason codes.
type GenerationError struct {
	Reason Reason
	Err    error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed (%s): %v", e.Reason, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

type Options struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	MaxRetries  int
	HTTPClient  *http.Client
	Logger      *slog.Logger
}

type Client struct {
	model       string
	temperature float64
	maxTokens   int
	reqOpts     []option.RequestOption
	logger      *slog.Logger
}

func New(opts Options) *Client {
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = "llama-3.3-70b-versatile"
	}

	temperature := opts.Temperature
	if temperature <= 0 {
		temperature = 0.7
	}

	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 2048
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(opts.MaxRetries),
	}
	if baseURL := strings.TrimRight(opts.BaseURL, "/"); baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	if opts.HTTPClient != nil {
		reqOpts = append(reqOpts, option.WithHTTPClient(opts.HTTPClient))
	}

	return &Client{
		model:       model,
		temperature: temperature,
		maxTokens:   maxTokens,
		reqOpts:     reqOpts,
		logger:      logger,
	}
}

// Complete sends one chat completion and returns the reply text. Any
// failure is wrapped in a GenerationError with a classified reason.
func (c *Client) Complete(ctx context.Context, system, user string) (string, error) {
	client := openai.NewClient(c.reqOpts...)

	msgs := []openai.ChatCompletionMessageParamUnion{}
	if strings.TrimSpace(system) != "" {
		msgs = append(msgs, openai.SystemMessage(system))
	}
	msgs = append(msgs, openai.UserMessage(user))

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    msgs,
		Temperature: openai.Float(c.temperature),
		MaxTokens:   openai.Int(int64(c.maxTokens)),
	})
	if err != nil {
		gerr := &GenerationError{Reason: Classify(err), Err: err}
		c.logger.Error("inference call failed", "reason", string(gerr.Reason), "err", err)
		return "", gerr
	}
	if len(resp.Choices) == 0 {
		return "", &GenerationError{Reason: ReasonUnknown, Err: errors.New("empty choices in response")}
	}

	text := resp.Choices[0].Message.Content
	c.logger.Debug("inference call completed", "model", c.model, "chars", len(text))
	return text, nil
}

// Classify maps a transport or API error to a Reason code.
func Classify(err error) Reason {
	if errors.Is(err, context.DeadlineExceeded) {
		return ReasonTimeout
	}

	var apierr *openai.Error
	if errors.As(err, &apierr) {
		switch apierr.StatusCode {
		case http.StatusTooManyRequests:
			return ReasonRateLimited
		case http.StatusUnauthorized, http.StatusForbidden:
			return ReasonUnauthorized
		case http.StatusRequestTimeout, http.StatusGatewayTimeout:
			return ReasonTimeout
		}
		return ReasonUnknown
	}

	if strings.Contains(err.Error(), "Client.Timeout") {
		return ReasonTimeout
	}
	return ReasonUnknown
}
