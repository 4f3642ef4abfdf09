package providers

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

const (
	OpenAIOCRName         = "openai"
	openAIOCRDefaultModel = "gpt-4o-mini"

	// USD per 1M tokens, gpt-4o-mini vision pricing.
	openAIOCRInputCostPer1M  = 0.15
	openAIOCROutputCostPer1M = 0.60
)

// transcribePrompt asks for a faithful line transcription: the segmenter
// depends on original line breaks, so the model must not reflow or
// normalize the text.
const transcribePrompt = `Transcribe every line of text in this scanned city-directory page exactly as printed, one output line per printed line, preserving original order, punctuation, and abbreviations. Output only the transcription with no commentary.`

// OpenAIOCRConfig holds configuration for the OpenAI vision OCR client.
type OpenAIOCRConfig struct {
	APIKey     string
	Model      string
	RateLimit  float64       // Requests per second
	MaxRetries int           // Retry attempts
	RetryDelay time.Duration // Base retry delay
	Timeout    time.Duration // HTTP timeout
	BaseURL    string        // Optional (tests)
	HTTPClient *http.Client  // Optional (tests)
}

// OpenAIOCRClient implements OCRProvider with a vision chat-completion
// request through the official OpenAI SDK.
type OpenAIOCRClient struct {
	model      string
	rateLimit  float64
	maxRetries int
	retryDelay time.Duration
	client     openai.Client
}

// NewOpenAIOCRClient creates a new OpenAI vision OCR client.
func NewOpenAIOCRClient(cfg OpenAIOCRConfig) *OpenAIOCRClient {
	if cfg.Model == "" {
		cfg.Model = openAIOCRDefaultModel
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = 2.0
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = 2 * time.Second
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 120 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(httpClient),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIOCRClient{
		model:      cfg.Model,
		rateLimit:  cfg.RateLimit,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		client:     openai.NewClient(opts...),
	}
}

// Name returns the provider identifier.
func (c *OpenAIOCRClient) Name() string {
	return OpenAIOCRName
}

// RequestsPerSecond returns the configured rate limit.
func (c *OpenAIOCRClient) RequestsPerSecond() float64 {
	return c.rateLimit
}

// MaxRetries returns the maximum retry attempts.
func (c *OpenAIOCRClient) MaxRetries() int {
	return c.maxRetries
}

// RetryDelayBase returns the base delay for exponential backoff.
func (c *OpenAIOCRClient) RetryDelayBase() time.Duration {
	return c.retryDelay
}

// ProcessImage transcribes a page image via a vision chat completion.
func (c *OpenAIOCRClient) ProcessImage(ctx context.Context, image []byte, pageNum int) (*OCRResult, error) {
	start := time.Now()

	dataURL := "data:image/png;base64," + base64.StdEncoding.EncodeToString(image)

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
				openai.TextContentPart(transcribePrompt),
				openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
					URL: dataURL,
				}),
			}),
		},
	})
	if err != nil {
		return &OCRResult{
			Success:       false,
			ErrorMessage:  err.Error(),
			ExecutionTime: time.Since(start),
		}, fmt.Errorf("openai vision request: %w", err)
	}

	if len(completion.Choices) == 0 {
		err := fmt.Errorf("no choices in vision response")
		return &OCRResult{
			Success:       false,
			ErrorMessage:  err.Error(),
			ExecutionTime: time.Since(start),
		}, err
	}

	cost := float64(completion.Usage.PromptTokens)*openAIOCRInputCostPer1M/1e6 +
		float64(completion.Usage.CompletionTokens)*openAIOCROutputCostPer1M/1e6

	return &OCRResult{
		Success: true,
		Text:    completion.Choices[0].Message.Content,
		Metadata: map[string]any{
			"model_used":        completion.Model,
			"prompt_tokens":     completion.Usage.PromptTokens,
			"completion_tokens": completion.Usage.CompletionTokens,
			"page_num":          pageNum,
		},
		CostUSD:       cost,
		ExecutionTime: time.Since(start),
	}, nil
}

// Verify interface
var _ OCRProvider = (*OpenAIOCRClient)(nil)
