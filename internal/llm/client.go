// Package llm wraps the OpenAI API for embeddings, chat completions,
// audio transcription and image description.
package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/flavorinthejar/smakosz/backend/internal/apperr"
	"github.com/flavorinthejar/smakosz/backend/internal/model"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const (
	DefaultChatModel      = openai.GPT4Turbo
	DefaultVisionModel    = openai.GPT4Turbo
	DefaultEmbeddingModel = openai.SmallEmbedding3
	// TranscriptionLanguage is passed to Whisper so short Polish clips are not misdetected.
	TranscriptionLanguage = "pl"
)

// Config holds OpenAI client settings. Empty fields take the defaults.
type Config struct {
	APIKey         string
	BaseURL        string
	ChatModel      string
	VisionModel    string
	EmbeddingModel string
	// Dimensions is requested from embedding models that support shortening.
	Dimensions int
}

// Client talks to the OpenAI API.
type Client struct {
	api            *openai.Client
	chatModel      string
	visionModel    string
	embeddingModel openai.EmbeddingModel
	dimensions     int
	log            *zap.Logger
}

// NewClient creates a Client from cfg.
func NewClient(cfg Config, log *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}
	oc := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		oc.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.ChatModel == "" {
		cfg.ChatModel = DefaultChatModel
	}
	if cfg.VisionModel == "" {
		cfg.VisionModel = DefaultVisionModel
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = string(DefaultEmbeddingModel)
	}
	return &Client{
		api:            openai.NewClientWithConfig(oc),
		chatModel:      cfg.ChatModel,
		visionModel:    cfg.VisionModel,
		embeddingModel: openai.EmbeddingModel(cfg.EmbeddingModel),
		dimensions:     cfg.Dimensions,
		log:            log,
	}, nil
}

// Embed returns the embedding of text.
func (c *Client) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := c.api.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input:      []string{text},
		Model:      c.embeddingModel,
		Dimensions: c.dimensions,
	})
	if err != nil {
		return nil, fmt.Errorf("create embedding: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("no embeddings returned")
	}
	return resp.Data[0].Embedding, nil
}

func (c *Client) chatRequest(req model.CompletionRequest) openai.ChatCompletionRequest {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: req.SystemPrompt})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: req.UserPrompt})
	return openai.ChatCompletionRequest{
		Model:       c.chatModel,
		Messages:    messages,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
	}
}

// Generate runs a chat completion. An empty answer is a GenerationFailed error.
func (c *Client) Generate(ctx context.Context, req model.CompletionRequest) (*model.Completion, error) {
	resp, err := c.api.CreateChatCompletion(ctx, c.chatRequest(req))
	if err != nil {
		return nil, c.classify("chat completion", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return nil, apperr.GenerationFailed("model returned an empty answer", nil)
	}
	return &model.Completion{
		Text:  resp.Choices[0].Message.Content,
		Usage: usage(resp.Usage),
	}, nil
}

// GenerateStream runs a streaming chat completion, passing each text chunk
// to onChunk. The returned Completion carries the full text and the usage
// reported after the last chunk.
func (c *Client) GenerateStream(ctx context.Context, req model.CompletionRequest, onChunk func(string) error) (*model.Completion, error) {
	chat := c.chatRequest(req)
	chat.StreamOptions = &openai.StreamOptions{IncludeUsage: true}

	stream, err := c.api.CreateChatCompletionStream(ctx, chat)
	if err != nil {
		return nil, c.classify("chat completion stream", err)
	}
	defer stream.Close()

	var text strings.Builder
	var u model.Usage
	for {
		resp, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, c.classify("chat completion stream", err)
		}
		if resp.Usage != nil {
			u = usage(*resp.Usage)
		}
		for _, choice := range resp.Choices {
			if choice.Delta.Content == "" {
				continue
			}
			text.WriteString(choice.Delta.Content)
			if err := onChunk(choice.Delta.Content); err != nil {
				return nil, err
			}
		}
	}
	if strings.TrimSpace(text.String()) == "" {
		return nil, apperr.GenerationFailed("model returned an empty answer", nil)
	}
	return &model.Completion{Text: text.String(), Usage: u}, nil
}

// Transcribe converts speech to text with Whisper.
func (c *Client) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: filename,
		Reader:   audio,
		Language: TranscriptionLanguage,
	})
	if err != nil {
		return "", c.classify("transcription", err)
	}
	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return "", apperr.GenerationFailed("transcription is empty", nil)
	}
	return text, nil
}

// DescribeImage asks the vision model to describe an image, usually to
// list the visible ingredients.
func (c *Client) DescribeImage(ctx context.Context, contentType string, image []byte, prompt string) (string, error) {
	dataURI := "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(image)
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     c.visionModel,
		MaxTokens: 500,
		Messages: []openai.ChatCompletionMessage{
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{Type: openai.ChatMessagePartTypeText, Text: prompt},
					{Type: openai.ChatMessagePartTypeImageURL, ImageURL: &openai.ChatMessageImageURL{
						URL:    dataURI,
						Detail: openai.ImageURLDetailAuto,
					}},
				},
			},
		},
	})
	if err != nil {
		return "", c.classify("image description", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", apperr.GenerationFailed("image description is empty", nil)
	}
	return resp.Choices[0].Message.Content, nil
}

// classify maps an OpenAI failure onto the error taxonomy. Billing and rate
// limit denials become QuotaExceeded, everything else GenerationFailed.
func (c *Client) classify(op string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	c.log.Error("openai request failed", zap.String("operation", op), zap.Error(err))
	if isQuota(err) {
		return apperr.QuotaExceeded(fmt.Errorf("%s: %w", op, err))
	}
	return apperr.GenerationFailed("recipe generation failed", fmt.Errorf("%s: %w", op, err))
}

func isQuota(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.Type == "insufficient_quota" {
			return true
		}
		if code, ok := apiErr.Code.(string); ok && code == "insufficient_quota" {
			return true
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests
	}
	return false
}

func usage(u openai.Usage) model.Usage {
	return model.Usage{
		PromptTokens:     u.PromptTokens,
		CompletionTokens: u.CompletionTokens,
		TotalTokens:      u.TotalTokens,
	}
}
