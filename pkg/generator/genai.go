package generator

import (
	"context"
	"fmt"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// GenaiModel は google.golang.org/genai の SDK クライアントを
// geminiModel の形へ合わせる薄いアダプターです。
type GenaiModel struct {
	client *genai.Client
}

// NewGenaiModel は Gemini API キーから SDK クライアントを初期化します。
func NewGenaiModel(ctx context.Context, apiKey string) (*GenaiModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("apiKey is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("Geminiクライアントの初期化に失敗しました: %w", err)
	}
	return &GenaiModel{client: client}, nil
}

// GenerateWithParts は SDK の GenerateContent を呼び、共通のレスポンス型に包んで返します。
func (m *GenaiModel) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	config := &genai.GenerateContentConfig{Seed: seedToPtrInt32(opts.Seed)}
	if opts.SystemPrompt != "" {
		config.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: opts.SystemPrompt}}}
	}
	if opts.AspectRatio != "" {
		config.ImageConfig = &genai.ImageConfig{AspectRatio: opts.AspectRatio}
	}

	contents := []*genai.Content{{Role: genai.RoleUser, Parts: parts}}
	resp, err := m.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		return nil, err
	}
	return &gemini.Response{RawResponse: resp}, nil
}
