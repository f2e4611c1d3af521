package generator

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"

	"github.com/shouni/ios-icon-kit/pkg/domain"
)

// geminiModel は Gemini クライアントのうち画像生成に使う操作だけを切り出した
// コンシューマ側インターフェースです。GenaiModel がこれを満たします。
type geminiModel interface {
	GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error)
}

// GeminiGenerator は Gemini 系モデル (gemini-*, imagen-*) での生成を担当します。
type GeminiGenerator struct {
	aiClient geminiModel
	imgCore  *ImageCore
}

// NewGeminiGenerator は GeminiGenerator を初期化するのだ。
func NewGeminiGenerator(aiClient geminiModel, core *ImageCore) (*GeminiGenerator, error) {
	if aiClient == nil {
		return nil, fmt.Errorf("aiClient (gemini model) is required")
	}
	if core == nil {
		return nil, fmt.Errorf("core (ImageCore) is required")
	}

	return &GeminiGenerator{
		aiClient: aiClient,
		imgCore:  core,
	}, nil
}

// Generate はプロンプト（と任意の参照画像）から1枚を生成します。
// アイコン用途なのでアスペクト比は常に 1:1 です。
func (g *GeminiGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GeneratedImage, error) {
	parts := []*genai.Part{{Text: req.Prompt}}

	if req.ReferenceURL != "" {
		if imgPart := g.imgCore.PrepareImagePart(ctx, req.ReferenceURL); imgPart != nil {
			parts = append(parts, imgPart)
		}
	}

	opts := gemini.GenerateOptions{
		AspectRatio: "1:1",
		Seed:        req.Seed,
	}

	resp, err := g.aiClient.GenerateWithParts(ctx, geminiModelName(req.Model), parts, opts)
	if err != nil {
		return nil, classifyGeminiError(err)
	}

	out, err := g.imgCore.ParseToResponse(resp, dereferenceSeed(req.Seed))
	if err != nil {
		return nil, fmt.Errorf("Geminiアイコン生成エラー: %w", err)
	}

	return &domain.GeneratedImage{
		Data:     out.Data,
		MimeType: out.MimeType,
		Model:    req.Model,
		Prompt:   req.Prompt,
		UsedSeed: out.UsedSeed,
	}, nil
}

// geminiModelName はモデル名を整えます。"gemini" だけなら既定モデルを使います。
func geminiModelName(model string) string {
	if model == "" || strings.EqualFold(model, "gemini") {
		return DefaultGeminiModel
	}
	return model
}

// classifyGeminiError は通信エラーをエラー種別へ対応付けます。
// SDK の例外型には依存せず、コンテキストと gRPC ステータス名で判定します。
func classifyGeminiError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("Gemini呼び出しがタイムアウトしました: %w (%w)", domain.ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("Gemini呼び出しがタイムアウトしました: %w (%w)", domain.ErrTimeout, err)
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "RESOURCE_EXHAUSTED") || strings.Contains(msg, "429"):
		return fmt.Errorf("Geminiのレート制限に達しました: %w (%w)", domain.ErrRateLimited, err)
	case strings.Contains(msg, "UNAUTHENTICATED") || strings.Contains(msg, "PERMISSION_DENIED") ||
		strings.Contains(msg, "API key") || strings.Contains(msg, "401") || strings.Contains(msg, "403"):
		return fmt.Errorf("Geminiの認証に失敗しました: %w (%w)", domain.ErrAuthFailure, err)
	default:
		return fmt.Errorf("Gemini呼び出しに失敗しました: %w (%w)", domain.ErrGeneration, err)
	}
}
