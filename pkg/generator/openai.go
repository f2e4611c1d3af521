package generator

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/shouni/ios-icon-kit/pkg/domain"
)

// openaiImageAPI は OpenAI クライアントのうち画像生成に使う操作だけを切り出した
// コンシューマ側インターフェースです。*openai.Client がそのまま満たします。
type openaiImageAPI interface {
	CreateImage(ctx context.Context, request openai.ImageRequest) (openai.ImageResponse, error)
}

// OpenAIGenerator は DALL-E 系・gpt-image 系モデルでの生成を担当します。
type OpenAIGenerator struct {
	client openaiImageAPI
}

// NewOpenAIGenerator は OpenAIGenerator を初期化します。
func NewOpenAIGenerator(client openaiImageAPI) (*OpenAIGenerator, error) {
	if client == nil {
		return nil, fmt.Errorf("client (openai) is required")
	}
	return &OpenAIGenerator{client: client}, nil
}

// Generate はプロンプトから1枚を生成します。
// レスポンスは b64_json で受け取り、バイト列へ復元して返します。
func (g *OpenAIGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GeneratedImage, error) {
	model, err := normalizeOpenAIModel(req.Model)
	if err != nil {
		return nil, err
	}

	if req.ReferenceURL != "" {
		slog.WarnContext(ctx, "参照画像はOpenAI系モデルでは利用できないため無視します", "url", req.ReferenceURL, "model", model)
	}

	size := req.Size
	if size == "" {
		size = DefaultSize
	}

	imgReq := openai.ImageRequest{
		Prompt: req.Prompt,
		Model:  model,
		N:      1,
		Size:   size,
	}

	// モデルごとの追加パラメータ
	switch model {
	case openai.CreateImageModelDallE3:
		imgReq.ResponseFormat = openai.CreateImageResponseFormatB64JSON
		imgReq.Quality = "standard"
		imgReq.Style = "natural"
	case "gpt-image-1":
		// gpt-image-1 は常に b64 を返すため response_format は指定しない
		imgReq.Quality = "high"
	default:
		imgReq.ResponseFormat = openai.CreateImageResponseFormatB64JSON
	}

	resp, err := g.client.CreateImage(ctx, imgReq)
	if err != nil {
		return nil, classifyOpenAIError(err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("OpenAIの応答に画像が含まれていません: %w", domain.ErrGeneration)
	}

	item := resp.Data[0]
	if item.B64JSON == "" {
		return nil, fmt.Errorf("OpenAIの応答に画像データがありません (url=%s): %w", item.URL, domain.ErrGeneration)
	}
	data, err := base64.StdEncoding.DecodeString(item.B64JSON)
	if err != nil {
		return nil, fmt.Errorf("画像データの復元に失敗しました: %w (%w)", domain.ErrGeneration, err)
	}

	return &domain.GeneratedImage{
		Data:          data,
		MimeType:      http.DetectContentType(data),
		Model:         req.Model,
		Prompt:        req.Prompt,
		RevisedPrompt: item.RevisedPrompt,
		UsedSeed:      dereferenceSeed(req.Seed),
	}, nil
}

// normalizeOpenAIModel は利用者向けのモデル表記を API のモデルIDへ揃えます。
func normalizeOpenAIModel(model string) (string, error) {
	switch strings.ToLower(model) {
	case "", "dalle-3", "dall-e-3":
		return openai.CreateImageModelDallE3, nil
	case "dalle-2", "dall-e-2":
		return openai.CreateImageModelDallE2, nil
	case "gpt-image-1":
		return "gpt-image-1", nil
	default:
		return "", fmt.Errorf("未対応のOpenAIモデルです %q: %w", model, domain.ErrGeneration)
	}
}

// classifyOpenAIError は API エラーをエラー種別へ対応付けます。
func classifyOpenAIError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("OpenAI呼び出しがタイムアウトしました: %w (%w)", domain.ErrTimeout, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("OpenAI呼び出しがタイムアウトしました: %w (%w)", domain.ErrTimeout, err)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		if code, ok := apiErr.Code.(string); ok {
			if code == "content_policy_violation" || code == "moderation_blocked" {
				return fmt.Errorf("OpenAIがコンテンツを拒否しました: %w (%w)", domain.ErrContentRejected, err)
			}
		}
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("OpenAIの認証に失敗しました: %w (%w)", domain.ErrAuthFailure, err)
		case http.StatusTooManyRequests:
			return fmt.Errorf("OpenAIのレート制限に達しました: %w (%w)", domain.ErrRateLimited, err)
		}
		return fmt.Errorf("OpenAI呼び出しに失敗しました: %w (%w)", domain.ErrGeneration, err)
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		switch reqErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return fmt.Errorf("OpenAIの認証に失敗しました: %w (%w)", domain.ErrAuthFailure, err)
		case http.StatusTooManyRequests:
			return fmt.Errorf("OpenAIのレート制限に達しました: %w (%w)", domain.ErrRateLimited, err)
		}
	}

	return fmt.Errorf("OpenAI呼び出しに失敗しました: %w (%w)", domain.ErrGeneration, err)
}
