package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/shouni/ios-icon-kit/pkg/domain"
)

// Family は生成バックエンドの系統を表します。
type Family string

const (
	// FamilyOpenAI は DALL-E 系・gpt-image 系のモデルです。
	FamilyOpenAI Family = "openai"
	// FamilyGemini は Gemini 系・Imagen 系のモデルです。
	FamilyGemini Family = "gemini"
	// FamilyOffline は API を呼ばないローカル合成です。
	FamilyOffline Family = "offline"
)

// FamilyOf はモデル名から担当バックエンドの系統を判定します。
// 未知のモデル名は他系統へフォールバックせずエラーになります。
func FamilyOf(model string) (Family, error) {
	if model == "" {
		model = DefaultModel
	}
	lower := strings.ToLower(model)
	switch {
	case strings.HasPrefix(lower, "dalle"), strings.HasPrefix(lower, "dall-e"), strings.HasPrefix(lower, "gpt-image"):
		return FamilyOpenAI, nil
	case strings.HasPrefix(lower, "gemini"), strings.HasPrefix(lower, "imagen"):
		return FamilyGemini, nil
	case lower == ModelOffline:
		return FamilyOffline, nil
	default:
		return "", fmt.Errorf("未知のモデル名です %q: %w", model, domain.ErrGeneration)
	}
}

// Router はモデル名に応じて登録済みバックエンドへ生成を振り分けます。
// Router 自体も ImageGenerator を満たします。
type Router struct {
	backends map[Family]ImageGenerator
}

// NewRouter は空の Router を初期化します。
func NewRouter() *Router {
	return &Router{backends: make(map[Family]ImageGenerator)}
}

// Register は系統にバックエンドを割り当てます。nil を渡すと割り当てを外します。
func (r *Router) Register(family Family, gen ImageGenerator) {
	if gen == nil {
		delete(r.backends, family)
		return
	}
	r.backends[family] = gen
}

// Generate はモデル名から系統を判定し、対応するバックエンドへ委譲します。
func (r *Router) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GeneratedImage, error) {
	family, err := FamilyOf(req.Model)
	if err != nil {
		return nil, err
	}
	backend, ok := r.backends[family]
	if !ok {
		return nil, fmt.Errorf("モデル %q 用のバックエンドが構成されていません (APIキー未設定の可能性): %w", req.Model, domain.ErrConfiguration)
	}
	return backend.Generate(ctx, req)
}
