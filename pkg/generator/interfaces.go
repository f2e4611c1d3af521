package generator

import (
	"context"

	"github.com/shouni/ios-icon-kit/pkg/domain"
)

// ImageGenerator はビジネスロジック層が利用する画像生成の統合窓口です。
// Router と各バックエンド (Gemini / OpenAI / オフライン) が実装します。
type ImageGenerator interface {
	// Generate は1枚の画像を生成します。モデルに応じたバックエンドが処理します。
	Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GeneratedImage, error)
}
