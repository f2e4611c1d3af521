package iconset

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/shouni/ios-icon-kit/pkg/domain"
	"github.com/shouni/ios-icon-kit/pkg/imgutil"
)

// Web 用ファビコンのサイズテーブル
var webSizes = []SizeSpec{
	{Filename: "favicon-16.png", Points: 16, Scale: 1, Idiom: "web"},
	{Filename: "favicon-32.png", Points: 32, Scale: 1, Idiom: "web"},
	{Filename: "favicon-48.png", Points: 48, Scale: 1, Idiom: "web"},
	{Filename: "favicon-64.png", Points: 64, Scale: 1, Idiom: "web"},
	{Filename: "favicon-128.png", Points: 128, Scale: 1, Idiom: "web"},
	{Filename: "favicon-256.png", Points: 256, Scale: 1, Idiom: "web"},
}

// WebSizes は Web ファビコンの全サイズ仕様を返します。
func WebSizes() []SizeSpec {
	out := make([]SizeSpec, len(webSizes))
	copy(out, webSizes)
	return out
}

// WriteWebIcons は同一ソースから Web 用ファビコン一式を outputDir 直下に書き出します。
// iOS セットと違いマニフェストは持ちません。
func (b *Builder) WriteWebIcons(img *domain.GeneratedImage, outputDir string) ([]string, error) {
	if img == nil || len(img.Data) == 0 {
		return nil, fmt.Errorf("生成画像が空です: %w", domain.ErrProcessing)
	}

	src, err := imgutil.DecodeImage(img.Data)
	if err != nil {
		return nil, fmt.Errorf("ソース画像を読めません: %w (%w)", domain.ErrProcessing, err)
	}
	src = imgutil.CenterCropSquare(src)

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("出力先を作成できません: %w (%w)", domain.ErrIO, err)
	}

	paths := make([]string, 0, len(webSizes))
	for _, spec := range webSizes {
		px := spec.Pixels()
		var out image.Image = src
		if bounds := src.Bounds(); bounds.Dx() != px || bounds.Dy() != px {
			out = imgutil.ResizeSquare(src, px)
		}

		data, err := imgutil.EncodePNG(out)
		if err != nil {
			return nil, fmt.Errorf("%s のエンコードに失敗しました: %w (%w)", spec.Filename, domain.ErrProcessing, err)
		}
		path := filepath.Join(outputDir, spec.Filename)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return nil, fmt.Errorf("%s を書き込めません: %w (%w)", spec.Filename, domain.ErrIO, err)
		}
		paths = append(paths, path)
	}

	slog.Info("Webファビコンを書き出しました", "dir", outputDir, "files", len(paths))
	return paths, nil
}
