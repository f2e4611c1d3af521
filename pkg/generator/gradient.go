package generator

import (
	"context"
	"fmt"
	"image"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/shouni/ios-icon-kit/pkg/domain"
	"github.com/shouni/ios-icon-kit/pkg/imgutil"
)

// hexColorPattern はプロンプト中の 6桁HEXカラー表記を拾うのだ。
var hexColorPattern = regexp.MustCompile(`#[0-9A-Fa-f]{6}`)

// GradientGenerator は API を呼ばずに縦グラデーションのアイコンを合成する
// オフラインバックエンドです。プロンプト中の先頭2つの HEX カラーを
// 上端・下端の色として採用し、見つからなければフォールバック色を使います。
type GradientGenerator struct {
	top    colorful.Color
	bottom colorful.Color
}

// NewGradientGenerator は GradientGenerator を初期化します。
// フォールバック色は "#RRGGBB" 形式で指定します。
func NewGradientGenerator(fallbackTop, fallbackBottom string) (*GradientGenerator, error) {
	top, err := colorful.Hex(fallbackTop)
	if err != nil {
		return nil, fmt.Errorf("フォールバック色の解釈に失敗しました %q: %w (%w)", fallbackTop, domain.ErrConfiguration, err)
	}
	bottom, err := colorful.Hex(fallbackBottom)
	if err != nil {
		return nil, fmt.Errorf("フォールバック色の解釈に失敗しました %q: %w (%w)", fallbackBottom, domain.ErrConfiguration, err)
	}
	return &GradientGenerator{top: top, bottom: bottom}, nil
}

// Generate はプロンプトから色を拾い、Lab 空間で補間した縦グラデーションを描きます。
// シード値は画素に影響しません。
func (g *GradientGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GeneratedImage, error) {
	px, err := parseSquareSize(req.Size)
	if err != nil {
		return nil, err
	}

	top, bottom := g.top, g.bottom
	if hexes := hexColorPattern.FindAllString(req.Prompt, 2); len(hexes) > 0 {
		if c, err := colorful.Hex(hexes[0]); err == nil {
			top = c
		}
		if len(hexes) > 1 {
			if c, err := colorful.Hex(hexes[1]); err == nil {
				bottom = c
			}
		}
	}

	slog.InfoContext(ctx, "グラデーションアイコンをオフライン合成します",
		"top", top.Hex(), "bottom", bottom.Hex(), "px", px)

	img := image.NewRGBA(image.Rect(0, 0, px, px))
	for y := 0; y < px; y++ {
		t := 0.0
		if px > 1 {
			t = float64(y) / float64(px-1)
		}
		r, gc, b := top.BlendLab(bottom, t).Clamped().RGB255()
		for x := 0; x < px; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i] = r
			img.Pix[i+1] = gc
			img.Pix[i+2] = b
			img.Pix[i+3] = 0xFF
		}
	}

	data, err := imgutil.EncodePNG(img)
	if err != nil {
		return nil, fmt.Errorf("グラデーション画像のエンコードに失敗しました: %w (%w)", domain.ErrProcessing, err)
	}

	return &domain.GeneratedImage{
		Data:     data,
		MimeType: "image/png",
		Model:    ModelOffline,
		Prompt:   req.Prompt,
		UsedSeed: dereferenceSeed(req.Seed),
	}, nil
}

// parseSquareSize は "1024x1024" 形式の指定から一辺のピクセル数を取り出します。
// 正方形でない指定は幅の値を採用します。
func parseSquareSize(size string) (int, error) {
	if size == "" {
		size = DefaultSize
	}
	w, _, found := strings.Cut(strings.ToLower(size), "x")
	if !found {
		return 0, fmt.Errorf("サイズ指定を解釈できません %q: %w", size, domain.ErrGeneration)
	}
	px, err := strconv.Atoi(w)
	if err != nil || px <= 0 {
		return 0, fmt.Errorf("サイズ指定を解釈できません %q: %w", size, domain.ErrGeneration)
	}
	return px, nil
}
