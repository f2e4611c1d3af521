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

// Builder は生成画像から .appiconset ディレクトリを構築するビルダーです。
type Builder struct{}

// NewBuilder は Builder を初期化します。
func NewBuilder() *Builder {
	return &Builder{}
}

// Build は全12サイズのビットマップとマニフェストを書き出します。
//
// 出力は一時ディレクトリに揃えてから <prefix>.appiconset へリネームするため、
// 途中で失敗しても書きかけのセットが残ることはありません。マニフェストは
// 全ビットマップの書き込み成功後に最後に書きます。
// 正方形でないソース画像は中央の正方形を切り出してから縮小します。
func (b *Builder) Build(img *domain.GeneratedImage, outputDir, prefix string) (*Contents, error) {
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

	staging, err := os.MkdirTemp(outputDir, "."+prefix+"-")
	if err != nil {
		return nil, fmt.Errorf("作業ディレクトリを作成できません: %w (%w)", domain.ErrIO, err)
	}
	// リネーム成功時には存在しないので RemoveAll は失敗分の後始末専用
	defer os.RemoveAll(staging)

	for _, spec := range iosSizes {
		if err := b.writeBitmap(src, staging, spec); err != nil {
			return nil, err
		}
	}

	// マニフェストは最後
	contents := NewContents()
	data, err := contents.Marshal()
	if err != nil {
		return nil, fmt.Errorf("マニフェストの生成に失敗しました: %w (%w)", domain.ErrProcessing, err)
	}
	if err := os.WriteFile(filepath.Join(staging, ContentsFilename), data, 0o644); err != nil {
		return nil, fmt.Errorf("マニフェストを書き込めません: %w (%w)", domain.ErrIO, err)
	}

	final := filepath.Join(outputDir, SetDirName(prefix))
	if err := os.RemoveAll(final); err != nil {
		return nil, fmt.Errorf("既存セットを置き換えられません: %w (%w)", domain.ErrIO, err)
	}
	if err := os.Rename(staging, final); err != nil {
		return nil, fmt.Errorf("アイコンセットを配置できません: %w (%w)", domain.ErrIO, err)
	}

	slog.Info("アイコンセットを書き出しました", "dir", final, "bitmaps", len(contents.Images))
	return contents, nil
}

// writeBitmap は1サイズ分のPNGを書き出します。
// ソースが目標サイズと一致する場合は再サンプリングせずそのまま使います。
func (b *Builder) writeBitmap(src image.Image, dir string, spec SizeSpec) error {
	px := spec.Pixels()

	var out image.Image = src
	bounds := src.Bounds()
	if bounds.Dx() != px || bounds.Dy() != px {
		out = imgutil.ResizeSquare(src, px)
	}

	data, err := imgutil.EncodePNG(out)
	if err != nil {
		return fmt.Errorf("%s のエンコードに失敗しました: %w (%w)", spec.Filename, domain.ErrProcessing, err)
	}
	if err := os.WriteFile(filepath.Join(dir, spec.Filename), data, 0o644); err != nil {
		return fmt.Errorf("%s を書き込めません: %w (%w)", spec.Filename, domain.ErrIO, err)
	}
	return nil
}

// WritePreview はセットの隣に <prefix>_preview.png としてソース画像を保存します。
func (b *Builder) WritePreview(img *domain.GeneratedImage, outputDir, prefix string) (string, error) {
	if img == nil || len(img.Data) == 0 {
		return "", fmt.Errorf("生成画像が空です: %w", domain.ErrProcessing)
	}

	data := img.Data
	if img.MimeType != "image/png" {
		decoded, err := imgutil.DecodeImage(img.Data)
		if err != nil {
			return "", fmt.Errorf("プレビュー用の変換に失敗しました: %w (%w)", domain.ErrProcessing, err)
		}
		if data, err = imgutil.EncodePNG(decoded); err != nil {
			return "", fmt.Errorf("プレビュー用の変換に失敗しました: %w (%w)", domain.ErrProcessing, err)
		}
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("出力先を作成できません: %w (%w)", domain.ErrIO, err)
	}
	path := filepath.Join(outputDir, prefix+"_preview.png")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("プレビューを書き込めません: %w (%w)", domain.ErrIO, err)
	}
	return path, nil
}
