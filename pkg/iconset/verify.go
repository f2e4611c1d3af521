package iconset

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/cenkalti/dominantcolor"

	"github.com/shouni/ios-icon-kit/pkg/domain"
	"github.com/shouni/ios-icon-kit/pkg/imgutil"
)

// Report は既存アイコンセットの検証結果です。
type Report struct {
	Dir         string
	Entries     int      // マニフェストのエントリ数
	Problems    []string // 見つかった不整合
	DominantHex string   // マーケティングアイコンの支配色 (#RRGGBB)
}

// OK は不整合が一つもなかったかどうかを返します。
func (r *Report) OK() bool {
	return len(r.Problems) == 0
}

// Verify は .appiconset ディレクトリをサイズテーブルと突き合わせて検証します。
// 確認するのはマニフェストとファイルの全単射、宣言寸法と実寸法の一致、
// そしてテーブル12エントリの過不足です。
func Verify(dir string) (*Report, error) {
	contents, err := ReadContents(dir)
	if err != nil {
		return nil, err
	}

	report := &Report{Dir: dir, Entries: len(contents.Images)}
	byName := make(map[string]SizeSpec, len(iosSizes))
	for _, s := range iosSizes {
		byName[s.Filename] = s
	}

	seen := make(map[string]bool, len(contents.Images))
	for _, entry := range contents.Images {
		if seen[entry.Filename] {
			report.addf("マニフェストにエントリが重複: %s", entry.Filename)
			continue
		}
		seen[entry.Filename] = true

		spec, ok := byName[entry.Filename]
		if !ok {
			report.addf("サイズテーブルにないエントリ: %s", entry.Filename)
			continue
		}
		if entry.Size != spec.SizeString() || entry.Scale != spec.ScaleString() || entry.Idiom != spec.Idiom {
			report.addf("%s の宣言が不一致: size=%s scale=%s idiom=%s", entry.Filename, entry.Size, entry.Scale, entry.Idiom)
		}

		w, h, err := pngDimensions(filepath.Join(dir, entry.Filename))
		if err != nil {
			report.addf("%s を読めません: %v", entry.Filename, err)
			continue
		}
		if px := spec.Pixels(); w != px || h != px {
			report.addf("%s の実寸法が不一致: %dx%d (期待 %dx%d)", entry.Filename, w, h, px, px)
		}
	}

	for _, s := range iosSizes {
		if !seen[s.Filename] {
			report.addf("マニフェストにエントリがありません: %s", s.Filename)
		}
	}

	// マニフェストが関知しない余分なビットマップも全単射違反
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("ディレクトリを走査できません: %w (%w)", domain.ErrIO, err)
	}
	for _, f := range files {
		name := f.Name()
		if f.IsDir() || !strings.HasSuffix(name, ".png") {
			continue
		}
		if !seen[name] {
			report.addf("マニフェストにないファイル: %s", name)
		}
	}

	report.DominantHex = dominantHex(dir, contents)
	return report, nil
}

func (r *Report) addf(format string, args ...any) {
	r.Problems = append(r.Problems, fmt.Sprintf(format, args...))
}

// pngDimensions はデコードせずにヘッダーから寸法だけを読みます。
func pngDimensions(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, err
	}
	return cfg.Width, cfg.Height, nil
}

// dominantHex はマーケティングアイコンの支配色を求めます。読めない場合は空文字。
func dominantHex(dir string, contents *Contents) string {
	for _, entry := range contents.Images {
		if entry.Idiom != "ios-marketing" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Filename))
		if err != nil {
			return ""
		}
		img, err := imgutil.DecodeImage(data)
		if err != nil {
			return ""
		}
		return dominantcolor.Hex(dominantcolor.Find(img))
	}
	return ""
}
