// Package iconset は Apple の Asset Catalog 形式 (.appiconset) で
// iOS アイコンセットを構築・検証します。
package iconset

import (
	"math"
	"strconv"
)

// SizeSpec は iOS アイコン1枚分のサイズ仕様です。
// ピクセル寸法はポイント数×倍率で決まります (83.5@2x = 167px)。
type SizeSpec struct {
	Filename string  // セット内の固定ファイル名
	Points   float64 // ポイントサイズ
	Scale    int     // 倍率 (1x/2x/3x)
	Idiom    string  // iphone / ipad / ios-marketing
}

// Pixels は出力ビットマップの一辺のピクセル数を返します。
func (s SizeSpec) Pixels() int {
	return int(math.Round(s.Points * float64(s.Scale)))
}

// SizeString は Contents.json の size 表記 ("20x20", "83.5x83.5") を返します。
func (s SizeSpec) SizeString() string {
	p := strconv.FormatFloat(s.Points, 'f', -1, 64)
	return p + "x" + p
}

// ScaleString は Contents.json の scale 表記 ("2x") を返します。
func (s SizeSpec) ScaleString() string {
	return strconv.Itoa(s.Scale) + "x"
}

// iOS が要求する固定12サイズのテーブル。
// ファイル名はセットのプレフィックスに関わらず一定です。
var iosSizes = []SizeSpec{
	{Filename: "AppIcon-20@2x.png", Points: 20, Scale: 2, Idiom: "iphone"},
	{Filename: "AppIcon-20@3x.png", Points: 20, Scale: 3, Idiom: "iphone"},
	{Filename: "AppIcon-29@2x.png", Points: 29, Scale: 2, Idiom: "iphone"},
	{Filename: "AppIcon-29@3x.png", Points: 29, Scale: 3, Idiom: "iphone"},
	{Filename: "AppIcon-40@2x.png", Points: 40, Scale: 2, Idiom: "iphone"},
	{Filename: "AppIcon-40@3x.png", Points: 40, Scale: 3, Idiom: "iphone"},
	{Filename: "AppIcon-60@2x.png", Points: 60, Scale: 2, Idiom: "iphone"},
	{Filename: "AppIcon-60@3x.png", Points: 60, Scale: 3, Idiom: "iphone"},
	{Filename: "AppIcon-76.png", Points: 76, Scale: 1, Idiom: "ipad"},
	{Filename: "AppIcon-76@2x.png", Points: 76, Scale: 2, Idiom: "ipad"},
	{Filename: "AppIcon-83.5@2x.png", Points: 83.5, Scale: 2, Idiom: "ipad"},
	{Filename: "AppIcon-1024.png", Points: 1024, Scale: 1, Idiom: "ios-marketing"},
}

// Sizes は iOS アイコンセットの全サイズ仕様を返します。
func Sizes() []SizeSpec {
	out := make([]SizeSpec, len(iosSizes))
	copy(out, iosSizes)
	return out
}

// PrefixForLocale はロケールに応じたセット名プレフィックスを返します。
// 既定ロケール (en) だけは無印の "AppIcon" になります。
func PrefixForLocale(locale string) string {
	if locale == "" || locale == "en" {
		return "AppIcon"
	}
	return "AppIcon-" + locale
}

// SetDirName は prefix に対応するセットディレクトリ名を返します。
func SetDirName(prefix string) string {
	return prefix + ".appiconset"
}
