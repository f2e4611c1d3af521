// Package culture はロケールコードを文化的デザイン指針へ解決します。
// 解決は静的テーブルに対する BCP 47 マッチングで行い、失敗しても
// 必ず既定のコンテキストへフォールバックします。
package culture

import (
	"golang.org/x/text/language"

	"github.com/shouni/ios-icon-kit/pkg/domain"
)

// DefaultLocale は未知のロケールに適用される既定ロケールです。
const DefaultLocale = "en"

// ロケールごとのデザイン指針テーブル。
// 先頭の "en" がフォールバック先となるため、順序に意味があります。
var contexts = []domain.LocaleContext{
	{Locale: "en", Aesthetic: "American/International design aesthetic"},
	{Locale: "en-US", Aesthetic: "American design with Silicon Valley tech aesthetic"},
	{Locale: "en-GB", Aesthetic: "British design with elegant minimalism"},
	{Locale: "ja", Aesthetic: "Japanese design with attention to harmony and minimalism (wa aesthetic)"},
	{Locale: "ko", Aesthetic: "Korean modern K-design aesthetic with soft gradients"},
	{Locale: "zh-Hans", Aesthetic: "Simplified Chinese modern style with contemporary elements"},
	{Locale: "zh-Hant", Aesthetic: "Traditional Chinese elegant style with cultural depth"},
	{Locale: "es", Aesthetic: "Spanish warm and inviting design"},
	{Locale: "es-MX", Aesthetic: "Mexican vibrant and colorful style"},
	{Locale: "fr", Aesthetic: "French elegant and sophisticated design"},
	{Locale: "de", Aesthetic: "German precise and functional design (Bauhaus influence)"},
	{Locale: "it", Aesthetic: "Italian stylish and artistic design"},
	{Locale: "pt-BR", Aesthetic: "Brazilian lively and energetic design"},
	{Locale: "ar", Aesthetic: "Arabic elegant design with right-to-left consideration", RTL: true},
	{Locale: "ru", Aesthetic: "Russian bold and impactful design"},
	{Locale: "nl", Aesthetic: "Dutch clean and practical design"},
	{Locale: "sv", Aesthetic: "Swedish minimalist Scandinavian design"},
	{Locale: "da", Aesthetic: "Danish hygge-inspired cozy design"},
	{Locale: "fi", Aesthetic: "Finnish functional Nordic design"},
	{Locale: "no", Aesthetic: "Norwegian nature-inspired minimalism"},
	{Locale: "pl", Aesthetic: "Polish traditional meets modern design"},
	{Locale: "tr", Aesthetic: "Turkish blend of Eastern and Western aesthetics"},
	{Locale: "he", Aesthetic: "Hebrew modern design with right-to-left layout", RTL: true},
	{Locale: "hi", Aesthetic: "Hindi vibrant Indian aesthetic"},
	{Locale: "th", Aesthetic: "Thai ornate and detailed design"},
	{Locale: "vi", Aesthetic: "Vietnamese balanced and harmonious design"},
}

// Resolver はロケールコードから LocaleContext を引くリゾルバです。
type Resolver struct {
	matcher language.Matcher
	entries []domain.LocaleContext
}

// NewResolver は静的テーブルからリゾルバを構築します。
func NewResolver() *Resolver {
	tags := make([]language.Tag, 0, len(contexts))
	entries := make([]domain.LocaleContext, 0, len(contexts))
	for _, c := range contexts {
		tag, err := language.Parse(c.Locale)
		if err != nil {
			// テーブルは静的なので起こらないはずだが、壊れた行は読み飛ばす
			continue
		}
		tags = append(tags, tag)
		entries = append(entries, c)
	}
	return &Resolver{
		matcher: language.NewMatcher(tags),
		entries: entries,
	}
}

// Resolve はロケールコードを文化コンテキストへ解決します。
// 未知・不正なコードでも失敗せず、既定コンテキストを返します。
// "ja-JP" のような地域付きコードは BCP 47 マッチングで "ja" に解決されます。
func (r *Resolver) Resolve(code string) domain.LocaleContext {
	if code == "" {
		return r.entries[0]
	}
	tag, err := language.Parse(code)
	if err != nil {
		return r.entries[0]
	}
	// マッチしなかった場合も matcher は先頭 (= 既定) のインデックスを返す
	_, idx, _ := r.matcher.Match(tag)
	return r.entries[idx]
}

// Known はテーブルに登録済みの全コンテキストを返します。
func (r *Resolver) Known() []domain.LocaleContext {
	out := make([]domain.LocaleContext, len(r.entries))
	copy(out, r.entries)
	return out
}
