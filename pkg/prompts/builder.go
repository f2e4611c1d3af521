// Package prompts はアイコン生成用のプロンプト文を組み立てます。
// 純粋な文字列合成のみで、外部呼び出しや失敗モードを持ちません。
package prompts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shouni/ios-icon-kit/pkg/domain"
)

const (
	// DefaultStyle はスタイル未指定時に適用されるデザインスタイルです。
	DefaultStyle = "minimalist"

	// ローカライズ文字列をプロンプトへ引用する上限件数
	maxLocalizedStrings = 5
)

// Builder は IconRequest と AppContext からプロンプトを合成するビルダーです。
type Builder struct{}

// NewBuilder は Builder を初期化します。
func NewBuilder() *Builder {
	return &Builder{}
}

// Build はプロンプト全文を組み立てます。
// 未知のスタイルタグは検証せずそのまま埋め込みます（妥当性の判断はバックエンド側）。
// ローカライズ済みの表示名があればアプリ名より優先されます。
func (b *Builder) Build(req domain.IconRequest, app domain.AppContext) string {
	name := app.BestName(req.AppName)

	style := req.Style
	if style == "" {
		style = DefaultStyle
	}

	locale := req.Locale
	if locale == "" {
		locale = app.Locale.Locale
	}
	if locale == "" {
		locale = "en"
	}

	var p strings.Builder
	fmt.Fprintf(&p, "Create a %s iOS app icon for %q", style, name)
	p.WriteString("\n\nTECHNICAL SPECIFICATIONS:")
	p.WriteString("\n- Size: 1024x1024 pixel perfect square")
	fmt.Fprintf(&p, "\n- Background: Smooth vertical gradient from %s (top) to %s (bottom)", req.GradientTop, req.GradientBottom)
	p.WriteString("\n- Format: Full bleed to edges, no rounded corners (iOS adds these automatically)")
	fmt.Fprintf(&p, "\n- Style: %s design with no 3D effects or excessive shadows", style)
	p.WriteString("\n- Quality: Professional App Store ready icon")

	// アプリの文脈。リクエスト側の説明文が優先で、なければ読み取った説明文を使う
	description := req.Description
	if description == "" {
		description = app.Description
	}
	if description != "" || req.Audience != "" || app.Category != "" {
		p.WriteString("\n\nAPP CONTEXT:")
		if description != "" {
			fmt.Fprintf(&p, "\n- Purpose: %s", description)
		}
		if req.Audience != "" {
			fmt.Fprintf(&p, "\n- Target Audience: %s", req.Audience)
		}
		if app.Category != "" {
			fmt.Fprintf(&p, "\n- Category: %s", app.Category)
		}
	}

	// ロケールと文化的スタイル
	p.WriteString("\n\nLOCALIZATION:")
	fmt.Fprintf(&p, "\n- Locale: %s", locale)
	switch {
	case req.CulturalStyle != "":
		fmt.Fprintf(&p, "\n- Cultural Style: %s", req.CulturalStyle)
	case app.Locale.Aesthetic != "":
		fmt.Fprintf(&p, "\n- Cultural Style: %s", app.Locale.Aesthetic)
	}

	if len(app.Strings) > 0 {
		p.WriteString("\n- App Context (from localization):")
		for _, kv := range excerptStrings(app.Strings) {
			fmt.Fprintf(&p, "\n  • %s: %s", kv[0], kv[1])
		}
	}

	if len(req.Elements) > 0 {
		fmt.Fprintf(&p, "\n\nVISUAL ELEMENTS:\nInclude these elements in the design: %s", strings.Join(req.Elements, ", "))
	}

	p.WriteString("\n\nTEXT DISPLAY:")
	fmt.Fprintf(&p, "\n- Primary text: '%s'", name)
	p.WriteString("\n- Include text only if it enhances the design and remains legible at small sizes")
	p.WriteString("\n- For non-Latin scripts, ensure proper character rendering")
	if app.Locale.RTL {
		p.WriteString("\n- Layout direction: right-to-left script")
	}

	if req.Additional != "" {
		fmt.Fprintf(&p, "\n\nADDITIONAL REQUIREMENTS:\n%s", req.Additional)
	}

	return p.String()
}

// excerptStrings はローカライズ文字列をキーの辞書順で上限件数まで切り出します。
// マップの列挙順に依存させないための並べ替えです。
func excerptStrings(m map[string]string) [][2]string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > maxLocalizedStrings {
		keys = keys[:maxLocalizedStrings]
	}

	out := make([][2]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, [2]string{k, m[k]})
	}
	return out
}
