package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shouni/ios-icon-kit/pkg/domain"
)

func weatherRequest() domain.IconRequest {
	return domain.IconRequest{
		AppName:        "Weather",
		GradientTop:    "#1E3A8A",
		GradientBottom: "#60A5FA",
		Style:          "minimalist",
		Model:          "dalle-3",
		Locale:         "en",
	}
}

func TestBuilder_Build_TechnicalHeader(t *testing.T) {
	b := NewBuilder()

	t.Run("ヘッダーと技術仕様が常に含まれる", func(t *testing.T) {
		got := b.Build(weatherRequest(), domain.AppContext{})

		wantHead := `Create a minimalist iOS app icon for "Weather"

TECHNICAL SPECIFICATIONS:
- Size: 1024x1024 pixel perfect square
- Background: Smooth vertical gradient from #1E3A8A (top) to #60A5FA (bottom)
- Format: Full bleed to edges, no rounded corners (iOS adds these automatically)
- Style: minimalist design with no 3D effects or excessive shadows
- Quality: Professional App Store ready icon
`
		assert.True(t, strings.HasPrefix(got, wantHead), "プロンプト先頭部が期待形式と異なる:\n%s", got)
	})

	t.Run("スタイル未指定時はminimalistになる", func(t *testing.T) {
		req := weatherRequest()
		req.Style = ""
		got := b.Build(req, domain.AppContext{})
		assert.Contains(t, got, "Create a minimalist iOS app icon")
	})

	t.Run("未知のスタイルタグは検証されずそのまま埋め込まれる", func(t *testing.T) {
		req := weatherRequest()
		req.Style = "vaporwave-brutalist"
		got := b.Build(req, domain.AppContext{})
		assert.Contains(t, got, "Create a vaporwave-brutalist iOS app icon")
		assert.Contains(t, got, "- Style: vaporwave-brutalist design")
	})
}

func TestBuilder_Build_AppContext(t *testing.T) {
	b := NewBuilder()

	t.Run("説明文がなければAPP CONTEXTは出力されない", func(t *testing.T) {
		got := b.Build(weatherRequest(), domain.AppContext{})
		assert.NotContains(t, got, "APP CONTEXT:")
	})

	t.Run("リクエストの説明文が読み取った説明文より優先される", func(t *testing.T) {
		req := weatherRequest()
		req.Description = "hourly forecasts at a glance"
		app := domain.AppContext{Description: "from project"}
		got := b.Build(req, app)
		assert.Contains(t, got, "APP CONTEXT:\n- Purpose: hourly forecasts at a glance")
		assert.NotContains(t, got, "from project")
	})

	t.Run("対象ユーザーとカテゴリの行", func(t *testing.T) {
		req := weatherRequest()
		req.Audience = "commuters"
		app := domain.AppContext{Category: "public.app-category.weather"}
		got := b.Build(req, app)
		assert.Contains(t, got, "- Target Audience: commuters")
		assert.Contains(t, got, "- Category: public.app-category.weather")
	})
}

func TestBuilder_Build_Localization(t *testing.T) {
	b := NewBuilder()

	t.Run("ロケールと文化的スタイルの行が含まれる", func(t *testing.T) {
		req := weatherRequest()
		req.Locale = "ja"
		app := domain.AppContext{Locale: domain.LocaleContext{
			Locale:    "ja",
			Aesthetic: "Japanese design with attention to harmony and minimalism (wa aesthetic)",
		}}
		got := b.Build(req, app)
		assert.Contains(t, got, "LOCALIZATION:\n- Locale: ja")
		assert.Contains(t, got, "- Cultural Style: Japanese design with attention to harmony and minimalism (wa aesthetic)")
	})

	t.Run("文化的スタイルの明示指定はテーブル値より優先される", func(t *testing.T) {
		req := weatherRequest()
		req.CulturalStyle = "ukiyo-e woodblock motifs"
		app := domain.AppContext{Locale: domain.LocaleContext{Locale: "ja", Aesthetic: "table value"}}
		got := b.Build(req, app)
		assert.Contains(t, got, "- Cultural Style: ukiyo-e woodblock motifs")
		assert.NotContains(t, got, "table value")
	})

	t.Run("ローカライズ文字列は辞書順で最大5件まで引用される", func(t *testing.T) {
		app := domain.AppContext{Strings: map[string]string{
			"a_key": "1", "b_key": "2", "c_key": "3", "d_key": "4", "e_key": "5", "f_key": "6",
		}}
		got := b.Build(weatherRequest(), app)
		assert.Contains(t, got, "- App Context (from localization):")
		assert.Contains(t, got, "  • a_key: 1")
		assert.Contains(t, got, "  • e_key: 5")
		assert.NotContains(t, got, "f_key", "6件目は引用されない")
	})

	t.Run("RTLロケールではレイアウト方向の行が加わる", func(t *testing.T) {
		app := domain.AppContext{Locale: domain.LocaleContext{Locale: "ar", Aesthetic: "x", RTL: true}}
		got := b.Build(weatherRequest(), app)
		assert.Contains(t, got, "- Layout direction: right-to-left script")
	})
}

func TestBuilder_Build_ElementsAndText(t *testing.T) {
	b := NewBuilder()

	t.Run("視覚要素はカンマ区切りで列挙される", func(t *testing.T) {
		req := weatherRequest()
		req.Elements = []string{"sun", "cloud", "umbrella"}
		got := b.Build(req, domain.AppContext{})
		assert.Contains(t, got, "VISUAL ELEMENTS:\nInclude these elements in the design: sun, cloud, umbrella")
	})

	t.Run("ローカライズ済み表示名がアプリ名より優先されるのだ", func(t *testing.T) {
		app := domain.AppContext{DisplayName: "お天気"}
		got := b.Build(weatherRequest(), app)
		assert.Contains(t, got, `Create a minimalist iOS app icon for "お天気"`)
		assert.Contains(t, got, "- Primary text: 'お天気'")
		assert.NotContains(t, got, "'Weather'")
	})

	t.Run("追加要求は末尾に付く", func(t *testing.T) {
		req := weatherRequest()
		req.Additional = "avoid any text glyphs"
		got := b.Build(req, domain.AppContext{})
		assert.True(t, strings.HasSuffix(got, "ADDITIONAL REQUIREMENTS:\navoid any text glyphs"))
	})
}
