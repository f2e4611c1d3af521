package domain

// LocaleContext はロケールに紐づくデザイン上の文化的背景です。
// 静的テーブルから解決されるため、生成後に書き換えない前提です。
type LocaleContext struct {
	Locale    string // BCP 47 形式のロケールコード (例: "ja", "zh-Hans")
	Aesthetic string // プロンプトに埋め込む文化的デザイン指針
	RTL       bool   // 右から左へ読む文字圏かどうか
}

// AppContext は iOS プロジェクトから読み取ったアプリのメタデータです。
// 見つからなかった項目は空のまま保持します（エラーにはしない）。
type AppContext struct {
	AppName     string            // CFBundleName
	DisplayName string            // CFBundleDisplayName
	Description string            // アプリの説明文
	Category    string            // LSApplicationCategoryType
	Strings     map[string]string // Localizable.strings の内容
	Locale      LocaleContext
}

// BestName は表示名 > バンドル名 > フォールバックの優先順で名前を返します。
func (c AppContext) BestName(fallback string) string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	if c.AppName != "" {
		return c.AppName
	}
	return fallback
}

// IconRequest は単一のアイコンセット生成要求です。
type IconRequest struct {
	AppName        string
	GradientTop    string // グラデーション上端の色 (hex)
	GradientBottom string // グラデーション下端の色 (hex)
	Style          string
	Model          string
	Description    string
	Elements       []string // アイコンに含める視覚要素
	Audience       string
	Locale         string
	CulturalStyle  string // 文化的スタイルの明示的な上書き
	ProjectPath    string // ローカライズ文脈を読む iOS プロジェクト（任意）
	Additional     string // 追加要求のフリーテキスト
	ReferenceURL   string // 参考画像の URL（任意）
	Seed           *int64
	OutputDir      string
}

// GenerationRequest はバックエンドへ渡すワイヤレベルの生成要求です。
type GenerationRequest struct {
	Prompt       string
	Model        string
	Size         string // "1024x1024" 形式。空の場合はバックエンド既定
	ReferenceURL string
	Seed         *int64
}

// GeneratedImage は生成された画像データとそのメタデータです。
type GeneratedImage struct {
	Data          []byte
	MimeType      string
	Model         string
	Prompt        string
	RevisedPrompt string // バックエンドがプロンプトを書き換えた場合のみ
	UsedSeed      int64  // 実際に使われたシード。未指定時は 0
}
