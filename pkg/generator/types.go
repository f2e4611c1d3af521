package generator

const (
	// 参照画像を添付前に JPEG へ再圧縮するかどうか
	UseImageCompression     = true
	ImageCompressionQuality = 75

	// DefaultSize は全バックエンド共通の既定解像度です。
	DefaultSize = "1024x1024"

	// DefaultModel は利用者がモデルを指定しなかったときの既定です。
	DefaultModel = "dalle-3"

	// DefaultGeminiModel はモデル名 "gemini" だけ指定されたときに使う既定です。
	DefaultGeminiModel = "gemini-2.5-flash-image"

	// ModelOffline はネットワークを使わないグラデーション描画を選択します。
	ModelOffline = "offline"
)

// ImageOutput は Core の内部解析結果
type ImageOutput struct {
	Data     []byte
	MimeType string
	UsedSeed int64
}
