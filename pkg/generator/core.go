// Package generator は画像生成バックエンドへの窓口を提供します。
// モデル名に応じて Gemini / OpenAI / オフライン描画へ振り分け、
// 参照画像の取得と検証もここで行います。
package generator

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/shouni/go-http-kit/pkg/httpkit"
	"github.com/shouni/go-remote-io/pkg/remoteio"
	"google.golang.org/genai"

	"github.com/shouni/ios-icon-kit/pkg/domain"
	"github.com/shouni/ios-icon-kit/pkg/imgutil"
)

// ImageCore は参照画像の取得・変換とレスポンス解析を担う基盤コンポーネントです。
// キャッシュは持ちません。毎回取得し直します。
type ImageCore struct {
	reader     remoteio.InputReader
	httpClient httpkit.ClientInterface
}

// NewImageCore は依存関係を注入して ImageCore を初期化します。
func NewImageCore(reader remoteio.InputReader, httpClient httpkit.ClientInterface) (*ImageCore, error) {
	// どの依存関係が不足しているか具体的に示す
	if reader == nil {
		return nil, fmt.Errorf("reader is required")
	}
	if httpClient == nil {
		return nil, fmt.Errorf("httpClient is required")
	}

	return &ImageCore{
		reader:     reader,
		httpClient: httpClient,
	}, nil
}

// PrepareImagePart は参照画像 URL を genai.Part に変換します。
// 取得や変換に失敗した場合は nil を返し、テキストのみで続行させます。
func (c *ImageCore) PrepareImagePart(ctx context.Context, rawURL string) *genai.Part {
	data, err := c.FetchImageData(ctx, rawURL)
	if err != nil {
		slog.WarnContext(ctx, "参照画像のダウンロードに失敗しました。テキストのみで続行します", "url", rawURL, "error", err)
		return nil
	}

	finalData := data
	if UseImageCompression {
		if compressed, err := imgutil.CompressToJPEG(data, ImageCompressionQuality); err == nil && len(compressed) < len(data) {
			finalData = compressed
		}
	}

	return c.ToPart(ctx, finalData)
}

// FetchImageData は参照画像のバイト列を取得します。
// gs:// は InputReader 経由、http(s) は SSRF 検証を通した上で HTTP 経由で読みます。
func (c *ImageCore) FetchImageData(ctx context.Context, rawURL string) ([]byte, error) {
	if strings.HasPrefix(rawURL, "gs://") {
		rc, err := c.reader.Open(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("gs:// の読み込みに失敗しました: %w", err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}

	if safe, err := IsSafeURL(rawURL); err != nil || !safe {
		return nil, fmt.Errorf("安全ではないURLが指定されました: %w", err)
	}
	return c.httpClient.FetchBytes(ctx, rawURL)
}

// ToPart はバイト列を genai.Part (InlineData) に変換します。
// MIME タイプが画像でない場合は nil を返します。
func (c *ImageCore) ToPart(ctx context.Context, data []byte) *genai.Part {
	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		slog.WarnContext(ctx, "MIMEタイプが画像ではないためPartに変換できませんでした", "detected_mime_type", mimeType)
		return nil
	}
	return &genai.Part{
		InlineData: &genai.Blob{
			MIMEType: mimeType,
			Data:     data,
		},
	}
}

// ParseToResponse は Gemini のレスポンスを解析して ImageOutput に変換します。
func (c *ImageCore) ParseToResponse(resp *gemini.Response, seed int64) (*ImageOutput, error) {
	if resp == nil || resp.RawResponse == nil || len(resp.RawResponse.Candidates) == 0 {
		return nil, fmt.Errorf("Geminiからの有効な応答がありませんでした: %w", domain.ErrGeneration)
	}

	// 現在の仕様では、Geminiからの最初の候補 (Candidate) のみを利用する。
	candidate := resp.RawResponse.Candidates[0]

	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return &ImageOutput{
					Data:     part.InlineData.Data,
					MimeType: part.InlineData.MIMEType,
					UsedSeed: seed,
				}, nil
			}
		}
	}

	// 安全フィルター等によるブロックの確認
	if candidate.FinishReason != genai.FinishReasonUnspecified && candidate.FinishReason != genai.FinishReasonStop {
		return nil, fmt.Errorf("画像生成が異常終了しました (FinishReason: %s): %w", candidate.FinishReason, domain.ErrContentRejected)
	}

	return nil, fmt.Errorf("画像データが見つかりませんでした: %w", domain.ErrGeneration)
}
