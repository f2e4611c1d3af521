package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/shouni/ios-icon-kit/pkg/culture"
	"github.com/shouni/ios-icon-kit/pkg/domain"
	"github.com/shouni/ios-icon-kit/pkg/generator"
	"github.com/shouni/ios-icon-kit/pkg/icongen"
	"github.com/shouni/ios-icon-kit/pkg/iconset"
	"github.com/shouni/ios-icon-kit/pkg/lproj"
	"github.com/shouni/ios-icon-kit/pkg/prompts"
)

const (
	envOpenAIKey = "OPENAI_API_KEY"
	envGeminiKey = "GEMINI_API_KEY"

	referenceFetchTimeout = 60 * time.Second
)

// buildIconGenerator はモデルに応じたバックエンドを構成してフロー全体を組み立てます。
func buildIconGenerator(ctx context.Context, model string, opts icongen.Options) (*icongen.IconGenerator, error) {
	backend, err := buildRouter(ctx, model)
	if err != nil {
		return nil, err
	}
	return icongen.NewIconGenerator(
		culture.NewResolver(),
		lproj.NewReader(),
		prompts.NewBuilder(),
		backend,
		iconset.NewBuilder(),
		opts,
	)
}

// buildRouter は選択されたモデルの系統に必要なバックエンドだけを登録します。
// 資格情報が無い場合はネットワークに触れる前に設定エラーで止めます。
func buildRouter(ctx context.Context, model string) (*generator.Router, error) {
	family, err := generator.FamilyOf(model)
	if err != nil {
		return nil, err
	}

	router := generator.NewRouter()

	switch family {
	case generator.FamilyOpenAI:
		key := os.Getenv(envOpenAIKey)
		if key == "" {
			return nil, fmt.Errorf("%s が設定されていません (モデル %s に必要): %w", envOpenAIKey, model, domain.ErrConfiguration)
		}
		gen, err := generator.NewOpenAIGenerator(openai.NewClient(key))
		if err != nil {
			return nil, err
		}
		router.Register(generator.FamilyOpenAI, gen)

	case generator.FamilyGemini:
		key := os.Getenv(envGeminiKey)
		if key == "" {
			return nil, fmt.Errorf("%s が設定されていません (モデル %s に必要): %w", envGeminiKey, model, domain.ErrConfiguration)
		}
		aiClient, err := generator.NewGenaiModel(ctx, key)
		if err != nil {
			return nil, err
		}
		core, err := generator.NewImageCore(newLocalReader(), newHTTPFetcher())
		if err != nil {
			return nil, err
		}
		gen, err := generator.NewGeminiGenerator(aiClient, core)
		if err != nil {
			return nil, err
		}
		router.Register(generator.FamilyGemini, gen)

	case generator.FamilyOffline:
		gen, err := generator.NewGradientGenerator(icongen.DefaultGradientTop, icongen.DefaultGradientBottom)
		if err != nil {
			return nil, err
		}
		router.Register(generator.FamilyOffline, gen)
	}

	return router, nil
}

// httpFetcher は参照画像取得用の最小HTTPクライアントです。
type httpFetcher struct {
	client *http.Client
}

func newHTTPFetcher() *httpFetcher {
	return &httpFetcher{client: &http.Client{Timeout: referenceFetchTimeout}}
}

func (f *httpFetcher) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

// localReader はローカルパスと file:// だけを扱う入力リーダーです。
// gs:// はこの CLI では構成していないため設定エラーにします。
type localReader struct{}

func newLocalReader() *localReader {
	return &localReader{}
}

func (r *localReader) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	if strings.HasPrefix(uri, "gs://") {
		return nil, fmt.Errorf("gs:// の読み込みにはGCSの構成が必要です: %w", domain.ErrConfiguration)
	}
	return os.Open(strings.TrimPrefix(uri, "file://"))
}

func (r *localReader) List(ctx context.Context, uri string, fn func(string) error) error {
	dir := strings.TrimPrefix(uri, "file://")
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := fn(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}
