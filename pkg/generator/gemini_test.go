package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"

	"github.com/shouni/ios-icon-kit/pkg/domain"
)

func newTestGeminiGenerator(ai *mockAIClient, reader *mockReader, httpMock *mockHTTPClient) *GeminiGenerator {
	core, _ := NewImageCore(reader, httpMock)
	gen, _ := NewGeminiGenerator(ai, core)
	return gen
}

func TestGeminiGenerator_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("成功: プロンプトとシードがAIクライアントに渡されるのだ", func(t *testing.T) {
		var seedVal int64 = 777
		req := domain.GenerationRequest{
			Prompt: "Create a minimalist iOS app icon for \"ずんだ天気\"",
			Model:  "gemini-2.5-flash-image",
			Seed:   &seedVal,
		}

		ai := &mockAIClient{
			generateWithPartsFunc: func(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
				if parts[0].Text != req.Prompt {
					t.Errorf("prompt mismatch: got %s", parts[0].Text)
				}
				if opts.Seed == nil || *opts.Seed != int32(seedVal) {
					t.Errorf("seed conversion failed: got %v", opts.Seed)
				}
				if opts.AspectRatio != "1:1" {
					t.Errorf("aspect ratio should be 1:1, got %s", opts.AspectRatio)
				}
				return inlineImageResponse("image/png", []byte("icon-bytes")), nil
			},
		}

		gen := newTestGeminiGenerator(ai, &mockReader{}, &mockHTTPClient{})
		img, err := gen.Generate(ctx, req)

		if err != nil {
			t.Fatalf("error should be nil: %v", err)
		}
		if string(img.Data) != "icon-bytes" {
			t.Errorf("unexpected data: %q", img.Data)
		}
		if img.Model != req.Model {
			t.Errorf("model should be carried over: got %s", img.Model)
		}
		if img.UsedSeed != seedVal {
			t.Errorf("expected seed %d, got %d", seedVal, img.UsedSeed)
		}
	})

	t.Run("成功: 参照画像が取得できた場合はパーツに追加されるのだ", func(t *testing.T) {
		ai := &mockAIClient{
			generateWithPartsFunc: func(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
				// テキスト(1) + 画像(1) = 2パーツあるはずなのだ
				if len(parts) != 2 {
					t.Errorf("expected 2 parts, got %d", len(parts))
				}
				return inlineImageResponse("image/png", []byte("ok")), nil
			},
		}
		reader := &mockReader{data: pngStub}

		gen := newTestGeminiGenerator(ai, reader, &mockHTTPClient{})
		_, err := gen.Generate(ctx, domain.GenerationRequest{
			Prompt:       "対決シーン風のアイコン",
			ReferenceURL: "gs://my-bucket/ref.png",
		})

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("劣化運転: 参照画像の取得に失敗してもテキストのみで続行するのだ", func(t *testing.T) {
		ai := &mockAIClient{
			generateWithPartsFunc: func(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
				if len(parts) != 1 {
					t.Errorf("expected text-only parts, got %d", len(parts))
				}
				return inlineImageResponse("image/png", []byte("ok")), nil
			},
		}
		reader := &mockReader{err: errors.New("object not found")}

		gen := newTestGeminiGenerator(ai, reader, &mockHTTPClient{})
		_, err := gen.Generate(ctx, domain.GenerationRequest{
			Prompt:       "それでも生成するのだ",
			ReferenceURL: "gs://my-bucket/missing.png",
		})

		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("既定: モデル名 gemini は既定モデルへ解決されるのだ", func(t *testing.T) {
		ai := &mockAIClient{}

		gen := newTestGeminiGenerator(ai, &mockReader{}, &mockHTTPClient{})
		_, err := gen.Generate(ctx, domain.GenerationRequest{Prompt: "p", Model: "gemini"})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ai.lastModel != DefaultGeminiModel {
			t.Errorf("expected %s, got %s", DefaultGeminiModel, ai.lastModel)
		}
	})

	t.Run("失敗: レート制限エラーは種別付きで返るのだ", func(t *testing.T) {
		ai := &mockAIClient{
			generateWithPartsFunc: func(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
				return nil, errors.New("googleapi: Error 429: RESOURCE_EXHAUSTED")
			},
		}

		gen := newTestGeminiGenerator(ai, &mockReader{}, &mockHTTPClient{})
		_, err := gen.Generate(ctx, domain.GenerationRequest{Prompt: "p"})

		if !errors.Is(err, domain.ErrRateLimited) {
			t.Errorf("expected rate limit error, got %v", err)
		}
		if !errors.Is(err, domain.ErrGeneration) {
			t.Errorf("rate limit should also be a generation error: %v", err)
		}
	})

	t.Run("失敗: 認証エラーは設定エラーとしても判定できるのだ", func(t *testing.T) {
		ai := &mockAIClient{
			generateWithPartsFunc: func(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
				return nil, errors.New("rpc error: code = Unauthenticated desc = API key not valid")
			},
		}

		gen := newTestGeminiGenerator(ai, &mockReader{}, &mockHTTPClient{})
		_, err := gen.Generate(ctx, domain.GenerationRequest{Prompt: "p"})

		if !errors.Is(err, domain.ErrAuthFailure) {
			t.Errorf("expected auth failure, got %v", err)
		}
		if !errors.Is(err, domain.ErrConfiguration) {
			t.Errorf("auth failure should be detectable as configuration error: %v", err)
		}
	})
}

func TestNewGeminiGenerator(t *testing.T) {
	t.Run("nilチェック: 依存関係が足りない場合はエラーを返すのだ", func(t *testing.T) {
		if _, err := NewGeminiGenerator(nil, nil); err == nil {
			t.Error("expected error for nil dependencies")
		}

		core, _ := NewImageCore(&mockReader{}, &mockHTTPClient{})
		if _, err := NewGeminiGenerator(nil, core); err == nil {
			t.Error("expected error for nil aiClient")
		}
	})
}

func TestClassifyGeminiError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"タイムアウト", context.DeadlineExceeded, domain.ErrTimeout},
		{"リソース枯渇", errors.New("RESOURCE_EXHAUSTED: quota exceeded"), domain.ErrRateLimited},
		{"権限不足", errors.New("rpc error: code = PermissionDenied desc = PERMISSION_DENIED"), domain.ErrAuthFailure},
		{"その他", errors.New("boom"), domain.ErrGeneration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyGeminiError(tt.err)
			if !errors.Is(got, tt.want) {
				t.Errorf("classifyGeminiError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}

	t.Run("一般エラーは設定エラー扱いにならないのだ", func(t *testing.T) {
		got := classifyGeminiError(errors.New("boom"))
		if errors.Is(got, domain.ErrConfiguration) {
			t.Errorf("plain failure should not map to configuration error: %v", got)
		}
	})
}
