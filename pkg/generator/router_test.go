package generator

import (
	"context"
	"errors"
	"testing"

	"github.com/shouni/ios-icon-kit/pkg/domain"
)

// stubGenerator は振り分け先の呼び出しを記録するだけのバックエンドなのだ。
type stubGenerator struct {
	called bool
	out    *domain.GeneratedImage
	err    error
}

func (s *stubGenerator) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GeneratedImage, error) {
	s.called = true
	return s.out, s.err
}

func TestFamilyOf(t *testing.T) {
	tests := []struct {
		model   string
		want    Family
		wantErr bool
	}{
		{"", FamilyOpenAI, false}, // 既定モデルは dalle-3
		{"dalle-3", FamilyOpenAI, false},
		{"DALL-E-3", FamilyOpenAI, false},
		{"dalle-2", FamilyOpenAI, false},
		{"gpt-image-1", FamilyOpenAI, false},
		{"gemini", FamilyGemini, false},
		{"gemini-2.5-flash-image", FamilyGemini, false},
		{"imagen-3.0", FamilyGemini, false},
		{"offline", FamilyOffline, false},
		{"stable-diffusion", "", true},
	}

	for _, tt := range tests {
		name := tt.model
		if name == "" {
			name = "(未指定)"
		}
		t.Run(name, func(t *testing.T) {
			got, err := FamilyOf(tt.model)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FamilyOf(%q) error = %v, wantErr %v", tt.model, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FamilyOf(%q) = %q, want %q", tt.model, got, tt.want)
			}
		})
	}
}

func TestRouter_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("モデル名に応じて登録済みバックエンドへ委譲するのだ", func(t *testing.T) {
		openaiStub := &stubGenerator{out: &domain.GeneratedImage{Data: []byte("dalle")}}
		geminiStub := &stubGenerator{out: &domain.GeneratedImage{Data: []byte("gemini")}}

		r := NewRouter()
		r.Register(FamilyOpenAI, openaiStub)
		r.Register(FamilyGemini, geminiStub)

		img, err := r.Generate(ctx, domain.GenerationRequest{Prompt: "p", Model: "gemini-2.5-flash-image"})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(img.Data) != "gemini" {
			t.Errorf("request was routed to the wrong backend: %q", img.Data)
		}
		if openaiStub.called {
			t.Error("openai backend should not be called")
		}
		if !geminiStub.called {
			t.Error("gemini backend should be called")
		}
	})

	t.Run("未知のモデル名は生成エラーになるのだ", func(t *testing.T) {
		r := NewRouter()
		r.Register(FamilyOpenAI, &stubGenerator{})

		_, err := r.Generate(ctx, domain.GenerationRequest{Prompt: "p", Model: "stable-diffusion"})

		if !errors.Is(err, domain.ErrGeneration) {
			t.Errorf("expected generation error, got %v", err)
		}
	})

	t.Run("未登録の系統は設定エラーになるのだ", func(t *testing.T) {
		r := NewRouter()
		r.Register(FamilyOpenAI, &stubGenerator{})

		_, err := r.Generate(ctx, domain.GenerationRequest{Prompt: "p", Model: "gemini-2.5-flash-image"})

		if !errors.Is(err, domain.ErrConfiguration) {
			t.Errorf("expected configuration error, got %v", err)
		}
	})

	t.Run("nil 登録は割り当てを外すのだ", func(t *testing.T) {
		stub := &stubGenerator{out: &domain.GeneratedImage{}}
		r := NewRouter()
		r.Register(FamilyOpenAI, stub)
		r.Register(FamilyOpenAI, nil)

		_, err := r.Generate(ctx, domain.GenerationRequest{Prompt: "p", Model: "dalle-3"})

		if !errors.Is(err, domain.ErrConfiguration) {
			t.Errorf("expected configuration error after unregister, got %v", err)
		}
	})
}
