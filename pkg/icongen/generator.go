// Package icongen は単一アイコン生成とプロジェクト一括生成のフローを束ねる
// オーケストレーション層です。ロケール解決、プロジェクト読み取り、
// プロンプト構築、画像生成、アイコンセット構築をこの順で実行します。
package icongen

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"

	"github.com/shouni/ios-icon-kit/pkg/culture"
	"github.com/shouni/ios-icon-kit/pkg/domain"
	"github.com/shouni/ios-icon-kit/pkg/generator"
	"github.com/shouni/ios-icon-kit/pkg/iconset"
	"github.com/shouni/ios-icon-kit/pkg/prompts"
)

const (
	// DefaultGradientTop / Bottom はブランドカラー未指定時の既定グラデーションです。
	DefaultGradientTop    = "#1E3A8A"
	DefaultGradientBottom = "#60A5FA"
)

// ProjectReader は iOS プロジェクトから必要な情報を読み取る操作です。
// lproj.Reader がそのまま満たします。
type ProjectReader interface {
	ListLocales(projectPath string) ([]string, error)
	ReadContext(projectPath, locale string) (*domain.AppContext, error)
}

// Options はフロー全体の挙動を調整します。
type Options struct {
	// FailFast が真の場合、一括生成は最初の失敗で中断します。
	// 偽（既定）の場合は失敗を記録して残りのロケールを続行します。
	FailFast bool
	// WebIcons が真の場合、各セットと一緒に favicon 用 PNG 一式も書き出します。
	WebIcons bool
}

// Result は1ロケール分の生成結果です。
type Result struct {
	Locale   string
	Prefix   string
	Dir      string   // 完成した .appiconset のパス
	Preview  string   // プレビューPNGのパス（書き出せなかった場合は空）
	WebFiles []string // WebIcons 有効時のみ
	Contents *iconset.Contents

	// 生成バックエンドからの付随情報
	Prompt        string
	RevisedPrompt string
	UsedSeed      int64
}

// ProjectReport はプロジェクト一括生成の集計結果です。
type ProjectReport struct {
	ProjectPath string
	Generated   map[string]*Result // ロケール → 成功した結果
	Failed      map[string]error   // ロケール → 失敗理由
}

// OK は全ロケールが成功したかどうかを返します。
func (r *ProjectReport) OK() bool {
	return len(r.Failed) == 0
}

// IconGenerator は各コンポーネントを注入されて全体のフローを実行します。
type IconGenerator struct {
	resolver *culture.Resolver
	reader   ProjectReader
	prompts  *prompts.Builder
	backend  generator.ImageGenerator
	iconset  *iconset.Builder
	opts     Options
}

// NewIconGenerator は依存関係を注入して IconGenerator を初期化します。
func NewIconGenerator(
	resolver *culture.Resolver,
	reader ProjectReader,
	promptBuilder *prompts.Builder,
	backend generator.ImageGenerator,
	setBuilder *iconset.Builder,
	opts Options,
) (*IconGenerator, error) {
	// どの依存関係が不足しているか具体的に示す
	if resolver == nil {
		return nil, fmt.Errorf("resolver is required")
	}
	if reader == nil {
		return nil, fmt.Errorf("reader is required")
	}
	if promptBuilder == nil {
		return nil, fmt.Errorf("promptBuilder is required")
	}
	if backend == nil {
		return nil, fmt.Errorf("backend is required")
	}
	if setBuilder == nil {
		return nil, fmt.Errorf("setBuilder is required")
	}

	return &IconGenerator{
		resolver: resolver,
		reader:   reader,
		prompts:  promptBuilder,
		backend:  backend,
		iconset:  setBuilder,
		opts:     opts,
	}, nil
}

// GenerateIcon は1ロケール分のアイコンセットを生成して書き出します。
// 生成に失敗した場合はファイルを一切書きません。
func (g *IconGenerator) GenerateIcon(ctx context.Context, req domain.IconRequest) (*Result, error) {
	req = normalizeRequest(req)

	app := domain.AppContext{Strings: map[string]string{}}
	if req.ProjectPath != "" {
		read, err := g.reader.ReadContext(req.ProjectPath, req.Locale)
		if err != nil {
			return nil, err
		}
		app = *read
	}
	app.Locale = g.resolver.Resolve(req.Locale)

	prompt := g.prompts.Build(req, app)
	slog.InfoContext(ctx, "アイコン生成を開始します",
		"app", app.BestName(req.AppName), "locale", req.Locale, "model", req.Model)

	img, err := g.backend.Generate(ctx, domain.GenerationRequest{
		Prompt:       prompt,
		Model:        req.Model,
		Size:         generator.DefaultSize,
		ReferenceURL: req.ReferenceURL,
		Seed:         req.Seed,
	})
	if err != nil {
		return nil, fmt.Errorf("画像の生成に失敗しました (locale=%s): %w", req.Locale, err)
	}

	prefix := iconset.PrefixForLocale(req.Locale)
	contents, err := g.iconset.Build(img, req.OutputDir, prefix)
	if err != nil {
		return nil, err
	}

	// プレビューは補助出力なので失敗してもセット自体は有効とする
	preview, err := g.iconset.WritePreview(img, req.OutputDir, prefix)
	if err != nil {
		slog.WarnContext(ctx, "プレビューの書き出しに失敗しました", "prefix", prefix, "error", err)
		preview = ""
	}

	var webFiles []string
	if g.opts.WebIcons {
		webFiles, err = g.iconset.WriteWebIcons(img, req.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("Webアイコンの書き出しに失敗しました: %w", err)
		}
	}

	return &Result{
		Locale:        req.Locale,
		Prefix:        prefix,
		Dir:           filepath.Join(req.OutputDir, iconset.SetDirName(prefix)),
		Preview:       preview,
		WebFiles:      webFiles,
		Contents:      contents,
		Prompt:        prompt,
		RevisedPrompt: img.RevisedPrompt,
		UsedSeed:      img.UsedSeed,
	}, nil
}

// GenerateFromProject はプロジェクトの全ロケールに対してアイコンセットを生成します。
// ロケールコンテナが1つも無い場合は既定ロケールのみ生成します。
func (g *IconGenerator) GenerateFromProject(ctx context.Context, projectPath string, base domain.IconRequest) (*ProjectReport, error) {
	locales, err := g.reader.ListLocales(projectPath)
	if err != nil {
		// パス自体が無い場合は即失敗。コンテナ無しだけを既定ロケールへ落とす
		if errors.Is(err, domain.ErrNotFound) && !errors.Is(err, fs.ErrNotExist) {
			slog.WarnContext(ctx, "ロケールコンテナが見つからないため既定ロケールのみ生成します",
				"project", projectPath, "locale", culture.DefaultLocale)
			locales = []string{culture.DefaultLocale}
		} else {
			return nil, err
		}
	}

	report := &ProjectReport{
		ProjectPath: projectPath,
		Generated:   make(map[string]*Result, len(locales)),
		Failed:      make(map[string]error),
	}

	for _, locale := range locales {
		req := base
		req.Locale = locale
		req.ProjectPath = projectPath

		res, err := g.GenerateIcon(ctx, req)
		if err != nil {
			if g.opts.FailFast {
				return report, fmt.Errorf("ロケール %s で中断しました: %w", locale, err)
			}
			slog.WarnContext(ctx, "ロケールの生成に失敗しました。残りを続行します", "locale", locale, "error", err)
			report.Failed[locale] = err
			continue
		}
		report.Generated[locale] = res
	}

	slog.InfoContext(ctx, "プロジェクト一括生成が完了しました",
		"project", projectPath, "succeeded", len(report.Generated), "failed", len(report.Failed))
	return report, nil
}

// normalizeRequest は省略されたフィールドに既定値を入れます。
func normalizeRequest(req domain.IconRequest) domain.IconRequest {
	if req.Model == "" {
		req.Model = generator.DefaultModel
	}
	if req.GradientTop == "" {
		req.GradientTop = DefaultGradientTop
	}
	if req.GradientBottom == "" {
		req.GradientBottom = DefaultGradientBottom
	}
	if req.OutputDir == "" {
		req.OutputDir = "."
	}
	return req
}
