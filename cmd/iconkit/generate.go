package main

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"

	"github.com/shouni/ios-icon-kit/pkg/domain"
	"github.com/shouni/ios-icon-kit/pkg/generator"
	"github.com/shouni/ios-icon-kit/pkg/icongen"
	"github.com/shouni/ios-icon-kit/pkg/prompts"
)

func newGenerateCmd() *cobra.Command {
	var (
		appName       string
		topColor      string
		bottomColor   string
		style         string
		model         string
		description   string
		elements      []string
		audience      string
		locale        string
		culturalStyle string
		projectPath   string
		additional    string
		referenceURL  string
		seed          int64
		outputDir     string
		webIcons      bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "単一ロケールのアイコンセットを生成します",
		Example: `  iconkit generate --name "Weather" --locale ja --model dalle-3
  iconkit generate --name "MyApp" --top-color "#1E3A8A" --bottom-color "#60A5FA" --model offline`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateColors(topColor, bottomColor); err != nil {
				return err
			}

			gen, err := buildIconGenerator(cmd.Context(), model, icongen.Options{WebIcons: webIcons})
			if err != nil {
				return err
			}

			req := domain.IconRequest{
				AppName:        appName,
				GradientTop:    topColor,
				GradientBottom: bottomColor,
				Style:          style,
				Model:          model,
				Description:    description,
				Elements:       elements,
				Audience:       audience,
				Locale:         locale,
				CulturalStyle:  culturalStyle,
				ProjectPath:    projectPath,
				Additional:     additional,
				ReferenceURL:   referenceURL,
				OutputDir:      outputDir,
			}
			if cmd.Flags().Changed("seed") {
				req.Seed = &seed
			}

			res, err := gen.GenerateIcon(cmd.Context(), req)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "生成完了: %s (%d画像)\n", res.Dir, len(res.Contents.Images))
			if res.Preview != "" {
				fmt.Fprintf(out, "プレビュー: %s\n", res.Preview)
			}
			for _, f := range res.WebFiles {
				fmt.Fprintf(out, "Webアイコン: %s\n", f)
			}
			if res.RevisedPrompt != "" {
				fmt.Fprintf(out, "改訂プロンプト: %s\n", res.RevisedPrompt)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&appName, "name", "", "アプリ名 (必須)")
	cmd.Flags().StringVar(&topColor, "top-color", icongen.DefaultGradientTop, "グラデーション上端の色 (#RRGGBB)")
	cmd.Flags().StringVar(&bottomColor, "bottom-color", icongen.DefaultGradientBottom, "グラデーション下端の色 (#RRGGBB)")
	cmd.Flags().StringVar(&style, "style", prompts.DefaultStyle, "デザインスタイル (minimalist / flat / gradient など)")
	cmd.Flags().StringVar(&model, "model", generator.DefaultModel, "生成モデル (dalle-3 / dalle-2 / gpt-image-1 / gemini / offline)")
	cmd.Flags().StringVar(&description, "description", "", "アプリの説明文")
	cmd.Flags().StringSliceVar(&elements, "elements", nil, "アイコンに含める視覚要素 (カンマ区切り)")
	cmd.Flags().StringVar(&audience, "audience", "", "ターゲット層")
	cmd.Flags().StringVar(&locale, "locale", "", "ロケール (例: ja, zh-Hans)。未指定は en 扱い")
	cmd.Flags().StringVar(&culturalStyle, "cultural-style", "", "文化的スタイルの明示的な上書き")
	cmd.Flags().StringVar(&projectPath, "project", "", "ローカライズ文脈を読む iOS プロジェクトのパス")
	cmd.Flags().StringVar(&additional, "additional", "", "追加要求のフリーテキスト")
	cmd.Flags().StringVar(&referenceURL, "reference", "", "参考画像のURL (gemini系のみ)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "シード値 (gemini系のみ)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "出力ディレクトリ")
	cmd.Flags().BoolVar(&webIcons, "web", false, "Webファビコン一式も書き出します")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

// validateColors はネットワークに触れる前に色指定の形式を検証します。
func validateColors(colors ...string) error {
	for _, c := range colors {
		if _, err := colorful.Hex(c); err != nil {
			return fmt.Errorf("色の指定が不正です %q (#RRGGBB 形式で指定してください): %w", c, domain.ErrConfiguration)
		}
	}
	return nil
}
