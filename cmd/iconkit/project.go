package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/shouni/ios-icon-kit/pkg/domain"
	"github.com/shouni/ios-icon-kit/pkg/generator"
	"github.com/shouni/ios-icon-kit/pkg/icongen"
	"github.com/shouni/ios-icon-kit/pkg/prompts"
)

func newProjectCmd() *cobra.Command {
	var (
		appName     string
		topColor    string
		bottomColor string
		style       string
		model       string
		description string
		elements    []string
		audience    string
		additional  string
		seed        int64
		outputDir   string
		failFast    bool
		webIcons    bool
	)

	cmd := &cobra.Command{
		Use:   "project <プロジェクトパス>",
		Short: "プロジェクトの全ロケール分のアイコンセットを一括生成します",
		Long: `iOS プロジェクトの *.lproj コンテナを列挙し、ロケールごとに
ローカライズされたアプリ名と文化的デザイン指針を使ってアイコンセットを
生成します。ロケールコンテナが無い場合は en のみ生成します。`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateColors(topColor, bottomColor); err != nil {
				return err
			}

			gen, err := buildIconGenerator(cmd.Context(), model, icongen.Options{
				FailFast: failFast,
				WebIcons: webIcons,
			})
			if err != nil {
				return err
			}

			base := domain.IconRequest{
				AppName:        appName,
				GradientTop:    topColor,
				GradientBottom: bottomColor,
				Style:          style,
				Model:          model,
				Description:    description,
				Elements:       elements,
				Audience:       audience,
				Additional:     additional,
				OutputDir:      outputDir,
			}
			if cmd.Flags().Changed("seed") {
				base.Seed = &seed
			}

			report, err := gen.GenerateFromProject(cmd.Context(), args[0], base)
			if report != nil {
				printReport(cmd.OutOrStdout(), report)
			}
			if err != nil {
				return err
			}
			if !report.OK() {
				return fmt.Errorf("一部のロケールで生成に失敗しました (%d件): %w", len(report.Failed), domain.ErrGeneration)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&appName, "name", "", "アプリ名 (必須。ローカライズ名が見つかれば上書きされます)")
	cmd.Flags().StringVar(&topColor, "top-color", icongen.DefaultGradientTop, "グラデーション上端の色 (#RRGGBB)")
	cmd.Flags().StringVar(&bottomColor, "bottom-color", icongen.DefaultGradientBottom, "グラデーション下端の色 (#RRGGBB)")
	cmd.Flags().StringVar(&style, "style", prompts.DefaultStyle, "デザインスタイル")
	cmd.Flags().StringVar(&model, "model", generator.DefaultModel, "生成モデル (dalle-3 / dalle-2 / gpt-image-1 / gemini / offline)")
	cmd.Flags().StringVar(&description, "description", "", "アプリの説明文")
	cmd.Flags().StringSliceVar(&elements, "elements", nil, "アイコンに含める視覚要素 (カンマ区切り)")
	cmd.Flags().StringVar(&audience, "audience", "", "ターゲット層")
	cmd.Flags().StringVar(&additional, "additional", "", "追加要求のフリーテキスト")
	cmd.Flags().Int64Var(&seed, "seed", 0, "全ロケール共通のシード値 (gemini系のみ)")
	cmd.Flags().StringVarP(&outputDir, "output", "o", ".", "出力ディレクトリ")
	cmd.Flags().BoolVar(&failFast, "fail-fast", false, "最初の失敗で中断します (既定は記録して続行)")
	cmd.Flags().BoolVar(&webIcons, "web", false, "Webファビコン一式も書き出します")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

// printReport は一括生成の集計をロケールの辞書順で表示します。
func printReport(w io.Writer, report *icongen.ProjectReport) {
	fmt.Fprintf(w, "プロジェクト: %s\n", report.ProjectPath)
	fmt.Fprintf(w, "成功 %d / 失敗 %d\n", len(report.Generated), len(report.Failed))

	for _, locale := range sortedKeys(report.Generated) {
		fmt.Fprintf(w, "  [OK] %-12s %s\n", locale, report.Generated[locale].Dir)
	}
	for _, locale := range sortedKeys(report.Failed) {
		fmt.Fprintf(w, "  [NG] %-12s %v\n", locale, report.Failed[locale])
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
