// iconkit は iOS アプリのアイコンセットを AI 生成するコマンドラインツールです。
// プロジェクトのローカライズ情報を読み取り、文化的背景を織り込んだプロンプトで
// 画像を生成し、Xcode がそのまま取り込める .appiconset 形式で書き出します。
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/shouni/ios-icon-kit/pkg/domain"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "エラー:", err)
		os.Exit(exitCode(err))
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "iconkit",
		Short: "iOSアプリアイコンをAI生成するツール",
		Long: `iconkit は iOS アプリのアイコンセットを AI 生成するツールです。

ロケールごとの文化的デザイン指針とプロジェクトのローカライズ情報を
プロンプトへ織り込み、Apple の全12サイズと Contents.json を持つ
.appiconset ディレクトリを書き出します。

必要な資格情報は環境変数 (OPENAI_API_KEY / GEMINI_API_KEY) か
カレントディレクトリの .env から読み込みます。`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger(verbose)
			// .env は任意。無ければ環境変数だけで動かす
			if err := godotenv.Load(); err == nil {
				slog.Debug(".env を読み込みました")
			}
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "デバッグログを出力します")

	root.AddCommand(
		newGenerateCmd(),
		newProjectCmd(),
		newLocalesCmd(),
		newVerifyCmd(),
	)
	return root
}

func setupLogger(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// exitCode はエラー種別を終了コードへ対応付けます。
func exitCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrConfiguration):
		return 2
	case errors.Is(err, domain.ErrNotFound):
		return 3
	case errors.Is(err, domain.ErrGeneration):
		return 4
	case errors.Is(err, domain.ErrProcessing), errors.Is(err, domain.ErrIO):
		return 5
	default:
		return 1
	}
}
