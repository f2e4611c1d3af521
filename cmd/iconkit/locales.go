package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shouni/ios-icon-kit/pkg/culture"
	"github.com/shouni/ios-icon-kit/pkg/iconset"
	"github.com/shouni/ios-icon-kit/pkg/lproj"
)

func newLocalesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locales [プロジェクトパス]",
		Short: "プロジェクトのロケール一覧と文化的デザイン指針を表示します",
		Long: `プロジェクトパスを渡すと *.lproj コンテナを列挙し、ロケールごとの
ローカライズ名・セット名・適用される文化的デザイン指針を表示します。
パスを省略すると組み込みの文化的コンテキスト一覧を表示します。`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			resolver := culture.NewResolver()

			if len(args) == 0 {
				fmt.Fprintln(out, "組み込みの文化的コンテキスト:")
				for _, lc := range resolver.Known() {
					rtl := ""
					if lc.RTL {
						rtl = " (RTL)"
					}
					fmt.Fprintf(out, "  %-10s%s %s\n", lc.Locale, rtl, lc.Aesthetic)
				}
				return nil
			}

			reader := lproj.NewReader()
			locales, err := reader.ListLocales(args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "プロジェクト: %s (%dロケール)\n", args[0], len(locales))
			for _, locale := range locales {
				lc := resolver.Resolve(locale)

				name := ""
				if appCtx, err := reader.ReadContext(args[0], locale); err == nil {
					name = appCtx.BestName("")
				}
				if name == "" {
					name = "(名称未検出)"
				}

				fmt.Fprintf(out, "  %-10s %-16s %-22s %s\n",
					locale, name, iconset.SetDirName(iconset.PrefixForLocale(locale)), lc.Aesthetic)
			}
			return nil
		},
	}
	return cmd
}
