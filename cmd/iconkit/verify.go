package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shouni/ios-icon-kit/pkg/domain"
	"github.com/shouni/ios-icon-kit/pkg/iconset"
)

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <アイコンセット...>",
		Short: "既存の .appiconset をサイズテーブルと突き合わせて検証します",
		Long: `Contents.json と実ファイルの全単射、宣言サイズと実寸法の一致、
全12エントリの過不足を確認します。問題が無ければマーケティング
アイコンの支配色も報告します。`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			broken := 0

			for _, dir := range args {
				report, err := iconset.Verify(dir)
				if err != nil {
					return err
				}

				if report.OK() {
					fmt.Fprintf(out, "%s: OK (%dエントリ", dir, report.Entries)
					if report.DominantHex != "" {
						fmt.Fprintf(out, ", 支配色 %s", report.DominantHex)
					}
					fmt.Fprintln(out, ")")
					continue
				}

				broken++
				fmt.Fprintf(out, "%s: %d件の不整合\n", dir, len(report.Problems))
				for _, p := range report.Problems {
					fmt.Fprintf(out, "  - %s\n", p)
				}
			}

			if broken > 0 {
				return fmt.Errorf("%d個のアイコンセットに不整合があります: %w", broken, domain.ErrProcessing)
			}
			return nil
		},
	}
	return cmd
}
