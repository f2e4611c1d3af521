// Package lproj は iOS プロジェクトのローカライズリソースを読み取ります。
// <locale>.lproj ディレクトリ内の .strings ファイルと Info.plist から、
// アプリ名や説明文などプロンプト構築に使う文脈を抽出します。
package lproj

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"howett.net/plist"

	"github.com/shouni/ios-icon-kit/pkg/domain"
)

// .strings ファイルの "key" = "value"; 形式にマッチするパターン
var stringsPattern = regexp.MustCompile(`"([^"]+)"\s*=\s*"([^"]+)"\s*;`)

// Localizable.strings でアプリ説明文として認識する既知キー
const descriptionKey = "AppDescription"

// Reader は iOS プロジェクトツリーを走査するリーダーです。
type Reader struct{}

// NewReader は Reader を初期化します。
func NewReader() *Reader {
	return &Reader{}
}

// ListLocales はプロジェクト直下の *.lproj ディレクトリからロケール一覧を返します。
// Base.lproj はロケールではないため除外します。
// パスが存在しない、または lproj が一つもない場合は ErrNotFound を返します。
func (r *Reader) ListLocales(projectPath string) ([]string, error) {
	entries, err := os.ReadDir(projectPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("プロジェクトパスが存在しません %s: %w (%w)", projectPath, domain.ErrNotFound, err)
		}
		return nil, fmt.Errorf("プロジェクトの走査に失敗しました: %w (%w)", domain.ErrIO, err)
	}

	var locales []string
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasSuffix(entry.Name(), ".lproj") {
			continue
		}
		locale := strings.TrimSuffix(entry.Name(), ".lproj")
		if locale == "Base" {
			continue
		}
		locales = append(locales, locale)
	}

	if len(locales) == 0 {
		return nil, fmt.Errorf("ロケールコンテナ (*.lproj) が見つかりません: %w", domain.ErrNotFound)
	}
	return locales, nil
}

// ReadContext は指定ロケールのアプリ文脈を組み立てます。
// ファイルやキーの欠落はエラーにせず、見つかった範囲だけを埋めます。
// 説明文が見つからない場合は空文字列のままです。
func (r *Reader) ReadContext(projectPath, locale string) (*domain.AppContext, error) {
	if _, err := os.Stat(projectPath); err != nil {
		return nil, fmt.Errorf("プロジェクトパスを開けません %s: %w (%w)", projectPath, domain.ErrNotFound, err)
	}

	ctx := &domain.AppContext{Strings: map[string]string{}}

	// InfoPlist.strings: <locale>.lproj → Base.lproj → 直下 の順で最初に存在したものを使う
	for _, p := range searchPaths(projectPath, locale, "InfoPlist.strings") {
		strs, ok := r.readStringsFile(p)
		if !ok {
			continue
		}
		ctx.AppName = strs["CFBundleName"]
		ctx.DisplayName = strs["CFBundleDisplayName"]
		break
	}

	// Localizable.strings も同じ探索順
	for _, p := range searchPaths(projectPath, locale, "Localizable.strings") {
		strs, ok := r.readStringsFile(p)
		if !ok {
			continue
		}
		ctx.Strings = strs
		ctx.Description = strs[descriptionKey]
		break
	}

	// Info.plist は名前の補完とカテゴリ取得に使う
	for _, p := range []string{
		filepath.Join(projectPath, "Info.plist"),
		filepath.Join(projectPath, "Resources", "Info.plist"),
		filepath.Join(projectPath, "Supporting Files", "Info.plist"),
	} {
		dict, ok := r.readInfoPlist(p)
		if !ok {
			continue
		}
		if ctx.AppName == "" {
			if v, ok := dict["CFBundleName"].(string); ok {
				ctx.AppName = v
			}
		}
		if ctx.DisplayName == "" {
			if v, ok := dict["CFBundleDisplayName"].(string); ok {
				ctx.DisplayName = v
			}
		}
		if v, ok := dict["LSApplicationCategoryType"].(string); ok {
			ctx.Category = v
		}
		break
	}

	return ctx, nil
}

// searchPaths は .strings ファイルの探索順を返します。
func searchPaths(projectPath, locale, filename string) []string {
	return []string{
		filepath.Join(projectPath, locale+".lproj", filename),
		filepath.Join(projectPath, "Base.lproj", filename),
		filepath.Join(projectPath, filename),
	}
}

// readStringsFile はファイルを読み解析します。
// 2番目の戻り値はファイルが存在したかどうかで、存在するが読めない場合は
// 警告ログを出して空の結果を返します（探索は打ち切る）。
func (r *Reader) readStringsFile(path string) (map[string]string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false
		}
		slog.Warn("stringsファイルを読めませんでした", "path", path, "error", err)
		return map[string]string{}, true
	}
	return ParseStrings(data), true
}

// readInfoPlist は Info.plist (XML/バイナリ両対応) を辞書として読みます。
func (r *Reader) readInfoPlist(path string) (map[string]any, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false
		}
		slog.Warn("Info.plistを読めませんでした", "path", path, "error", err)
		return map[string]any{}, true
	}

	var dict map[string]any
	if _, err := plist.Unmarshal(data, &dict); err != nil {
		slog.Warn("Info.plistの解析に失敗しました", "path", path, "error", err)
		return map[string]any{}, true
	}
	return dict, true
}

// ParseStrings は .strings 形式のバイト列からキーと値の組を抽出します。
// パターンにマッチしない行は無視されるのだ。
func ParseStrings(data []byte) map[string]string {
	out := make(map[string]string)
	for _, m := range stringsPattern.FindAllStringSubmatch(string(data), -1) {
		out[m[1]] = m[2]
	}
	return out
}
