package iconset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shouni/ios-icon-kit/pkg/domain"
)

// ContentsFilename は Xcode が認識するマニフェストのファイル名です。
const ContentsFilename = "Contents.json"

// Contents は .appiconset 直下の Contents.json 全体です。
type Contents struct {
	Images []ImageEntry `json:"images"`
	Info   Info         `json:"info"`
}

// ImageEntry はマニフェスト内の画像1枚分のエントリです。
type ImageEntry struct {
	Filename string `json:"filename"`
	Idiom    string `json:"idiom"`
	Scale    string `json:"scale"`
	Size     string `json:"size"`
}

// Info は Xcode 用のメタデータです。
type Info struct {
	Author  string `json:"author"`
	Version int    `json:"version"`
}

// NewContents はサイズテーブルからマニフェストを組み立てます。
// エントリ順はテーブル順のまま維持されます。
func NewContents() *Contents {
	c := &Contents{
		Images: make([]ImageEntry, 0, len(iosSizes)),
		Info:   Info{Author: "xcode", Version: 1},
	}
	for _, s := range iosSizes {
		c.Images = append(c.Images, ImageEntry{
			Filename: s.Filename,
			Idiom:    s.Idiom,
			Scale:    s.ScaleString(),
			Size:     s.SizeString(),
		})
	}
	return c
}

// Marshal はマニフェストを Xcode と同じ2スペースインデントの JSON にします。
func (c *Contents) Marshal() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// ReadContents は既存の .appiconset ディレクトリからマニフェストを読み込みます。
func ReadContents(dir string) (*Contents, error) {
	data, err := os.ReadFile(filepath.Join(dir, ContentsFilename))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("マニフェストがありません %s: %w", dir, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("マニフェストの読み込みに失敗しました: %w (%w)", domain.ErrIO, err)
	}

	var c Contents
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("マニフェストの解析に失敗しました: %w (%w)", domain.ErrProcessing, err)
	}
	return &c, nil
}
