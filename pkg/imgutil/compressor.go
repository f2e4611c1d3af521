package imgutil

import (
	"bytes"
	"fmt"
	_ "image/gif" // DecodeImage 用のデコーダ登録
	"image/jpeg"
)

// CompressToJPEG は参照画像を添付する前にペイロードを小さくするための再圧縮です。
// JPEG はアルファチャンネルを持たないため、アイコンの出力側では使いません。
func CompressToJPEG(data []byte, quality int) ([]byte, error) {
	img, err := DecodeImage(data)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("JPEGエンコードに失敗しました: %w", err)
	}
	return buf.Bytes(), nil
}
