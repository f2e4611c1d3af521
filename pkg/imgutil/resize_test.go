package imgutil

import (
	"image"
	"image/color"
	"testing"
)

// 横長のグラデーション画像を作るヘルパー
func createRect(t *testing.T, w, h int) *image.RGBA {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{uint8(x % 256), uint8(y % 256), 128, 255})
		}
	}
	return img
}

func TestDecodeImage(t *testing.T) {
	t.Run("PNGをデコードできること", func(t *testing.T) {
		data, err := EncodePNG(createRect(t, 8, 8))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		img, err := DecodeImage(data)
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
		if img.Bounds().Dx() != 8 || img.Bounds().Dy() != 8 {
			t.Errorf("unexpected bounds: %v", img.Bounds())
		}
	})

	t.Run("不正なデータを与えた場合にエラーを返すこと", func(t *testing.T) {
		if _, err := DecodeImage([]byte("this is not an image")); err == nil {
			t.Error("expected error for invalid data, but got nil")
		}
	})
}

func TestCenterCropSquare(t *testing.T) {
	t.Run("横長画像は中央の正方形になること", func(t *testing.T) {
		src := createRect(t, 100, 60)
		got := CenterCropSquare(src)
		if got.Bounds().Dx() != 60 || got.Bounds().Dy() != 60 {
			t.Errorf("expected 60x60, got %dx%d", got.Bounds().Dx(), got.Bounds().Dy())
		}
	})

	t.Run("縦長画像も中央の正方形になること", func(t *testing.T) {
		src := createRect(t, 30, 90)
		got := CenterCropSquare(src)
		if got.Bounds().Dx() != 30 || got.Bounds().Dy() != 30 {
			t.Errorf("expected 30x30, got %dx%d", got.Bounds().Dx(), got.Bounds().Dy())
		}
	})

	t.Run("正方形の画像はそのまま返ること", func(t *testing.T) {
		src := createRect(t, 50, 50)
		if got := CenterCropSquare(src); got != image.Image(src) {
			t.Error("square input should be returned as-is")
		}
	})

	t.Run("切り出し位置が中央であること", func(t *testing.T) {
		// 左半分を赤、右半分を青にした 4x2 画像
		src := image.NewRGBA(image.Rect(0, 0, 4, 2))
		for y := 0; y < 2; y++ {
			src.Set(0, y, color.RGBA{255, 0, 0, 255})
			src.Set(1, y, color.RGBA{255, 0, 0, 255})
			src.Set(2, y, color.RGBA{0, 0, 255, 255})
			src.Set(3, y, color.RGBA{0, 0, 255, 255})
		}
		got := CenterCropSquare(src)
		b := got.Bounds()
		if b.Dx() != 2 || b.Dy() != 2 {
			t.Fatalf("expected 2x2, got %v", b)
		}
		// 中央2列 = 赤1列 + 青1列
		r, _, _, _ := got.At(b.Min.X, b.Min.Y).RGBA()
		_, _, bl, _ := got.At(b.Min.X+1, b.Min.Y).RGBA()
		if r == 0 {
			t.Error("left column of crop should be red")
		}
		if bl == 0 {
			t.Error("right column of crop should be blue")
		}
	})
}

func TestResizeSquare(t *testing.T) {
	t.Run("指定ピクセルの正方形になること", func(t *testing.T) {
		src := createRect(t, 1024, 1024)
		for _, px := range []int{40, 167, 1024} {
			got := ResizeSquare(src, px)
			if got.Bounds().Dx() != px || got.Bounds().Dy() != px {
				t.Errorf("expected %dx%d, got %v", px, px, got.Bounds())
			}
		}
	})
}
