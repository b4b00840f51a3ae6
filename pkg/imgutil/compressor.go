package imgutil

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"

	_ "golang.org/x/image/webp"
)

const (
	MediaTypePNG  = "image/png"
	MediaTypeJPEG = "image/jpeg"
	MediaTypeWEBP = "image/webp"
)

// ErrEmptyImage は空データを渡されたときのエラーです。
var ErrEmptyImage = errors.New("imgutil: empty image data")

// Decode は PNG, JPEG, GIF, WEBP をデコードし、フォーマット名も返します。
func Decode(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", ErrEmptyImage
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("imgutil: decode failed: %w", err)
	}
	return img, format, nil
}

// CompressToJPEG は画像データ（PNG, GIF, JPEG, WEBP）をJPEG形式に圧縮します。
func CompressToJPEG(data []byte, quality int) ([]byte, error) {
	img, _, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return EncodeJPEG(img, quality)
}

// EncodeJPEG は指定品質で JPEG にエンコードします。
func EncodeJPEG(img image.Image, quality int) ([]byte, error) {
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: clampQuality(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Reencode は透過を保つため PNG 入力だけ PNG のまま、それ以外は JPEG に正規化します。
// 戻り値の2つ目は出力の MIME タイプです。
func Reencode(img image.Image, sourceFormat string, quality int) ([]byte, string, error) {
	if sourceFormat == "png" {
		buf := new(bytes.Buffer)
		enc := png.Encoder{CompressionLevel: png.BestCompression}
		if err := enc.Encode(buf, img); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), MediaTypePNG, nil
	}

	data, err := EncodeJPEG(img, quality)
	if err != nil {
		return nil, "", err
	}
	return data, MediaTypeJPEG, nil
}

func clampQuality(q int) int {
	switch {
	case q < 1:
		return jpeg.DefaultQuality
	case q > 100:
		return 100
	default:
		return q
	}
}
