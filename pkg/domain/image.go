package domain

import (
	"fmt"
	"strings"
)

const (
	// DefaultResultMediaType は生成結果の MIME タイプが不明な場合に使う値です。
	DefaultResultMediaType = "image/jpeg"
	// ResultFileName はダウンロード時の固定ファイル名です。
	ResultFileName = "chroma-weaver-result.jpeg"

	dataURLPrefix = "data:"
	base64Marker  = ";base64,"
)

// ImageAsset はユーザーがアップロードした画像を送信可能な形にしたものです。
// Data は "data:<type>;base64,<payload>" 形式の Data URL を保持します。
type ImageAsset struct {
	Data      string
	MediaType string
}

// Payload は Data URL のプレフィックスを取り除いた base64 本体を返します。
func (a ImageAsset) Payload() string {
	return StripDataURLPrefix(a.Data)
}

// GenerationResult は API から返ってきた画像です。Data はプレフィックスなしの base64。
type GenerationResult struct {
	Data      string
	MediaType string
}

// DataURL は結果をブラウザで表示できる Data URL に変換します。
// MIME タイプはモデルが返したものを使い、空のときだけ image/jpeg とみなします。
func (r GenerationResult) DataURL() string {
	mediaType := r.MediaType
	if mediaType == "" {
		mediaType = DefaultResultMediaType
	}
	return BuildDataURL(mediaType, r.Data)
}

// BuildDataURL は MIME タイプと base64 本体から Data URL を組み立てます。
func BuildDataURL(mediaType, payload string) string {
	return dataURLPrefix + mediaType + base64Marker + payload
}

// StripDataURLPrefix は "data:...;base64," を取り除きます。
// プレフィックスがなければ入力をそのまま返すのだ。
func StripDataURLPrefix(s string) string {
	if !strings.HasPrefix(s, dataURLPrefix) {
		return s
	}
	if _, payload, ok := strings.Cut(s, ","); ok {
		return payload
	}
	return s
}

// ParseDataURL は Data URL を MIME タイプと base64 本体に分解します。
func ParseDataURL(s string) (mediaType, payload string, err error) {
	if !strings.HasPrefix(s, dataURLPrefix) {
		return "", "", fmt.Errorf("not a data URL")
	}
	head, payload, ok := strings.Cut(strings.TrimPrefix(s, dataURLPrefix), ",")
	if !ok || !strings.HasSuffix(head, ";base64") {
		return "", "", fmt.Errorf("data URL is not base64 encoded")
	}
	return strings.TrimSuffix(head, ";base64"), payload, nil
}
