package generator

const (
	// DefaultModel は画像出力に対応した Gemini モデルです。
	DefaultModel = "gemini-2.5-flash-image"

	responseModalityImage = "IMAGE"
)

// ImageOutput は Core の内部解析結果
type ImageOutput struct {
	Data     []byte
	MimeType string
}
