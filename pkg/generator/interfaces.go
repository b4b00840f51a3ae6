package generator

import (
	"context"

	"github.com/shouni/chroma-weaver/pkg/domain"
	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// ImageGenerator はセッション層が利用する統合窓口です。
type ImageGenerator interface {
	// Generate はモードに応じた指示文と画像で1回だけ生成を行います。
	Generate(ctx context.Context, mode domain.Mode, image1, image2 *domain.ImageAsset) (*domain.GenerationResult, error)
}

// PartsGenerator はパーツ列で生成リクエストを送るクライアントです。
// gemini.GenerativeModel もこのインターフェースを満たします。
type PartsGenerator interface {
	GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error)
}

// ModelFactory は API キーから PartsGenerator を作ります。初回の生成時に一度だけ呼ばれます。
type ModelFactory func(ctx context.Context, apiKey string) (PartsGenerator, error)

var _ PartsGenerator = (gemini.GenerativeModel)(nil)
