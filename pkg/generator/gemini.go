package generator

import (
	"context"
	"encoding/base64"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shouni/chroma-weaver/pkg/domain"
	"github.com/shouni/go-gemini-client/pkg/gemini"
)

// Options は WeaveGenerator の設定です。
type Options struct {
	APIKey      string
	Model       string
	AspectRatio string
	Seed        *int64
	// Factory が nil なら genai SDK ベースのクライアントを使います。
	Factory ModelFactory
}

// WeaveGenerator は3つのウィーブモードで画像を生成するジェネレーターです。
// 呼び出しごとに外部 API を1回だけ叩き、リトライはしません。
type WeaveGenerator struct {
	core        *GeminiImageCore
	apiKey      string
	model       string
	aspectRatio string
	seed        *int64
	factory     ModelFactory

	mu     sync.Mutex
	client PartsGenerator
}

var _ ImageGenerator = (*WeaveGenerator)(nil)

// NewWeaveGenerator は WeaveGenerator を初期化するのだ。
// API キーが空でもエラーにはしない。Generate 時に ErrNotConfigured を返すのだ。
func NewWeaveGenerator(opts Options) *WeaveGenerator {
	model := opts.Model
	if model == "" {
		model = DefaultModel
	}
	factory := opts.Factory
	if factory == nil {
		factory = genaiFactory
	}
	return &WeaveGenerator{
		core:        NewGeminiImageCore(),
		apiKey:      opts.APIKey,
		model:       model,
		aspectRatio: opts.AspectRatio,
		seed:        opts.Seed,
		factory:     factory,
	}
}

// Configured は API キーが設定済みかを返します。
func (g *WeaveGenerator) Configured() bool {
	return g.apiKey != ""
}

// Model は使用するモデル名を返します。
func (g *WeaveGenerator) Model() string {
	return g.model
}

// Generate はモードに応じた指示文と画像を送り、最初に見つかった画像を返します。
// 通信や解析の失敗はすべて domain.ErrGenerationFailed にまとめ、元のエラーはログにだけ残します。
func (g *WeaveGenerator) Generate(ctx context.Context, mode domain.Mode, image1, image2 *domain.ImageAsset) (*domain.GenerationResult, error) {
	if !g.Configured() {
		return nil, domain.ErrNotConfigured
	}

	instruction, ok := Instruction(mode)
	if !ok {
		return nil, domain.ErrInvalidMode
	}
	if !mode.Satisfied(image1 != nil, image2 != nil) {
		return nil, &domain.MissingInputError{Mode: mode}
	}
	if !mode.RequiresSecondImage() {
		image2 = nil
	}

	logger := slog.With("generation_id", uuid.NewString(), "mode", mode, "model", g.model)

	parts, err := g.core.BuildParts(instruction, image1, image2)
	if err != nil {
		logger.WarnContext(ctx, "入力画像をパーツに変換できませんでした", "error", err)
		return nil, domain.ErrGenerationFailed
	}

	client, err := g.modelClient(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Geminiクライアントの初期化に失敗しました", "error", err)
		return nil, domain.ErrGenerationFailed
	}

	opts := gemini.GenerateOptions{
		AspectRatio: g.aspectRatio,
		Seed:        g.seed,
	}

	logger.InfoContext(ctx, "Geminiに画像生成をリクエストします", "parts", len(parts), "seed", dereferenceSeed(g.seed))
	started := time.Now()
	resp, err := client.GenerateWithParts(ctx, g.model, parts, opts)
	if err != nil {
		logger.ErrorContext(ctx, "Gemini API call failed", "error", err, "elapsed", time.Since(started))
		return nil, domain.ErrGenerationFailed
	}

	out, err := g.core.ParseToResponse(resp)
	if err != nil {
		if errors.Is(err, domain.ErrNoImage) {
			logger.WarnContext(ctx, "レスポンスに画像が含まれていません")
			return nil, domain.ErrNoImage
		}
		logger.ErrorContext(ctx, "レスポンスの解析に失敗しました", "error", err)
		return nil, domain.ErrGenerationFailed
	}

	logger.InfoContext(ctx, "画像生成が完了しました", "bytes", len(out.Data), "mime_type", out.MimeType, "elapsed", time.Since(started))
	return &domain.GenerationResult{
		Data:      base64.StdEncoding.EncodeToString(out.Data),
		MediaType: out.MimeType,
	}, nil
}

// modelClient はクライアントを初回だけ生成して使い回します。
func (g *WeaveGenerator) modelClient(ctx context.Context) (PartsGenerator, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client != nil {
		return g.client, nil
	}
	client, err := g.factory(ctx, g.apiKey)
	if err != nil {
		return nil, err
	}
	g.client = client
	return client, nil
}
