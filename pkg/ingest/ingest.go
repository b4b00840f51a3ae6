package ingest

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/shouni/chroma-weaver/pkg/domain"
	"github.com/shouni/chroma-weaver/pkg/imgutil"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// Policy は取り込み時の変換方針です。
type Policy string

const (
	// PolicyPassthrough は元のバイト列をそのまま base64 にします。
	PolicyPassthrough Policy = "passthrough"
	// PolicyResize は長辺を縮小し、PNG 以外を JPEG に再エンコードします。
	PolicyResize Policy = "resize"
)

const (
	DefaultMaxDimension = 1024
	DefaultQuality      = 80
	// DefaultMaxBytes はアップロード1件あたりの読み込み上限です。
	DefaultMaxBytes = 20 << 20
	// DefaultMaxPixels はヘッダーが宣言する画素数の上限です。
	// バイト数が小さくても巨大なサイズを宣言できるので、デコード前に弾く。
	DefaultMaxPixels = 50_000_000
)

// ParsePolicy は設定値を Policy に変換します。空文字は resize 扱い。
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case "", PolicyResize:
		return PolicyResize, nil
	case PolicyPassthrough:
		return p, nil
	default:
		return "", fmt.Errorf("unknown ingest policy %q", s)
	}
}

// Options は取り込みのしきい値です。
type Options struct {
	Policy       Policy
	MaxDimension int
	Quality      int
	MaxBytes     int64
	MaxPixels    int64
}

func (o Options) withDefaults() Options {
	if o.Policy == "" {
		o.Policy = PolicyResize
	}
	if o.MaxDimension <= 0 {
		o.MaxDimension = DefaultMaxDimension
	}
	if o.Quality <= 0 {
		o.Quality = DefaultQuality
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = DefaultMaxBytes
	}
	if o.MaxPixels <= 0 {
		o.MaxPixels = DefaultMaxPixels
	}
	return o
}

var acceptedTypes = map[string]bool{
	imgutil.MediaTypePNG:  true,
	imgutil.MediaTypeJPEG: true,
	imgutil.MediaTypeWEBP: true,
}

// Ingestor はユーザーの画像を ImageAsset に変換します。
type Ingestor struct {
	reader remoteio.InputReader
	opts   Options
}

// New は Ingestor を初期化します。reader は FromURI を使わないなら nil でもよい。
func New(reader remoteio.InputReader, opts Options) *Ingestor {
	return &Ingestor{
		reader: reader,
		opts:   opts.withDefaults(),
	}
}

// Options は適用中の設定を返します。
func (i *Ingestor) Options() Options {
	return i.opts
}

// FromURI は reader 経由で画像を読み込みます。
func (i *Ingestor) FromURI(ctx context.Context, uri string) (*domain.ImageAsset, error) {
	if i.reader == nil {
		return nil, fmt.Errorf("%w: no reader configured for %s", domain.ErrImageRead, uri)
	}
	rc, err := i.reader.Open(ctx, uri)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrImageRead, err)
	}
	defer rc.Close()

	return i.FromReader(rc, "")
}

// FromReader は MaxBytes を上限に読み込んでから FromBytes に渡します。
func (i *Ingestor) FromReader(r io.Reader, declaredType string) (*domain.ImageAsset, error) {
	data, err := io.ReadAll(io.LimitReader(r, i.opts.MaxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrImageRead, err)
	}
	if int64(len(data)) > i.opts.MaxBytes {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", domain.ErrImageRead, i.opts.MaxBytes)
	}
	return i.FromBytes(data, declaredType)
}

// FromBytes は画像データを検証し、ポリシーに従って Data URL 化します。
// 宣言された MIME タイプは信用せず、中身から判定します。
func (i *Ingestor) FromBytes(data []byte, declaredType string) (*domain.ImageAsset, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", domain.ErrImageRead)
	}

	mediaType := http.DetectContentType(data)
	if !acceptedTypes[mediaType] {
		return nil, fmt.Errorf("%w: unsupported content type %q (declared %q)", domain.ErrImageRead, mediaType, declaredType)
	}
	if declaredType != "" && declaredType != mediaType {
		slog.Debug("宣言と中身の MIME タイプが一致しません", "declared", declaredType, "detected", mediaType)
	}

	if err := i.checkDimensions(data); err != nil {
		return nil, err
	}
	if i.opts.Policy == PolicyPassthrough {
		return newAsset(mediaType, data), nil
	}

	img, format, err := imgutil.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrImageRead, err)
	}

	scaled := imgutil.Downscale(img, i.opts.MaxDimension)
	out, outType, err := imgutil.Reencode(scaled, format, i.opts.Quality)
	if err != nil {
		return nil, fmt.Errorf("%w: re-encode failed: %v", domain.ErrImageRead, err)
	}

	slog.Debug("画像を取り込みました",
		"source_type", mediaType,
		"output_type", outType,
		"bytes_in", len(data),
		"bytes_out", len(out),
		"width", scaled.Bounds().Dx(),
		"height", scaled.Bounds().Dy(),
	)
	return newAsset(outType, out), nil
}

// checkDimensions はヘッダーだけを読み、宣言された画素数が上限以内かを確かめます。
// 全体をデコードする前に呼ぶこと。
func (i *Ingestor) checkDimensions(data []byte) error {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrImageRead, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("%w: invalid dimensions %dx%d", domain.ErrImageRead, cfg.Width, cfg.Height)
	}
	if pixels := int64(cfg.Width) * int64(cfg.Height); pixels > i.opts.MaxPixels {
		return fmt.Errorf("%w: image is %dx%d, exceeds %d pixels", domain.ErrImageRead, cfg.Width, cfg.Height, i.opts.MaxPixels)
	}
	return nil
}

func newAsset(mediaType string, data []byte) *domain.ImageAsset {
	return &domain.ImageAsset{
		Data:      domain.BuildDataURL(mediaType, base64.StdEncoding.EncodeToString(data)),
		MediaType: mediaType,
	}
}
