package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/shouni/chroma-weaver/pkg/domain"
	"github.com/shouni/chroma-weaver/pkg/generator"
)

const unknownErrorMessage = "An unknown error occurred during generation."

// Ingester はアップロードされたファイルや URI を ImageAsset に変換します。
type Ingester interface {
	FromReader(r io.Reader, declaredType string) (*domain.ImageAsset, error)
	FromURI(ctx context.Context, uri string) (*domain.ImageAsset, error)
}

// Controller は State の唯一の所有者です。取り込みと生成は State のロック外で行います。
type Controller struct {
	gen generator.ImageGenerator
	ing Ingester
	now func() time.Time

	mu           sync.Mutex
	state        State
	loadingSince time.Time
}

// NewController は依存関係を注入して Controller を初期化します。
func NewController(gen generator.ImageGenerator, ing Ingester) (*Controller, error) {
	if gen == nil {
		return nil, fmt.Errorf("gen (generator.ImageGenerator) is required")
	}
	if ing == nil {
		return nil, fmt.Errorf("ing (Ingester) is required")
	}
	return &Controller{
		gen:   gen,
		ing:   ing,
		now:   time.Now,
		state: NewState(),
	}, nil
}

// Snapshot は現在の状態のコピーを返します。
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) dispatch(ev Event) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = c.state.Apply(ev)
	return c.state
}

// SetMode はモードを切り替え、スロットと履歴を空にします。
func (c *Controller) SetMode(mode domain.Mode) State {
	slog.Info("モードを切り替えます", "mode", mode)
	return c.dispatch(ModeChanged{Mode: mode})
}

// Upload はスロットに画像を読み込みます。後から始まった読み込みが常に優先されます。
func (c *Controller) Upload(slot domain.Slot, r io.Reader, declaredType string) error {
	return c.load(slot, func() (*domain.ImageAsset, error) {
		return c.ing.FromReader(r, declaredType)
	})
}

// UploadURI は URI（ローカルパスなど）から画像を読み込みます。起動時のプリロード用。
func (c *Controller) UploadURI(ctx context.Context, slot domain.Slot, uri string) error {
	return c.load(slot, func() (*domain.ImageAsset, error) {
		return c.ing.FromURI(ctx, uri)
	})
}

func (c *Controller) load(slot domain.Slot, read func() (*domain.ImageAsset, error)) error {
	c.mu.Lock()
	if slot == domain.Slot2 && !c.state.Mode.RequiresSecondImage() {
		c.mu.Unlock()
		return fmt.Errorf("slot %d is not used in mode %s", slot, c.state.Mode)
	}
	c.state = c.state.Apply(UploadStarted{Slot: slot})
	token := c.state.UploadToken(slot)
	c.mu.Unlock()

	asset, err := read()
	if err != nil {
		slog.Warn("画像の読み込みに失敗しました", "slot", slot, "error", err)
		c.dispatch(UploadFailed{Slot: slot, Token: token})
		return &domain.SlotReadError{Slot: slot, Err: err}
	}

	st := c.dispatch(UploadResolved{Slot: slot, Token: token, Asset: asset})
	if st.UploadToken(slot) != token {
		slog.Debug("古い読み込み結果を破棄しました", "slot", slot, "token", token)
	}
	return nil
}

// Generate は現在のモードとスロットで1回だけ生成を行います。
// 生成中の二重実行は domain.ErrBusy、入力不足は通信前に domain.MissingInputError を返します。
func (c *Controller) Generate(ctx context.Context) (State, error) {
	c.mu.Lock()
	if c.state.Loading {
		st := c.state
		c.mu.Unlock()
		return st, domain.ErrBusy
	}
	mode, img1, img2 := c.state.Mode, c.state.Image1, c.state.Image2
	if !mode.Satisfied(img1 != nil, img2 != nil) {
		err := &domain.MissingInputError{Mode: mode}
		c.state = c.state.Apply(InputRejected{Message: err.Error()})
		st := c.state
		c.mu.Unlock()
		return st, err
	}
	c.state = c.state.Apply(GenerateStarted{})
	token := c.state.GenerationToken()
	c.loadingSince = c.now()
	c.mu.Unlock()

	res, err := c.gen.Generate(ctx, mode, img1, img2)
	if err != nil {
		return c.dispatch(GenerateFailed{Token: token, Message: userMessage(err)}), err
	}
	return c.dispatch(GenerateSucceeded{Token: token, DataURL: res.DataURL()}), nil
}

func (c *Controller) Undo() State {
	return c.dispatch(Undo{})
}

func (c *Controller) Redo() State {
	return c.dispatch(Redo{})
}

// Status は生成中かどうかと、表示すべきメッセージを返します。
func (c *Controller) Status() (bool, string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.Loading {
		return false, ""
	}
	return true, MessageAt(c.now().Sub(c.loadingSince), MessageInterval)
}

// userMessage はユーザーに見せてよいメッセージだけを返します。
func userMessage(err error) string {
	var missing *domain.MissingInputError
	switch {
	case errors.As(err, &missing):
		return missing.Error()
	case errors.Is(err, domain.ErrNotConfigured),
		errors.Is(err, domain.ErrGenerationFailed),
		errors.Is(err, domain.ErrNoImage),
		errors.Is(err, domain.ErrInvalidMode):
		return err.Error()
	default:
		return unknownErrorMessage
	}
}
