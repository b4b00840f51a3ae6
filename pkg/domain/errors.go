package domain

import (
	"errors"
	"fmt"
)

// ユーザーにそのまま表示してよいエラーだけをここに置きます。
var (
	ErrImageRead        = errors.New("failed to read the image")
	ErrNotConfigured    = errors.New("API_KEY environment variable is not set.")
	ErrGenerationFailed = errors.New("Failed to generate image. Please check your inputs and API key.")
	ErrNoImage          = errors.New("No image was generated in the response.")
	ErrBusy             = errors.New("a generation is already in progress")
	ErrInvalidMode      = errors.New("Invalid mode selected.")
)

// MissingInputError は現在のモードで必須のスロットが埋まっていないことを表します。
type MissingInputError struct {
	Mode Mode
}

func (e *MissingInputError) Error() string {
	switch e.Mode {
	case ModeFuse:
		return "Please upload both a Foreground and a Background image."
	case ModeExtend:
		return "Please upload a Source Scene image."
	case ModeRemix:
		return "Please upload both a Style Donor and a Target Scene image."
	default:
		return ErrInvalidMode.Error()
	}
}

// SlotReadError はスロット単位の読み込み失敗です。
type SlotReadError struct {
	Slot Slot
	Err  error
}

func (e *SlotReadError) Error() string {
	return fmt.Sprintf("Failed to read the %s image.", e.Slot.Ordinal())
}

func (e *SlotReadError) Unwrap() error { return e.Err }
