package domain

import (
	"fmt"
	"strings"
)

// Mode は生成レシピ（ウィーブモード）です。
type Mode string

const (
	ModeFuse   Mode = "FUSE"
	ModeExtend Mode = "EXTEND"
	ModeRemix  Mode = "REMIX"
)

// DefaultMode は起動直後のモードです。
const DefaultMode = ModeFuse

// Slot はアップロード枠の番号です。
type Slot int

const (
	Slot1 Slot = 1
	Slot2 Slot = 2
)

// Ordinal はエラーメッセージ用に "first" / "second" を返します。
func (s Slot) Ordinal() string {
	if s == Slot2 {
		return "second"
	}
	return "first"
}

// ParseSlot は "1" / "2" をスロットに変換します。
func ParseSlot(s string) (Slot, error) {
	switch strings.TrimSpace(s) {
	case "1":
		return Slot1, nil
	case "2":
		return Slot2, nil
	default:
		return 0, fmt.Errorf("unknown slot %q", s)
	}
}

// ParseMode は大文字小文字を無視してモードを解釈します。
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToUpper(strings.TrimSpace(s))); m {
	case ModeFuse, ModeExtend, ModeRemix:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
}

// RequiresSecondImage は Fuse と Remix なら true です。Extend は1枚だけ。
func (m Mode) RequiresSecondImage() bool {
	return m == ModeFuse || m == ModeRemix
}

// Satisfied は必須スロットがすべて埋まっているかを判定します。
func (m Mode) Satisfied(image1Set, image2Set bool) bool {
	if !image1Set {
		return false
	}
	return image2Set || !m.RequiresSecondImage()
}

// Descriptor はモードセレクタに並べる表示情報です。
type Descriptor struct {
	Mode        Mode
	Label       string
	Description string
}

var descriptors = []Descriptor{
	{ModeFuse, "Fuse Model into Scene", "Blend an existing model seamlessly into a new background scene."},
	{ModeExtend, "Extend Scene View", "Generate a new view from an existing scene, maintaining its style."},
	{ModeRemix, "Remix Model Style", "Create a new model using a style donor, and place it in a target scene."},
}

// Descriptors はセレクタの表示順でモード一覧を返します。
func Descriptors() []Descriptor {
	out := make([]Descriptor, len(descriptors))
	copy(out, descriptors)
	return out
}

// Describe は指定モードの Descriptor を返します。
func Describe(m Mode) (Descriptor, bool) {
	for _, d := range descriptors {
		if d.Mode == m {
			return d, true
		}
	}
	return Descriptor{}, false
}

// SlotState は設定の導出に必要な現在の入力状態です。
type SlotState struct {
	Image1Set bool
	Image2Set bool
	Loading   bool
}

// ModeConfig はモードごとのアップロード枠・ボタン表示の設定です。
type ModeConfig struct {
	ShowSlot1      bool
	Slot1Title     string
	ShowSlot2      bool
	Slot2Title     string
	ButtonText     string
	ButtonDisabled bool
	Columns        int
}

// ConfigFor は現在のモードとスロット状態から表示設定を導出する純粋関数です。
// 状態が変わるたびに呼び直すこと。
func ConfigFor(m Mode, st SlotState) ModeConfig {
	cfg := ModeConfig{
		ShowSlot1:      true,
		ShowSlot2:      m.RequiresSecondImage(),
		ButtonDisabled: !m.Satisfied(st.Image1Set, st.Image2Set) || st.Loading,
		Columns:        3,
	}

	switch m {
	case ModeFuse:
		cfg.Slot1Title = "Foreground Image (Model)"
		cfg.Slot2Title = "Background Image (Room)"
		cfg.ButtonText = "Fuse Style"
	case ModeExtend:
		cfg.Slot1Title = "Source Scene (Vibe Donor)"
		cfg.ButtonText = "Extend Scene"
		cfg.Columns = 2
	case ModeRemix:
		cfg.Slot1Title = "Style Donor (Model)"
		cfg.Slot2Title = "Target Scene (Room)"
		cfg.ButtonText = "Remix Style"
	default:
		cfg.ShowSlot1 = false
		cfg.ButtonDisabled = true
	}
	return cfg
}
