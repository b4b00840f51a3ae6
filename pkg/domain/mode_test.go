package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"FUSE", ModeFuse, false},
		{"extend", ModeExtend, false},
		{" Remix ", ModeRemix, false},
		{"blend", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidMode))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfigFor_ButtonDisabled(t *testing.T) {
	// 必須スロットが未設定、または生成中のときだけ無効になる
	for _, m := range []Mode{ModeFuse, ModeExtend, ModeRemix} {
		for _, img1 := range []bool{false, true} {
			for _, img2 := range []bool{false, true} {
				for _, loading := range []bool{false, true} {
					cfg := ConfigFor(m, SlotState{Image1Set: img1, Image2Set: img2, Loading: loading})

					missing := !img1 || (m != ModeExtend && !img2)
					assert.Equal(t, missing || loading, cfg.ButtonDisabled,
						"mode=%s img1=%v img2=%v loading=%v", m, img1, img2, loading)
				}
			}
		}
	}
}

func TestConfigFor_Labels(t *testing.T) {
	t.Run("Fuse は2枠", func(t *testing.T) {
		cfg := ConfigFor(ModeFuse, SlotState{})
		assert.True(t, cfg.ShowSlot1)
		assert.True(t, cfg.ShowSlot2)
		assert.Equal(t, "Foreground Image (Model)", cfg.Slot1Title)
		assert.Equal(t, "Background Image (Room)", cfg.Slot2Title)
		assert.Equal(t, "Fuse Style", cfg.ButtonText)
		assert.Equal(t, 3, cfg.Columns)
	})

	t.Run("Extend は1枠", func(t *testing.T) {
		cfg := ConfigFor(ModeExtend, SlotState{})
		assert.True(t, cfg.ShowSlot1)
		assert.False(t, cfg.ShowSlot2)
		assert.Equal(t, "Source Scene (Vibe Donor)", cfg.Slot1Title)
		assert.Empty(t, cfg.Slot2Title)
		assert.Equal(t, "Extend Scene", cfg.ButtonText)
		assert.Equal(t, 2, cfg.Columns)
	})

	t.Run("Remix は2枠", func(t *testing.T) {
		cfg := ConfigFor(ModeRemix, SlotState{})
		assert.Equal(t, "Style Donor (Model)", cfg.Slot1Title)
		assert.Equal(t, "Target Scene (Room)", cfg.Slot2Title)
		assert.Equal(t, "Remix Style", cfg.ButtonText)
	})

	t.Run("不明なモードは常に無効", func(t *testing.T) {
		cfg := ConfigFor(Mode("BOGUS"), SlotState{Image1Set: true, Image2Set: true})
		assert.True(t, cfg.ButtonDisabled)
	})
}

func TestMissingInputError_Message(t *testing.T) {
	assert.Equal(t, "Please upload both a Foreground and a Background image.", (&MissingInputError{Mode: ModeFuse}).Error())
	assert.Equal(t, "Please upload a Source Scene image.", (&MissingInputError{Mode: ModeExtend}).Error())
	assert.Equal(t, "Please upload both a Style Donor and a Target Scene image.", (&MissingInputError{Mode: ModeRemix}).Error())
}

func TestSlotReadError(t *testing.T) {
	err := &SlotReadError{Slot: Slot2, Err: ErrImageRead}
	assert.Equal(t, "Failed to read the second image.", err.Error())
	assert.ErrorIs(t, err, ErrImageRead)
}

func TestDescriptors(t *testing.T) {
	ds := Descriptors()
	require.Len(t, ds, 3)
	assert.Equal(t, ModeFuse, ds[0].Mode)

	ds[0].Label = "changed"
	d, ok := Describe(ModeFuse)
	require.True(t, ok)
	assert.Equal(t, "Fuse Model into Scene", d.Label, "コピーを返すので元は変わらない")
}
