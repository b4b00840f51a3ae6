package session

import (
	"github.com/shouni/chroma-weaver/pkg/domain"
	"github.com/shouni/chroma-weaver/pkg/history"
)

// State は UI が持つ状態のすべてです。Apply 以外で書き換えないこと。
type State struct {
	Mode    domain.Mode
	Image1  *domain.ImageAsset
	Image2  *domain.ImageAsset
	History history.History
	Loading bool
	Err     string

	// uploadTokens はスロットごとの最新アップロード番号。古い番号の結果は捨てる。
	uploadTokens [2]uint64
	// genToken は最新の生成番号。
	genToken uint64
	// staleGen 以下の番号の生成結果は履歴に積まない（モード変更や再アップロードで追い越された）。
	staleGen uint64
}

// NewState は初期状態を返します。
func NewState() State {
	return State{Mode: domain.DefaultMode, History: history.Empty()}
}

// Image は指定スロットの画像を返します。
func (s State) Image(slot domain.Slot) *domain.ImageAsset {
	if slot == domain.Slot2 {
		return s.Image2
	}
	return s.Image1
}

// Config は現在の状態から表示設定を導出します。キャッシュはしない。
func (s State) Config() domain.ModeConfig {
	return domain.ConfigFor(s.Mode, domain.SlotState{
		Image1Set: s.Image1 != nil,
		Image2Set: s.Image2 != nil,
		Loading:   s.Loading,
	})
}

// UploadToken は指定スロットの最新アップロード番号です。
func (s State) UploadToken(slot domain.Slot) uint64 {
	return s.uploadTokens[slotIndex(slot)]
}

// GenerationToken は最新の生成番号です。
func (s State) GenerationToken() uint64 {
	return s.genToken
}

// Event は状態遷移のきっかけです。
type Event interface {
	apply(State) State
}

// ModeChanged はモード切り替え。両スロットと履歴、エラーを空にします。
type ModeChanged struct {
	Mode domain.Mode
}

func (e ModeChanged) apply(s State) State {
	return State{
		Mode:         e.Mode,
		History:      s.History.Reset(),
		Loading:      s.Loading,
		uploadTokens: [2]uint64{s.uploadTokens[0] + 1, s.uploadTokens[1] + 1},
		genToken:     s.genToken,
		staleGen:     s.genToken,
	}
}

// UploadStarted はスロットの読み込み開始。新しいトークンを払い出します。
type UploadStarted struct {
	Slot domain.Slot
}

func (e UploadStarted) apply(s State) State {
	s.uploadTokens[slotIndex(e.Slot)]++
	return s
}

// UploadResolved は読み込み完了。トークンが古ければ無視します。
type UploadResolved struct {
	Slot  domain.Slot
	Token uint64
	Asset *domain.ImageAsset
}

func (e UploadResolved) apply(s State) State {
	if e.Token != s.UploadToken(e.Slot) {
		return s
	}
	if e.Slot == domain.Slot2 {
		s.Image2 = e.Asset
	} else {
		s.Image1 = e.Asset
	}
	s.History = s.History.Reset()
	s.Err = ""
	s.staleGen = s.genToken
	return s
}

// UploadFailed は読み込み失敗。トークンが古ければ無視します。
type UploadFailed struct {
	Slot  domain.Slot
	Token uint64
}

func (e UploadFailed) apply(s State) State {
	if e.Token != s.UploadToken(e.Slot) {
		return s
	}
	s.Err = (&domain.SlotReadError{Slot: e.Slot}).Error()
	return s
}

// GenerateStarted は生成開始。エラーを消して生成番号を進めます。
type GenerateStarted struct{}

func (GenerateStarted) apply(s State) State {
	s.Loading = true
	s.Err = ""
	s.genToken++
	return s
}

// GenerateSucceeded は生成成功。結果を履歴に積みます。
type GenerateSucceeded struct {
	Token   uint64
	DataURL string
}

func (e GenerateSucceeded) apply(s State) State {
	if e.Token != s.genToken {
		return s
	}
	s.Loading = false
	if e.Token <= s.staleGen {
		return s
	}
	s.Err = ""
	s.History = s.History.Push(e.DataURL)
	return s
}

// GenerateFailed は生成失敗。履歴は変えません。
type GenerateFailed struct {
	Token   uint64
	Message string
}

func (e GenerateFailed) apply(s State) State {
	if e.Token != s.genToken {
		return s
	}
	s.Loading = false
	if e.Token <= s.staleGen {
		return s
	}
	s.Err = e.Message
	return s
}

// InputRejected は通信前の検証エラーです。
type InputRejected struct {
	Message string
}

func (e InputRejected) apply(s State) State {
	s.Err = e.Message
	return s
}

type Undo struct{}

func (Undo) apply(s State) State {
	s.History = s.History.Undo()
	return s
}

type Redo struct{}

func (Redo) apply(s State) State {
	s.History = s.History.Redo()
	return s
}

// Apply はイベントを適用した新しい状態を返す純粋関数です。
func (s State) Apply(ev Event) State {
	return ev.apply(s)
}

func slotIndex(slot domain.Slot) int {
	if slot == domain.Slot2 {
		return 1
	}
	return 0
}
