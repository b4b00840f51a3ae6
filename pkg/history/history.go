// Package history は生成結果の線形な undo/redo バッファです。
// すべての操作は値を返す純粋な変換で、レシーバのスライスを共有しません。
package history

import "slices"

// History は (Past, Present, Future) の三つ組です。
// Past は古い順、Future は近い順に並びます。Present の "" は結果なしを表します。
type History struct {
	Past    []string
	Present string
	Future  []string
}

// Empty は空の履歴を返します。
func Empty() History {
	return History{}
}

// Push は現在の結果を Past に積み、新しい結果を Present にして Future を捨てます。
// Present が空でも Past に積むのだ。
func (h History) Push(result string) History {
	past := make([]string, 0, len(h.Past)+1)
	past = append(past, h.Past...)
	past = append(past, h.Present)
	return History{
		Past:    past,
		Present: result,
		Future:  []string{},
	}
}

// Undo は Past の末尾を Present に戻します。Past が空なら何もしない。
func (h History) Undo() History {
	if len(h.Past) == 0 {
		return h
	}
	last := len(h.Past) - 1
	future := make([]string, 0, len(h.Future)+1)
	future = append(future, h.Present)
	future = append(future, h.Future...)
	return History{
		Past:    slices.Clone(h.Past[:last]),
		Present: h.Past[last],
		Future:  future,
	}
}

// Redo は Undo の逆です。Future が空なら何もしない。
func (h History) Redo() History {
	if len(h.Future) == 0 {
		return h
	}
	past := make([]string, 0, len(h.Past)+1)
	past = append(past, h.Past...)
	past = append(past, h.Present)
	return History{
		Past:    past,
		Present: h.Future[0],
		Future:  slices.Clone(h.Future[1:]),
	}
}

// Reset は空の履歴を返します。モード変更や再アップロード時に使います。
func (h History) Reset() History {
	return Empty()
}

// CanUndo は戻せる過去の結果があるかを返します。
func (h History) CanUndo() bool { return len(h.Past) > 0 }

// CanRedo はやり直せる結果があるかを返します。
func (h History) CanRedo() bool { return len(h.Future) > 0 }

// IsEmpty は一度も結果が積まれていない状態かどうかを返します。
func (h History) IsEmpty() bool {
	return len(h.Past) == 0 && h.Present == "" && len(h.Future) == 0
}
