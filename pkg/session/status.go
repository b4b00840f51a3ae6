package session

import "time"

// MessageInterval は生成中メッセージを切り替える間隔です。
const MessageInterval = 3 * time.Second

var loadingMessages = []string{
	"Weaving the threads of reality...",
	"Blending vibrant palettes...",
	"Casting realistic shadows...",
	"Fusing styles with AI magic...",
	"Perfecting the final composition...",
	"Holding the pose, adjusting the light...",
	"This can take a moment, artistry needs patience.",
}

// LoadingMessages は表示用メッセージの一覧を返します。
func LoadingMessages() []string {
	out := make([]string, len(loadingMessages))
	copy(out, loadingMessages)
	return out
}

// MessageAt は経過時間に対応するメッセージを返します。interval ごとに次へ進み、末尾の次は先頭に戻ります。
func MessageAt(elapsed, interval time.Duration) string {
	if elapsed < 0 || interval <= 0 {
		return loadingMessages[0]
	}
	idx := int(elapsed/interval) % len(loadingMessages)
	return loadingMessages[idx]
}
