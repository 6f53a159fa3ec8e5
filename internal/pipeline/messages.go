package pipeline

import "fmt"

// runMessages holds the user-facing log strings for one run, selected once at
// start from the run's locale.
type runMessages struct {
	optimizing string
	rendering  string
	success    string
	stopped    string
	ended      string
	started    string
}

var messagesByLocale = map[string]runMessages{
	"en": {
		started:    "🎬 Production initialized: %d scenes.",
		optimizing: "Optimization started...",
		rendering:  "Rendering image...",
		success:    "Success.",
		stopped:    "⚠️ Production stopped by user.",
		ended:      "✅ Process ended.",
	},
	"ko": {
		started:    "🎬 제작 시작: %d scenes.",
		optimizing: "프롬프트 최적화 중...",
		rendering:  "이미지 렌더링 중...",
		success:    "성공.",
		stopped:    "⚠️ 사용자에 의해 제작이 중지되었습니다.",
		ended:      "✅ 프로세스 종료.",
	},
}

func messagesFor(locale string) runMessages {
	if msgs, ok := messagesByLocale[locale]; ok {
		return msgs
	}
	return messagesByLocale["en"]
}

func sceneLog(number, msg string) string {
	return fmt.Sprintf("[Scene %s] %s", number, msg)
}
