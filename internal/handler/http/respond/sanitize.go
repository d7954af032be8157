package respond

import (
	"regexp"
)

var (
	// URL 形式 DSN のパスワード
	dbPasswordPattern = regexp.MustCompile(`://([^:/@]+):([^@]+)@`)

	// key=value 形式 DSN のパスワード
	kvPasswordPattern = regexp.MustCompile(`(?i)(password\s*=\s*)('[^']*'|\S+)`)
)

// SanitizeError はジャンルを問わず接続情報内のパスワードをマスクしたエラーメッセージを返す
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = dbPasswordPattern.ReplaceAllString(msg, "://$1:****@")
	msg = kvPasswordPattern.ReplaceAllString(msg, "${1}****")

	return msg
}
