package label

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// dataDelimiter 分隔命令行 data 记号中的 url 与 caption。
const dataDelimiter = "~"

// urlPattern 是宽松的 URL 形状校验：可选 scheme、至少一个域名点、可选路径。
// 只做语法检查，不做任何网络解析。
var urlPattern = regexp.MustCompile(`^(https?://)?(.+[^/.]+\.[^/.]+)(/?.+)?`)

// ParseData 将原始 data 记号解析为标签记录。每个记号必须恰好被一个分隔符切
// 成 (url, caption) 两段；URL 形状不合法即报错，缺少 scheme 时补上 https://。
func ParseData(tokens []string, tmpl Template, breakAny bool, now time.Time) ([]*Record, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("invalid data: at least one url%scaption token required", dataDelimiter)
	}

	records := make([]*Record, 0, len(tokens))
	for _, token := range tokens {
		fields := strings.Split(token, dataDelimiter)
		if len(fields) != 2 {
			return nil, fmt.Errorf("invalid data: %s", token)
		}

		url, err := NormalizeURL(fields[0])
		if err != nil {
			return nil, err
		}

		rec, err := NewRecord(url, fields[1], tmpl, breakAny, now)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// NormalizeURL 校验 URL 形状并在缺少 scheme 时补上默认的 https://。
func NormalizeURL(url string) (string, error) {
	m := urlPattern.FindStringSubmatch(url)
	if m == nil {
		return "", fmt.Errorf("invalid url: %s", url)
	}
	if m[1] == "" {
		return "https://" + url, nil
	}
	return url, nil
}
