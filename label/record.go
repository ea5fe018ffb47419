package label

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/ByLCY/qrlabel/wrap"
)

// LineBreak 为 caption 中强制换段的保留记号。
const LineBreak = "#%"

// Line 是一行待绘制文本及其字体与字号（pt）。
type Line struct {
	Text string
	Font string
	Size float64
}

// Record 是一张标签的全部内容：带 scheme 的 URL 与按阅读顺序排列的文本行。
// 构建完成后不再修改；渲染自下而上时由渲染侧倒序遍历，不在此处反转。
type Record struct {
	URL   string
	Lines []Line
}

// NewRecord 根据一对 (url, caption) 与模板约束构建标签内容。caption 先按
// LineBreak 切成段落片段并去除段尾空白，再交给 wrap.Fit 折行；两种折行策略
// 都满足不了行数预算时构建失败。时间戳行在行数检查之后追加，因此开启时间戳
// 的记录可能持有 MaxTextLines+1 行（沿用原有行为，见 DESIGN.md）。
func NewRecord(url, caption string, tmpl Template, breakAny bool, now time.Time) (*Record, error) {
	fragments := splitFragments(caption)

	broken, err := wrap.Fit(fragments, tmpl.TextLineMaxLen, tmpl.MaxTextLines, breakAny)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, caption)
	}

	lines := make([]Line, 0, len(broken)+1)
	for _, text := range broken {
		lines = append(lines, Line{Text: text, Font: tmpl.Font, Size: tmpl.FontSize})
	}
	if tmpl.IncludeTimestamp {
		lines = append(lines, Line{
			Text: now.Format("06-01-02"),
			Font: tmpl.Font,
			Size: tmpl.SubtextFontSize,
		})
	}

	return &Record{URL: url, Lines: lines}, nil
}

// splitFragments 按保留记号切段，每段右侧去空白。无记号时整个 caption 作为
// 单独一段处理。
func splitFragments(caption string) []string {
	parts := strings.Split(caption, LineBreak)
	fragments := make([]string, 0, len(parts))
	for _, part := range parts {
		fragments = append(fragments, strings.TrimRightFunc(part, unicode.IsSpace))
	}
	return fragments
}
