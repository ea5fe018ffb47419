// Package label 负责标签模板登记与单张标签内容（URL + 折行文本）的构建。
package label

import (
	"fmt"
	"sort"
)

// Template 描述一种实体标签纸：整页几何、网格、边距与排版参数。
// 所有长度单位为 mm，字号与 QR 文字间距单位为 pt。构建后不可变，整个运行
// 过程共享同一份。
type Template struct {
	// 整页与网格几何（mm）
	SheetWidth   float64
	SheetHeight  float64
	Columns      int
	Rows         int
	LabelWidth   float64
	LabelHeight  float64
	CornerRadius float64
	LeftMargin   float64
	RightMargin  float64
	TopMargin    float64
	LeftPad      float64
	RightPad     float64
	TopPad       float64
	BottomPad    float64
	RowGap       float64

	// 排版参数
	Font             string  // 字体标识，渲染器据此注册字体
	FontSrc          string  // TTF 文件路径，相对可执行文件目录解析
	FontSize         float64 // pt
	SubtextFontSize  float64 // pt，时间戳行使用
	TextLineMaxLen   int     // 每行最大字符数
	MaxTextLines     int     // 正文最大行数
	QRTextPad        float64 // QR 与文字之间的额外间距（pt）
	IncludeTimestamp bool    // 是否追加生成日期行
}

// Validate 校验模板自身的不变量：尺寸为正、行数预算至少为 1、网格须能放进
// 页边距之内。
func (t Template) Validate() error {
	dims := []struct {
		name  string
		value float64
	}{
		{"sheet width", t.SheetWidth},
		{"sheet height", t.SheetHeight},
		{"label width", t.LabelWidth},
		{"label height", t.LabelHeight},
		{"font size", t.FontSize},
		{"subtext font size", t.SubtextFontSize},
	}
	for _, d := range dims {
		if d.value <= 0 {
			return fmt.Errorf("template %s must be positive, got %g", d.name, d.value)
		}
	}
	if t.Columns <= 0 || t.Rows <= 0 {
		return fmt.Errorf("template grid must be positive, got %dx%d", t.Rows, t.Columns)
	}
	if t.MaxTextLines < 1 {
		return fmt.Errorf("template max text lines must be at least 1, got %d", t.MaxTextLines)
	}
	if t.TextLineMaxLen < 1 {
		return fmt.Errorf("template text line max length must be at least 1, got %d", t.TextLineMaxLen)
	}
	usableWidth := t.SheetWidth - t.LeftMargin - t.RightMargin
	if float64(t.Columns)*t.LabelWidth > usableWidth {
		return fmt.Errorf("template grid too wide: %d columns of %gmm exceed usable %gmm",
			t.Columns, t.LabelWidth, usableWidth)
	}
	gridHeight := float64(t.Rows)*t.LabelHeight + float64(t.Rows-1)*t.RowGap
	if t.TopMargin+gridHeight > t.SheetHeight {
		return fmt.Errorf("template grid too tall: %gmm from top margin exceeds sheet %gmm",
			t.TopMargin+gridHeight, t.SheetHeight)
	}
	return nil
}

// registry 为显式枚举的模板表，启动时解析一次，之后按值传递，不存在可变全局。
var registry = map[string]Template{
	// Avery 5160：Letter 纸，3 列 × 10 行，66 × 25.4 mm。
	"avery-5160": {
		SheetWidth:   215.9,
		SheetHeight:  279.4,
		Columns:      3,
		Rows:         10,
		LabelWidth:   66,
		LabelHeight:  25.4,
		CornerRadius: 2,
		LeftMargin:   5,
		RightMargin:  5,
		TopMargin:    13,
		LeftPad:      0,
		RightPad:     1,
		TopPad:       1,
		BottomPad:    1,
		RowGap:       0,

		Font:             "Roboto",
		FontSrc:          "RobotoMono-VariableFont_wght.ttf",
		FontSize:         9,
		SubtextFontSize:  6,
		TextLineMaxLen:   21,
		MaxTextLines:     4,
		QRTextPad:        3,
		IncludeTimestamp: true,
	},
	// Avery L7160：A4 纸，3 列 × 7 行，63.5 × 38.1 mm。
	"avery-l7160": {
		SheetWidth:   210,
		SheetHeight:  297,
		Columns:      3,
		Rows:         7,
		LabelWidth:   63.5,
		LabelHeight:  38.1,
		CornerRadius: 1.5,
		LeftMargin:   7.2,
		RightMargin:  7.2,
		TopMargin:    15.1,
		LeftPad:      0,
		RightPad:     1,
		TopPad:       1,
		BottomPad:    1,
		RowGap:       0,

		Font:             "Roboto",
		FontSrc:          "RobotoMono-VariableFont_wght.ttf",
		FontSize:         10,
		SubtextFontSize:  7,
		TextLineMaxLen:   24,
		MaxTextLines:     6,
		QRTextPad:        3,
		IncludeTimestamp: true,
	},
}

// Lookup 按名称解析模板。
func Lookup(name string) (Template, error) {
	tmpl, ok := registry[name]
	if !ok {
		return Template{}, fmt.Errorf("unknown label type %q (choose from %v)", name, Names())
	}
	return tmpl, nil
}

// Names 返回全部已登记的模板名，按字典序排列。
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
