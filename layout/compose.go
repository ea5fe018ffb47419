// Package layout 把单条标签记录排进一个单元格：计算 QR 图元与每行文本的
// 坐标，并在产出任何图元之前校验整块内容不越界。
package layout

import (
	"fmt"

	"github.com/ByLCY/qrlabel/label"
)

const (
	// glyphMargin 让 QR 在其分配的正方形内略微收缩，避免贴到单元格边缘。
	glyphMargin = 1.1
	// glyphAdvance 决定文本块越过 QR 区域的横向起点（乘以单元格高度）。
	glyphAdvance = 1.01
)

// 文本块的固定间距（pt 换算为 mm）：首行基线距底边的内缩与行间距。
var (
	baselineInset = ToMm(3)
	lineSpacing   = ToMm(3)
)

// Measurer 度量一行文本的渲染尺寸（mm）。渲染器以真实字体实现；测试用桩。
type Measurer interface {
	TextSize(content, font string, sizePt float64) (w, h float64, err error)
}

// Plan 是一张标签在单元格内的全部定位图元。坐标原点为单元格左下角，单位 mm。
type Plan struct {
	Glyph Glyph
	Texts []Text
}

// Glyph 描述 QR 图元：边长 Side 的正方形，X/Y 为其左下角。
type Glyph struct {
	X, Y, Side float64
}

// Text 是一行定位完成的文本，Y 为基线高度。
type Text struct {
	Content string
	Font    string
	Size    float64 // pt
	X, Y    float64 // mm
}

// BoundsError 表示排好的内容超出了单元格的物理边界。这类错误说明折行约束
// 与实际字体度量不一致，必须中止整个任务，绝不能静默裁剪。
type BoundsError struct {
	URL      string
	Axis     string // "width" 或 "height"
	Measured float64
	Limit    float64
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("label %s exceeds cell %s: %.2fmm > %.2fmm", e.URL, e.Axis, e.Measured, e.Limit)
}

// Compose 为一条记录计算单元格内的图元位置。width/height 为内容区尺寸，
// padMM 为 QR 与文本之间的额外间距（已换算为 mm）。
//
// QR 占据单元格前缘一个边长等于单元格高度的方区，按 glyphMargin 收缩后居中；
// 文本行从底边上方 baselineInset 处自下而上堆叠，记录按倒序遍历，使第一行
// 文本落在最上方。任何一侧放不下都返回 *BoundsError。
func Compose(rec *label.Record, width, height, padMM float64, m Measurer) (*Plan, error) {
	if rec == nil {
		return nil, fmt.Errorf("layout: record is nil")
	}

	side := height / glyphMargin
	plan := &Plan{
		Glyph: Glyph{
			X:    (height - side) / 2,
			Y:    (height - side) / 2,
			Side: side,
		},
	}

	textX := height*glyphAdvance + padMM
	y := baselineInset
	widest := 0.0
	for i := len(rec.Lines) - 1; i >= 0; i-- {
		line := rec.Lines[i]
		if line.Text == "" {
			continue
		}
		w, h, err := m.TextSize(line.Text, line.Font, line.Size)
		if err != nil {
			return nil, fmt.Errorf("measure %q: %w", line.Text, err)
		}
		plan.Texts = append(plan.Texts, Text{
			Content: line.Text,
			Font:    line.Font,
			Size:    line.Size,
			X:       textX,
			Y:       y,
		})
		if w > widest {
			widest = w
		}
		y += h + lineSpacing
	}

	if limit := width - textX; widest > limit {
		return nil, &BoundsError{URL: rec.URL, Axis: "width", Measured: widest, Limit: limit}
	}
	if blockTop := y - lineSpacing; len(plan.Texts) > 0 && blockTop > height {
		return nil, &BoundsError{URL: rec.URL, Axis: "height", Measured: blockTop, Limit: height}
	}
	return plan, nil
}
