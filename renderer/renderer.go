package renderer

import (
	"github.com/ByLCY/qrlabel/label"
	"github.com/ByLCY/qrlabel/sheet"
)

// Stats 汇总一次输出的结果：放置的标签数与用掉的页数。
type Stats struct {
	Labels int
	Pages  int
}

// Renderer 将一批标签记录按网格排版后输出为最终文件（例如 PDF 字节切片）。
// 任何一条记录越界都会使整次输出失败，不产生部分结果。
type Renderer interface {
	Render(tmpl label.Template, grid *sheet.Grid, records []*label.Record) ([]byte, Stats, error)
}
