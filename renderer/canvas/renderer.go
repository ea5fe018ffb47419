package canvasrenderer

import (
	"bytes"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sync"

	qrcode "github.com/skip2/go-qrcode"
	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/pdf"

	"github.com/ByLCY/qrlabel/label"
	"github.com/ByLCY/qrlabel/layout"
	"github.com/ByLCY/qrlabel/renderer"
	"github.com/ByLCY/qrlabel/sheet"
)

const borderWidth = 0.2

// Renderer 基于 github.com/tdewolff/canvas 绘制标签并序列化为 PDF。
// 同时实现 layout.Measurer，供排版阶段用真实字体度量文本。
type Renderer struct {
	baseDir string
	border  bool

	fontMu   sync.Mutex
	sources  map[string]string // 字体标识 → TTF 路径
	families map[string]*canvas.FontFamily
}

var (
	_ renderer.Renderer = (*Renderer)(nil)
	_ layout.Measurer   = (*Renderer)(nil)
)

// Options 配置渲染器。
type Options struct {
	BaseDir string // 解析字体等资源路径的根目录
	Border  bool   // 是否勾出每个单元格的圆角边框（对版调试用）
}

// New 创建以 baseDir 为资源根目录的渲染器。
func New(baseDir string) *Renderer { return NewWithOptions(Options{BaseDir: baseDir}) }

// NewWithOptions 按 Options 创建渲染器。
func NewWithOptions(opts Options) *Renderer {
	return &Renderer{
		baseDir:  opts.BaseDir,
		border:   opts.Border,
		sources:  map[string]string{},
		families: map[string]*canvas.FontFamily{},
	}
}

// RegisterFont 以标识 name 登记一个 TTF 资源，相对路径基于 baseDir 解析。
// 字体在首次度量或绘制时才真正加载。
func (r *Renderer) RegisterFont(name, src string) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()
	r.sources[name] = src
}

// Render 逐页绘制全部记录并返回 PDF 字节。模板字体会自动登记。
func (r *Renderer) Render(tmpl label.Template, grid *sheet.Grid, records []*label.Record) ([]byte, renderer.Stats, error) {
	if grid == nil {
		return nil, renderer.Stats{}, fmt.Errorf("render: grid is nil")
	}
	if len(records) == 0 {
		return nil, renderer.Stats{}, fmt.Errorf("render: no records")
	}
	r.RegisterFont(tmpl.Font, tmpl.FontSrc)

	placements := grid.Place(len(records))
	pages := placements[len(placements)-1].Page
	cellW, cellH := grid.ContentSize()
	padMM := layout.ToMm(tmpl.QRTextPad)

	var buf bytes.Buffer
	writer := pdf.New(&buf, tmpl.SheetWidth, tmpl.SheetHeight, nil)
	idx := 0
	for page := 1; page <= pages; page++ {
		if page > 1 {
			writer.NewPage(tmpl.SheetWidth, tmpl.SheetHeight)
		}
		c := canvas.New(tmpl.SheetWidth, tmpl.SheetHeight)
		ctx := canvas.NewContext(c)

		if r.border {
			r.drawBorders(ctx, tmpl, grid)
		}

		for idx < len(records) && placements[idx].Page == page {
			plan, err := layout.Compose(records[idx], cellW, cellH, padMM, r)
			if err != nil {
				return nil, renderer.Stats{}, err
			}
			if err := r.drawLabel(ctx, placements[idx], plan, records[idx].URL); err != nil {
				return nil, renderer.Stats{}, err
			}
			idx++
		}
		c.RenderTo(writer)
	}

	if err := writer.Close(); err != nil {
		return nil, renderer.Stats{}, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), renderer.Stats{Labels: len(records), Pages: pages}, nil
}

// TextSize 实现 layout.Measurer。宽度为整行渲染宽度，高度取大写字母高度，
// 与自下而上的基线步进配合；二者单位均为 mm。
func (r *Renderer) TextSize(content, font string, sizePt float64) (float64, float64, error) {
	face, err := r.fontFace(font, sizePt)
	if err != nil {
		return 0, 0, err
	}
	metrics := face.Metrics()
	return face.TextWidth(content), metrics.CapHeight, nil
}

// drawLabel 在 pl 指定的单元格内绘制一个排版方案：先 QR，再逐行文本。
// 方案内坐标以单元格左下角为原点，经视图平移映射到页面。
func (r *Renderer) drawLabel(ctx *canvas.Context, pl sheet.Placement, plan *layout.Plan, url string) error {
	ctx.SetView(canvas.Identity.Translate(pl.X, pl.Y))
	defer ctx.ResetView()

	if err := r.drawGlyph(ctx, plan.Glyph, url); err != nil {
		return err
	}
	for _, txt := range plan.Texts {
		face, err := r.fontFace(txt.Font, txt.Size)
		if err != nil {
			return err
		}
		ctx.DrawText(txt.X, txt.Y, canvas.NewTextLine(face, txt.Content, canvas.Left))
	}
	return nil
}

// drawGlyph 将 QR 位图（含编码器自带的静区）均匀缩放进 Glyph 方区，逐模块
// 画实心矩形。
func (r *Renderer) drawGlyph(ctx *canvas.Context, glyph layout.Glyph, url string) error {
	code, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return fmt.Errorf("encode qr for %s: %w", url, err)
	}
	bitmap := code.Bitmap()
	n := len(bitmap)
	if n == 0 {
		return fmt.Errorf("encode qr for %s: empty bitmap", url)
	}
	module := glyph.Side / float64(n)

	ctx.SetFillColor(canvas.Black)
	ctx.SetStrokeColor(color.RGBA{0, 0, 0, 0})
	for row := range bitmap {
		for col, dark := range bitmap[row] {
			if !dark {
				continue
			}
			x := glyph.X + float64(col)*module
			y := glyph.Y + float64(n-1-row)*module
			ctx.DrawPath(x, y, canvas.Rectangle(module, module))
		}
	}
	return nil
}

func (r *Renderer) drawBorders(ctx *canvas.Context, tmpl label.Template, grid *sheet.Grid) {
	ctx.SetFillColor(color.RGBA{0, 0, 0, 0})
	ctx.SetStrokeColor(canvas.Hex("#bbbbbb"))
	ctx.SetStrokeWidth(borderWidth)
	for row := 1; row <= tmpl.Rows; row++ {
		for col := 1; col <= tmpl.Columns; col++ {
			x, y := grid.CellOrigin(sheet.Cell{Row: row, Col: col})
			ctx.DrawPath(x, y, canvas.RoundedRectangle(tmpl.LabelWidth, tmpl.LabelHeight, tmpl.CornerRadius))
		}
	}
}

func (r *Renderer) fontFace(name string, sizePt float64) (*canvas.FontFace, error) {
	family, err := r.ensureFontFamily(name)
	if err != nil {
		return nil, err
	}
	return family.Face(sizePt, canvas.Black, canvas.FontRegular, canvas.FontNormal), nil
}

func (r *Renderer) ensureFontFamily(name string) (*canvas.FontFamily, error) {
	r.fontMu.Lock()
	defer r.fontMu.Unlock()

	if family, ok := r.families[name]; ok {
		return family, nil
	}
	src, ok := r.sources[name]
	if !ok {
		return nil, fmt.Errorf("font %s not registered", name)
	}

	data, err := r.loadFontBytes(src)
	if err != nil {
		return nil, err
	}
	family := canvas.NewFontFamily(name)
	if err := family.LoadFont(data, 0, canvas.FontRegular); err != nil {
		return nil, fmt.Errorf("load font %s from %s: %w", name, src, err)
	}
	r.families[name] = family
	return family, nil
}

func (r *Renderer) loadFontBytes(src string) ([]byte, error) {
	path := src
	if !filepath.IsAbs(path) {
		path = filepath.Join(r.baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", src, err)
	}
	return data, nil
}
