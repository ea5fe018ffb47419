package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ByLCY/qrlabel/label"
	"github.com/ByLCY/qrlabel/renderer"
	canvasrenderer "github.com/ByLCY/qrlabel/renderer/canvas"
	"github.com/ByLCY/qrlabel/sheet"
)

const outputName = "output.pdf"

// job 汇总一次运行的全部输入：模板、网格、已构建的标签记录与开关。解析一次
// 之后只读传递，不存在可变全局状态。
type job struct {
	tmpl    label.Template
	grid    *sheet.Grid
	records []*label.Record
	border  bool
}

func main() {
	breakAny := flag.Bool("break-on-any", false, "无条件按任意字符折行（跳过按词折行的尝试）")
	border := flag.Bool("border", false, "勾出每个标签单元格的边框，便于对版")
	flag.Usage = usage
	flag.Parse()

	j, err := parseJob(flag.Args(), *breakAny, *border)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n\n", err)
		flag.Usage()
		os.Exit(2)
	}

	stats, err := run(j)
	if err != nil {
		log.Fatalf("生成 PDF 失败: %v", err)
	}
	fmt.Printf("%d label(s) output on %d page(s).\n", stats.Labels, stats.Pages)
}

// parseJob 校验并装配命令行输入。这里报出的都是输入错误，调用方打印用法并
// 以状态码 2 退出。
func parseJob(args []string, breakAny, border bool) (*job, error) {
	if len(args) < 3 {
		return nil, fmt.Errorf("invalid data: expected label_type skip data...")
	}

	tmpl, err := label.Lookup(args[0])
	if err != nil {
		return nil, err
	}

	skip, err := strconv.Atoi(args[1])
	if err != nil {
		return nil, fmt.Errorf("invalid skip: %s", args[1])
	}
	grid, err := sheet.New(tmpl, skip)
	if err != nil {
		return nil, err
	}

	records, err := label.ParseData(args[2:], tmpl, breakAny, time.Now())
	if err != nil {
		return nil, err
	}

	return &job{tmpl: tmpl, grid: grid, records: records, border: border}, nil
}

// run 渲染全部标签并把 PDF 写到可执行文件同目录。渲染失败（越界、字体或
// QR 编码问题）属于内部一致性错误，整次运行中止，不写任何输出。
func run(j *job) (renderer.Stats, error) {
	exe, err := os.Executable()
	if err != nil {
		return renderer.Stats{}, fmt.Errorf("locate executable: %w", err)
	}
	baseDir := filepath.Dir(exe)

	var r renderer.Renderer = canvasrenderer.NewWithOptions(canvasrenderer.Options{
		BaseDir: baseDir,
		Border:  j.border,
	})
	data, stats, err := r.Render(j.tmpl, j.grid, j.records)
	if err != nil {
		return renderer.Stats{}, err
	}

	outPath := filepath.Join(baseDir, outputName)
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return renderer.Stats{}, fmt.Errorf("write %s: %w", outPath, err)
	}
	return stats, nil
}

func usage() {
	w := flag.CommandLine.Output()
	fmt.Fprintf(w, "用法: %s [flags] label_type skip data...\n\n", filepath.Base(os.Args[0]))
	fmt.Fprintf(w, "  label_type  标签纸型号，可选: %s\n", strings.Join(label.Names(), ", "))
	fmt.Fprintf(w, "  skip        第一页跳过的单元格数（0 表示整页可用）\n")
	fmt.Fprintf(w, "  data        url~文本，文本中可用 %s 强制换行，可给多条\n\n", label.LineBreak)
	flag.PrintDefaults()
}
