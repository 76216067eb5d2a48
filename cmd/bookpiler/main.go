package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/isg32/bookpiler/internal/assemble"
	"github.com/isg32/bookpiler/internal/config"
	"github.com/isg32/bookpiler/internal/order"
	"github.com/isg32/bookpiler/internal/render"
)

func main() {
	pick := flag.Bool("pick", false, "interactively choose one class/subject folder")
	format := flag.String("format", "", "output format override (docx or pdf)")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg := config.Load()
	if *format != "" {
		cfg.Format = *format
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	root := cfg.DataDir
	if *pick {
		chosen, err := chooseFolder(cfg.DataDir, os.Stdin, os.Stdout)
		if err != nil {
			log.Error("invalid selection", "error", err)
			os.Exit(1)
		}
		root = chosen
	}

	asm := assemble.New(cfg, log)
	res, err := asm.Run(root)
	if err != nil {
		log.Error("assembly failed", "error", err)
		os.Exit(1)
	}
	for _, d := range res.Diagnostics {
		log.Warn("skipped input", "kind", string(d.Kind), "path", d.Path, "key", d.Key, "reason", d.Message)
	}
	if len(res.Groups) == 0 {
		log.Warn("no chapters found, nothing to compile", "root", root)
		return
	}

	renderer, err := render.New(cfg.Format, render.Options{
		AssetDir: cfg.AssetDir,
		LogoPath: cfg.LogoPath,
	}, log)
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		log.Error("output directory", "error", err)
		os.Exit(1)
	}

	for _, group := range res.Groups {
		out, err := renderer.Render(group, cfg.OutputDir)
		if err != nil {
			log.Error("render failed", "class", group.Key.ClassID, "subject", group.Key.Subject, "error", err)
			continue
		}
		log.Info("book written", "path", out, "chapters", len(group.Chapters))
	}
}

// chooseFolder enumerates the class/subject folders under dataDir and asks
// the user to choose one: 0 means all (the whole data directory), 1..N a
// single folder. Anything else is an error and the run aborts.
func chooseFolder(dataDir string, in io.Reader, out io.Writer) (string, error) {
	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return "", fmt.Errorf("list %s: %w", dataDir, err)
	}
	var folders []string
	for _, e := range entries {
		if e.IsDir() {
			folders = append(folders, e.Name())
		}
	}
	if len(folders) == 0 {
		return dataDir, nil
	}
	sort.Slice(folders, func(i, j int) bool {
		return order.NaturalLess(folders[i], folders[j])
	})

	fmt.Fprintln(out, "  0) all folders")
	for i, name := range folders {
		fmt.Fprintf(out, "  %d) %s\n", i+1, name)
	}
	fmt.Fprint(out, "select folder: ")

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return "", fmt.Errorf("no selection read")
	}
	n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return "", fmt.Errorf("selection %q is not a number", scanner.Text())
	}
	if n == 0 {
		return dataDir, nil
	}
	if n < 1 || n > len(folders) {
		return "", fmt.Errorf("selection %d out of range 0..%d", n, len(folders))
	}
	return filepath.Join(dataDir, folders[n-1]), nil
}
