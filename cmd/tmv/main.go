package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/log"
	json "github.com/goccy/go-json"
	"golang.org/x/sync/errgroup"

	"github.com/HumyZ/treemap-visualiser/pkg/agents"
	"github.com/HumyZ/treemap-visualiser/pkg/config"
	"github.com/HumyZ/treemap-visualiser/pkg/drift"
	"github.com/HumyZ/treemap-visualiser/pkg/export"
	"github.com/HumyZ/treemap-visualiser/pkg/layout"
	"github.com/HumyZ/treemap-visualiser/pkg/stats"
	"github.com/HumyZ/treemap-visualiser/pkg/tree"
	"github.com/HumyZ/treemap-visualiser/pkg/ui"
)

// version is stamped by the release workflow via -ldflags.
var version = "dev"

func main() {
	fsRoot := flag.String("fs", "", "Visualise a filesystem subtree rooted at this directory")
	population := flag.String("population", "", "Visualise a population JSON file (array of {name, population})")
	depthFlag := flag.Int("depth", -1, "Layout depth limit, 0 = down to the leaves (overrides config)")
	themeFlag := flag.String("theme", "", "Palette name: terrain, ocean, solarized, greyscale, or a config theme")
	watch := flag.Bool("watch", false, "Rebuild and redraw when the dataset changes on disk")
	gitignore := flag.Bool("gitignore", false, "Extend the ignore list with base-name patterns from ROOT/.gitignore")
	exportSVG := flag.String("export-svg", "", "Write the treemap as SVG to this file and exit")
	exportPNG := flag.String("export-png", "", "Write the treemap as PNG to this file and exit")
	exportMD := flag.String("export-md", "", "Write a Markdown report to this file and exit")
	width := flag.Int("width", 0, "Canvas width: cells for --robot-layout (default 80), pixels for image exports (default 1200)")
	height := flag.Int("height", 0, "Canvas height: cells for --robot-layout (default 24), pixels for image exports (default 800)")
	robotHelp := flag.Bool("robot-help", false, "Show the agent-facing usage text")
	robotTree := flag.Bool("robot-tree", false, "Output the weighted tree as JSON")
	robotLayout := flag.Bool("robot-layout", false, "Output computed placements as JSON (use --width/--height)")
	robotStats := flag.Bool("robot-stats", false, "Output the leaf-weight distribution as JSON")
	robotDrift := flag.Bool("robot-drift", false, "Output drift between two builds as JSON (use --drift-interval)")
	checkDrift := flag.Bool("check-drift", false, "Build twice and compare (exit codes: 0=clean, 2=warning, 1=critical)")
	driftInterval := flag.Duration("drift-interval", time.Second, "Delay between the two builds compared by the drift checks")
	versionFlag := flag.Bool("version", false, "Show version")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           log.WarnLevel,
	})
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}
	log.SetDefault(logger)

	if *versionFlag {
		fmt.Printf("tmv %s\n", version)
		os.Exit(0)
	}

	if *robotHelp {
		fmt.Println(agents.Blurb())
		os.Exit(0)
	}

	envRobot, envTest := agents.SuppressFromEnv()
	headless := agents.ShouldSuppressTTY(os.Args, envRobot, envTest)

	cfg := loadConfig()
	if *themeFlag != "" {
		cfg.Theme = *themeFlag
	}
	palette, ok := config.PaletteByName(cfg.Theme, cfg.Themes)
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown theme %q (built in: terrain, ocean, solarized, greyscale)\n", cfg.Theme)
		os.Exit(1)
	}
	maxDepth := cfg.Depth
	if *depthFlag >= 0 {
		maxDepth = *depthFlag
	}

	source, haveSource, err := datasetFromFlags(*fsRoot, *population, flag.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if !haveSource {
		if headless || !agents.IsInteractive(os.Stdout) {
			fmt.Fprintln(os.Stderr, "A dataset is required: --fs DIR, --population FILE, or a positional path.")
			fmt.Println(agents.Blurb())
			os.Exit(1)
		}
		source, err = promptSource()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	if *gitignore && source.Kind == tree.KindFilesystem {
		cfg.Ignore = append(cfg.Ignore, tree.GitignorePatterns(source.Path)...)
	}

	root, err := source.Build(tree.WithIgnore(cfg.Ignore...))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", source.Path, err)
		os.Exit(1)
	}
	log.Debug("dataset loaded", "kind", source.Kind, "nodes", root.Count(), "total", root.Weight)

	if *robotTree {
		output := struct {
			GeneratedAt string      `json:"generated_at"`
			Source      tree.Source `json:"source"`
			TotalWeight int64       `json:"total_weight"`
			Nodes       int         `json:"nodes"`
			Depth       int         `json:"depth"`
			Valid       bool        `json:"valid"`
			Tree        *tree.Node  `json:"tree"`
		}{
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			Source:      source,
			TotalWeight: root.Weight,
			Nodes:       root.Count(),
			Depth:       root.Depth(),
			Valid:       root.Validate() == nil,
			Tree:        root,
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding tree: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if *robotLayout {
		w, h := *width, *height
		if w <= 0 {
			w = 80
		}
		if h <= 0 {
			h = 24
		}
		placements := layout.Compute(root, layout.Rect{W: float64(w), H: float64(h)}, maxDepth)
		out := make([]placementJSON, 0, len(placements))
		for _, p := range placements {
			out = append(out, placementJSON{
				Path:   p.Node.Path,
				Weight: p.Node.Weight,
				X:      p.Rect.X,
				Y:      p.Rect.Y,
				W:      p.Rect.W,
				H:      p.Rect.H,
				Depth:  p.Depth,
				Index:  p.Index,
				Leaf:   p.Leaf,
			})
		}
		output := struct {
			GeneratedAt string          `json:"generated_at"`
			Width       int             `json:"width"`
			Height      int             `json:"height"`
			Placements  []placementJSON `json:"placements"`
		}{
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			Width:       w,
			Height:      h,
			Placements:  out,
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding layout: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if *robotStats {
		output := struct {
			GeneratedAt string        `json:"generated_at"`
			Source      tree.Source   `json:"source"`
			Stats       stats.Summary `json:"stats"`
		}{
			GeneratedAt: time.Now().UTC().Format(time.RFC3339),
			Source:      source,
			Stats:       stats.Collect(root),
		}
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(output); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding stats: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	if *robotDrift || *checkDrift {
		log.Debug("rebuilding for drift comparison", "interval", *driftInterval)
		time.Sleep(*driftInterval)
		after, err := source.Build(tree.WithIgnore(cfg.Ignore...))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error rebuilding %s: %v\n", source.Path, err)
			os.Exit(1)
		}
		result := drift.Compare(root, after)

		if *robotDrift {
			output := struct {
				GeneratedAt string        `json:"generated_at"`
				Source      tree.Source   `json:"source"`
				Drift       *drift.Result `json:"drift"`
			}{
				GeneratedAt: time.Now().UTC().Format(time.RFC3339),
				Source:      source,
				Drift:       result,
			}
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(output); err != nil {
				fmt.Fprintf(os.Stderr, "Error encoding drift: %v\n", err)
				os.Exit(1)
			}
		} else {
			fmt.Println(result.Summary())
		}
		os.Exit(result.ExitCode())
	}

	if *exportSVG != "" || *exportPNG != "" || *exportMD != "" {
		imgW, imgH := *width, *height
		if imgW <= 0 {
			imgW = 1200
		}
		if imgH <= 0 {
			imgH = 800
		}

		var g errgroup.Group
		if *exportSVG != "" {
			path := *exportSVG
			g.Go(func() error {
				return exportSVGFile(path, root, imgW, imgH, maxDepth, palette)
			})
		}
		if *exportPNG != "" {
			path := *exportPNG
			g.Go(func() error {
				return export.WritePNG(path, root, imgW, imgH, maxDepth, palette)
			})
		}
		if *exportMD != "" {
			path := *exportMD
			g.Go(func() error {
				return exportMarkdownFile(path, root)
			})
		}
		if err := g.Wait(); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
			os.Exit(1)
		}
		for _, path := range []string{*exportSVG, *exportPNG, *exportMD} {
			if path != "" {
				fmt.Printf("Wrote %s\n", path)
			}
		}
		os.Exit(0)
	}

	if headless || !agents.IsInteractive(os.Stdout) {
		fmt.Fprintln(os.Stderr, "Stdout is not a terminal; use the robot flags instead of the TUI.")
		fmt.Println(agents.Blurb())
		os.Exit(1)
	}

	m := ui.New(root, source, ui.Options{
		Theme:         palette,
		Palettes:      availablePalettes(cfg.Themes),
		MaxDepth:      maxDepth,
		LabelMinWidth: cfg.LabelMinWidth,
		Ignore:        cfg.Ignore,
		Watching:      *watch,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if *watch {
		watcher, err := ui.NewWatcher(source, cfg.Ignore, p.Send)
		if err != nil {
			log.Warn("watch disabled", "error", err)
		} else {
			watcher.Start()
			defer watcher.Stop()
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running treemap: %v\n", err)
		os.Exit(1)
	}
}

// placementJSON is the --robot-layout wire shape: rectangles stay in
// float64 cell space so consumers can do their own rounding.
type placementJSON struct {
	Path   string  `json:"path"`
	Weight int64   `json:"weight"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	W      float64 `json:"w"`
	H      float64 `json:"h"`
	Depth  int     `json:"depth"`
	Index  int     `json:"index"`
	Leaf   bool    `json:"leaf"`
}

// loadConfig discovers the nearest .tmv.yaml; absence is not an error.
func loadConfig() *config.Config {
	cwd, err := os.Getwd()
	if err != nil {
		def := config.Default()
		return &def
	}
	path, err := config.Discover(cwd)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Warn("config discovery failed", "error", err)
		}
		def := config.Default()
		return &def
	}
	cfg, err := config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error in %s: %v\n", path, err)
		os.Exit(1)
	}
	log.Debug("config loaded", "path", path)
	return cfg
}

// datasetFromFlags resolves the dataset from --fs/--population or the
// positional form; ok is false when nothing was specified.
func datasetFromFlags(fsRoot, population string, args []string) (tree.Source, bool, error) {
	if fsRoot != "" && population != "" {
		return tree.Source{}, false, errors.New("--fs and --population are mutually exclusive")
	}
	if (fsRoot != "" || population != "") && len(args) > 0 {
		return tree.Source{}, false, fmt.Errorf("unexpected positional arguments: %s", strings.Join(args, " "))
	}
	if fsRoot != "" {
		return tree.Source{Kind: tree.KindFilesystem, Path: fsRoot}, true, nil
	}
	if population != "" {
		return tree.Source{Kind: tree.KindPopulation, Path: population}, true, nil
	}
	switch len(args) {
	case 0:
		return tree.Source{}, false, nil
	case 1:
		src, err := inferSource(args[0])
		return src, err == nil, err
	default:
		return tree.Source{}, false, fmt.Errorf("expected one dataset path, got %d", len(args))
	}
}

// inferSource maps a bare path to a dataset kind: directories are
// filesystem roots, .json files are population data, anything else is
// visualised as a single-file tree.
func inferSource(path string) (tree.Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return tree.Source{}, fmt.Errorf("reading %s: %w", path, err)
	}
	if !info.IsDir() && strings.EqualFold(filepath.Ext(path), ".json") {
		return tree.Source{Kind: tree.KindPopulation, Path: path}, nil
	}
	return tree.Source{Kind: tree.KindFilesystem, Path: path}, nil
}

// promptSource asks for a dataset when tmv is invoked bare on a TTY.
func promptSource() (tree.Source, error) {
	kind := string(tree.KindFilesystem)
	path := ""
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("What should tmv visualise?").
				Options(
					huh.NewOption("Filesystem subtree (weight = bytes)", string(tree.KindFilesystem)),
					huh.NewOption("Population JSON (weight = people)", string(tree.KindPopulation)),
				).
				Value(&kind),
			huh.NewInput().
				Title("Path").
				Placeholder(".").
				Value(&path),
		),
	)
	if err := form.Run(); err != nil {
		return tree.Source{}, err
	}
	if path == "" {
		path = "."
	}
	return tree.Source{Kind: tree.SourceKind(kind), Path: path}, nil
}

// availablePalettes lists user themes first, then the builtins they do
// not shadow, for the in-session picker.
func availablePalettes(user []config.Palette) []config.Palette {
	seen := make(map[string]bool, len(user))
	out := make([]config.Palette, 0, len(user)+4)
	for _, p := range user {
		seen[p.Name] = true
		out = append(out, p)
	}
	for _, p := range config.BuiltinPalettes() {
		if !seen[p.Name] {
			out = append(out, p)
		}
	}
	return out
}

func exportSVGFile(path string, root *tree.Node, width, height, maxDepth int, palette config.Palette) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := export.WriteSVG(f, root, width, height, maxDepth, palette); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func exportMarkdownFile(path string, root *tree.Node) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := export.WriteMarkdown(f, root, 10); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
