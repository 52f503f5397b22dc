package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strings"

	"go.uber.org/zap"

	"github.com/wolfe-labs/DU-Mesh-Transformer/internal/batch"
	"github.com/wolfe-labs/DU-Mesh-Transformer/internal/config"
	"github.com/wolfe-labs/DU-Mesh-Transformer/internal/document"
	"github.com/wolfe-labs/DU-Mesh-Transformer/internal/itemdb"
	"github.com/wolfe-labs/DU-Mesh-Transformer/internal/logger"
	"github.com/wolfe-labs/DU-Mesh-Transformer/internal/texture"
	"github.com/wolfe-labs/DU-Mesh-Transformer/internal/transform"
)

func main() {
	configFile := flag.String("config", "", "Path to dumesh.yaml config file")
	input := flag.String("input", "", "Input scene export (.glb or .gltf), or a directory with -batch")
	output := flag.String("output", "", "Output file (default: <input>_fixed.glb), or directory with -batch")
	gameDir := flag.String("game", "", "Game data directory (default: $GAME_PATH)")
	items := flag.String("items", "", "Path to items.json (default: <game>/items.json)")
	transforms := flag.String("transforms", "", "Comma-separated transform sequence")
	flat := flag.Bool("flat", false, "Reduce base-color textures to flat averaged colors")
	batchMode := flag.Bool("batch", false, "Convert every export in the input directory")
	workers := flag.Int("workers", 0, "Worker goroutines for -batch (default: NumCPU)")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")

	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	var transformList []string
	if *transforms != "" {
		transformList = strings.Split(*transforms, ",")
	}
	cfg.Resolve(config.Flags{
		DataDir:    *gameDir,
		ItemTable:  *items,
		FlatColors: *flat,
		Transforms: transformList,
		LogLevel:   *logLevel,
	})
	if cfg.Convert.SwapUpAxis && cfg.Convert.Transforms[0] != "swapaxis" {
		cfg.Convert.Transforms = append([]string{"swapaxis"}, cfg.Convert.Transforms...)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Log.Fatal("invalid configuration", zap.Error(err))
	}
	if *input == "" {
		logger.Log.Fatal("no input given (use -input)")
	}

	table, err := itemdb.Load(cfg.Game.ItemTable)
	if err != nil {
		logger.Log.Fatal("loading item table", zap.Error(err))
	}
	logger.Log.Info("item table loaded",
		zap.String("path", cfg.Game.ItemTable),
		zap.Int("materials", table.Len()))

	if *batchMode {
		runBatch(cfg, table, *input, *output, *workers)
		return
	}

	out := *output
	if out == "" {
		out = strings.TrimSuffix(*input, ".glb")
		out = strings.TrimSuffix(out, ".gltf")
		out += "_fixed.glb"
	}
	if err := convertOne(cfg, table, *input, out); err != nil {
		logger.Log.Fatal("conversion failed", zap.Error(err))
	}
	logger.Log.Info("conversion complete", zap.String("output", out))
}

func convertOne(cfg *config.Config, table *itemdb.Table, input, output string) error {
	doc, err := document.Open(input)
	if err != nil {
		return err
	}

	pipeline, err := transform.New(cfg.Convert.Transforms)
	if err != nil {
		return err
	}

	obs := transform.ZapObserver{Log: logger.Log}
	resolver := texture.NewResolver(doc, cfg.Game.DataDir, cfg.Convert.FlatColors)
	resolver.Notify = obs.Texture

	state := &transform.State{
		Doc:      doc,
		Items:    table,
		Resolver: resolver,
		Convert:  cfg.Convert,
		Observer: obs,
	}
	if err := pipeline.Run(state); err != nil {
		return err
	}

	return document.Save(doc, output)
}

func runBatch(cfg *config.Config, table *itemdb.Table, inputDir, outputDir string, workers int) {
	if outputDir == "" {
		outputDir = inputDir + "-fixed"
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		logger.Log.Fatal("creating output directory", zap.Error(err))
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	files, err := batch.Discover(inputDir)
	if err != nil {
		logger.Log.Fatal("listing exports", zap.Error(err))
	}
	if len(files) == 0 {
		logger.Log.Fatal("no .glb/.gltf files found", zap.String("dir", inputDir))
	}

	results := batch.Run(batch.Config{
		Items:     table,
		DataDir:   cfg.Game.DataDir,
		OutputDir: outputDir,
		Convert:   cfg.Convert,
		Workers:   workers,
	}, files)

	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
			logger.Log.Error("conversion failed",
				zap.String("input", r.Input),
				zap.String("error", r.Error))
		}
	}

	manifest := outputDir + "/manifest.json"
	if err := batch.WriteManifest(manifest, results); err != nil {
		logger.Log.Error("writing manifest", zap.Error(err))
	}

	logger.Log.Info("batch complete",
		zap.Int("converted", len(results)-failed),
		zap.Int("failed", failed))
	if failed > 0 {
		os.Exit(1)
	}
}
