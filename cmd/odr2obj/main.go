// odr2obj converts OpenFormats ODR assets into Wavefront OBJ and MTL files.
package main

import (
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"github.com/Faultbox/odr2obj/internal/config"
	"github.com/Faultbox/odr2obj/internal/convert"
	"github.com/Faultbox/odr2obj/internal/logger"
	"github.com/Faultbox/odr2obj/pkg/formats"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if path := config.WriteConfigPath(); path != "" {
		if err := cfg.SaveTo(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config written to %s\n", path)
		return
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== openformat to obj ===", zap.String("version", convert.FormatVersion))
	logger.Sugar.Debugf("Config: %+v", cfg)

	catalogPath := cfg.Convert.CatalogPath()
	catalog, err := formats.LoadCatalog(catalogPath)
	if err != nil {
		logger.Fatal("failed to load shader catalog", zap.String("path", catalogPath), zap.Error(err))
	}
	logger.Debug("shader catalog loaded", zap.String("path", catalogPath), zap.Int("presets", catalog.Len()))

	paths, err := doublestar.FilepathGlob(cfg.Convert.Pattern)
	if err != nil {
		logger.Fatal("invalid glob", zap.String("pattern", cfg.Convert.Pattern), zap.Error(err))
	}
	if len(paths) == 0 {
		logger.Warn("no files matching glob found", zap.String("pattern", cfg.Convert.Pattern))
		return
	}

	sum := convert.New(catalog, cfg.Convert).ConvertBatch(paths)
	logger.Info("done",
		zap.Int("converted", sum.Converted),
		zap.Int("skipped", sum.Skipped),
		zap.Int("ignored", sum.Ignored),
		zap.Int("failed", sum.Failed))
}
