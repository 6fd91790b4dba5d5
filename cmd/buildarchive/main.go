package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lightswitch/lightswitch/archive"
	"github.com/lightswitch/lightswitch/buildcache"
	"github.com/lightswitch/lightswitch/builder"
	"github.com/lightswitch/lightswitch/config"
	"github.com/lightswitch/lightswitch/encoding/strokes"
	"github.com/lightswitch/lightswitch/log"
	"github.com/lightswitch/lightswitch/normalize"
)

func main() {
	inputName := flag.String("i", "", "stroke dataset (.cbor or .json)")
	outputName := flag.String("o", "", "archive to write")
	incremental := flag.Bool("incremental", false, "reuse unchanged words from the existing archive")
	verify := flag.Bool("verify", false, "load every entry back and compare")
	workers := flag.Int64("j", builder.DefaultWorkers, "words normalized in parallel")
	flag.Parse()

	log.InitLog()
	if err := build(*inputName, *outputName, *incremental, *verify, *workers); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func build(inputName, outputName string, incremental, verify bool, workers int64) error {
	if inputName == "" {
		return errors.New("missing input file")
	}
	if outputName == "" {
		nameOnly := strings.TrimSuffix(inputName, filepath.Ext(inputName))
		outputName = nameOnly + "_vbuf.zip"
	}

	cfg, err := config.FromEnv()
	if err != nil {
		return err
	}

	words, err := strokes.ReadFile(inputName)
	if err != nil {
		return fmt.Errorf("can't read dataset %w", err)
	}

	var (
		prev  *archive.Zip
		cache *buildcache.Cache
	)
	if incremental {
		cachePath, err := buildcache.Path()
		if err != nil {
			return err
		}
		if cache, err = buildcache.Load(cachePath); err != nil {
			return err
		}
		abs, _ := filepath.Abs(outputName)
		if cache.Archive != abs {
			log.Info.Println("cache belongs to another archive, rebuilding")
			cache = buildcache.New(cachePath)
		}
		cache.Archive = abs

		if prev, err = archive.Open(outputName); err != nil {
			log.Info.Printf("no previous archive: %v", err)
			prev = nil
		}
	}

	opts := builder.Options{
		Normalize: normalize.Options{
			PressureScale: cfg.Normalize.PressureScale,
			Margin:        cfg.Normalize.Margin,
		},
		Workers: workers,
	}
	z, res, err := builder.Build(context.Background(), words, prev, cache, opts)
	if err != nil {
		return err
	}

	if err := z.WriteFile(outputName); err != nil {
		return fmt.Errorf("can't write archive %w", err)
	}
	if cache != nil {
		if err := cache.Save(); err != nil {
			return err
		}
	}

	digest, err := buildcache.HashEntries(z)
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d words (%d built, %d reused, %d skipped) sha256 %s\n",
		outputName, z.Len(), len(res.Built), len(res.Copied), len(res.Skipped), digest)
	for w, err := range res.Skipped {
		fmt.Printf("  skipped %s: %v\n", w, err)
	}

	if verify {
		written, err := archive.Open(outputName)
		if err != nil {
			return err
		}
		if bad := builder.Verify(written, words, opts.Normalize); len(bad) > 0 {
			return fmt.Errorf("verification failed for %s", strings.Join(bad, ", "))
		}
		fmt.Println("verified")
	}
	return nil
}
