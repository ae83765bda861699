// Command btreedemo inserts sample integer data into a fresh B+Tree index
// and prints the results of a few lookups, the tree structure, and the
// buffer cache's hit/miss/eviction counters. It is the external demo
// driver spec.md §1 describes as out of the index's core scope.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"btreeindex/btree"
	"btreeindex/config"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file (data_path, cache_bytes)")
	count := flag.Int("n", 200, "number of sequential keys to insert (value = key*100)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			logger.Error("failed to load config", "path", *configPath, "err", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	logger.Info("opening index",
		"path", cfg.DataPath,
		"cache_bytes", humanize.Bytes(uint64(cfg.CacheBytes)))

	tree, err := btree.Open(cfg.DataPath, cfg.CacheBytes)
	if err != nil {
		logger.Error("open failed", "err", err)
		os.Exit(1)
	}
	defer tree.Close()

	for i := int64(1); i <= int64(*count); i++ {
		if err := tree.Insert(i, i*100); err != nil {
			logger.Error("insert failed", "key", i, "err", err)
			os.Exit(1)
		}
	}
	logger.Info("inserted sample data", "count", humanize.Comma(int64(*count)))

	for _, key := range []int64{1, int64(*count), int64(*count) + 1, 1500, 3000} {
		value, ok, err := tree.Search(key)
		if err != nil {
			logger.Error("search failed", "key", key, "err", err)
			os.Exit(1)
		}
		if ok {
			fmt.Printf("search(%d) = %d\n", key, value)
		} else {
			fmt.Printf("search(%d) = <absent>\n", key)
		}
	}

	fmt.Println()
	if err := tree.PrintTree(os.Stdout); err != nil {
		logger.Error("print tree failed", "err", err)
		os.Exit(1)
	}
	fmt.Println()
	if err := tree.PrintLeaves(os.Stdout); err != nil {
		logger.Error("print leaves failed", "err", err)
		os.Exit(1)
	}

	c := tree.Cache()
	fmt.Println()
	fmt.Printf("cache: hits=%s misses=%s evictions=%s hitRate=%.2f%%\n",
		humanize.Comma(int64(c.Hits())),
		humanize.Comma(int64(c.Misses())),
		humanize.Comma(int64(c.Evictions())),
		c.HitRate()*100)
}
