// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/deep-research/internal/cache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect or clear the summary cache",
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show summary cache statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cachePath(cmd)
		c := cache.Open(path, os.Stderr)
		fmt.Printf("Cache: %s\n", path)
		fmt.Printf("Entries: %d\n", c.Len())
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached summaries",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cachePath(cmd)
		c := cache.Open(path, os.Stderr)
		n := c.Len()
		if err := c.Clear(); err != nil {
			return err
		}
		fmt.Printf("Cleared %d cached entries\n", n)
		return nil
	},
}

func cachePath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("path"); path != "" {
		return path
	}
	return loadConfig().Cache.Path
}

func init() {
	cacheCmd.PersistentFlags().String("path", "", "cache file path (default from config)")

	cacheCmd.AddCommand(cacheStatsCmd)
	cacheCmd.AddCommand(cacheClearCmd)

	rootCmd.AddCommand(cacheCmd)
}
