// Package main is the entry point for the imgtag CLI.
//
// imgtag copies photos into a year/month tree named after their capture
// date:
//
//	<dest>/
//	├── 2019/
//	│   └── Май/
//	│       └── 2019-05-27__12-30-00__IMG_1234.jpg
//	└── 2020/
//	    └── Октябрь/
//	        └── 2020-10-10__scan.png
//
// Usage:
//
//	imgtag reorganize <src-dir> <dest-dir> [--year N] [--skip-dir PREFIX] [--dry-run]
//	imgtag diag <src-dir> [--show-times]
package main

import (
	"fmt"
	"os"

	"imgtag/cmd"
)

// Version information, injected at build time.
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	rootCmd := cmd.NewRootCmd()
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
