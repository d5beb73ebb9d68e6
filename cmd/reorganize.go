package cmd

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"imgtag/internal/exifmeta"
	"imgtag/internal/logging"
	"imgtag/internal/organize"
)

// newReorganizeCmd creates the reorganize subcommand.
func newReorganizeCmd(g *globalFlags, md exifmeta.Reader) *cobra.Command {
	var (
		noExtract bool
		year      int
		skipDirs  []string
		exts      []string
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "reorganize <src-dir> <dest-dir>",
		Short: "Copy photos into <dest-dir>/<year>/<month>/<date>__<name>",
		Long: `Copy every photo under <src-dir> into a dated tree under <dest-dir>.

A file is dated by its EXIF capture time. Without one it gets January 1st of
--year when given, otherwise the date nearest to the file name found in its
path. Files that still have no date are left alone.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd, g)
			if err != nil {
				return err
			}
			defer sess.close()

			s := sess.settings
			applyExtractFlag(cmd, s, noExtract)
			applyExtensions(cmd, s, exts)
			if cmd.Flags().Changed("year") {
				s.Year = year
			}
			if cmd.Flags().Changed("skip-dir") {
				s.SkipDirNames = skipDirs
			}
			if err := s.Validate(); err != nil {
				return err
			}

			src, dst := args[0], args[1]
			sess.log.Info("Run %s: reorganize %s -> %s", sess.runID, src, dst)

			bar := newProgressLine(cmd.ErrOrStderr(), "Copying", sess.color)
			report, err := organize.Reorganize(organize.ReorganizeOptions{
				SourceRoot: src,
				DestRoot:   dst,
				Filter:     s.Filter(),
				Policy:     s.Policy(),
				Metadata:   md,
				Observer:   bar,
				Log:        sess.log,
				DryRun:     dryRun,
			})
			bar.finish()
			if err != nil && !errors.Is(err, organize.ErrProcessingFailed) {
				return err
			}

			printReorganizeReport(cmd.OutOrStdout(), logging.NewRenderer(cmd.OutOrStdout(), sess.color), src, dst, report, dryRun)
			if err != nil {
				return fmt.Errorf("%d of %d files failed: %w", len(report.Failed), report.Seen, err)
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVar(&noExtract, "no-extract-date-from-path", false, "never date files from their path")
	f.IntVar(&year, "year", 0, "date files without EXIF to January 1st of this year")
	f.StringSliceVar(&skipDirs, "skip-dir", nil, "ignore path segments starting with this prefix when reading dates from paths (repeatable)")
	f.StringSliceVar(&exts, "ext", nil, "file extensions to include, e.g. jpg,heic (default: common photo formats)")
	f.BoolVarP(&dryRun, "dry-run", "n", false, "show what would be copied without copying")
	return cmd
}

func printReorganizeReport(w io.Writer, r *lipgloss.Renderer, src, dst string, report organize.ReorganizeReport, dryRun bool) {
	bold := r.NewStyle().Bold(true)
	warn := r.NewStyle().Foreground(lipgloss.Color("11"))
	bad := r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	if report.Seen == 0 {
		fmt.Fprintf(w, "No files found in %s\n", src)
		return
	}

	if dryRun {
		for _, m := range report.Moves {
			fmt.Fprintf(w, "  %s\n", relOrSelf(src, m.Src))
			fmt.Fprintf(w, "    → %s\n", relOrSelf(dst, m.Dst))
		}
		fmt.Fprintf(w, "\n[DRY RUN] Would copy %s of %d files\n", bold.Render(fmt.Sprint(report.Copied)), report.Seen)
	} else {
		fmt.Fprintf(w, "Copied %s of %d files\n", bold.Render(fmt.Sprint(report.Copied)), report.Seen)
	}
	if report.Skipped > 0 {
		fmt.Fprintln(w, warn.Render(fmt.Sprintf("Skipped %d files without a date", report.Skipped)))
	}
	for _, f := range report.Failed {
		fmt.Fprintf(w, "%s %s: %v\n", bad.Render("FAILED"), f.Path, f.Err)
	}
}

func relOrSelf(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil {
		return rel
	}
	return path
}
