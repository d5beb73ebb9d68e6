package cmd

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"imgtag/internal/exifmeta"
	"imgtag/internal/fsx"
	"imgtag/internal/logging"
	"imgtag/internal/organize"
)

const timeLayout = "2006-01-02 15:04:05"

// newDiagCmd creates the diag subcommand.
func newDiagCmd(g *globalFlags, md exifmeta.Reader) *cobra.Command {
	var (
		noExtract bool
		exts      []string
		showTimes bool
	)

	cmd := &cobra.Command{
		Use:   "diag <src-dir>",
		Short: "List photos that reorganize could not date",
		Long: `List every photo under <src-dir> that has no EXIF capture time and, unless
--no-extract-date-from-path is set, no date in its path either.

diag never applies --year or --skip-dir: it reports what cannot be dated
without those overrides.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd, g)
			if err != nil {
				return err
			}
			defer sess.close()

			s := sess.settings
			applyExtractFlag(cmd, s, noExtract)
			applyExtensions(cmd, s, exts)

			src := args[0]
			sess.log.Info("Run %s: diag %s", sess.runID, src)

			bar := newProgressLine(cmd.ErrOrStderr(), "Scanning", sess.color)
			report, err := organize.Diagnose(organize.DiagOptions{
				SourceRoot:           src,
				Filter:               s.Filter(),
				ExtractDatesFromPath: s.ExtractDatesFromPath,
				Metadata:             md,
				Observer:             diagProgress{bar},
				Log:                  sess.log,
			})
			bar.finish()
			if err != nil {
				return err
			}

			printDiagReport(cmd.OutOrStdout(), logging.NewRenderer(cmd.OutOrStdout(), sess.color), report, showTimes, sess.log)
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVar(&noExtract, "no-extract-date-from-path", false, "do not count dates found in paths")
	f.StringSliceVar(&exts, "ext", nil, "file extensions to include, e.g. jpg,heic (default: common photo formats)")
	f.BoolVar(&showTimes, "show-times", false, "print filesystem times next to each file as a dating hint")
	return cmd
}

func printDiagReport(w io.Writer, r *lipgloss.Renderer, report organize.DiagReport, showTimes bool, log *logging.Logger) {
	for _, path := range report.Issues {
		if !showTimes {
			fmt.Fprintln(w, path)
			continue
		}
		ft, err := fsx.Times(path)
		if err != nil {
			log.Warn("Cannot stat %s: %v", path, err)
			fmt.Fprintln(w, path)
			continue
		}
		hint := "modified " + ft.Mod.Format(timeLayout)
		if ft.HasBirth() {
			hint += ", created " + ft.Birth.Format(timeLayout)
		}
		fmt.Fprintf(w, "%s\t(%s)\n", path, hint)
	}

	summary := fmt.Sprintf("%d of %d files have no date", len(report.Issues), report.Total)
	style := r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	if len(report.Issues) > 0 {
		style = r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w, style.Render(summary))
}
