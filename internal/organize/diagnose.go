package organize

import (
	"imgtag/internal/config"
	"imgtag/internal/exifmeta"
	"imgtag/internal/fsx"
	"imgtag/internal/logging"
	"imgtag/internal/resolve"
)

// DiagOptions configure Diagnose. Metadata, Observer and Log may be nil.
type DiagOptions struct {
	SourceRoot           string
	Filter               fsx.ExtensionFilter
	ExtractDatesFromPath bool

	Metadata exifmeta.Reader
	Observer DiagObserver
	Log      *logging.Logger
}

// DiagReport lists the files Reorganize could not date on its own.
type DiagReport struct {
	Total  int
	Issues []string // paths, in enumeration order
}

// Diagnose flags every file that has no metadata timestamp and, when path
// extraction is enabled, no date in its path either.
//
// Diagnose never forces a year and never drops skip-prefixed segments: it
// reports what cannot be dated without those overrides. It fails only when
// the root cannot be enumerated.
func Diagnose(opts DiagOptions) (DiagReport, error) {
	log := opts.Log
	if log == nil {
		log = logging.Discard()
	}
	md := opts.Metadata
	if md == nil {
		md = exifmeta.Default()
	}
	obs := opts.Observer
	if obs == nil {
		obs = nopDiagObserver{}
	}

	files, err := fsx.Enumerate(opts.SourceRoot, opts.Filter, log)
	if err != nil {
		return DiagReport{}, err
	}

	policy := config.DefaultPolicy()
	policy.ExtractDatesFromPath = opts.ExtractDatesFromPath
	res := resolve.New(md, policy, log)

	report := DiagReport{Total: len(files)}
	for i, f := range files {
		if !res.Resolve(f.Path).Resolved() {
			report.Issues = append(report.Issues, f.Path)
		}
		obs.OnProgress(report.Total, i, len(report.Issues))
	}
	return report, nil
}
