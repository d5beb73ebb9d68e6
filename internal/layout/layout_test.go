package layout

import (
	"path/filepath"
	"testing"
	"time"

	"imgtag/internal/resolve"
)

func TestMonthName(t *testing.T) {
	tests := []struct {
		m    time.Month
		want string
	}{
		{time.January, "Январь"},
		{time.May, "Май"},
		{time.October, "Октябрь"},
		{time.December, "Декабрь"},
		{0, UnknownMonth},
		{13, UnknownMonth},
	}
	for _, tt := range tests {
		if got := MonthName(tt.m); got != tt.want {
			t.Errorf("MonthName(%d) = %q, want %q", tt.m, got, tt.want)
		}
	}
}

func TestDestination(t *testing.T) {
	root := filepath.Join("out", "photos")

	tests := []struct {
		name     string
		date     resolve.Date
		file     string
		wantDir  string
		wantFile string
	}{
		{
			name:     "full date and time",
			date:     resolve.Date{Time: time.Date(2020, 10, 10, 12, 9, 47, 0, time.Local), Precision: resolve.FullDateTime, Source: resolve.SourceMetadata},
			file:     "IMG_0001.jpg",
			wantDir:  filepath.Join(root, "2020", "Октябрь"),
			wantFile: filepath.Join(root, "2020", "Октябрь", "2020-10-10__12-09-47__IMG_0001.jpg"),
		},
		{
			name:     "date only",
			date:     resolve.Date{Time: time.Date(2019, 5, 27, 0, 0, 0, 0, time.UTC), Precision: resolve.DateOnly, Source: resolve.SourcePath},
			file:     "scan.png",
			wantDir:  filepath.Join(root, "2019", "Май"),
			wantFile: filepath.Join(root, "2019", "Май", "2019-05-27__scan.png"),
		},
		{
			name:     "forced year hides time of day",
			date:     resolve.Date{Time: resolve.ForcedTime(2014), Precision: resolve.DateOnly, Source: resolve.SourceForced},
			file:     "a.jpg",
			wantDir:  filepath.Join(root, "2014", "Январь"),
			wantFile: filepath.Join(root, "2014", "Январь", "2014-01-01__a.jpg"),
		},
		{
			name:     "four digit year is zero padded",
			date:     resolve.Date{Time: time.Date(987, 3, 1, 0, 0, 0, 0, time.UTC), Precision: resolve.DateOnly, Source: resolve.SourcePath},
			file:     "old.jpg",
			wantDir:  filepath.Join(root, "0987", "Март"),
			wantFile: filepath.Join(root, "0987", "Март", "0987-03-01__old.jpg"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Destination(root, tt.date, tt.file)
			if got.Dir != tt.wantDir {
				t.Errorf("Dir = %q, want %q", got.Dir, tt.wantDir)
			}
			if got.File != tt.wantFile {
				t.Errorf("File = %q, want %q", got.File, tt.wantFile)
			}
		})
	}
}

func TestDestination_Deterministic(t *testing.T) {
	d := resolve.Date{Time: time.Date(2021, 7, 4, 0, 0, 0, 0, time.UTC), Precision: resolve.DateOnly, Source: resolve.SourcePath}
	a := Destination("out", d, "x.jpg")
	b := Destination("out", d, "x.jpg")
	if a != b {
		t.Errorf("same input gave %v and %v", a, b)
	}
}
