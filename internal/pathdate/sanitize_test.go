package pathdate

import (
	"path/filepath"
	"testing"
	"time"
)

func TestSanitize(t *testing.T) {
	j := filepath.Join
	sep := string(filepath.Separator)

	tests := []struct {
		name     string
		path     string
		prefixes []string
		want     string
	}{
		{
			name:     "drops matching segment",
			path:     sep + j("lib", "manga-archive", "2013-05-17__forest.jpg"),
			prefixes: []string{"manga"},
			want:     sep + j("lib", "2013-05-17__forest.jpg"),
		},
		{
			name:     "case insensitive",
			path:     j("Photos", "MANGA_2019.01.01", "a.jpg"),
			prefixes: []string{"Manga"},
			want:     j("Photos", "a.jpg"),
		},
		{
			name:     "prefix must anchor at segment start",
			path:     j("lib", "my-manga", "a.jpg"),
			prefixes: []string{"manga"},
			want:     j("lib", "my-manga", "a.jpg"),
		},
		{
			name:     "empty set leaves path untouched",
			path:     j("lib", "manga", "a.jpg"),
			prefixes: nil,
			want:     j("lib", "manga", "a.jpg"),
		},
		{
			name:     "blank prefix ignored",
			path:     j("lib", "a.jpg"),
			prefixes: []string{"  "},
			want:     j("lib", "a.jpg"),
		},
		{
			name:     "several prefixes",
			path:     j("scans", "20190101", "comics", "tmp", "a.jpg"),
			prefixes: []string{"scans", "tmp"},
			want:     j("20190101", "comics", "a.jpg"),
		},
		{
			name:     "file name can be dropped too",
			path:     j("lib", "manga.jpg"),
			prefixes: []string{"manga"},
			want:     "lib",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.path, tt.prefixes)
			if got != tt.want {
				t.Errorf("Sanitize(%q, %v) = %q, want %q", tt.path, tt.prefixes, got, tt.want)
			}
		})
	}
}

func TestSanitize_ThenExtractFindsFileNameDate(t *testing.T) {
	path := string(filepath.Separator) + filepath.Join("lib", "manga-archive", "2013-05-17__forest.jpg")
	got, ok := Nearest(Extract(Sanitize(path, []string{"manga"})))
	if !ok {
		t.Fatal("expected a date after sanitizing")
	}
	if !got.Equal(time.Date(2013, 5, 17, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("got %v, want 2013-05-17", got)
	}
}

func TestSanitize_RemovesFalseMatch(t *testing.T) {
	path := filepath.Join("lib", "manga-20101010", "IMG.jpg")
	if dates := Extract(path); len(dates) != 1 {
		t.Fatalf("unsanitized path should yield one date, got %v", dates)
	}
	if dates := Extract(Sanitize(path, []string{"manga"})); len(dates) != 0 {
		t.Errorf("sanitized path should yield no date, got %v", dates)
	}
}
