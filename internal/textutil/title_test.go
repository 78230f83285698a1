package textutil_test

import (
	"testing"

	"presskit/internal/textutil"
)

func TestTitleFromFilename(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"/music/midnight_run.wav", "Midnight Run"},
		{"/music/07 - harbor-lights.flac", "07 Harbor Lights"},
		{"intro.wav", "Intro"},
		{"/music/already titled.m4a", "Already Titled"},
		{"/music/st.elsewhere.wav", "St Elsewhere"},
		{"...", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := textutil.TitleFromFilename(tc.path); got != tc.want {
			t.Errorf("TitleFromFilename(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestCleanList(t *testing.T) {
	got := textutil.CleanList([]string{" Ambient ", "", "Electronic", "  "})
	if len(got) != 2 || got[0] != "Ambient" || got[1] != "Electronic" {
		t.Fatalf("unexpected cleaned list: %v", got)
	}
}
