package youtube

import (
	"errors"
	"testing"
)

func TestParseChannelRef(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		wantKind refKind
		wantRef  string
		wantErr  bool
	}{
		{
			name:     "handle",
			url:      "https://www.youtube.com/@mkbhd",
			wantKind: refHandle,
			wantRef:  "mkbhd",
		},
		{
			name:     "handle with trailing path",
			url:      "https://www.youtube.com/@mkbhd/videos",
			wantKind: refHandle,
			wantRef:  "mkbhd",
		},
		{
			name:     "handle with query",
			url:      "https://www.youtube.com/@mkbhd?sub_confirmation=1",
			wantKind: refHandle,
			wantRef:  "mkbhd",
		},
		{
			name:     "direct channel id",
			url:      "https://www.youtube.com/channel/UCBJycsmduvYEL83R_U4JriQ",
			wantKind: refChannelID,
			wantRef:  "UCBJycsmduvYEL83R_U4JriQ",
		},
		{
			name:     "custom name",
			url:      "https://www.youtube.com/c/mkbhd",
			wantKind: refCustom,
			wantRef:  "mkbhd",
		},
		{
			name:     "legacy username",
			url:      "https://www.youtube.com/user/marquesbrownlee",
			wantKind: refUser,
			wantRef:  "marquesbrownlee",
		},
		{
			name:    "watch URL is not a channel reference",
			url:     "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			wantErr: true,
		},
		{
			name:    "bare host",
			url:     "https://www.youtube.com/",
			wantErr: true,
		},
		{
			name:    "empty segment after marker",
			url:     "https://www.youtube.com/channel/",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ref, err := parseChannelRef(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseChannelRef(%q) expected error, got kind=%v ref=%q", tt.url, kind, ref)
				}
				var resErr *ResolutionError
				if !errors.As(err, &resErr) {
					t.Errorf("expected ResolutionError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseChannelRef(%q) unexpected error: %v", tt.url, err)
			}
			if kind != tt.wantKind || ref != tt.wantRef {
				t.Errorf("parseChannelRef(%q) = (%v, %q), want (%v, %q)", tt.url, kind, ref, tt.wantKind, tt.wantRef)
			}
		})
	}
}

func TestDurationSeconds(t *testing.T) {
	tests := []struct {
		iso  string
		want int
	}{
		{"PT1M", 60},
		{"PT59S", 59},
		{"PT1M1S", 61},
		{"PT1H", 3600},
		{"PT1H2M3S", 3723},
		{"PT10M30S", 630},
		{"", 0},
		{"garbage", 0},
		{"P1D", 0},
	}
	for _, tt := range tests {
		if got := durationSeconds(tt.iso); got != tt.want {
			t.Errorf("durationSeconds(%q) = %d, want %d", tt.iso, got, tt.want)
		}
	}
}

// The shorts cutoff is inclusive: exactly 60 seconds is still a short.
func TestShortsCutoffBoundary(t *testing.T) {
	cutoff := 60
	if durationSeconds("PT1M") > cutoff {
		t.Error("a 60s video must not clear the shorts filter")
	}
	if durationSeconds("PT1M1S") <= cutoff {
		t.Error("a 61s video must clear the shorts filter")
	}
}
