package proposal

import (
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestFileName(t *testing.T) {
	t.Parallel()

	date := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		company string
		want    string
	}{
		{name: "plain", company: "Acme", want: "251103_Angebot_Acme ExposéProfi.docx"},
		{name: "umlauts and ampersand kept", company: "Bäcker & Co", want: "251103_Angebot_Bäcker & Co ExposéProfi.docx"},
		{name: "punctuation stripped", company: "Bau-Plan GmbH.", want: "251103_Angebot_BauPlan GmbH ExposéProfi.docx"},
		{name: "truncated", company: strings.Repeat("x", 60), want: "251103_Angebot_" + strings.Repeat("x", 50) + " ExposéProfi.docx"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FileName(date, tt.company); got != tt.want {
				t.Fatalf("FileName() got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClientFolder(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(1700000000000)
	tests := []struct {
		name         string
		clientNumber string
		company      string
		want         string
	}{
		{name: "client number and company", clientNumber: "4711", company: "Haus & Hof", want: "4711_Haus___Hof"},
		{name: "missing company", clientNumber: "4711", company: "", want: "4711_unknown"},
		{name: "no client number", clientNumber: "", company: "Acme AG", want: "Acme_AG_1700000000000"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ClientFolder(tt.clientNumber, tt.company, now); got != tt.want {
				t.Fatalf("ClientFolder() got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewOfferNumber(t *testing.T) {
	t.Parallel()

	pattern := regexp.MustCompile(`^AN-250314-[0-9A-F]{6}$`)
	got := NewOfferNumber(time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC))
	if !pattern.MatchString(got) {
		t.Fatalf("NewOfferNumber() got %q, want match %s", got, pattern)
	}
}
