package cli

import "testing"

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		raw     string
		want    OutputFormat
		wantErr bool
	}{
		{raw: "", want: FormatJSON},
		{raw: "JSON", want: FormatJSON},
		{raw: "yml", want: FormatYAML},
		{raw: "yaml", want: FormatYAML},
		{raw: "human", wantErr: true},
	}

	for _, tc := range tests {
		got, err := ParseOutputFormat(tc.raw)
		if (err != nil) != tc.wantErr {
			t.Fatalf("ParseOutputFormat(%q) error = %v, wantErr %v", tc.raw, err, tc.wantErr)
		}
		if got != tc.want {
			t.Fatalf("ParseOutputFormat(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestFormatResponse(t *testing.T) {
	info := Info{Trace: "fmt", Kind: InfoType, Text: "package", Present: true}

	got, err := FormatResponse(info, FormatYAML)
	if err != nil {
		t.Fatalf("FormatResponse() error = %v", err)
	}
	want := "trace: fmt\nkind: type\ntext: package\npresent: true"
	if got != want {
		t.Fatalf("FormatResponse() = %q, want %q", got, want)
	}

	if _, err := FormatResponse(info, OutputFormat("toml")); err == nil {
		t.Fatal("expected error, got nil")
	}
}
