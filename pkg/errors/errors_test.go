package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestConfigurationError(t *testing.T) {
	tests := []struct {
		name    string
		err     *ConfigurationError
		wantMsg string
	}{
		{
			name:    "type only",
			err:     NewConfigurationError("template", "table", "block type is not registered"),
			wantMsg: `configuration error: template "table": block type is not registered`,
		},
		{
			name:    "with variant",
			err:     &ConfigurationError{Subject: "template", Name: "header", Variant: "h7", Reason: "missing default"},
			wantMsg: `configuration error: template "header" (variant "h7"): missing default`,
		},
		{
			name:    "subject only",
			err:     &ConfigurationError{Subject: "processor registry", Reason: "no default processor"},
			wantMsg: `configuration error: processor registry: no default processor`,
		},
		{
			name:    "with cause",
			err:     &ConfigurationError{Subject: "processor", Name: "list", Reason: "factory failed", Err: errors.New("boom")},
			wantMsg: `configuration error: processor "list": factory failed: boom`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Fatalf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, ErrConfiguration) {
				t.Fatalf("expected errors.Is(err, ErrConfiguration)")
			}
		})
	}
}

func TestConfigurationErrorUnwrapsCause(t *testing.T) {
	cause := errors.New("factory exploded")
	err := fmt.Errorf("engine: resolve processor: %w", &ConfigurationError{Subject: "processor", Name: "list", Reason: "factory failed", Err: cause})

	if !IsConfiguration(err) {
		t.Fatalf("expected wrapped error to be a configuration error")
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected cause to be reachable")
	}
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) || cfgErr.Name != "list" {
		t.Fatalf("errors.As failed: %#v", cfgErr)
	}
}

func TestMalformedContentWarning(t *testing.T) {
	w := MalformedContentWarning{Offset: 4, Snippet: "<b>", Reason: "unclosed tag"}
	if got, want := w.Error(), `malformed content at offset 4: unclosed tag: "<b>"`; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(w, ErrMalformedContent) {
		t.Fatalf("expected warning to unwrap to ErrMalformedContent")
	}
	if IsConfiguration(w) {
		t.Fatalf("warning must not be a configuration error")
	}
}
