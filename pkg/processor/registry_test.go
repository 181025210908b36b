package processor

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-blockhtml/pkg/block"
	blockerrors "github.com/goliatone/go-blockhtml/pkg/errors"
)

type upperProcessor struct{}

func (upperProcessor) Normalize(raw block.Data) (block.Data, error) {
	out := raw.Clone()
	out["text"] = "UPPER"
	return out, nil
}

func TestRegistryFallsBackToDefault(t *testing.T) {
	reg := New()
	reg.SetDefault(TextProcessor{})
	reg.MustRegister("custom", upperProcessor{})

	p, err := reg.GetProcessor("custom")
	if err != nil {
		t.Fatalf("get custom: %v", err)
	}
	if _, ok := p.(upperProcessor); !ok {
		t.Fatalf("expected registered processor, got %T", p)
	}

	p, err = reg.GetProcessor("never-registered")
	if err != nil {
		t.Fatalf("unknown type must fall back, got %v", err)
	}
	if _, ok := p.(TextProcessor); !ok {
		t.Fatalf("expected default processor, got %T", p)
	}
}

func TestRegistryWithoutDefault(t *testing.T) {
	reg := New()
	if _, err := reg.GetDefaultProcessor(); !blockerrors.IsConfiguration(err) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if _, err := reg.GetProcessor("paragraph"); !blockerrors.IsConfiguration(err) {
		t.Fatalf("expected configuration error for fallback, got %v", err)
	}
}

func TestRegistryDeferredConstructsOnce(t *testing.T) {
	reg := New()
	var calls atomic.Int32
	var seen DeferredOptions
	err := reg.RegisterDeferred("lazy", func(opts DeferredOptions) (Processor, error) {
		calls.Add(1)
		seen = opts
		return upperProcessor{}, nil
	}, DeferredOptions{Config: map[string]any{"mode": "fast"}})
	if err != nil {
		t.Fatalf("register deferred: %v", err)
	}

	if calls.Load() != 0 {
		t.Fatalf("factory must not run at registration")
	}
	if !reg.IsDeferred("lazy") || !reg.HasProcessor("lazy") {
		t.Fatalf("expected deferred registration to be visible")
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := reg.GetProcessor("lazy"); err != nil {
				t.Errorf("get lazy: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("factory ran %d times, want 1", got)
	}
	if seen.Config["mode"] != "fast" {
		t.Fatalf("factory did not receive options: %#v", seen)
	}
}

func TestRegistryDeferredFailureIsMemoized(t *testing.T) {
	reg := New()
	reg.SetDefault(TextProcessor{})
	boom := errors.New("boom")
	calls := 0
	if err := reg.RegisterDeferred("broken", func(DeferredOptions) (Processor, error) {
		calls++
		return nil, boom
	}, DeferredOptions{}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.RegisterDeferred("nil", func(DeferredOptions) (Processor, error) {
		return nil, nil
	}, DeferredOptions{}); err != nil {
		t.Fatalf("register: %v", err)
	}

	for i := 0; i < 2; i++ {
		_, err := reg.GetProcessor("broken")
		if !blockerrors.IsConfiguration(err) || !errors.Is(err, boom) {
			t.Fatalf("expected configuration error wrapping cause, got %v", err)
		}
	}
	if calls != 1 {
		t.Fatalf("factory ran %d times, want 1", calls)
	}
	if _, err := reg.GetProcessor("nil"); !blockerrors.IsConfiguration(err) {
		t.Fatalf("expected configuration error for nil instance, got %v", err)
	}
}

func TestRegistryIntrospection(t *testing.T) {
	reg := New()
	reg.MustRegister("quote", QuoteProcessor{})
	reg.MustRegister("header", HeaderProcessor{})
	reg.MustRegister(" paragraph ", TextProcessor{})

	if diff := cmp.Diff([]string{"header", "paragraph", "quote"}, reg.ListRegisteredTypes()); diff != "" {
		t.Fatalf("types mismatch (-want +got):\n%s", diff)
	}
	if !reg.HasProcessor("paragraph") || reg.HasProcessor("list") {
		t.Fatalf("unexpected HasProcessor results")
	}
	if reg.IsDeferred("quote") {
		t.Fatalf("eager entry reported as deferred")
	}
	if !reg.Unregister("quote") || reg.Unregister("quote") {
		t.Fatalf("unexpected Unregister results")
	}
	if reg.HasProcessor("quote") {
		t.Fatalf("quote still registered")
	}
}

func TestRegistryRegisterErrors(t *testing.T) {
	reg := New()
	if err := reg.Register("", TextProcessor{}); err == nil {
		t.Fatalf("expected error for empty type")
	}
	if err := reg.Register("x", nil); err == nil {
		t.Fatalf("expected error for nil processor")
	}
	if err := reg.RegisterDeferred("x", nil, DeferredOptions{}); err == nil {
		t.Fatalf("expected error for nil factory")
	}
}

func TestRegistryReplacesEntries(t *testing.T) {
	reg := NewDefaultRegistry()
	reg.MustRegister(TypeParagraph, upperProcessor{})

	p, err := reg.GetProcessor(TypeParagraph)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	data, _ := p.Normalize(block.Data{"text": "x"})
	if data.String("text") != "UPPER" {
		t.Fatalf("override not applied: %v", data)
	}
}

func TestNewDefaultRegistry(t *testing.T) {
	reg := NewDefaultRegistry()
	want := []string{TypeCode, TypeDelimiter, TypeHeader, TypeList, TypeMarkdown, TypeParagraph, TypeQuote}
	if diff := cmp.Diff(want, reg.ListRegisteredTypes()); diff != "" {
		t.Fatalf("types mismatch (-want +got):\n%s", diff)
	}
	if !reg.IsDeferred(TypeMarkdown) {
		t.Fatalf("markdown processor should be deferred")
	}
	if _, err := reg.GetDefaultProcessor(); err != nil {
		t.Fatalf("default processor: %v", err)
	}
}
