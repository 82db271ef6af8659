package fixture

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/preston-bernstein/team-draft-service/internal/providers"
)

func TestExtractNamesParsesNumberedList(t *testing.T) {
	text := "Futebol quinta 20h:\n1. Ana\n2) Bruno (confirmado)\n3 - Caio ✅\n\n- Duda\n* ana\n• Eduardo  Silva"

	names, err := New().ExtractNames(context.Background(), text)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	want := []string{"Ana", "Bruno", "Caio", "Duda", "Eduardo Silva"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Fatalf("unexpected names (-want +got):\n%s", diff)
	}
}

func TestExtractNamesEmptyText(t *testing.T) {
	if _, err := New().ExtractNames(context.Background(), "  \n "); !errors.Is(err, providers.ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
}

func TestExtractNamesNoNames(t *testing.T) {
	if _, err := New().ExtractNames(context.Background(), "Lista:\n1.\n2)"); !errors.Is(err, providers.ErrNoNamesFound) {
		t.Fatalf("expected ErrNoNamesFound, got %v", err)
	}
}

func TestExtractNamesHonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New().ExtractNames(ctx, "Ana"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
