package providers

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNormalizeNames(t *testing.T) {
	got := NormalizeNames([]string{"  Ana ", "", "Bruno  Lima", "ana", "   ", "Caio"})
	want := []string{"Ana", "Bruno Lima", "Caio"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected names (-want +got):\n%s", diff)
	}
}

func TestExtractorFunc(t *testing.T) {
	var ex Extractor = ExtractorFunc(func(ctx context.Context, text string) ([]string, error) {
		return []string{text}, nil
	})
	names, err := ex.ExtractNames(context.Background(), "Ana")
	if err != nil || len(names) != 1 || names[0] != "Ana" {
		t.Fatalf("unexpected result %v %v", names, err)
	}
}
