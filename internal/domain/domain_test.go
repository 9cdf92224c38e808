package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestNormalizeAspectRatio(t *testing.T) {
	tests := []struct {
		in   string
		want AspectRatio
	}{
		{"1:1", AspectSquare},
		{"16:9", AspectLandscapeWide},
		{" 9:16 ", AspectPortraitTall},
		{"4:3", AspectLandscapeStandard},
		{"3:4", AspectPortraitStandard},
		{"", AspectSquare},
		{"21:9", AspectSquare},
		{"banana", AspectSquare},
	}
	for _, tc := range tests {
		if got := NormalizeAspectRatio(tc.in); got != tc.want {
			t.Fatalf("NormalizeAspectRatio(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAspectRatioPortrait(t *testing.T) {
	if AspectSquare.Portrait() {
		t.Fatal("square must not be portrait")
	}
	if !AspectPortraitTall.Portrait() || !AspectPortraitStandard.Portrait() {
		t.Fatal("9:16 and 3:4 are portrait")
	}
	if AspectLandscapeWide.Portrait() || AspectLandscapeStandard.Portrait() {
		t.Fatal("16:9 and 4:3 are landscape")
	}
}

func TestWrapServicePreservesKind(t *testing.T) {
	err := WrapService("edit image", fmt.Errorf("%w: no parts", ErrNoImage))
	if !errors.Is(err, ErrNoImage) {
		t.Fatalf("errors.Is lost the kind: %v", err)
	}
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("errors.As failed: %v", err)
	}
	if svcErr.Task != "edit image" {
		t.Fatalf("Task = %q", svcErr.Task)
	}
}

func TestWrapServiceNilPassthrough(t *testing.T) {
	if err := WrapService("task", nil); err != nil {
		t.Fatalf("WrapService(nil) = %v, want nil", err)
	}
}
