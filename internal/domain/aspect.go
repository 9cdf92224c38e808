package domain

import "strings"

// AspectRatio enumerates the output shapes supported by the studio.
type AspectRatio string

const (
	AspectSquare            AspectRatio = "1:1"
	AspectLandscapeWide     AspectRatio = "16:9"
	AspectPortraitTall      AspectRatio = "9:16"
	AspectLandscapeStandard AspectRatio = "4:3"
	AspectPortraitStandard  AspectRatio = "3:4"
)

// NormalizeAspectRatio sanitizes free-form input into a supported ratio.
// Unknown values fall back to square, mirroring the provider default.
func NormalizeAspectRatio(s string) AspectRatio {
	switch AspectRatio(strings.TrimSpace(s)) {
	case AspectLandscapeWide:
		return AspectLandscapeWide
	case AspectPortraitTall:
		return AspectPortraitTall
	case AspectLandscapeStandard:
		return AspectLandscapeStandard
	case AspectPortraitStandard:
		return AspectPortraitStandard
	default:
		return AspectSquare
	}
}

// Terms returns the width and height terms of the ratio.
func (a AspectRatio) Terms() (w, h int) {
	switch a {
	case AspectLandscapeWide:
		return 16, 9
	case AspectPortraitTall:
		return 9, 16
	case AspectLandscapeStandard:
		return 4, 3
	case AspectPortraitStandard:
		return 3, 4
	default:
		return 1, 1
	}
}

// Portrait reports whether the ratio is taller than it is wide.
func (a AspectRatio) Portrait() bool {
	w, h := a.Terms()
	return h > w
}

func (a AspectRatio) String() string {
	return string(a)
}
