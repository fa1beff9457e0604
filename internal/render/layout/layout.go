package layout

import "image"

// Inset shrinks rect by paddingPx on all sides.
func Inset(rect image.Rectangle, paddingPx int) image.Rectangle {
	if paddingPx <= 0 {
		return rect
	}
	out := image.Rect(rect.Min.X+paddingPx, rect.Min.Y+paddingPx, rect.Max.X-paddingPx, rect.Max.Y-paddingPx)
	return Normalize(out)
}

// Normalize ensures Min is <= Max on both axes.
func Normalize(rect image.Rectangle) image.Rectangle {
	if rect.Min.X > rect.Max.X {
		rect.Min.X, rect.Max.X = rect.Max.X, rect.Min.X
	}
	if rect.Min.Y > rect.Max.Y {
		rect.Min.Y, rect.Max.Y = rect.Max.Y, rect.Min.Y
	}
	return rect
}

// SplitVertical splits rect into left and right parts.
// leftWidthPx is clamped to [0, rect.Dx()].
func SplitVertical(rect image.Rectangle, leftWidthPx int) (left image.Rectangle, right image.Rectangle) {
	rect = Normalize(rect)
	leftWidthPx = clamp(leftWidthPx, 0, rect.Dx())
	left = image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+leftWidthPx, rect.Max.Y)
	right = image.Rect(rect.Min.X+leftWidthPx, rect.Min.Y, rect.Max.X, rect.Max.Y)
	return left, right
}

// SplitHorizontal splits rect into top and bottom parts.
// topHeightPx is clamped to [0, rect.Dy()].
func SplitHorizontal(rect image.Rectangle, topHeightPx int) (top image.Rectangle, bottom image.Rectangle) {
	rect = Normalize(rect)
	topHeightPx = clamp(topHeightPx, 0, rect.Dy())
	top = image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+topHeightPx)
	bottom = image.Rect(rect.Min.X, rect.Min.Y+topHeightPx, rect.Max.X, rect.Max.Y)
	return top, bottom
}

// Columns splits rect into n equal-width columns separated by gapPx.
// Leftover pixels go to the last column.
func Columns(rect image.Rectangle, n, gapPx int) []image.Rectangle {
	if n <= 0 {
		return nil
	}
	rect = Normalize(rect)
	gapPx = clamp(gapPx, 0, rect.Dx())
	usable := rect.Dx() - gapPx*(n-1)
	if usable < 0 {
		usable = 0
	}
	width := usable / n
	out := make([]image.Rectangle, n)
	x := rect.Min.X
	for i := range out {
		right := x + width
		if i == n-1 {
			right = rect.Max.X
		}
		out[i] = image.Rect(x, rect.Min.Y, right, rect.Max.Y)
		x = right + gapPx
	}
	return out
}

// FillFromBottom returns the bottom part of rect covering level/255 of its height.
func FillFromBottom(rect image.Rectangle, level uint8) image.Rectangle {
	rect = Normalize(rect)
	filled := rect.Dy() * int(level) / 255
	_, bottom := SplitHorizontal(rect, rect.Dy()-filled)
	return bottom
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
