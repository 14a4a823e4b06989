// Copyright 2016 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package render

import (
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// labelFace approximates the 10px sans-serif axis font. It
// overestimates widths a little, which errs toward eliding.
var labelFace font.Face = basicfont.Face7x13

// fitLabel shortens s with a trailing ellipsis until it fits in
// room pixels.
func fitLabel(s string, room float64) string {
	if room <= 0 || labelWidth(s) <= room {
		return s
	}
	rs := []rune(s)
	for n := len(rs) - 1; n > 0; n-- {
		t := string(rs[:n]) + "…"
		if labelWidth(t) <= room {
			return t
		}
	}
	return "…"
}

func labelWidth(s string) float64 {
	return float64(font.MeasureString(labelFace, s).Ceil())
}
