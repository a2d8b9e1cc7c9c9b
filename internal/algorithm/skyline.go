package algorithm

// skyline accelerates the bottom-left-fill scan. Instead of
// testing every integer (x, y) on the sheet — O(width·height) per placement
// — it tracks, per x column, the lowest y at which the column is still
// free, so a candidate position for a w-wide piece can be found in
// O(width*w) per orientation instead of O(width*height).
type skyline struct {
	width  int
	height int
	levels []int // levels[x] = lowest free y at column x
}

func newSkyline(width, height int) *skyline {
	levels := make([]int, width)
	return &skyline{width: width, height: height, levels: levels}
}

// candidatePosition returns the bottom-left-most (y ascending, then x
// ascending) position where a w x h rectangle fits without exceeding the
// sheet bounds, scanning only skyline-derived candidate y values. The
// returned y is the highest level under [x, x+w), so the rectangle sits
// above every footprint already registered via occupy in those columns and
// cannot overlap it; free space below the skyline is never reused.
func (s *skyline) candidatePosition(w, h int) (x, y int, ok bool) {
	if w <= 0 || h <= 0 || w > s.width {
		return 0, 0, false
	}
	bestY := -1
	bestX := 0
	for startX := 0; startX+w <= s.width; startX++ {
		y := s.maxLevel(startX, w)
		if y+h > s.height {
			continue
		}
		if bestY < 0 || y < bestY || (y == bestY && startX < bestX) {
			bestY = y
			bestX = startX
		}
	}
	if bestY < 0 {
		return 0, 0, false
	}
	return bestX, bestY, true
}

func (s *skyline) maxLevel(startX, w int) int {
	max := 0
	for x := startX; x < startX+w; x++ {
		if s.levels[x] > max {
			max = s.levels[x]
		}
	}
	return max
}

// occupy raises the skyline levels under [x, x+w) to y+h after a piece is
// placed there.
func (s *skyline) occupy(x, y, w, h int) {
	for i := x; i < x+w && i < s.width; i++ {
		if y+h > s.levels[i] {
			s.levels[i] = y + h
		}
	}
}
