package screen

import "github.com/screenmux/screenmux/internal/screenmsg"

// resizeToScreen applies a new terminal size to every tab. Grounded on
// Screen::resize_to_screen.
func (s *Screen) resizeToScreen(size screenmsg.Size) {
	s.size = size
	for _, t := range s.tabs.Ordered() {
		t.Resize(size)
	}
}

// updatePixelDimensions merges incremental pixel-dimension reports and
// derives the character cell size when the terminal didn't report one
// explicitly. Grounded on Screen::update_pixel_dimensions.
func (s *Screen) updatePixelDimensions(d screenmsg.PixelDimensions) {
	s.pixelDimensions.Merge(d)
	if cell := screenmsg.DeriveCharacterCellSize(s.pixelDimensions, s.size); cell != nil {
		s.pixelDimensions.CharacterCellSize = cell
	}
}
