package screenmsg

// Size is a terminal grid size in character cells.
type Size struct {
	Rows int
	Cols int
}

// SizeInPixels is a physical size in device pixels.
type SizeInPixels struct {
	Height int
	Width  int
}

// PixelDimensions arrives incrementally over TerminalPixelDimensions and
// must be merged field-by-field, never replaced wholesale.
type PixelDimensions struct {
	TextAreaSize     *SizeInPixels
	CharacterCellSize *SizeInPixels
}

// Merge copies any fields set on other into d, leaving d's existing fields
// alone where other is silent.
func (d *PixelDimensions) Merge(other PixelDimensions) {
	if other.TextAreaSize != nil {
		d.TextAreaSize = other.TextAreaSize
	}
	if other.CharacterCellSize != nil {
		d.CharacterCellSize = other.CharacterCellSize
	}
}

// DeriveCharacterCellSize returns the explicit character cell size if the
// terminal reported one, else derives it by floor-dividing the text area by
// the character grid.
func DeriveCharacterCellSize(d PixelDimensions, grid Size) *SizeInPixels {
	if d.CharacterCellSize != nil {
		return d.CharacterCellSize
	}
	if d.TextAreaSize == nil || grid.Rows == 0 || grid.Cols == 0 {
		return nil
	}
	return &SizeInPixels{
		Height: d.TextAreaSize.Height / grid.Rows,
		Width:  d.TextAreaSize.Width / grid.Cols,
	}
}

// Viewport is the on-screen rectangle a pane (or its frame) occupies.
type Viewport struct {
	X, Y       int
	Rows, Cols int
}
