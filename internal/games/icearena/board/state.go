package board

import (
	"encoding/json"

	"github.com/vovakirdan/icearena/internal/errors"
)

type boardState struct {
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	Cells       []Cell        `json:"cells"`
	Ripple      []RippleEntry `json:"ripple,omitempty"`
	RippleClock float64       `json:"ripple_clock"`
}

// MarshalJSON encodes the grid together with the pending ripple.
func (b *Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(boardState{
		Width:       b.width,
		Height:      b.height,
		Cells:       b.cells,
		Ripple:      b.ripple,
		RippleClock: b.rippleClock,
	})
}

// UnmarshalJSON restores a board encoded by MarshalJSON.
func (b *Board) UnmarshalJSON(data []byte) error {
	var st boardState
	if err := json.Unmarshal(data, &st); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "decode board")
	}
	if st.Width < 0 || st.Height < 0 || len(st.Cells) != st.Width*st.Height {
		return errors.InvalidArgumentf("board has %d cells for %dx%d", len(st.Cells), st.Width, st.Height)
	}
	b.width = st.Width
	b.height = st.Height
	b.cells = st.Cells
	b.ripple = st.Ripple
	b.rippleClock = st.RippleClock
	return nil
}
