package items

import (
	"encoding/json"

	"github.com/vovakirdan/icearena/internal/errors"
)

type controllerState struct {
	Items    []*Item     `json:"items"`
	Row      []RowAction `json:"row,omitempty"`
	RowTimer float64     `json:"row_timer"`
	IceSeq   int         `json:"ice_seq"`
}

// MarshalJSON encodes items and the row queue. The terrain and generator are
// not part of the encoding.
func (c *Controller) MarshalJSON() ([]byte, error) {
	return json.Marshal(controllerState{
		Items:    c.items,
		Row:      c.row,
		RowTimer: c.rowTimer,
		IceSeq:   c.iceSeq,
	})
}

// UnmarshalJSON restores state into a controller built with NewController.
func (c *Controller) UnmarshalJSON(data []byte) error {
	var st controllerState
	if err := json.Unmarshal(data, &st); err != nil {
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, "decode items")
	}
	for _, it := range st.Items {
		if it == nil {
			return errors.InvalidArgument("null item in saved state")
		}
		if _, ok := behaviours[it.Kind]; !ok {
			return errors.InvalidArgumentf("unknown item kind %q", it.Kind)
		}
	}
	c.items = st.Items
	c.row = st.Row
	c.rowTimer = st.RowTimer
	c.iceSeq = st.IceSeq
	return nil
}
