package model

import "github.com/google/uuid"

// Tile is an automatically generated rectangular page partition, sent
// independently to an OCR collaborator to bound per-call cost. Tiles are
// ephemeral: created by the tiling generator, consumed by the collaborator,
// and discarded after merge.
type Tile struct {
	PageIndex    int      `json:"pageIndex"`
	BBox         NormBBox `json:"bboxNormalized"`
	OverlapRatio float64  `json:"overlap,omitempty"`
}

// Segment is a user- or rule-defined rectangular page partition, processed
// independently for targeted field detection. Segments have their own
// lifecycle (manual vs. automatic) but share the tile's geometric contract:
// a normalized box on one page.
type Segment struct {
	ID              string   `json:"id"`
	Page            int      `json:"page"`
	NX              float64  `json:"nx"`
	NY              float64  `json:"ny"`
	NW              float64  `json:"nw"`
	NH              float64  `json:"nh"`
	RelatedElements []string `json:"relatedElements,omitempty"`
}

// NewSegment creates a segment covering the given normalized box with a
// freshly assigned ID.
func NewSegment(page int, bbox NormBBox) Segment {
	return Segment{
		ID:   uuid.NewString(),
		Page: page,
		NX:   bbox.X,
		NY:   bbox.Y,
		NW:   bbox.W,
		NH:   bbox.H,
	}
}

// BBox returns the segment's geometry as a normalized box.
func (s Segment) BBox() NormBBox {
	return NormBBox{X: s.NX, Y: s.NY, W: s.NW, H: s.NH}
}
