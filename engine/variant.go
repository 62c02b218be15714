package engine

// Variant identifies one of the five sorting algorithms. Each variant owns
// an independent State; no cross-variant invariant exists.
type Variant int

const (
	VariantBubble Variant = iota
	VariantSelection
	VariantInsertion
	VariantQuick
	VariantMerge

	// VariantCount is the number of variants, for sizing and iteration
	VariantCount
)

// String returns the display name.
func (v Variant) String() string {
	switch v {
	case VariantBubble:
		return "bubble"
	case VariantSelection:
		return "selection"
	case VariantInsertion:
		return "insertion"
	case VariantQuick:
		return "quick"
	case VariantMerge:
		return "merge"
	default:
		return "unknown"
	}
}

// Variants returns all variants in display order.
func Variants() []Variant {
	return []Variant{VariantBubble, VariantSelection, VariantInsertion, VariantQuick, VariantMerge}
}
