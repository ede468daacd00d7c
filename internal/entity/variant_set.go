package entity

// ImageSize labels one of the three renditions derived from an upload.
type ImageSize string

const (
	SizeSmall  ImageSize = "small"
	SizeMedium ImageSize = "medium"
	SizeLarge  ImageSize = "large"
)

// ParseImageSize maps a query value to a size label, defaulting to medium.
func ParseImageSize(s string) ImageSize {
	switch ImageSize(s) {
	case SizeSmall, SizeMedium, SizeLarge:
		return ImageSize(s)
	default:
		return SizeMedium
	}
}

// VariantSet holds the object store ids of an entity's media slot.
// Either all three ids and the mime type are set, or none of them are;
// the media lifecycle never persists anything in between.
type VariantSet struct {
	SmallID  *string `json:"small_id,omitempty"`
	MediumID *string `json:"medium_id,omitempty"`
	LargeID  *string `json:"large_id,omitempty"`
	Mime     *string `json:"mime,omitempty"`
}

func (s VariantSet) IsEmpty() bool {
	return s.SmallID == nil && s.MediumID == nil && s.LargeID == nil && s.Mime == nil
}

func (s VariantSet) IsComplete() bool {
	return s.SmallID != nil && s.MediumID != nil && s.LargeID != nil && s.Mime != nil
}

// IDFor returns the object id for the given size, or nil when unset.
func (s VariantSet) IDFor(size ImageSize) *string {
	switch size {
	case SizeSmall:
		return s.SmallID
	case SizeLarge:
		return s.LargeID
	default:
		return s.MediumID
	}
}

// ObjectIDs lists the ids present in the set, in small/medium/large order.
func (s VariantSet) ObjectIDs() []string {
	ids := make([]string, 0, 3)
	for _, id := range []*string{s.SmallID, s.MediumID, s.LargeID} {
		if id != nil {
			ids = append(ids, *id)
		}
	}
	return ids
}
