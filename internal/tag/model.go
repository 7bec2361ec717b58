package tag

// ContentType names the kind of object a tag is attached to.
type ContentType string

const ContentTypeProduct ContentType = "product"

func (c ContentType) Valid() bool {
	switch c {
	case ContentTypeProduct:
		return true
	}
	return false
}

type Tag struct {
	ID    uint   `json:"id"`
	Label string `json:"label"`
}

type TaggedItem struct {
	ID          uint        `json:"id"`
	Tag         Tag         `json:"tag"`
	ContentType ContentType `json:"content_type"`
	ObjectID    uint        `json:"object_id"`
}

type TagInput struct {
	Label string `json:"label" validate:"required,max=255"`
}
