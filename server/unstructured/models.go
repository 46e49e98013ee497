package unstructured

type ElementType string

const (
	ElementTypeTitle         ElementType = "Title"
	ElementTypeNarrativeText ElementType = "NarrativeText"
)

type Partition struct {
	ID   string      `json:"element_id"`
	Type ElementType `json:"type"`
	Text string      `json:"text"`

	Metadata PartitionMetadata `json:"metadata"`
}

type PartitionMetadata struct {
	FileName string `json:"filename,omitempty"`
	FileType string `json:"filetype,omitempty"`

	CategoryDepth int    `json:"category_depth,omitempty"`
	ParentID      string `json:"parent_id,omitempty"`
}
