package api

type Document struct {
	ID string `json:"id"`

	Name        string `json:"name,omitempty"`
	ContentType string `json:"content_type"`

	Text string `json:"text"`

	Sections []Section `json:"sections,omitempty"`
}

type Section struct {
	Title string `json:"title,omitempty"`
	Level int    `json:"level,omitempty"`

	Text string `json:"text"`
}
