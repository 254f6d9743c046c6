package domain

type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeVideo MediaType = "video"
)

// Media is a resolved, publishable media reference.
type Media struct {
	URL  string    `json:"url"`
	Type MediaType `json:"type"`
}
