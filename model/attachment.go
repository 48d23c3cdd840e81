package model

// Attachment describes a document attached to a statement.
type Attachment struct {
	UsageType   IRI         `json:"usageType" validate:"required,uri"`
	Display     LanguageMap `json:"display" validate:"required"`
	Description LanguageMap `json:"description"`
	ContentType string      `json:"contentType" validate:"required"`
	Length      int64       `json:"length" validate:"gte=0"`
	SHA2        string      `json:"sha2" validate:"required,hexadecimal"`
	FileURL     IRL         `json:"fileUrl" validate:"omitempty,url"`
}
