package model

// ItemTemplate is one entry of the recognizer's fixed sample table.
type ItemTemplate struct {
	Name          string `json:"name"`
	Category      string `json:"category"`
	ShelfLifeDays int    `json:"shelfLifeDays"`
}

// Prediction is a fabricated recognition result: a template pick plus a
// constant confidence and a computed expiry timestamp.
type Prediction struct {
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	ShelfLifeDays   int     `json:"shelfLifeDays"`
	Confidence      float64 `json:"confidence"`
	EstimatedExpiry string  `json:"estimatedExpiry"`
}
