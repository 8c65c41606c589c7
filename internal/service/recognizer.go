package service

import (
	"math/rand"
	"time"

	"foodchain-api/internal/model"
)

// Confidence is the fixed confidence score attached to every prediction.
// There is no real model behind the recognizer, so the score is constant.
const Confidence = 0.82

// defaultTemplates is the fixed table the recognizer draws from.
var defaultTemplates = []model.ItemTemplate{
	{Name: "tomatoes", Category: "produce", ShelfLifeDays: 5},
	{Name: "milk (pasteurized)", Category: "dairy", ShelfLifeDays: 7},
	{Name: "baguette", Category: "bakery", ShelfLifeDays: 2},
	{Name: "chicken breast", Category: "meat", ShelfLifeDays: 3},
}

// Recognizer fabricates plausible item identifications in place of real
// image analysis. Each call picks one template uniformly at random; the
// image payload is accepted by the API but never inspected.
type Recognizer struct {
	templates []model.ItemTemplate
	now       func() time.Time
	pick      func(n int) int
}

// NewRecognizer creates a recognizer over the default template table.
func NewRecognizer() *Recognizer {
	return &Recognizer{
		templates: defaultTemplates,
		now:       time.Now,
		pick:      rand.Intn,
	}
}

// Templates returns the template table the recognizer draws from.
func (r *Recognizer) Templates() []model.ItemTemplate {
	templates := make([]model.ItemTemplate, len(r.templates))
	copy(templates, r.templates)
	return templates
}

// Recognize returns one template pick with the constant confidence and
// an expiry of now plus the template's shelf life. It never fails and
// has no side effects.
func (r *Recognizer) Recognize() model.Prediction {
	t := r.templates[r.pick(len(r.templates))]
	expiry := r.now().Add(time.Duration(t.ShelfLifeDays) * 24 * time.Hour)

	return model.Prediction{
		Name:            t.Name,
		Category:        t.Category,
		ShelfLifeDays:   t.ShelfLifeDays,
		Confidence:      Confidence,
		EstimatedExpiry: expiry.UTC().Format(time.RFC3339),
	}
}
