package extract

import (
	"context"
	"strings"

	"github.com/threadsight/comment-enricher/internal/core/domain"
)

// practitionerTypes is the vocabulary of practitioner mentions, scanned in
// order so more specific professions win over generic ones.
var practitionerTypes = []string{
	"doctor", "physician", "surgeon", "nurse", "dentist", "optometrist", "ophthalmologist",
	"pharmacist", "dietitian", "nutritionist", "paramedic", "midwife", "veterinarian",
	"therapist", "counselor", "psychologist", "psychiatrist", "social worker",
	"physiotherapist", "physical therapist", "occupational therapist", "chiropractor",
	"acupuncturist", "massage therapist", "speech therapist", "personal trainer", "fitness coach",
	"life coach", "wellness coach", "health coach",
	"teacher", "professor", "tutor", "instructor", "mentor", "educator",
	"engineer", "architect", "technician", "mechanic", "consultant", "specialist",
}

type practitionerValue domain.PractitionerReference

func (v practitionerValue) Apply(rec *domain.EnrichedRecord) {
	ref := domain.PractitionerReference(v)
	rec.Practitioner = &ref
}

// PractitionerExtractor finds the first mention of a practitioner type and
// returns it with the containing sentence. The rule's include pattern is
// tried first (curated clinic/treatment vocabulary), then the plain type
// list as a fallback.
type PractitionerExtractor struct {
	rule       Rule
	subWorkers int
}

func NewPractitionerExtractor(rule Rule, subWorkers int) *PractitionerExtractor {
	return &PractitionerExtractor{rule: rule, subWorkers: subWorkers}
}

func (e *PractitionerExtractor) Attribute() domain.Attribute {
	return domain.AttributePractitioner
}

func (e *PractitionerExtractor) Extract(_ context.Context, batch []Annotated) ([]Result, error) {
	return mapBatch(batch, e.subWorkers, func(ann Annotated) Value {
		for _, sent := range ann.Sentences {
			if !e.rule.Accepts(sent) {
				continue
			}

			if e.rule.Include != nil {
				if m := e.rule.Include.FindString(sent); m != "" {
					return practitionerValue{
						Type:      strings.ToLower(strings.TrimSpace(m)),
						Reference: strings.TrimSpace(sent),
					}
				}
			}

			lower := strings.ToLower(sent)
			for _, pt := range practitionerTypes {
				if strings.Contains(lower, pt) {
					return practitionerValue{
						Type:      pt,
						Reference: strings.TrimSpace(sent),
					}
				}
			}
		}

		return nil
	})
}
