// Package validation checks untrusted creation input before any domain logic
// runs. Malformed input is a modeled outcome, reported per field, never an
// error return.
package validation

import (
	"strings"
	"unicode/utf8"

	"github.com/adotepet/service-adoption/internal/domain/animal"
)

// FieldErrors maps a field name to the list of violation messages found for
// it. Empty means the input passed.
type FieldErrors map[string][]string

// Add appends a violation message for a field.
func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

// CreateAnimalForm is the raw, untyped text input of the creation endpoint.
type CreateAnimalForm struct {
	Name        string
	Description string
	Type        string
	Gender      string
	Race        string
}

// CreateAnimalInput is the normalized, constraint-satisfying payload. Only
// this value may flow downstream; the raw form must not.
type CreateAnimalInput struct {
	Name        string
	Description string
	Type        animal.Type
	Gender      animal.Gender
	Race        string
}

type constraint struct {
	field   string
	ok      func(CreateAnimalForm) bool
	message string
}

// createAnimalConstraints is evaluated in order; every violation is
// collected rather than stopping at the first.
var createAnimalConstraints = []constraint{
	{
		field:   "name",
		ok:      func(f CreateAnimalForm) bool { return utf8.RuneCountInString(f.Name) >= 2 },
		message: "name must contain at least 2 characters",
	},
	{
		field:   "type",
		ok:      func(f CreateAnimalForm) bool { return animal.Type(f.Type).IsValid() },
		message: "type must be one of DOG, CAT, BIRD, OTHER",
	},
	{
		field:   "gender",
		ok:      func(f CreateAnimalForm) bool { return animal.Gender(f.Gender).IsValid() },
		message: "gender must be one of MALE, FEMALE",
	},
	{
		field:   "race",
		ok:      func(f CreateAnimalForm) bool { return utf8.RuneCountInString(f.Race) >= 1 },
		message: "race must contain at least 1 character",
	},
}

// ValidateCreateAnimal evaluates every constraint against the form. On
// success it returns the normalized payload and a nil error report; on
// failure the report carries one entry per violated field.
func ValidateCreateAnimal(form CreateAnimalForm) (CreateAnimalInput, FieldErrors) {
	form.Name = strings.TrimSpace(form.Name)
	form.Race = strings.TrimSpace(form.Race)

	errs := FieldErrors{}
	for _, c := range createAnimalConstraints {
		if !c.ok(form) {
			errs.Add(c.field, c.message)
		}
	}
	if len(errs) > 0 {
		return CreateAnimalInput{}, errs
	}

	return CreateAnimalInput{
		Name:        form.Name,
		Description: form.Description,
		Type:        animal.Type(form.Type),
		Gender:      animal.Gender(form.Gender),
		Race:        form.Race,
	}, nil
}
