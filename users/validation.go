package users

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ValidateUser checks a full record before create or replace. Name is checked
// before email so callers always see the first failing field.
func ValidateUser(u User) error {
	if err := validation.Validate(u.Name, validation.Required); err != nil {
		return newValidationError(FieldName, "Name is required and must be a string")
	}
	if err := validation.Validate(u.Email, validation.Required); err != nil {
		return newValidationError(FieldEmail, "Email is required and must be a string")
	}
	return validateLabels(&u.Name, &u.City, &u.Country)
}

// ValidatePartial checks only the fields present in p. A present empty string
// passes: it is treated as absent for validation and written as-is.
func ValidatePartial(p PartialUser) error {
	return validateLabels(p.Name, p.City, p.Country)
}

func validateLabels(name, city, country *string) error {
	labels := []struct {
		field Field
		value *string
		label string
	}{
		{FieldName, name, "Name"},
		{FieldCity, city, "City"},
		{FieldCountry, country, "Country"},
	}
	for _, l := range labels {
		if err := validation.Validate(l.value, validation.RuneLength(0, MaxLabelLength)); err != nil {
			return newValidationError(l.field, l.label+" must be at most 255 characters")
		}
	}
	return nil
}
