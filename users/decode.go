package users

import "math"

var fieldLabels = map[Field]string{
	FieldName:    "Name",
	FieldEmail:   "Email",
	FieldMobile:  "Mobile",
	FieldCity:    "City",
	FieldCountry: "Country",
}

// DecodeUser builds a full record from a parsed JSON object. Name and email
// must be non-empty strings; the optional fields must be strings when truthy.
// The "id" key and unknown keys are ignored.
func DecodeUser(payload map[string]any) (User, error) {
	var u User

	name, ok := payload[string(FieldName)].(string)
	if !ok || name == "" {
		return User{}, newValidationError(FieldName, "Name is required and must be a string")
	}
	email, ok := payload[string(FieldEmail)].(string)
	if !ok || email == "" {
		return User{}, newValidationError(FieldEmail, "Email is required and must be a string")
	}
	u.Name, u.Email = name, email

	for _, field := range []Field{FieldMobile, FieldCity, FieldCountry} {
		value, err := optionalString(payload, field)
		if err != nil {
			return User{}, err
		}
		if value == nil {
			continue
		}
		switch field {
		case FieldMobile:
			u.Mobile = *value
		case FieldCity:
			u.City = *value
		case FieldCountry:
			u.Country = *value
		}
	}

	return u, nil
}

// DecodePartial builds a partial record from a parsed JSON object. Only keys in
// UpdatableFields are read, whatever else the payload carries.
func DecodePartial(payload map[string]any) (PartialUser, error) {
	var p PartialUser
	for _, field := range UpdatableFields {
		value, err := optionalString(payload, field)
		if err != nil {
			return PartialUser{}, err
		}
		if value == nil {
			continue
		}
		switch field {
		case FieldName:
			p.Name = value
		case FieldEmail:
			p.Email = value
		case FieldMobile:
			p.Mobile = value
		case FieldCity:
			p.City = value
		case FieldCountry:
			p.Country = value
		}
	}
	return p, nil
}

// optionalString returns nil when the key is missing or holds a falsy
// non-string value, the string when it holds one, and a validation error for
// any other truthy value.
func optionalString(payload map[string]any, field Field) (*string, error) {
	raw, ok := payload[string(field)]
	if !ok {
		return nil, nil
	}
	if s, isString := raw.(string); isString {
		return &s, nil
	}
	if !truthy(raw) {
		return nil, nil
	}
	return nil, newValidationError(field, fieldLabels[field]+" must be a string")
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0 && !math.IsNaN(t)
	case float32:
		return t != 0 && !math.IsNaN(float64(t))
	case int:
		return t != 0
	case int64:
		return t != 0
	case int32:
		return t != 0
	default:
		return true
	}
}
