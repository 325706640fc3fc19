package users

// Field names one attribute of a user record. The set is closed: storage code
// maps each value to a fixed column and rejects anything else.
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldMobile  Field = "mobile"
	FieldCity    Field = "city"
	FieldCountry Field = "country"
)

// UpdatableFields lists, in statement order, every field an update may target.
var UpdatableFields = []Field{FieldName, FieldEmail, FieldMobile, FieldCity, FieldCountry}

// Unique reports whether the store enforces uniqueness on the field.
func (f Field) Unique() bool {
	return f == FieldEmail || f == FieldMobile
}

// Present returns the updatable fields p carries, in UpdatableFields order.
func (p PartialUser) Present() []Field {
	var fields []Field
	if p.Name != nil {
		fields = append(fields, FieldName)
	}
	if p.Email != nil {
		fields = append(fields, FieldEmail)
	}
	if p.Mobile != nil {
		fields = append(fields, FieldMobile)
	}
	if p.City != nil {
		fields = append(fields, FieldCity)
	}
	if p.Country != nil {
		fields = append(fields, FieldCountry)
	}
	return fields
}
