package users

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeUser(t *testing.T) {
	t.Run("full payload", func(t *testing.T) {
		u, err := DecodeUser(map[string]any{
			"id":      float64(99),
			"name":    "Ann",
			"email":   "ann@x.com",
			"mobile":  "555",
			"city":    "Berlin",
			"country": "Germany",
		})
		require.NoError(t, err)
		assert.Equal(t, User{Name: "Ann", Email: "ann@x.com", Mobile: "555", City: "Berlin", Country: "Germany"}, u)
	})

	t.Run("non string name", func(t *testing.T) {
		_, err := DecodeUser(map[string]any{"name": float64(3), "email": "a@b.c"})
		require.Error(t, err)
		assert.Equal(t, "Validation error: Name is required and must be a string", err.Error())
	})

	t.Run("missing email", func(t *testing.T) {
		_, err := DecodeUser(map[string]any{"name": "Ann"})
		require.Error(t, err)
		assert.Equal(t, "Validation error: Email is required and must be a string", err.Error())
	})

	t.Run("truthy non string mobile", func(t *testing.T) {
		_, err := DecodeUser(map[string]any{"name": "Ann", "email": "a@b.c", "mobile": float64(555)})
		require.Error(t, err)
		assert.Equal(t, "Validation error: Mobile must be a string", err.Error())
	})

	t.Run("falsy non string optional is absent", func(t *testing.T) {
		u, err := DecodeUser(map[string]any{"name": "Ann", "email": "a@b.c", "mobile": nil, "city": false})
		require.NoError(t, err)
		assert.Empty(t, u.Mobile)
		assert.Empty(t, u.City)
	})
}

func TestDecodePartial(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		want    PartialUser
		wantErr string
	}{
		{
			name:    "empty payload",
			payload: map[string]any{},
			want:    PartialUser{},
		},
		{
			name:    "string fields",
			payload: map[string]any{"name": "Test", "email": "test@test.com"},
			want:    PartialUser{Name: String("Test"), Email: String("test@test.com")},
		},
		{
			name:    "numeric email",
			payload: map[string]any{"name": "Test", "email": float64(3)},
			wantErr: "Validation error: Email must be a string",
		},
		{
			name:    "numeric mobile",
			payload: map[string]any{"name": "Test", "email": "test@test.com", "mobile": float64(3)},
			wantErr: "Validation error: Mobile must be a string",
		},
		{
			name:    "zero is treated as absent",
			payload: map[string]any{"mobile": float64(0), "name": ""},
			want:    PartialUser{Name: String("")},
		},
		{
			name:    "null never clears a field",
			payload: map[string]any{"mobile": nil, "city": nil, "country": nil},
			want:    PartialUser{},
		},
		{
			name:    "empty string clears a field",
			payload: map[string]any{"city": nil, "country": ""},
			want:    PartialUser{Country: String("")},
		},
		{
			name: "unknown and malicious keys are dropped",
			payload: map[string]any{
				"name":                                "Valid Name",
				"email":                               "valid@example.com",
				"mobile":                              "1234567890",
				"id; DROP TABLE users; --":            "malicious_value",
				"email': 'malicious@email.com'; --":   "should_not_work",
				"invalid_column":                      "also_ignored",
				"'; DELETE FROM users; --":            "attack",
				"cell":                                "5550000",
			},
			want: PartialUser{
				Name:   String("Valid Name"),
				Email:  String("valid@example.com"),
				Mobile: String("1234567890"),
			},
		},
		{
			name: "metacharacters in values are kept verbatim",
			payload: map[string]any{
				"name":   "'; DROP TABLE users; --",
				"email":  "'; DROP TABLE users; --",
				"mobile": "'; DROP TABLE users; --",
			},
			want: PartialUser{
				Name:   String("'; DROP TABLE users; --"),
				Email:  String("'; DROP TABLE users; --"),
				Mobile: String("'; DROP TABLE users; --"),
			},
		},
		{
			name:    "only unknown keys leaves nothing to update",
			payload: map[string]any{"invalid_column1": "value1", "'; DROP TABLE users; --": "malicious"},
			want:    PartialUser{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodePartial(tt.payload)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr, err.Error())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
