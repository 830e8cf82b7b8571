package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpetrenko/catalog_api/internal/apperr"
	"github.com/vpetrenko/catalog_api/internal/transport"
)

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, apperr.KindValidation, appErr.Kind)

	out := make(map[string]string, len(appErr.Fields))
	for _, f := range appErr.Fields {
		out[f.Field] = f.Message
	}
	return out
}

func TestStruct_ReportsJSONFieldNames(t *testing.T) {
	t.Parallel()

	err := Struct(transport.LoginRequest{})
	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

func TestStruct_Valid(t *testing.T) {
	t.Parallel()

	assert.NoError(t, Struct(transport.LoginRequest{
		Email:    "admin@example.com",
		Password: "Admin@123",
	}))
}

func TestStruct_ProductCreateRules(t *testing.T) {
	t.Parallel()

	err := Struct(transport.CreateProductRequest{
		Name:          "Business Card",
		CategoryID:    "not-a-uuid",
		SubCategoryID: "f47ac10b-58cc-4372-a567-0e02b2c3d479",
		ExternalURL:   "http://partner.example/x",
	})
	fields := fieldsOf(t, err)
	assert.Contains(t, fields, "categoryId")
	assert.Contains(t, fields, "externalUrl")
	assert.NotContains(t, fields, "subcategoryId")
}

func TestID(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ID("id", "f47ac10b-58cc-4372-a567-0e02b2c3d479"))

	for _, bad := range []string{"", "abc", "123", "f47ac10b-58cc-4372-a567"} {
		err := ID("id", bad)
		fields := fieldsOf(t, err)
		assert.Equal(t, "Invalid ID format", fields["id"])
	}
}
