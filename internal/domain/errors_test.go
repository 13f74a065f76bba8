package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodeAndMessage(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    string
		message string
	}{
		{"nil", nil, "", ""},
		{"invalid", Invalid("lead.upload", "File must be a CSV"), EINVALID, "File must be a CSV"},
		{"wrapped", fmt.Errorf("handler: %w", TooLarge("lead.upload", "too big")), ETOOLARGE, "too big"},
		{"not found", NotFound("lead.get", "lead", "abc"), ENOTFOUND, `lead with ID "abc" not found`},
		{"internal hides message", Internal(errors.New("db down"), "lead.list", "query failed"), EINTERNAL, internalMessage},
		{"plain error", errors.New("boom"), EINTERNAL, internalMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, ErrorCode(tt.err))
			assert.Equal(t, tt.message, ErrorMessage(tt.err))
		})
	}
}

func TestError_UnwrapAndOp(t *testing.T) {
	cause := errors.New("bad quote")
	err := Wrap(cause, EINVALID, "lead.upload", "Could not parse CSV")

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "lead.upload: Could not parse CSV", err.Error())
	assert.Equal(t, "lead.upload", ErrorOp(err))
	assert.Equal(t, "", ErrorOp(cause))
}

func TestValidationError(t *testing.T) {
	err := MissingField("lead.upload", "file")
	assert.Equal(t, []FieldError{{Loc: []string{"body", "file"}, Msg: "Field required", Type: "missing"}}, err.Fields)
	assert.Equal(t, "lead.upload: [body file]: Field required", err.Error())

	err.Add([]string{"query", "limit"}, "Input should be a valid integer", "int_parsing")
	assert.Len(t, err.Fields, 2)
	assert.Equal(t, "lead.upload: 2 invalid fields", err.Error())
}
