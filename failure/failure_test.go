package failure

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidation_MessagesSortedByField(t *testing.T) {
	v := Violations{}
	v.Add("name", "must be title case")
	v.Add("code", "must be three uppercase letters")
	v.Add("code", "ignored second message")

	err := v.Err()

	assert.Equal(t, KindValidation, Classify(err))
	assert.Equal(t, []string{
		"code: must be three uppercase letters",
		"name: must be title case",
	}, Messages(err))
}

func TestViolations_EmptyIsNil(t *testing.T) {
	assert.NoError(t, Violations{}.Err())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		err  error
		want Kind
	}{
		{NotFound("Currency"), KindNotFound},
		{AuthenticationRequired(), KindAuthentication},
		{InvalidCredentials(errors.New("expired")), KindAuthentication},
		{Forbidden("read only"), KindAuthorization},
		{Constraint(errors.New("UNIQUE constraint failed"), "code", "already exists"), KindConstraint},
		{Unexpected(errors.New("disk"), "storage failed"), KindUnexpected},
		{errors.New("plain"), KindUnexpected},
		{fmt.Errorf("wrapped: %w", NotFound("Product")), KindNotFound},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.err), "%v", tt.err)
	}
}

func TestMessages(t *testing.T) {
	assert.Nil(t, Messages(nil))
	assert.Equal(t, []string{"Currency not found"}, Messages(NotFound("Currency")))
	assert.Equal(t, []string{"boom"}, Messages(errors.New("boom")))
	assert.Equal(t,
		[]string{"code: Currency with this Code already exists."},
		Messages(Constraint(errors.New("dup"), "code", "Currency with this Code already exists.")),
	)
}

func TestUnexpected_KeepsCategorizedErrors(t *testing.T) {
	nf := NotFound("QR Code")
	assert.Same(t, nf, Unexpected(nf, "ignored"))
	assert.Nil(t, Unexpected(nil, "ignored"))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "ConstraintViolation", KindConstraint.String())
	assert.Equal(t, "UnexpectedFailure", Kind(99).String())
}
