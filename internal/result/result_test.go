package result

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOkCarriesValue(t *testing.T) {
	r := Ok(map[string]string{"id": "abc"})

	assert.True(t, r.IsSuccess())
	assert.False(t, r.IsFailure())
	assert.Equal(t, map[string]string{"id": "abc"}, r.Value())
}

func TestFailCarriesValue(t *testing.T) {
	r := Fail("owner mismatch")

	assert.True(t, r.IsFailure())
	assert.False(t, r.IsSuccess())
	assert.Equal(t, "owner mismatch", r.Value())
}

func TestZeroValueIsSuccessWithNilPayload(t *testing.T) {
	var r Result

	assert.True(t, r.IsSuccess())
	assert.Nil(t, r.Value())
}
