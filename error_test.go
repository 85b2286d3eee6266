package claimharvest_test

import (
	"testing"

	"github.com/cdunford/claimharvest"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := claimharvest.Errorf(claimharvest.ENOTFOUND, "page %q not found", "bpc-157")

	assert.Equal(t, claimharvest.ENOTFOUND, claimharvest.ErrorCode(err))
	assert.Equal(t, "page \"bpc-157\" not found", claimharvest.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, claimharvest.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, claimharvest.ErrorMessage(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, claimharvest.EINTERNAL, claimharvest.ErrorCode(assert.AnError))
	assert.Equal(t, "Internal error.", claimharvest.ErrorMessage(assert.AnError))
}
