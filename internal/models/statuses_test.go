package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountStatus_CanDeactivate(t *testing.T) {
	assert.True(t, AccountStatusNew.CanDeactivate())
	assert.True(t, AccountStatusActive.CanDeactivate())
	assert.False(t, AccountStatusInactive.CanDeactivate())
	assert.False(t, AccountStatus("unknown").CanDeactivate())
}
