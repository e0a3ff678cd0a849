package utils_test

import (
	"testing"

	"freelanceflow-backend/utils"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	assert.True(t, utils.ValidatePhone("+14155552671"))
	assert.True(t, utils.ValidatePhone("+44 20 7946 0958"))
	assert.True(t, utils.ValidatePhone("(415) 555-2671"))

	assert.False(t, utils.ValidatePhone(""))
	assert.False(t, utils.ValidatePhone("abc"))
	assert.False(t, utils.ValidatePhone("+0123456"))
}

func TestValidStatus(t *testing.T) {
	assert.True(t, utils.ValidStatus("client", "active"))
	assert.True(t, utils.ValidStatus("project", "on_hold"))
	assert.True(t, utils.ValidStatus("milestone", "in_progress"))
	assert.True(t, utils.ValidStatus("invoice", "overdue"))
	assert.True(t, utils.ValidStatus("access", "shared"))

	assert.False(t, utils.ValidStatus("invoice", "archived"))
	assert.False(t, utils.ValidStatus("project", "done"))
	assert.False(t, utils.ValidStatus("unknown", "active"))
}
