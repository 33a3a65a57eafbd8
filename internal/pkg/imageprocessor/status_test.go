package imageprocessor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, STATUS_PENDING, NormalizeStatus(""))
	assert.Equal(t, STATUS_PENDING, NormalizeStatus("garbage"))
	assert.Equal(t, STATUS_PENDING, NormalizeStatus(STATUS_PENDING))
	assert.Equal(t, STATUS_PROCESSING, NormalizeStatus(STATUS_PROCESSING))
	assert.Equal(t, STATUS_COMPLETED, NormalizeStatus(STATUS_COMPLETED))
	assert.Equal(t, STATUS_FAILED, NormalizeStatus(STATUS_FAILED))
}
