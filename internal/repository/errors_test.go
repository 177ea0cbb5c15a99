package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateKey(t *testing.T) {
	assert.True(t, isDuplicateKey(errors.New("Error 1062 (23000): Duplicate entry 'a' for key 'uq_registrations_candidate'")))
	assert.False(t, isDuplicateKey(errors.New("Error 1146 (42S02): Table 'bicycle.candidates' doesn't exist")))
	assert.False(t, isDuplicateKey(nil))
}
