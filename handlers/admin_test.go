package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	assert.Equal(t, 1, normalizePage(""))
	assert.Equal(t, 1, normalizePage("abc"))
	assert.Equal(t, 1, normalizePage("0"))
	assert.Equal(t, 1, normalizePage("-3"))
	assert.Equal(t, 4, normalizePage("4"))
}

func TestPageCount(t *testing.T) {
	assert.EqualValues(t, 0, pageCount(0, 6))
	assert.EqualValues(t, 1, pageCount(1, 6))
	assert.EqualValues(t, 1, pageCount(6, 6))
	assert.EqualValues(t, 2, pageCount(7, 6))
}
