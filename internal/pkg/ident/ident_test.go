package ident

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewListingID(t *testing.T) {
	id := NewListingID()
	assert.True(t, IsListingID(id))
	assert.False(t, IsOrderID(id))
}

func TestNewOrderID(t *testing.T) {
	id := NewOrderID()
	assert.True(t, IsOrderID(id))
	assert.False(t, IsListingID(id))
}

func TestIDs_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		id := NewOrderID()
		_, dup := seen[id]
		assert.False(t, dup, "идентификатор повторился: %s", id)
		seen[id] = struct{}{}
	}
}

func TestIsListingID_Invalid(t *testing.T) {
	cases := []string{
		"",
		"lst_",
		"lst_not-a-ulid",
		"ord_01ARZ3NDEKTSV4RRFFQ69G5FAV",
		"01ARZ3NDEKTSV4RRFFQ69G5FAV",
		"lst_01ARZ3NDEKTSV4RRFFQ69G5FAVEXTRA",
	}
	for _, c := range cases {
		assert.False(t, IsListingID(c), "ожидали отказ для %q", c)
	}
}
