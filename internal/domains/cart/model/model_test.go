package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSameOptionsOrderInsensitive(t *testing.T) {
	a := []SelectedOption{{Key: "size", Value: "large"}, {Key: "spice", Value: "mild"}}
	b := []SelectedOption{{Key: "spice", Value: "mild"}, {Key: "size", Value: "large"}}

	assert.True(t, SameOptions(a, b))
	assert.True(t, SameOptions(nil, nil))
	assert.False(t, SameOptions(a, a[:1]))
}

func TestSameOptionsDuplicateKeysDoNotCollapse(t *testing.T) {
	a := []SelectedOption{{Key: "size", Value: "L"}, {Key: "size", Value: "M"}}
	b := []SelectedOption{{Key: "size", Value: "M"}, {Key: "size", Value: "M"}}

	assert.False(t, SameOptions(a, b))
	assert.True(t, SameOptions(a, []SelectedOption{{Key: "size", Value: "M"}, {Key: "size", Value: "L"}}))
}

func TestSameOptionsValueMismatch(t *testing.T) {
	a := []SelectedOption{{Key: "size", Value: "large"}}
	b := []SelectedOption{{Key: "size", Value: "small"}}

	assert.False(t, SameOptions(a, b))
}
