package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptionPairString(t *testing.T) {
	tests := []struct {
		name   string
		option OptionPair
		want   string
	}{
		{"text and image", NewOptionPair("dog", "img/dog.png"), "(dog, img/dog.png)"},
		{"text only", NewOptionPair("dog", ""), "(dog)"},
		{"image only", NewOptionPair("", "img/dog.png"), "(img/dog.png)"},
		{"empty", NewOptionPair("", ""), "()"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.option.String())
		})
	}
}

func TestOptionPairPresence(t *testing.T) {
	option := NewOptionPair("dog", "")
	assert.True(t, option.HasText())
	assert.False(t, option.HasImage())

	option = NewOptionPair("", "img/dog.png")
	assert.False(t, option.HasText())
	assert.True(t, option.HasImage())
}
