package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressBar_Render(t *testing.T) {
	p := NewProgressBar(4, 8)

	p.Step()
	out := p.Render("group 1", true)
	assert.Contains(t, out, "██░░░░░░")
	assert.Contains(t, out, "1/4")
	assert.Contains(t, out, "group 1")

	for i := 0; i < 10; i++ {
		p.Step()
	}
	assert.Contains(t, p.Render("done", false), "4/4")
}

func TestProgressBar_Empty(t *testing.T) {
	assert.Empty(t, NewProgressBar(0, 0).Render("x", true))
}

func TestNewProgressBar_DefaultWidth(t *testing.T) {
	assert.Equal(t, 15, NewProgressBar(3, -1).width)
}
