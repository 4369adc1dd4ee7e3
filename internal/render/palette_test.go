package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHeroColor_Wraps(t *testing.T) {
	assert.Equal(t, heroPalette[0], HeroColor(0))
	assert.Equal(t, heroPalette[1], HeroColor(len(heroPalette)+1))
	assert.Equal(t, heroPalette[len(heroPalette)-1], HeroColor(-1))
}

func TestHPColor(t *testing.T) {
	assert.Equal(t, RGB{70, 210, 70}, hpColor(30, 50))
	assert.Equal(t, RGB{220, 200, 40}, hpColor(20, 50))
	assert.Equal(t, RGB{220, 60, 40}, hpColor(5, 50))
	assert.Equal(t, RGB{80, 80, 90}, hpColor(5, 0))
}

func TestAppendCell(t *testing.T) {
	got := string(appendCell(nil, Cell{Ch: 'x', Fg: RGB{1, 2, 3}, Bg: RGB{4, 5, 6}, Bold: true}))
	assert.Equal(t, "\x1b[0;1;38;2;1;2;3;48;2;4;5;6mx", got)
	assert.Equal(t, "\x1b[3;7H", string(appendMoveTo(nil, 3, 7)))
}
