package render

// RGB is a 24-bit terminal color.
type RGB struct {
	R, G, B uint8
}

// Lighten moves the color a third of the way to white.
func (c RGB) Lighten() RGB {
	return RGB{c.R + (255-c.R)/3, c.G + (255-c.G)/3, c.B + (255-c.B)/3}
}

// heroPalette holds the hero accent colors, indexed by Hero.Color.
var heroPalette = []RGB{
	{180, 50, 50},  // red
	{50, 160, 50},  // green
	{190, 160, 40}, // yellow
	{50, 80, 180},  // blue
	{160, 50, 160}, // magenta
	{50, 160, 160}, // cyan
}

// HeroColor returns the palette entry for idx, wrapping out-of-range values.
func HeroColor(idx int) RGB {
	n := len(heroPalette)
	return heroPalette[(idx%n+n)%n]
}

var (
	arenaBG  = RGB{12, 12, 18}
	hudBG    = RGB{20, 15, 22}
	border   = RGB{100, 70, 55}
	gold     = RGB{200, 180, 80}
	logText  = RGB{160, 160, 170}
	logNew   = RGB{220, 220, 230}
	dimText  = RGB{90, 90, 105}
	softText = RGB{140, 140, 155}
	numText  = RGB{180, 180, 195}
	warnText = RGB{255, 90, 60}
	guardFg  = RGB{120, 200, 255}
	emptyBar = RGB{45, 45, 55}
	hpLabel  = RGB{255, 80, 80}
	atbLabel = RGB{240, 190, 60}
)

// hpColor is green above half, yellow above a quarter, red below.
func hpColor(current, maximum int) RGB {
	if maximum <= 0 {
		return RGB{80, 80, 90}
	}
	ratio := float64(current) / float64(maximum)
	switch {
	case ratio > 0.5:
		return RGB{70, 210, 70}
	case ratio > 0.25:
		return RGB{220, 200, 40}
	}
	return RGB{220, 60, 40}
}

// gaugeColor is amber while filling and white when full.
func gaugeColor(speed, full int) RGB {
	if speed >= full {
		return RGB{250, 250, 250}
	}
	return RGB{210, 170, 50}
}
