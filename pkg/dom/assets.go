package dom

import "embed"

//go:embed assets/page.html assets/stars.css
var assets embed.FS

// Stylesheet returns the twinkle stylesheet embedded in default pages.
func Stylesheet() []byte {
	css, _ := assets.ReadFile("assets/stars.css")
	return css
}
