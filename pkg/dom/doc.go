// Package dom is a small server-side document model for star pages.
//
// Documents are parsed with golang.org/x/net/html and expose their elements
// through [starfield.Locator] and [starfield.Container], so the generator can
// populate a page exactly as a browser script would, then render it as HTML.
//
//	doc, _ := dom.NewPage("Stars", starfield.DefaultContainerID)
//	_ = starfield.InitializeByID(doc, starfield.DefaultContainerID, 200, nil)
//	_ = doc.Render(w)
package dom
