// Package starfield generates decorative starfields for page backgrounds.
//
// A starfield is a fixed number of [Star] values, each with an independently
// drawn size, position and twinkle timing. Stars become [Element] values that
// are appended, in creation order, to a [Container] such as the page's
// `#stars` div.
//
// # Initialization
//
// [Initialize] is the one-shot entry point a host calls once its page
// structure is ready:
//
//	doc, _ := dom.NewPage("Stars", starfield.DefaultContainerID)
//	err := starfield.InitializeByID(doc, starfield.DefaultContainerID,
//	    starfield.DefaultCount, starfield.NewSource(42))
//
// A missing container fails with [*MissingTargetError] before any star is
// created. Calling Initialize twice on one container appends a second batch;
// the container is never cleared.
//
// # Randomness
//
// All draws go through a [Source]. A seeded source from [NewSource] makes a
// starfield fully reproducible; *math/rand/v2.Rand satisfies the interface.
package starfield
