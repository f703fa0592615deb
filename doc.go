// Package scrolly is a retained-mode, scroll-driven narrative engine for
// [Ebitengine].
//
// A story is a [Document]: a tree of [Node] values laid out top to bottom
// and viewed through a [Viewport]. Scroll-bound behavior is declared as
// regions: spans of the scroll offset, anchored to a node, that drive an
// [Animation] or fire transitions as the reader scrolls.
//
// The engine core has no rendering dependency. The scrolly/host package
// draws the document, reads wheel, keyboard and pointer input, and runs
// the game loop.
//
// # Quick start
//
//	doc := scrolly.NewDocument(1280, 720)
//	scene := scrolly.NewBox("scene-1", 0, 900, bg)
//	doc.Root().AddChild(scene)
//
//	reg := scrolly.NewRegistry(doc)
//	reg.Build(func(b *scrolly.Builder) error {
//		b.Region(scrolly.RegionConfig{
//			Trigger: "#scene-1",
//			Start:   "top 70%",
//			End:     "bottom center",
//			Scrub:   1.2,
//			Animation: scrolly.NewAnimation(scrolly.Step{
//				Targets: ".line",
//				From:    scrolly.Props{scrolly.PropAlpha: scrolly.V(0)},
//				To:      scrolly.Props{scrolly.PropAlpha: scrolly.V(1)},
//				Stagger: 0.1,
//			}),
//		})
//		return nil
//	})
//
// Each frame, feed input to [Viewport.SetScroll] or [Viewport.ScrollBy] and
// call [Registry.Update]. The viewport samples the scroll offset once and
// every region reads that value.
//
// # Regions
//
// A region's progress is 0 before its start anchor, 1 after its end anchor
// and linear in between. [ModeScrub] regions map progress onto the
// animation, optionally smoothed. Toggle regions play transitions in time
// when progress leaves 0: [ModeToggleOnce] fires once per build,
// [ModeToggleReversible] reverses when progress returns to 0.
//
// Anchors use "<element edge> <viewport edge>" descriptors such as
// "top 70%", "center center" or "bottom bottom-=150px". See [ParseAnchor].
//
// # Horizontal sections
//
// A [Horizontal] pins a wrapper while its track translates left by exactly
// the track's overflow. Regions with a Container measure item positions on
// the track instead of the page.
//
// # Rebuilds
//
// Call [Registry.Invalidate] on resize or content changes. The next
// [Registry.Update] tears every region down and runs the setup again
// before sampling, so no frame sees half-built state. Errors never stop
// the story: a bad region is disabled, and a failed setup falls back to
// the static presentation (see [Registry.EnableStaticFallback]).
//
// [Ebitengine]: https://ebitengine.org
package scrolly
