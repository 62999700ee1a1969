// Package resolver computes where a CSS-referenced asset is relocated to
// and what the rewritten url(...) must say so the CSS keeps pointing at it.
//
// Given a CSS file at /project/src/css/page/home.css (css/page/home.css
// relative to the pipeline root), the reference ../../images/foo.png?a=123
// and the base "assets":
//
//	asset on disk      /project/src/images/foo.png
//	common ancestor    /project/src
//	new asset path     assets/images/foo.png
//	new url            url("../../assets/images/foo.png?a=123")
//
// The asset keeps its directory layout relative to the deepest directory it
// shares with the CSS file, rooted under the base. Resolution is purely
// lexical; nothing here touches the filesystem.
package resolver
