// Package pathstyle provides the path handling rules the resolver works
// with. A PathStyle bundles a separator with the join, relative, dir and
// base operations for one platform, so that POSIX and Windows paths can be
// resolved on any host.
//
// Three styles exist:
//
//	Posix()   - forward slashes, no volumes
//	Windows() - backslashes, drive letter volumes, '/' accepted on input
//	Native()  - whatever path/filepath does on the host
//
// The operations follow path/filepath semantics on the matching platform.
package pathstyle
