// Package pathutil holds the materialized-path helpers shared by the
// service layer. Paths are chains of ancestor folder names with a trailing
// slash; the root path is "/".
package pathutil

// RootPath is the path of items with no parent.
const RootPath = "/"

// ChildPath returns the path for children of the given folder. The
// trailing slash is what keeps descendant-prefix matching segment-exact:
// "/Foo/" never matches items under "/Foobar/".
func ChildPath(parentPath, parentName string) string {
	return parentPath + parentName + "/"
}
