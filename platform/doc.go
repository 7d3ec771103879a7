// Package platform finds the Steam installation root: the registry on
// Windows, conventional home-relative directories elsewhere.
package platform
