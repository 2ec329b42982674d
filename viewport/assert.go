//go:build !viewportdebug

package viewport

func debugAssert(bool, string) {}
