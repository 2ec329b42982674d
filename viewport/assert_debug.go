//go:build viewportdebug

package viewport

func debugAssert(ok bool, msg string) {
	if !ok {
		panic(msg)
	}
}
