// Command hxdemo serves a small task board that exercises every part of the
// htmx response composer: triggers in all three phases, fragment rendering,
// polling with stop, client redirects and HX-Location navigation.
package main

func main() {
	Execute()
}
