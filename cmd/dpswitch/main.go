// Command dpswitch switches between predefined multi-monitor layouts.
package main

func main() {
	Execute()
}
