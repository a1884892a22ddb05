// Command devbench measures the compute, memory and storage capability of
// the host it runs on.
package main

func main() {
	Execute()
}
