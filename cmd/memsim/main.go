// Command memsim drives the block-list allocator simulator from the shell.
package main

func main() {
	execute()
}
