// Command sfatrie builds trie indexes over random-walk workloads and checks
// their answers against an exhaustive scan.
package main

func main() {
	Execute()
}
