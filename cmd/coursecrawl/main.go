// Package main provides the entry point for the coursecrawl CLI.
//
// coursecrawl fetches course listings and detail records from the UTokyo
// online course catalogue, politely and resumably.
//
// Usage:
//
//	coursecrawl crawl <keyword>
//	coursecrawl crawl --preset <name>
//
// See --help for all available options.
package main

// main is the entry point for coursecrawl.
func main() {
	Execute()
}
