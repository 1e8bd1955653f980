// Command draftdemo exercises the drafting core from the command line.
//
// Usage:
//
//	draftdemo grid [--units metric]
//	draftdemo draw --script session.yaml --out drawing.png
//
// Settings come from a YAML file (--config or $DRAFT_CONFIG), then from
// DRAFT_* environment variables, then from flags.
package main

func main() {
	Execute()
}
