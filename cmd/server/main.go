// Command moneyhive is the CLI entrypoint: "serve" starts the fx
// application (migrations, scheduler, HTTP driver); "migrate"/"db"/
// "seed" manage the schema and initial rows directly.
package main

import (
	cmd "moneyhive/cmd/cli"
)

func main() {
	cmd.Execute()
}
