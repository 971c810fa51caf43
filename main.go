// Command dpdp-sim runs the discrete-event pickup-and-delivery simulator.
package main

import "github.com/dpdp-sim/dpdp-sim/cmd"

func main() {
	cmd.Execute()
}
