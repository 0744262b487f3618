package main

import "fmt"

// Run executes the status command. An unavailable capability is reported,
// not returned as an error.
func (c *StatusCmd) Run(deps *Dependencies) error {
	state := deps.Inference.Capability(deps.Ctx)
	if state.Available {
		fmt.Fprintln(deps.Stdout, "AI features available")
		return nil
	}
	fmt.Fprintln(deps.Stdout, state.Reason.Message())
	return nil
}
