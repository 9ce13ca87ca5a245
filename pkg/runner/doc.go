/*
Package runner implements the interactive calculator loop.

A Runner reads requests from an IOHandler (a filled form, a display mode
switch, a fresh session or quit), hands them to a numerology.Controller and
lets the same handler display errors and results. Two handlers are provided:

  - TextHandler: prompts for each field on a terminal and prints Markdown.
  - JSONHandler: reads and writes newline-delimited JSON for scripts.

# Usage

	r := runner.New(
		runner.WithHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
		runner.WithStore(store),
	)
	if err := r.Run(ctx, engine); err != nil {
		log.Fatal(err)
	}
*/
package runner
