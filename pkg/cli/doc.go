/*
Package cli provides command-line interface utilities for confgen.

The cli package includes output helpers, error types, and signal
handling used by the confgen command.

Output Formatting:

Status lines carry the ✓/✗ glyphs the generator has always printed:

	cli.Successf(os.Stdout, "Configuration is valid")
	cli.Failuref(os.Stderr, "%d findings", len(verr.Errors))

Listings render through Table, machine output through WriteJSON:

	table := cli.NewTable(os.Stdout, "ID", "TIME", "STATUS")
	table.Row(rec.ID, rec.RunTime.Format(time.RFC3339), rec.Status)
	table.Flush()

Signal Handling:

For watch mode, SetupSignalHandler returns a context cancelled on
SIGINT/SIGTERM:

	ctx := cli.SetupSignalHandler()
	return watcher.Run(ctx)
*/
package cli
