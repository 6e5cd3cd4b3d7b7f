/*
Package cli provides command-line interface utilities for the cheddar command.

Output Formatting:

Results are printed as text or JSON:

	formatter := cli.NewFormatter(cli.FormatJSON)
	if err := formatter.FormatTo(os.Stdout, result); err != nil {
		return err
	}

Results implementing Fielder are printed as an aligned table in text mode.

Exit Codes:

Commands return an ExitError to choose the process exit code; ExitCode maps
any error to the code main passes to os.Exit.

Signal Handling:

For graceful shutdown on SIGINT/SIGTERM:

	ctx, stop := cli.SetupSignalHandler(context.Background(), logger)
	defer stop()
*/
package cli
