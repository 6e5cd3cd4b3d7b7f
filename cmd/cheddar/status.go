package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"cheddar-hq/adapter/pkg/cli"
	"cheddar-hq/adapter/pkg/config"
	"cheddar-hq/adapter/pkg/telemetry/health"
)

// Exit codes of the status command.
const (
	exitNotAccepting     = 2
	exitLifecycleFailure = 3
)

var statusFlags struct {
	address string
	output  string
	timeout time.Duration
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the status of a running adapter",
	Long: `Query the status endpoint of a running adapter and print its lifecycle
status, whether it accepts requests and how many requests are in progress.

Exit codes:
  0  the adapter is accepting requests
  1  the adapter could not be reached
  2  the adapter is not accepting requests
  3  the adapter could not read its lifecycle status

Examples:
  # Query the adapter configured in config.yaml
  cheddar status --config config.yaml

  # Query a specific adapter as JSON
  cheddar status --address http://10.0.0.5:8080 --output json`,
	RunE: showStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVarP(&statusFlags.address, "address", "a", "", "adapter base URL (defaults to the configured listen address)")
	statusCmd.Flags().StringVarP(&statusFlags.output, "output", "o", "text", "output format: text, json")
	statusCmd.Flags().DurationVar(&statusFlags.timeout, "timeout", 5*time.Second, "request timeout")
}

// statusResult is what the status command prints.
type statusResult struct {
	Address string `json:"address"`
	health.StatusResponse
}

// Fields implements cli.Fielder.
func (r statusResult) Fields() []cli.Field {
	fields := []cli.Field{
		{Name: "Adapter", Value: r.Address},
		{Name: "Lifecycle status", Value: r.LifecycleStatus},
		{Name: "Accepting requests", Value: r.AcceptingRequests},
		{Name: "Requests in progress", Value: r.RequestsInProgress},
	}
	if r.Error != "" {
		fields = append(fields, cli.Field{Name: "Error", Value: r.Error})
	}
	return append(fields, cli.Field{Name: "Checked at", Value: r.Timestamp.Format(time.RFC3339)})
}

func showStatus(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(statusFlags.output)
	if err != nil {
		return cli.NewConfigError("output", err.Error())
	}

	base, statusPath, err := statusTarget()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, statusFlags.timeout)
	defer cancel()

	result, code, err := fetchStatus(ctx, base, statusPath)
	if err != nil {
		return cli.NewCommandError("status", err)
	}

	if err := cli.NewFormatter(format).FormatTo(cmd.OutOrStdout(), result); err != nil {
		return cli.NewCommandError("status", err)
	}

	switch {
	case code == http.StatusInternalServerError:
		return cli.NewExitError(exitLifecycleFailure, nil)
	case !result.AcceptingRequests:
		return cli.NewExitError(exitNotAccepting, nil)
	}
	return nil
}

// statusTarget resolves the adapter base URL and status path from flags and
// configuration.
func statusTarget() (string, string, error) {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return "", "", cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	base := statusFlags.address
	if base == "" {
		base = cfg.Server.ListenAddress
	}
	if !strings.Contains(base, "://") {
		base = "http://" + base
	}

	return strings.TrimSuffix(base, "/"), cfg.Telemetry.Health.StatusPath, nil
}

// fetchStatus GETs the status endpoint. 200, 503 and 500 all carry a status
// body; any other code is an error.
func fetchStatus(ctx context.Context, base, path string) (statusResult, int, error) {
	result := statusResult{Address: base}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+path, nil)
	if err != nil {
		return result, 0, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return result, 0, fmt.Errorf("adapter at %s did not respond in time", base)
		}
		return result, 0, fmt.Errorf("failed to reach adapter at %s: %w", base, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusServiceUnavailable, http.StatusInternalServerError:
	default:
		return result, resp.StatusCode, fmt.Errorf("unexpected response from %s: %s", base+path, resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(&result.StatusResponse); err != nil {
		return result, resp.StatusCode, fmt.Errorf("failed to decode status response: %w", err)
	}

	return result, resp.StatusCode, nil
}
