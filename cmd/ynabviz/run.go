package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"ynabviz/internal/backend"
	"ynabviz/internal/budget"
	"ynabviz/internal/cli"
	"ynabviz/internal/core"
	"ynabviz/internal/lambda"
)

var (
	runSink    string
	runMode    string
	runSample  bool
	runTimeout time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one refresh and print the handler response",
	Long:  "Invokes the Lambda handler locally with a mock API Gateway event and prints the JSON response.",
	RunE:  runRefresh,
}

func init() {
	runCmd.Flags().StringVar(&runSink, "sink", "", "Override SINK (s3, sqlite, memory, notion, sheets)")
	runCmd.Flags().StringVar(&runMode, "mode", "", "Override PUBLISH_MODE (dashboard, categories)")
	runCmd.Flags().BoolVar(&runSample, "sample", false, "Use a built-in Food group instead of calling YNAB")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 30*time.Second, "Overall timeout")
	rootCmd.AddCommand(runCmd)
}

// sampleGroups mirrors a small real budget, in milliunits.
var sampleGroups = budget.Static{
	{Name: "Bills", Categories: []core.CategoryRecord{{Name: "Rent", Budgeted: 1200000, Balance: 0, Activity: -1200000}}},
	{Name: core.FoodGroupName, Categories: []core.CategoryRecord{
		{Name: "Groceries", Budgeted: 500000, Balance: 300000, Activity: -200000},
		{Name: "Restaurants", Budgeted: 200000, Balance: 50000, Activity: -150000},
		{Name: "Dining", Budgeted: 0, Balance: 0, Activity: 0},
		{Name: "Coffee Shops", Budgeted: 40000, Balance: -5000, Activity: -45000},
	}},
}

func runRefresh(cmd *cobra.Command, _ []string) error {
	if runSink != "" {
		os.Setenv("SINK", runSink)
	}
	if runMode != "" {
		os.Setenv("PUBLISH_MODE", runMode)
	}
	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		return err
	}
	logger := cli.SetupLogger(cfg, os.Stderr)

	ctx, cancel := context.WithTimeout(cmd.Context(), runTimeout)
	defer cancel()

	factory := backend.NewFactory(logger)
	if runSample {
		factory.Source = sampleGroups
	}
	orchestrator, sink, err := factory.CreateOrchestrator(ctx, cfg)
	if err != nil {
		return err
	}
	defer sink.Close()

	ctx = lambdacontext.NewContext(ctx, &lambdacontext.LambdaContext{AwsRequestID: "local-" + uuid.NewString()})
	event, err := json.Marshal(events.APIGatewayProxyRequest{
		HTTPMethod: "GET",
		Path:       "/refresh",
		RequestContext: events.APIGatewayProxyRequestContext{
			RequestID: uuid.NewString(),
			Stage:     "local",
		},
	})
	if err != nil {
		return err
	}

	resp, err := lambda.NewHandler(orchestrator, logger)(ctx, event)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), resp.Body)
	if resp.StatusCode != 200 {
		return fmt.Errorf("refresh failed with status %d", resp.StatusCode)
	}
	return nil
}
