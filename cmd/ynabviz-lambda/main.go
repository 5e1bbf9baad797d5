// Command ynabviz-lambda is the AWS Lambda entry point. Each invocation
// fetches the Food group and publishes its charts.
package main

import (
	"context"
	"fmt"
	"os"

	awslambda "github.com/aws/aws-lambda-go/lambda"

	"ynabviz/internal/backend"
	"ynabviz/internal/cli"
	"ynabviz/internal/lambda"
)

func main() {
	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := cli.SetupLogger(cfg, os.Stdout)

	orchestrator, sink, err := backend.NewFactory(logger).CreateOrchestrator(context.Background(), cfg)
	if err != nil {
		logger.Error("Failed to build refresh pipeline", "error", err, "sink", cfg.Sink)
		os.Exit(1)
	}
	defer sink.Close()

	awslambda.Start(lambda.NewHandler(orchestrator, logger))
}
