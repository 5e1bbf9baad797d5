package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/spf13/cobra"

	"ynabviz/internal/amqp"
	"ynabviz/internal/backend"
	"ynabviz/internal/cli"
	"ynabviz/internal/worker"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume refresh requests from AMQP",
	RunE:  runWorker,
}

var enqueueSource string

var enqueueCmd = &cobra.Command{
	Use:   "enqueue",
	Short: "Publish a refresh request to AMQP",
	RunE:  runEnqueue,
}

func init() {
	enqueueCmd.Flags().StringVar(&enqueueSource, "source", "cli", "Source recorded on the message")
	rootCmd.AddCommand(workerCmd, enqueueCmd)
}

func runWorker(_ *cobra.Command, _ []string) error {
	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		return err
	}
	logger := cli.SetupLogger(cfg, os.Stdout)
	logger.Info("Starting ynabviz worker", "queue", cfg.AMQPQueue, "sink", cfg.Sink)

	orchestrator, sink, err := backend.NewFactory(logger).CreateOrchestrator(context.Background(), cfg)
	if err != nil {
		return err
	}
	defer sink.Close()

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)
	err = worker.NewRefreshWorker(orchestrator, logger).Run(ctx, client)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	<-done
	return nil
}

func runEnqueue(cmd *cobra.Command, _ []string) error {
	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		return err
	}
	logger := cli.SetupLogger(cfg, os.Stderr)

	client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue, logger)
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
	defer cancel()
	msg := amqp.NewRefreshMessage(enqueueSource)
	if err := client.PublishRefresh(ctx, msg); err != nil {
		return err
	}
	logger.Info("Refresh request published", "request_id", msg.RequestID)
	return nil
}
