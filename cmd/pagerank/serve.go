package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/lioia/pagerank/pkg/node"
	"github.com/lioia/pagerank/pkg/utils"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// NewServeCmd creates the serve subcommand
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rankings over HTTP and gRPC",
		Long: `Serve rankings over HTTP (HTTP_PORT) and gRPC (GRPC_PORT).

When RABBIT_HOST is set the server also consumes requests from RANK_QUEUE.
Settings are read from the environment and from a .env file.`,
		Args: cobra.NoArgs,
		RunE: runServeCmd,
	}
	addConfigFlags(cmd)
	return cmd
}

// NewWorkerCmd creates the worker subcommand
func NewWorkerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Consume ranking requests from RabbitMQ",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			env := utils.ReadEnvVars()
			if env.RabbitURL() == "" {
				return errors.New("RABBIT_HOST not set")
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runWorker(ctx, env, node.NewRanker(cfg))
		},
	}
	addConfigFlags(cmd)
	return cmd
}

func runServeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	env := utils.ReadEnvVars()
	ranker := node.NewRanker(cfg)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	eg, ctx := errgroup.WithContext(ctx)

	// gRPC server
	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%d", env.Host, env.GRPCPort))
	if err != nil {
		return fmt.Errorf("failed to listen for gRPC server: %w", err)
	}
	server := node.NewGRPCServer(ranker)
	eg.Go(func() error {
		utils.ServerLog("Starting gRPC server at %v", lis.Addr())
		return server.Serve(lis)
	})

	// HTTP API
	api := node.NewAPI(ranker)
	eg.Go(func() error {
		address := fmt.Sprintf("%s:%d", env.Host, env.HTTPPort)
		utils.ServerLog("Starting HTTP server at %s", address)
		if err := api.Start(address); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Queue worker
	if env.RabbitURL() != "" {
		eg.Go(func() error {
			return runWorker(ctx, env, ranker)
		})
	}

	eg.Go(func() error {
		<-ctx.Done()
		server.GracefulStop()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return api.Shutdown(shutdown)
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func runWorker(ctx context.Context, env utils.EnvVars, ranker *node.Ranker) error {
	// Connect to RabbitMQ
	queueConn, err := amqp.Dial(env.RabbitURL())
	if err != nil {
		return fmt.Errorf("could not connect to RabbitMQ: %w", err)
	}
	defer queueConn.Close()
	ch, err := queueConn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open a channel to RabbitMQ: %w", err)
	}
	defer ch.Close()

	worker := node.Worker{Ranker: ranker, Channel: ch, Queue: env.RankQueue}
	return worker.Run(ctx)
}
