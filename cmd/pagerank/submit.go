package main

import (
	"context"
	"fmt"
	"time"

	"github.com/lioia/pagerank/pkg/codec"
	"github.com/lioia/pagerank/pkg/graph"
	"github.com/lioia/pagerank/pkg/node"
	"github.com/lioia/pagerank/pkg/pagerank"
	"github.com/lioia/pagerank/pkg/utils"
	gonanoid "github.com/matoous/go-nanoid/v2"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/spf13/cobra"
)

// NewSubmitCmd creates the submit subcommand
func NewSubmitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit <corpus>",
		Short: "Send a graph to a running server and print its ranks",
		Long: `Load a corpus locally and ask a running server to rank it, either over gRPC
(default) or through the RabbitMQ request queue (--queue).

Ranking parameters left unset use the defaults of the server.`,
		Example: `  pagerank submit --grpc 127.0.0.1:1234 corpus0
  RABBIT_HOST=localhost pagerank submit --queue graph.txt`,
		Args: cobra.ExactArgs(1),
		RunE: runSubmitCmd,
	}
	cmd.Flags().String("grpc", "127.0.0.1:1234", "gRPC address of the server")
	cmd.Flags().Bool("queue", false, "Submit through RabbitMQ instead of gRPC")
	cmd.Flags().Duration("timeout", 30*time.Second, "Time to wait for the ranks")
	cmd.Flags().Float64P("damping", "d", 0, "Damping factor (0: server default)")
	cmd.Flags().IntP("samples", "n", 0, "Sample count (0: server default)")
	cmd.Flags().Int64("seed", 0, "Sampling seed (0: random)")
	return cmd
}

func runSubmitCmd(cmd *cobra.Command, args []string) error {
	g, err := graph.Load(args[0])
	if err != nil {
		return err
	}
	id, err := gonanoid.New()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	var cfg pagerank.Config
	cfg.Damping, _ = flags.GetFloat64("damping")
	cfg.Samples, _ = flags.GetInt("samples")
	cfg.Seed, _ = flags.GetInt64("seed")
	req := codec.NewRankRequest(id, g, cfg)

	timeout, _ := flags.GetDuration("timeout")
	var resp codec.RankResponse
	if useQueue, _ := flags.GetBool("queue"); useQueue {
		resp, err = submitToQueue(cmd.Context(), req, timeout)
	} else {
		address, _ := flags.GetString("grpc")
		resp, err = submitToServer(address, req, timeout)
	}
	if err != nil {
		return fmt.Errorf("request %s failed: %w", id, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Received results for %s:\n", resp.ID)
	printResults(cmd.OutOrStdout(), resp.Samples, pagerank.Result{Sampled: resp.Sampled, Iterated: resp.Iterated})
	return nil
}

func submitToServer(address string, req codec.RankRequest, timeout time.Duration) (codec.RankResponse, error) {
	server, err := node.NodeCall(address, timeout)
	if err != nil {
		return codec.RankResponse{}, err
	}
	defer server.Close()
	return server.Client.Submit(server.Ctx, req)
}

func submitToQueue(ctx context.Context, req codec.RankRequest, timeout time.Duration) (codec.RankResponse, error) {
	env := utils.ReadEnvVars()
	if env.RabbitURL() == "" {
		return codec.RankResponse{}, fmt.Errorf("RABBIT_HOST not set")
	}
	queueConn, err := amqp.Dial(env.RabbitURL())
	if err != nil {
		return codec.RankResponse{}, fmt.Errorf("could not connect to RabbitMQ: %w", err)
	}
	defer queueConn.Close()
	ch, err := queueConn.Channel()
	if err != nil {
		return codec.RankResponse{}, fmt.Errorf("failed to open a channel to RabbitMQ: %w", err)
	}
	defer ch.Close()

	client, err := node.NewQueueClient(ch, env.RankQueue)
	if err != nil {
		return codec.RankResponse{}, err
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return client.Submit(ctx, req)
}
