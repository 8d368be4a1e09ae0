package node

import (
	"context"
	"errors"

	"github.com/lioia/pagerank/pkg/codec"
	"github.com/lioia/pagerank/pkg/utils"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Worker takes ranking requests from a queue and publishes every response
// to the queue named in the request ReplyTo, with the same CorrelationId.
// Each request is computed entirely by the worker that received it.
type Worker struct {
	Ranker  *Ranker
	Channel *amqp.Channel
	Queue   string
}

// Run consumes requests until ctx is done or the channel is closed
func (w *Worker) Run(ctx context.Context) error {
	queue, err := utils.DeclareQueue(w.Channel, w.Queue)
	if err != nil {
		return err
	}
	msgs, err := utils.Consume(w.Channel, queue.Name)
	if err != nil {
		return err
	}
	utils.ServerLog("Worker registered consumer on %s", queue.Name)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("queue consumer closed")
			}
			w.handle(ctx, d)
		}
	}
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	body, err := w.HandleDelivery(d.Body)
	if err != nil {
		// Undecodable body: requeueing would loop forever
		utils.WarnLog("worker", "Dropping message %s: %v", d.CorrelationId, err)
		if err := d.Nack(false, false); err != nil {
			utils.WarnLog("worker", "Could not NACK to message queue: %v", err)
		}
		return
	}
	if d.ReplyTo != "" {
		err = w.Channel.PublishWithContext(ctx,
			"",
			d.ReplyTo, // routing key
			false,     // mandatory
			false,
			amqp.Publishing{
				ContentType:   codec.ContentType,
				CorrelationId: d.CorrelationId,
				Body:          body,
			})
		if err != nil {
			utils.FailOnNack(d, err)
			return
		}
	}
	// Ack
	if err := d.Ack(false); err != nil {
		utils.WarnLog("worker", "Could not ACK message %s: %v", d.CorrelationId, err)
	}
}

// HandleDelivery turns a request body into a response body. Ranking
// failures are reported inside the response; only an undecodable request
// returns an error.
func (w *Worker) HandleDelivery(body []byte) ([]byte, error) {
	req, err := codec.UnmarshalRequest(body)
	if err != nil {
		return nil, err
	}
	resp, err := w.Ranker.Handle(req)
	if err != nil {
		utils.ServerLog("Request %s failed: %v", resp.ID, err)
	}
	return codec.MarshalResponse(resp)
}

// QueueClient submits requests to workers and waits for their replies
type QueueClient struct {
	channel *amqp.Channel
	queue   string
	replies string
	pending *utils.SafeMap[string, chan codec.RankResponse]
}

func NewQueueClient(ch *amqp.Channel, queue string) (*QueueClient, error) {
	if _, err := utils.DeclareQueue(ch, queue); err != nil {
		return nil, err
	}
	replies, err := utils.DeclareReplyQueue(ch)
	if err != nil {
		return nil, err
	}
	msgs, err := ch.Consume(
		replies.Name, // queue
		"",           // consumer
		true,         // auto-ack
		true,         // exclusive
		false,        // no-local
		false,        // no-wait
		nil,          // args
	)
	if err != nil {
		return nil, err
	}
	c := &QueueClient{
		channel: ch,
		queue:   queue,
		replies: replies.Name,
		pending: utils.NewSafeMap[string, chan codec.RankResponse](),
	}
	go c.dispatch(msgs)
	return c, nil
}

func (c *QueueClient) dispatch(msgs <-chan amqp.Delivery) {
	for d := range msgs {
		waiting, ok := c.pending.Take(d.CorrelationId)
		if !ok {
			utils.WarnLog("client", "Reply for unknown request %s", d.CorrelationId)
			continue
		}
		resp, err := codec.UnmarshalResponse(d.Body)
		if err != nil {
			resp = codec.RankResponse{ID: d.CorrelationId, Error: err.Error()}
		}
		waiting <- resp
	}
	// Reply queue gone: nobody will answer the requests still waiting
	for _, id := range c.pending.Keys() {
		if waiting, ok := c.pending.Take(id); ok {
			waiting <- codec.RankResponse{ID: id, Error: "reply queue closed"}
		}
	}
}

// Submit publishes req and blocks until its response arrives or ctx is done.
// req.ID must be set; it is used as correlation id.
func (c *QueueClient) Submit(ctx context.Context, req codec.RankRequest) (codec.RankResponse, error) {
	if req.ID == "" {
		return codec.RankResponse{}, errors.New("request id not set")
	}
	body, err := codec.MarshalRequest(req)
	if err != nil {
		return codec.RankResponse{}, err
	}
	waiting := make(chan codec.RankResponse, 1)
	c.pending.Put(req.ID, waiting)
	err = c.channel.PublishWithContext(ctx,
		"",
		c.queue, // routing key
		false,   // mandatory
		false,
		amqp.Publishing{
			DeliveryMode:  amqp.Persistent,
			ContentType:   codec.ContentType,
			CorrelationId: req.ID,
			ReplyTo:       c.replies,
			Body:          body,
		})
	if err != nil {
		c.pending.Take(req.ID)
		return codec.RankResponse{}, err
	}
	select {
	case resp := <-waiting:
		if resp.Error != "" {
			return resp, errors.New(resp.Error)
		}
		return resp, nil
	case <-ctx.Done():
		c.pending.Take(req.ID)
		return codec.RankResponse{}, ctx.Err()
	}
}
