package main

import (
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/volneilb/user-registry/config"
	"github.com/volneilb/user-registry/pkg/events"
	"github.com/volneilb/user-registry/pkg/helpers"
)

const consumerTag = "user-worker"

// The user worker is a pure observer on the user queue: it consumes
// user-created messages and logs them. It never touches the store.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-worker", cfg.Env)

	if cfg.RabbitMQURL == "" || cfg.RabbitMQUserQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// Prefetch for fair dispatch
	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	if _, err := ch.QueueDeclare(cfg.RabbitMQUserQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQUserQueue, consumerTag, false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go consumeLoop(logger, msgs, done)

	logger.Infof("user worker listening on queue=%s", cfg.RabbitMQUserQueue)
	<-stop
	logger.Info("shutting down...")
	// Stop deliveries first so the loop can drain and exit before the
	// deferred closes tear the connection down underneath it.
	_ = ch.Cancel(consumerTag, false)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}

// consumeLoop drains deliveries until the channel closes, acking
// parsed messages and dropping unparsable ones.
func consumeLoop(logger *logrus.Logger, msgs <-chan amqp.Delivery, done chan<- struct{}) {
	defer close(done)
	for msg := range msgs {
		var created events.UserCreated
		if err := json.Unmarshal(msg.Body, &created); err != nil {
			logger.WithError(err).Warn("bad user created message")
			_ = msg.Nack(false, false)
			continue
		}
		logger.WithFields(logrus.Fields{
			"name":     created.Name,
			"email":    created.Email,
			"birthday": created.Birthday,
			"city":     created.Address.City,
		}).Info("received user created message")
		_ = msg.Ack(false)
	}
}
