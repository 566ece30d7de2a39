package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/devconnector/config"
	"github.com/oksasatya/devconnector/pkg/helpers"
	"github.com/oksasatya/devconnector/pkg/mailer"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; email worker disabled (no real emails will be sent)")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		log.Fatal("Mailgun not configured")
	}

	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue, 16)
	if err != nil {
		log.Fatalf("amqp: %v", err)
	}
	defer consumer.Close()

	msgs, err := consumer.Deliveries()
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	worker := mailer.NewWorker(mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender), cfg.AppName, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	policy := mailer.DefaultRetryPolicy()
	var retries sync.WaitGroup

	go func() {
		defer close(done)
		defer retries.Wait()
		for msg := range msgs {
			attempts := helpers.DeliveryAttempts(msg)
			err := worker.Handle(ctx, msg.Body)
			disp, wait := policy.Decide(err, attempts)
			switch disp {
			case mailer.Ack:
				_ = msg.Ack(false)
			case mailer.Drop:
				logger.WithError(err).WithField("attempts", attempts).Warn("dropping email job")
				_ = msg.Nack(false, false)
			case mailer.Retry:
				logger.WithError(err).WithFields(logrus.Fields{"attempts": attempts, "retry_in": wait}).Warn("email send failed")
				// the delivery stays unacked while waiting, so prefetch throttles retries
				retries.Add(1)
				go func(msg amqp.Delivery) {
					defer retries.Done()
					select {
					case <-ctx.Done():
						_ = msg.Nack(false, true)
						return
					case <-time.After(wait):
					}
					if err := consumer.Requeue(ctx, msg, attempts); err != nil {
						logger.WithError(err).Warn("requeue failed, returning to queue")
						_ = msg.Nack(false, true)
					}
				}(msg)
			}
		}
	}()

	logger.Infof("email worker listening on queue=%s", cfg.RabbitMQEmailQueue)
	<-stop
	logger.Info("shutting down...")
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
