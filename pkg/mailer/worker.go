package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	mailtpl "github.com/oksasatya/devconnector/pkg/mailer/templates"
)

// ErrPoisonMessage marks a job that can never succeed and must not be requeued.
var ErrPoisonMessage = errors.New("poison message")

// Sender delivers one rendered email.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Worker renders queued EmailJobs and hands them to a Sender.
type Worker struct {
	Sender  Sender
	AppName string
	Timeout time.Duration
	Logger  *logrus.Logger
}

func NewWorker(sender Sender, appName string, logger *logrus.Logger) *Worker {
	return &Worker{Sender: sender, AppName: appName, Timeout: 15 * time.Second, Logger: logger}
}

// Handle processes one queue message. Errors wrapping ErrPoisonMessage
// should be dropped; any other error is worth a retry.
func (w *Worker) Handle(ctx context.Context, body []byte) error {
	var job EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrPoisonMessage, err)
	}
	if strings.TrimSpace(job.To) == "" {
		return fmt.Errorf("%w: missing recipient", ErrPoisonMessage)
	}

	subject, text, html := job.Subject, job.Text, job.HTML
	if job.Template != "" {
		if job.Data == nil {
			job.Data = map[string]any{}
		}
		if _, ok := job.Data["AppName"]; !ok && w.AppName != "" {
			job.Data["AppName"] = w.AppName
		}
		s, t, h, err := mailtpl.Render(job.Template, job.Data)
		if err != nil {
			return fmt.Errorf("%w: render %s: %v", ErrPoisonMessage, job.Template, err)
		}
		subject, text, html = s, t, h
	}

	c, cancel := context.WithTimeout(ctx, w.Timeout)
	defer cancel()
	if err := w.Sender.Send(c, job.To, subject, text, html); err != nil {
		return fmt.Errorf("send to %s: %w", job.To, err)
	}
	if w.Logger != nil {
		w.Logger.WithFields(logrus.Fields{"to": job.To, "template": job.Template}).Info("email sent")
	}
	return nil
}
