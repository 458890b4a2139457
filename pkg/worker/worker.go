package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/artem13815/recruitflow/pkg/job"
	"github.com/artem13815/recruitflow/pkg/message"
)

// ResumeProcessor обрабатывает задачи parse_resume / reprocess_resume.
type ResumeProcessor interface {
	Process(ctx context.Context, j job.Job) error
}

// Worker — фоновый обработчик очереди задач. Периодически забирает
// queued-задачи и выполняет их по одной.
type Worker struct {
	jobs     job.Repository
	jobsUC   job.UseCase
	resumes  ResumeProcessor
	messages message.Repository

	interval time.Duration
	log      *logrus.Entry
}

func New(jobs job.Repository, jobsUC job.UseCase, resumes ResumeProcessor, messages message.Repository, interval time.Duration, log *logrus.Logger) *Worker {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Worker{
		jobs:     jobs,
		jobsUC:   jobsUC,
		resumes:  resumes,
		messages: messages,
		interval: interval,
		log:      log.WithField("component", "worker"),
	}
}

// Run крутит цикл опроса до отмены контекста.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.WithField("interval", w.interval.String()).Info("worker started")
	for {
		select {
		case <-ctx.Done():
			w.log.Info("worker stopped")
			return
		case <-ticker.C:
			w.drain(ctx)
		}
	}
}

// drain выполняет все доступные задачи, чтобы очередь не копилась
// между тиками.
func (w *Worker) drain(ctx context.Context) {
	for {
		j, ok, err := w.jobs.ClaimNext(ctx)
		if err != nil {
			w.log.WithError(err).Error("claim next job")
			return
		}
		if !ok {
			return
		}
		w.runOne(ctx, j)

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

func (w *Worker) runOne(ctx context.Context, j job.Job) {
	log := w.log.WithFields(logrus.Fields{"job": j.ID, "type": j.Type})
	log.Info("processing job")

	if err := w.dispatch(ctx, j); err != nil {
		log.WithError(err).Error("job failed")
		if ferr := w.jobsUC.Fail(ctx, j, err); ferr != nil {
			log.WithError(ferr).Error("mark job failed")
		}
		return
	}
	if err := w.jobsUC.Complete(ctx, j); err != nil {
		log.WithError(err).Error("mark job completed")
		return
	}
	log.Info("job completed")
}

func (w *Worker) dispatch(ctx context.Context, j job.Job) error {
	switch j.Type {
	case job.TypeParseResume, job.TypeReprocessResume:
		return w.resumes.Process(ctx, j)
	case job.TypeSendMessage:
		return w.deliverMessage(ctx, j)
	default:
		return fmt.Errorf("unknown job type %q", j.Type)
	}
}

// deliverMessage имитирует доставку исходящего сообщения: реальный
// мессенджер-транспорт не подключён, статус переводится в sent.
func (w *Worker) deliverMessage(ctx context.Context, j job.Job) error {
	if j.MessageID == nil {
		return fmt.Errorf("send job has no message id")
	}
	m, err := w.messages.GetByID(ctx, *j.MessageID)
	if err != nil {
		return err
	}
	m.Status = message.DeliverySent
	return w.messages.Update(ctx, m)
}
