package service

import (
	"context"
	"log"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	"gorm.io/datatypes"

	"tutly_backend/internals/configs"
	eventModel "tutly_backend/internals/features/grading/events/model"
	"tutly_backend/internals/store"
)

type Service struct {
	Store store.Store
	Now   func() time.Time
}

func New(st store.Store) *Service {
	return &Service{Store: st, Now: time.Now}
}

// EvaluatedData disimpan di event_data untuk ASSIGNMENT_EVALUATED.
type EvaluatedData struct {
	Categories []string `json:"categories"`
	Total      int      `json:"total"`
}

// RecordEvaluated menulis satu event per panggilan grading.
func (s *Service) RecordEvaluated(ctx context.Context, submissionID uuid.UUID, actor string, orgID *uuid.UUID, data EvaluatedData) error {
	raw, err := sonic.Marshal(data)
	if err != nil {
		return errors.Wrap(err, "encode grading event")
	}
	ev := &eventModel.GradingEventModel{
		GradingEventType:           eventModel.EventAssignmentEvaluated,
		GradingEventSubmissionID:   submissionID,
		GradingEventActorUsername:  actor,
		GradingEventOrganizationID: orgID,
		GradingEventData:           datatypes.JSON(raw),
		GradingEventCreatedAt:      s.Now(),
	}
	if err := s.Store.CreateGradingEvent(ctx, ev); err != nil {
		return errors.Wrap(err, "create grading event")
	}
	return nil
}

// Purge menghapus event yang lebih tua dari retentionDays.
func (s *Service) Purge(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	cutoff := s.Now().Add(-time.Duration(retentionDays) * 24 * time.Hour)
	n, err := s.Store.DeleteGradingEventsBefore(ctx, cutoff)
	if err != nil {
		return 0, errors.Wrap(err, "purge grading events")
	}
	return n, nil
}

// ── ENTRYPOINT: panggil dari main.go setelah DB siap. Caller wajib Stop() saat shutdown.
func StartRetentionCron(st store.Store, cfg configs.Config) (*cron.Cron, error) {
	svc := New(st)
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))

	_, err := c.AddFunc(cfg.EventRetentionCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		n, err := svc.Purge(ctx, cfg.EventRetentionDays)
		if err != nil {
			log.Printf("[EVENT-REAPER] error: %v", err)
			return
		}
		if n > 0 {
			log.Printf("[EVENT-REAPER] %d grading event dihapus (retention=%dd)", n, cfg.EventRetentionDays)
		}
	})
	if err != nil {
		return nil, errors.Wrapf(err, "add cron %q", cfg.EventRetentionCron)
	}
	log.Printf("[EVENT-REAPER] started schedule=%q retention=%dd", cfg.EventRetentionCron, cfg.EventRetentionDays)
	c.Start()
	return c, nil
}
