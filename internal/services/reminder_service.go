package services

import (
	"context"
	"fmt"
	"html"
	"log"
	"time"

	"maintdesk/internal/models"
	"maintdesk/internal/repositories"
)

// SweepResult summarizes one reminder run. Sent counts reminders that were
// claimed and delivered, Failed counts claimed-but-undelivered ones, Skipped
// counts tasks another concurrent run claimed first.
type SweepResult struct {
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// ReminderService runs the daily sweep: one email per task due tomorrow
// (deduplicated via reminder_sent_at), plus one aggregated asset digest to
// every active admin.
type ReminderService interface {
	RunSweep(ctx context.Context) (SweepResult, error)
}

type reminderService struct {
	tasks  repositories.TaskRepository
	assets repositories.AssetRepository
	users  repositories.UserRepository
	email  EmailService
	tg     *TelegramService
	loc    *time.Location
	now    func() time.Time
}

func NewReminderService(
	tasks repositories.TaskRepository,
	assets repositories.AssetRepository,
	users repositories.UserRepository,
	email EmailService,
	tg *TelegramService,
	loc *time.Location,
) ReminderService {
	if loc == nil {
		loc = time.Local
	}
	return &reminderService{
		tasks:  tasks,
		assets: assets,
		users:  users,
		email:  email,
		tg:     tg,
		loc:    loc,
		now:    time.Now,
	}
}

// tomorrow formats the next calendar date in the configured location. Using
// the local calendar, not UTC, keeps the sweep aligned with due dates
// entered by people in that timezone.
func (s *reminderService) tomorrow() string {
	return s.now().In(s.loc).AddDate(0, 0, 1).Format("2006-01-02")
}

func (s *reminderService) RunSweep(ctx context.Context) (SweepResult, error) {
	date := s.tomorrow()
	log.Printf("[reminder][sweep] start date=%s", date)

	result, err := s.sweepTasks(ctx, date)
	if err != nil {
		return result, err
	}
	if err := s.sweepAssets(ctx, date); err != nil {
		return result, err
	}

	log.Printf("[reminder][sweep] done date=%s sent=%d failed=%d skipped=%d",
		date, result.Sent, result.Failed, result.Skipped)
	return result, nil
}

// sweepTasks claims each due task first (atomic conditional update on
// reminder_sent_at), then sends. A lost claim means another run got there;
// a failed send stays stamped, so no task is ever reminded twice.
func (s *reminderService) sweepTasks(ctx context.Context, date string) (SweepResult, error) {
	var result SweepResult

	due, err := s.tasks.ListDueOn(ctx, date)
	if err != nil {
		return result, fmt.Errorf("list due tasks: %w", err)
	}

	for _, d := range due {
		claimed, err := s.tasks.ClaimReminder(ctx, d.ID, s.now())
		if err != nil {
			return result, fmt.Errorf("claim reminder for task %d: %w", d.ID, err)
		}
		if !claimed {
			log.Printf("[reminder][task] skip id=%d: already claimed", d.ID)
			result.Skipped++
			continue
		}

		if err := s.email.SendTaskReminder(d.AssigneeEmail, d.AssigneeName, d.Title, date); err != nil {
			log.Printf("[reminder][task][err] send id=%d to=%s: %v", d.ID, d.AssigneeEmail, err)
			result.Failed++
			continue
		}
		s.tg.NotifyTaskDue(d.AssigneeChatID, &d.Task)
		log.Printf("[reminder][task][ok] id=%d to=%s", d.ID, d.AssigneeEmail)
		result.Sent++
	}
	return result, nil
}

// sweepAssets mails one digest per active admin. Assets carry no reminder
// marker, so a second run on the same day mails the digest again.
func (s *reminderService) sweepAssets(ctx context.Context, date string) error {
	dueAssets, err := s.assets.ListDueOn(ctx, date)
	if err != nil {
		return fmt.Errorf("list due assets: %w", err)
	}
	if len(dueAssets) == 0 {
		return nil
	}

	admins, err := s.users.ListActiveAdmins(ctx)
	if err != nil {
		return fmt.Errorf("list active admins: %w", err)
	}

	body := assetDigestBody(dueAssets, date)
	for _, admin := range admins {
		if err := s.email.SendAssetDigest(admin.Email, admin.Name, body); err != nil {
			log.Printf("[reminder][asset][err] digest to=%s: %v", admin.Email, err)
			continue
		}
		log.Printf("[reminder][asset][ok] digest to=%s assets=%d", admin.Email, len(dueAssets))
	}
	return nil
}

func assetDigestBody(assets []models.Asset, date string) string {
	body := fmt.Sprintf("<p>The following assets are due for service on <strong>%s</strong>:</p><ul>", date)
	for _, a := range assets {
		body += fmt.Sprintf("<li><strong>%s</strong> (%s)</li>", html.EscapeString(a.Name), html.EscapeString(a.Category))
	}
	return body + "</ul>"
}
