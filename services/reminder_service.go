// services/reminder_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"scheduler-backend/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrReminderNotFound = errors.New("reminder not found")

// ReminderInput carries the three user-editable fields. Create and Update
// both take all of them; there are no partial updates.
type ReminderInput struct {
	Subject string
	Message string
	Date    models.Date
}

type ReminderService struct {
	db *gorm.DB
}

func NewReminderService(db *gorm.DB) *ReminderService {
	return &ReminderService{db: db}
}

// byDate orders by date with ties in insertion order.
var byDate = clause.OrderBy{Columns: []clause.OrderByColumn{
	{Column: clause.Column{Name: "date"}},
	{Column: clause.Column{Name: "id"}},
}}

// List returns every reminder ordered by date ascending.
func (s *ReminderService) List(ctx context.Context) ([]models.Reminder, error) {
	reminders := []models.Reminder{}
	if err := s.db.WithContext(ctx).Clauses(byDate).Find(&reminders).Error; err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	return reminders, nil
}

func (s *ReminderService) Get(ctx context.Context, id uint) (*models.Reminder, error) {
	var reminder models.Reminder
	if err := s.db.WithContext(ctx).First(&reminder, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReminderNotFound
		}
		return nil, fmt.Errorf("get reminder %d: %w", id, err)
	}
	return &reminder, nil
}

func (s *ReminderService) Create(ctx context.Context, input ReminderInput) (*models.Reminder, error) {
	reminder := models.Reminder{
		Subject: input.Subject,
		Message: input.Message,
		Date:    input.Date,
	}
	if err := s.db.WithContext(ctx).Create(&reminder).Error; err != nil {
		return nil, fmt.Errorf("create reminder: %w", err)
	}
	return &reminder, nil
}

// Update replaces subject, message and date of an existing reminder.
func (s *ReminderService) Update(ctx context.Context, id uint, input ReminderInput) (*models.Reminder, error) {
	var reminder models.Reminder
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&reminder, id).Error; err != nil {
			return err
		}
		reminder.Subject = input.Subject
		reminder.Message = input.Message
		reminder.Date = input.Date
		return tx.Save(&reminder).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReminderNotFound
		}
		return nil, fmt.Errorf("update reminder %d: %w", id, err)
	}
	return &reminder, nil
}

// Delete removes the row for good.
func (s *ReminderService) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Reminder{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete reminder %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrReminderNotFound
	}
	return nil
}

// Dates returns the distinct reminder dates as YYYY-MM-DD strings.
func (s *ReminderService) Dates(ctx context.Context) ([]string, error) {
	var rows []models.Reminder
	err := s.db.WithContext(ctx).Select("date").Clauses(byDate).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list reminder dates: %w", err)
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		d := r.Date.String()
		if len(out) > 0 && out[len(out)-1] == d {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// OnDate returns the reminders due on a given day.
func (s *ReminderService) OnDate(ctx context.Context, date models.Date) ([]models.Reminder, error) {
	reminders := []models.Reminder{}
	err := s.db.WithContext(ctx).
		Where(clause.Eq{Column: clause.Column{Name: "date"}, Value: date}).
		Clauses(byDate).
		Find(&reminders).Error
	if err != nil {
		return nil, fmt.Errorf("list reminders on %s: %w", date, err)
	}
	return reminders, nil
}

// Next returns the first reminder dated after date, or nil.
func (s *ReminderService) Next(ctx context.Context, after models.Date) (*models.Reminder, error) {
	var reminders []models.Reminder
	err := s.db.WithContext(ctx).
		Where(clause.Gt{Column: clause.Column{Name: "date"}, Value: after}).
		Clauses(byDate).
		Limit(1).
		Find(&reminders).Error
	if err != nil {
		return nil, fmt.Errorf("next reminder after %s: %w", after, err)
	}
	if len(reminders) == 0 {
		return nil, nil
	}
	return &reminders[0], nil
}

// Between returns the reminders dated from..to, both inclusive.
func (s *ReminderService) Between(ctx context.Context, from, to models.Date) ([]models.Reminder, error) {
	reminders := []models.Reminder{}
	err := s.db.WithContext(ctx).
		Where(clause.Gte{Column: clause.Column{Name: "date"}, Value: from}).
		Where(clause.Lte{Column: clause.Column{Name: "date"}, Value: to}).
		Clauses(byDate).
		Find(&reminders).Error
	if err != nil {
		return nil, fmt.Errorf("list reminders %s..%s: %w", from, to, err)
	}
	return reminders, nil
}

func (s *ReminderService) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Reminder{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count reminders: %w", err)
	}
	return n, nil
}
