package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"employee-system/internal/dto"
	"employee-system/internal/entities"
	"employee-system/internal/repositories"
	"employee-system/pkg/constants"
	apperrors "employee-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type BirthdayServiceInterface interface {
	BirthdaysToday(ctx context.Context) ([]dto.EmployeeBirthdayTodayDTO, error)
	Send(ctx context.Context, payload dto.BirthdayMessageRequestDTO) (*dto.BirthdayMessageResponseDTO, error)
	Inbox(ctx context.Context, receiverID uint64) ([]dto.BirthdayInboxDTO, error)
	ViewSenderMessages(ctx context.Context, receiverID, senderID uint64) ([]dto.MessageDTO, error)
	CheckAndUpdateBirthdayStatus(ctx context.Context, empID uint64) (bool, error)
	CleanOldMessages(ctx context.Context) (int64, error)
}

type BirthdayService struct {
	employeeRepo repositories.EmployeeRepositoryInterface
	statsRepo    repositories.EmployeeStatsRepositoryInterface
	messageRepo  repositories.BirthdayMessageRepositoryInterface
	seenRepo     repositories.BirthdaySeenRepositoryInterface
	txManager    repositories.TxManagerInterface
	logger       *zap.Logger
	now          func() time.Time
}

func NewBirthdayService(
	employeeRepo repositories.EmployeeRepositoryInterface,
	statsRepo repositories.EmployeeStatsRepositoryInterface,
	messageRepo repositories.BirthdayMessageRepositoryInterface,
	seenRepo repositories.BirthdaySeenRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) BirthdayServiceInterface {
	return &BirthdayService{
		employeeRepo: employeeRepo,
		statsRepo:    statsRepo,
		messageRepo:  messageRepo,
		seenRepo:     seenRepo,
		txManager:    txManager,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *BirthdayService) today() time.Time {
	return truncateToDay(s.now())
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// birthdayIn returns the occurrence of birthDate in year; Feb 29 falls on Feb 28 in common years.
func birthdayIn(birthDate time.Time, year int) time.Time {
	month, day := birthDate.Month(), birthDate.Day()
	if month == time.February && day == 29 && !isLeapYear(year) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// activeOccurrence returns the birthday occurrence whose window
// [birthday, birthday+5d] contains today. The previous year's occurrence is
// checked too so late December birthdays stay active over New Year.
func activeOccurrence(birthDate, today time.Time) (time.Time, bool) {
	for _, year := range []int{today.Year(), today.Year() - 1} {
		start := birthdayIn(birthDate, year)
		end := start.AddDate(0, 0, constants.BirthdayWindowDays)
		if !today.Before(start) && !today.After(end) {
			return start, true
		}
	}
	return time.Time{}, false
}

func (s *BirthdayService) BirthdaysToday(ctx context.Context) ([]dto.EmployeeBirthdayTodayDTO, error) {
	today := s.today()
	list, err := s.statsRepo.FindBirthdaysOn(ctx, int(today.Month()), today.Day())
	if err != nil {
		return nil, err
	}
	if today.Month() == time.February && today.Day() == 28 && !isLeapYear(today.Year()) {
		leapDay, err := s.statsRepo.FindBirthdaysOn(ctx, 2, 29)
		if err != nil {
			return nil, err
		}
		list = append(list, leapDay...)
	}

	out := make([]dto.EmployeeBirthdayTodayDTO, 0, len(list))
	for _, b := range list {
		out = append(out, dto.EmployeeBirthdayTodayDTO{EmpID: b.ID, Name: b.Name, Phone: b.Phone, Email: b.Email})
	}
	return out, nil
}

func (s *BirthdayService) Send(ctx context.Context, payload dto.BirthdayMessageRequestDTO) (*dto.BirthdayMessageResponseDTO, error) {
	receiverExists, err := s.employeeRepo.Exists(ctx, payload.ReceiverID)
	if err != nil {
		return nil, err
	}
	if !receiverExists {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("Receiver not found with id: %d", payload.ReceiverID))
	}

	sender, err := s.employeeRepo.FindByID(ctx, payload.SenderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("Sender not found with id: %d", payload.SenderID))
		}
		return nil, err
	}

	senderName := strings.TrimSpace(payload.SenderName)
	if senderName == "" {
		senderName = sender.FullName()
	}

	saved, err := s.messageRepo.Create(ctx, &entities.BirthdayMessage{
		ReceiverID: payload.ReceiverID,
		SenderID:   payload.SenderID,
		SenderName: senderName,
		Message:    payload.Message,
		Timestamp:  s.now(),
		IsRead:     false,
	})
	if err != nil {
		return nil, err
	}

	return &dto.BirthdayMessageResponseDTO{
		ID:         saved.ID,
		ReceiverID: saved.ReceiverID,
		SenderID:   saved.SenderID,
		SenderName: saved.SenderName,
		Message:    saved.Message,
		Timestamp:  saved.Timestamp,
		IsRead:     saved.IsRead,
	}, nil
}

// Inbox lists one entry per sender, newest thread first.
func (s *BirthdayService) Inbox(ctx context.Context, receiverID uint64) ([]dto.BirthdayInboxDTO, error) {
	threads, err := s.messageRepo.Inbox(ctx, receiverID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(threads, func(i, j int) bool {
		return threads[i].Timestamp.After(threads[j].Timestamp)
	})

	out := make([]dto.BirthdayInboxDTO, 0, len(threads))
	for _, t := range threads {
		out = append(out, dto.BirthdayInboxDTO{
			EmpID:       t.SenderID,
			Name:        t.SenderName,
			Message:     t.Message,
			Timestamp:   t.Timestamp,
			UnreadCount: t.UnreadCount,
		})
	}
	return out, nil
}

// ViewSenderMessages returns the thread and marks it read in the same transaction.
func (s *BirthdayService) ViewSenderMessages(ctx context.Context, receiverID, senderID uint64) ([]dto.MessageDTO, error) {
	var thread []entities.BirthdayMessage
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		thread, err = s.messageRepo.Thread(ctx, tx, receiverID, senderID)
		if err != nil {
			return err
		}
		_, err = s.messageRepo.MarkThreadRead(ctx, tx, receiverID, senderID)
		return err
	})
	if err != nil {
		return nil, err
	}

	out := make([]dto.MessageDTO, 0, len(thread))
	for _, m := range thread {
		out = append(out, dto.MessageDTO{Message: m.Message, Timestamp: m.Timestamp})
	}
	return out, nil
}

// CheckAndUpdateBirthdayStatus reports whether the birthday banner should be
// shown. The first call inside the window leaves a marker that expires the
// next day; an expired marker is kept until the window closes so the banner
// stays hidden, and leaving the window removes the marker and the greetings.
func (s *BirthdayService) CheckAndUpdateBirthdayStatus(ctx context.Context, empID uint64) (bool, error) {
	employee, err := s.employeeRepo.FindByID(ctx, empID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return false, employeeNotFound(empID)
		}
		return false, err
	}
	logger := s.logger.With(zap.Uint64("empID", empID))

	today := s.today()
	var occurrence time.Time
	inWindow := false
	if employee.Profile.BirthDate != nil {
		occurrence, inWindow = activeOccurrence(*employee.Profile.BirthDate, today)
	}

	result := false
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if !inWindow {
			if _, err := s.seenRepo.DeleteByEmpID(ctx, tx, empID); err != nil {
				return err
			}
			purged, err := s.messageRepo.DeleteForReceiver(ctx, tx, empID)
			if err != nil {
				return err
			}
			if purged > 0 {
				logger.Info("birthday window closed, greetings purged", zap.Int64("messages", purged))
			}
			return nil
		}

		seen, err := s.seenRepo.FindByEmpID(ctx, tx, empID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		// A marker left from an earlier occurrence does not count.
		if seen != nil && seen.BirthDate.Equal(occurrence) {
			result = !today.After(truncateToDay(seen.ExpiryDate))
			return nil
		}

		result = true
		return s.seenRepo.Create(ctx, tx, &entities.BirthdaySeen{
			EmpID:      empID,
			BirthDate:  occurrence,
			ExpiryDate: today.AddDate(0, 0, 1),
		})
	})
	if err != nil {
		return false, err
	}
	return result, nil
}

func (s *BirthdayService) CleanOldMessages(ctx context.Context) (int64, error) {
	cutoff := s.now().AddDate(0, 0, -constants.BirthdayMessageRetention)
	deleted, err := s.messageRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	s.logger.Info("old birthday messages cleaned", zap.Int64("deleted", deleted))
	return deleted, nil
}
