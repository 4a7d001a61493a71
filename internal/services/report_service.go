package services

import (
	"context"
	"time"

	"maintdesk/internal/models"
	"maintdesk/internal/pdf"
	"maintdesk/internal/repositories"
)

// TaskSummary aggregates the task table for the reports endpoint.
type TaskSummary struct {
	Total      int                         `json:"total"`
	ByStatus   map[models.TaskStatus]int   `json:"by_status"`
	ByPriority map[models.TaskPriority]int `json:"by_priority"`
	ByCategory map[string]int              `json:"by_category"`
	HoursSpent float64                     `json:"hours_spent"`
	TotalCost  float64                     `json:"total_cost"`
}

type ReportService interface {
	GetSummary(ctx context.Context) (*TaskSummary, error)
	TaskReportPDF(ctx context.Context) ([]byte, error)
}

type reportService struct {
	tasks  repositories.TaskRepository
	pdfGen pdf.Generator
}

func NewReportService(tasks repositories.TaskRepository, pdfGen pdf.Generator) ReportService {
	return &reportService{tasks: tasks, pdfGen: pdfGen}
}

func (s *reportService) GetSummary(ctx context.Context) (*TaskSummary, error) {
	tasks, err := s.tasks.FindAll(ctx, models.TaskFilter{})
	if err != nil {
		return nil, err
	}

	summary := &TaskSummary{
		Total:      len(tasks),
		ByStatus:   map[models.TaskStatus]int{},
		ByPriority: map[models.TaskPriority]int{},
		ByCategory: map[string]int{},
	}
	for _, t := range tasks {
		summary.ByStatus[t.Status]++
		summary.ByPriority[t.Priority]++
		summary.ByCategory[t.Category]++
		if t.HoursSpent != nil {
			summary.HoursSpent += *t.HoursSpent
		}
		if t.CostAmount != nil {
			summary.TotalCost += *t.CostAmount
		}
	}
	return summary, nil
}

func (s *reportService) TaskReportPDF(ctx context.Context) ([]byte, error) {
	tasks, err := s.tasks.FindAll(ctx, models.TaskFilter{})
	if err != nil {
		return nil, err
	}
	return s.pdfGen.TaskReport(tasks, time.Now())
}
