package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/elearning-service/internal/models"
	"github.com/SAP-F-2025/elearning-service/internal/repositories"
)

const submissionSheetName = "Submissions"

var submissionSheetHeader = []interface{}{
	"Student ID",
	"Student Name",
	"Submitted At",
	"Time Difference",
	"File",
	"Marks",
	"Status",
}

type reportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewReportService(repo repositories.Repository, logger *slog.Logger) ReportService {
	return &reportService{repo: repo, logger: logger}
}

// SubmissionSheet renders one row per submission, oldest first, under a
// header row
func (s *reportService) SubmissionSheet(ctx context.Context, assignmentID uint) ([]byte, error) {
	assignment, err := s.repo.Assignment().GetByID(ctx, nil, assignmentID)
	if err != nil {
		return nil, translateRepoError(err, entityAssignment, assignmentID)
	}

	submissions, _, err := s.repo.Submission().List(ctx, nil, repositories.SubmissionFilters{AssignmentID: &assignmentID})
	if err != nil {
		return nil, translateRepoError(err, entitySubmission, nil)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.Error("Failed to close workbook", "error", err)
		}
	}()

	if err := f.SetSheetName("Sheet1", submissionSheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	if err := f.SetSheetRow(submissionSheetName, "A1", &submissionSheetHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	lastColumn, err := excelize.ColumnNumberToName(len(submissionSheetHeader))
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(submissionSheetName, "A1", lastColumn+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}
	if err := f.SetColWidth(submissionSheetName, "A", lastColumn, 22); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	for i, submission := range submissions {
		if submission.Assignment == nil {
			submission.Assignment = assignment
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := submissionRow(submission)
		if err := f.SetSheetRow(submissionSheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("write submission %d: %w", submission.ID, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}

	s.logger.Info("Submission sheet generated",
		"assignment_id", assignmentID,
		"rows", len(submissions))
	return buf.Bytes(), nil
}

func submissionRow(submission *models.Submission) []interface{} {
	var studentName string
	if submission.Student != nil {
		studentName = submission.Student.Name
	}

	var marks interface{} = ""
	if submission.Marks != nil {
		marks = *submission.Marks
	}

	return []interface{}{
		submission.StudentID,
		studentName,
		submission.SubmissionDate(),
		submission.TimeDifference(),
		submission.FileName(),
		marks,
		derefString(submission.Status),
	}
}
