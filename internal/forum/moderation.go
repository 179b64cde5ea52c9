package forum

import (
	"context"
	"errors"
	"log"
	"strings"

	"parentforum/internal/common"
	"parentforum/internal/dbmysql"
)

// ReportThreshold is the report count at which a target is removed for good.
const ReportThreshold = 5

type NewReport struct {
	TargetType string `json:"target_type"`
	TargetID   string `json:"target_id"`
	Reason     string `json:"reason"`
}

type ReportResult struct {
	dbmysql.Report
	TotalReports int64 `json:"total_reports"`
	Deleted      bool  `json:"deleted"`
}

// Report records a report and hard deletes the target once it has collected
// ReportThreshold reports. A failed delete is logged; the report still stands.
func (s *ForumService) Report(ctx context.Context, viewer common.Viewer, in NewReport) (*ReportResult, error) {
	targetType, err := common.ValidateReport(in.TargetType, in.TargetID, in.Reason)
	if err != nil {
		return nil, err
	}
	targetID, err := common.ParseID(in.TargetID, "target")
	if err != nil {
		return nil, err
	}

	report := &dbmysql.Report{
		TargetType: string(targetType),
		TargetID:   targetID,
		ReporterID: viewer.ID,
		Reason:     strings.TrimSpace(in.Reason),
	}
	if err := s.store.CreateReport(ctx, report); err != nil {
		return nil, err
	}

	total, err := s.store.CountReports(ctx, targetType, report.TargetID)
	if err != nil {
		return nil, err
	}

	res := &ReportResult{Report: *report, TotalReports: total}
	if total < ReportThreshold {
		return res, nil
	}

	var delErr error
	switch targetType {
	case common.TargetPost:
		delErr = s.store.HardDeletePost(ctx, report.TargetID)
	case common.TargetComment:
		delErr = s.store.DeleteComment(ctx, report.TargetID)
	}
	if delErr != nil && !errors.Is(delErr, common.ErrNotFound) {
		log.Printf("Auto-delete error for reported %s %s: %v", targetType, report.TargetID, delErr)
		return res, nil
	}

	log.Printf("Removed %s %s after %d reports", targetType, report.TargetID, total)
	res.Deleted = true
	return res, nil
}
