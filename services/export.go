package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"socialsync-platform/models"
)

// PostsWorkbook renders a user's posts as an Excel workbook, one row per
// post. Times are formatted in the given location to match analytics output.
func PostsWorkbook(posts []models.Post, loc *time.Location) (*bytes.Buffer, error) {
	if loc == nil {
		loc = time.UTC
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Posts"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %v", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"ID", "Content", "Hashtags", "Sentiment", "Score", "Scheduled For", "Status", "Created At"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, p := range posts {
		values := []interface{}{
			p.ID.Hex(),
			p.Content,
			strings.Join(p.Hashtags, ", "),
			p.Sentiment,
			p.SentimentScore,
			time.UnixMilli(p.ScheduledFor).In(loc).Format(time.RFC3339),
			p.Status,
			time.UnixMilli(p.CreatedAt).In(loc).Format(time.RFC3339),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %v", err)
	}
	return buf, nil
}
