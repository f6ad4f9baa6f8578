package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/IT-Nick/careerpath/internal/domain/model"
	"github.com/IT-Nick/careerpath/internal/report"
)

// ExportReports формирует PDF-отчеты по рекомендациям и сохраняет их в dir.
// Возвращает пути созданных файлов в порядке ids.
func (app *App) ExportReports(ctx context.Context, caller model.Caller, ids []int64, dir string) ([]string, error) {
	const op = "app.ExportReports"

	jobs := make([]report.Job, 0, len(ids))
	for _, id := range ids {
		data, err := app.workflowService.ReportInput(ctx, caller, id)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		jobs = append(jobs, report.Job{Recommendation: data.Recommendation, Student: data.Student})
	}

	docs, err := app.renderer.RenderBatch(ctx, jobs, app.config.Report.ExportWorkers)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%s: failed to create output dir: %w", op, err)
	}
	paths := make([]string, 0, len(docs))
	for i, doc := range docs {
		path := filepath.Join(dir, fmt.Sprintf("recommendation_%d.pdf", ids[i]))
		if err := os.WriteFile(path, doc.Bytes(), 0o644); err != nil {
			return nil, fmt.Errorf("%s: failed to write %s: %w", op, path, err)
		}
		paths = append(paths, path)
	}

	log.Printf("exported %d reports to %s", len(paths), dir)
	return paths, nil
}

// ResolveCaller находит пользователя по ID и возвращает его как вызывающего
func (app *App) ResolveCaller(ctx context.Context, userID int64) (model.Caller, error) {
	return app.userService.Caller(ctx, userID)
}
