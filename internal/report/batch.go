package report

import (
	"bytes"
	"context"
	"fmt"

	"github.com/IT-Nick/careerpath/internal/domain/model"
	"golang.org/x/sync/errgroup"
)

// Job рекомендация и студент для пакетной выгрузки
type Job struct {
	Recommendation model.CareerRecommendation
	Student        model.User
}

// RenderBatch формирует отчеты параллельно, не более workers одновременно.
// Результаты идут в порядке jobs. Первая ошибка отменяет оставшиеся задания.
func (r *Renderer) RenderBatch(ctx context.Context, jobs []Job, workers int) ([]*bytes.Buffer, error) {
	if workers < 1 {
		workers = 1
	}
	out := make([]*bytes.Buffer, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			buf, err := r.Render(job.Recommendation, job.Student)
			if err != nil {
				return fmt.Errorf("recommendation %d: %w", job.Recommendation.ID, err)
			}
			out[i] = buf
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
