package inbound

import "context"

// VideoPipelinePort drives one job from queued to a terminal state. Run never
// returns an error: every failure is recorded on the job itself, because the
// caller that submitted the job is long gone.
type VideoPipelinePort interface {
	Run(ctx context.Context, jobID string)
}
