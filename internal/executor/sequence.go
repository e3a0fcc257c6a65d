package executor

import "context"

// Report is called after every step of a sequence.
type Report func(req Request, out Outcome)

// RunSequence runs reqs in order, each to completion before the next. It
// stops at the first failing step and returns that step's error; later steps
// are not started.
func RunSequence(ctx context.Context, r Runner, reqs []Request, report Report) error {
	for _, req := range reqs {
		if err := ctx.Err(); err != nil {
			return err
		}
		out := r.Run(ctx, req)
		if report != nil {
			report(req, out)
		}
		if err := out.Err(req); err != nil {
			return err
		}
	}
	return nil
}
