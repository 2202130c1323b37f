package utils

import (
	"context"
	"runtime"
	"sync"

	"github.com/pkg/errors"
	"go.viam.com/utils"
)

// ParallelFactor controls the max level of parallelization. This might be useful
// to set in tests where too much parallelism actually slows tests down in
// aggregate.
var ParallelFactor = runtime.GOMAXPROCS(0)

func init() {
	if ParallelFactor <= 0 {
		ParallelFactor = 1
	}
	quarterProcs := float64(ParallelFactor) * .25
	if quarterProcs > 8 {
		ParallelFactor = int(quarterProcs)
	}
}

// GroupWorkParallel splits the work items [0, totalSize) into at most ParallelFactor contiguous groups
// and calls work once per item, each group on its own goroutine. It returns ctx.Err() if ctx is done
// before all items have been worked; items already started still finish. A panicking work item stops
// the remaining groups and is returned as an error.
func GroupWorkParallel(ctx context.Context, totalSize int, work func(workNum int)) error {
	if totalSize <= 0 {
		return ctx.Err()
	}
	numGroups := ParallelFactor
	if numGroups > totalSize {
		numGroups = totalSize
	}
	groupSize := totalSize / numGroups
	extra := totalSize % numGroups

	workCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wait     sync.WaitGroup
		panicMu  sync.Mutex
		panicErr error
	)
	wait.Add(numGroups)
	for groupNum := 0; groupNum < numGroups; groupNum++ {
		from := groupSize * groupNum
		to := from + groupSize
		if groupNum == numGroups-1 {
			to += extra
		}
		utils.PanicCapturingGo(func() {
			defer wait.Done()
			workNum := from
			defer func() {
				if r := recover(); r != nil {
					panicMu.Lock()
					if panicErr == nil {
						panicErr = errors.Errorf("panic in work item %d: %v", workNum, r)
					}
					panicMu.Unlock()
					cancel()
				}
			}()
			for ; workNum < to; workNum++ {
				if workCtx.Err() != nil {
					return
				}
				work(workNum)
			}
		})
	}
	wait.Wait()
	if panicErr != nil {
		return panicErr
	}
	return ctx.Err()
}
