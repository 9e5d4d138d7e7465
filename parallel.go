package dflog

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// SchedulingMode selects how the Parallel Driver's workers are isolated from
// each other, per spec.md §5.
type SchedulingMode int

const (
	// ThreadParallel workers share one read-only Format Dictionary,
	// including its precomputed field layouts.
	ThreadParallel SchedulingMode = iota
	// ProcessParallel workers each get a deep-copied, plain-data Format
	// Dictionary snapshot and must rebuild their own layouts from the
	// format strings, modeling independent address spaces even though
	// they are, mechanically, still goroutines in this process.
	ProcessParallel
)

// DriverState is the Parallel Driver's state machine position, per spec.md
// §4.5. It exists mainly so callers (and tests) can observe where a failed
// run stopped.
type DriverState int

const (
	Initial DriverState = iota
	PreludeScanning
	Planning
	Dispatching
	Joining
	Done
	Failed
)

// ParallelResult is the outcome of one Parallel Driver run.
type ParallelResult struct {
	Records []*Record
	Stats   Stats
	Chunks  []ChunkRange
	State   DriverState
}

// RunParallel performs the Parallel Driver protocol of spec.md §4.5: a
// single-threaded prelude to learn every FORMAT definition, chunk planning,
// concurrent per-chunk decoding, and ordered concatenation. Its output is
// byte-for-byte identical to a single-threaded Session.Decode of the same
// file and typeFilter, for any workers >= 1.
func RunParallel(ctx context.Context, path string, cfg Config, workers int, mode SchedulingMode, typeFilter string, pb ProgressBar) (*ParallelResult, error) {
	if pb == nil {
		pb = NullProgressBar{}
	}
	res := &ParallelResult{State: Initial}

	sess, err := Open(path, cfg)
	if err != nil {
		res.State = Failed
		return res, err
	}
	defer sess.Close()

	res.State = PreludeScanning
	if _, err := sess.Decode("FMT"); err != nil {
		res.State = Failed
		return res, errors.Wrap(err, "prelude scan")
	}

	res.State = Planning
	chunks, err := PlanChunks(sess.Bytes(), cfg, sess.Dictionary(), workers)
	if err != nil {
		res.State = Failed
		return res, err
	}
	if len(chunks) == 0 {
		res.State = Failed
		return res, NoValidHeader{}
	}
	res.Chunks = chunks

	pb.SetTotal(sess.Len())
	pb.Start()
	defer pb.Finish()

	res.State = Dispatching
	results := make([][]*Record, len(chunks))
	perWorkerStats := make([]Stats, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	for i, cr := range chunks {
		i, cr := i, cr
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			fp := chunkFingerprint(sess.Bytes(), cr.Start, cr.End)
			Log.WithField("chunk", i).WithField("start", cr.Start).WithField("end", cr.End).
				WithField("fingerprint", fp).Info("dispatching chunk")

			recs, werr := decodeChunk(sess.Bytes(), cfg, sess.Dictionary(), mode, cr, typeFilter, &perWorkerStats[i])
			if werr != nil {
				return ChunkFailure{Start: cr.Start, End: cr.End, Cause: werr}
			}
			results[i] = recs
			pb.Set(int(cr.End))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		res.State = Failed
		return res, err
	}

	res.State = Joining
	for i := range results {
		res.Records = append(res.Records, results[i]...)
		res.Stats.Merge(&perWorkerStats[i])
	}
	res.State = Done
	return res, nil
}

// decodeChunk runs one worker's Record Decoder over [cr.Start, cr.End),
// using a dictionary view shaped by mode (a rebuilt-layout snapshot for
// ProcessParallel, a shared pointer clone for ThreadParallel). Any FormatDef
// the worker installs from a FORMAT frame inside its own chunk lives only in
// this local dictionary view and is discarded when the worker returns.
func decodeChunk(image []byte, cfg Config, dict *FormatDictionary, mode SchedulingMode, cr ChunkRange, typeFilter string, stats *Stats) ([]*Record, error) {
	var local *FormatDictionary
	switch mode {
	case ProcessParallel:
		local = dict.Snapshot(cfg)
	default:
		local = dict.Clone()
	}

	dec := NewRecordDecoder(image, int(cr.Start), int(cr.End), cfg, local, stats, nil)
	dec.SetTypeFilter(typeFilter)

	var out []*Record
	for {
		rec, ok := dec.Next()
		if !ok {
			break
		}
		out = append(out, rec)
	}
	return out, nil
}
