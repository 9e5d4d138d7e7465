package main

import (
	"context"
	"fmt"
	"reflect"

	"github.com/spf13/cobra"

	"github.com/flightlog/dflog"
)

type compareOptions struct {
	workers []int
	mode    string
}

func newCompareCommand(ctx context.Context) *cobra.Command {
	var opt compareOptions

	cmd := &cobra.Command{
		Use:   "compare <file>",
		Short: "Cross-check parallel decoding against a single-threaded decode",
		Long: `Decodes the file single-threaded, then again with the Parallel Driver at
each requested worker count, and reports the first point of divergence. With
no divergence for any worker count, confirms the outputs are identical.`,
		Example: `  dflog compare -n 2 -n 4 -n 8 flight.bin`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(ctx, opt, args[0])
		},
		SilenceUsage: true,
	}
	cmd.Flags().IntSliceVarP(&opt.workers, "workers", "n", []int{2, 4, 8}, "worker counts to check against the single-threaded decode")
	cmd.Flags().StringVar(&opt.mode, "mode", "process", "scheduling mode: process or thread")
	return cmd
}

func runCompare(ctx context.Context, opt compareOptions, file string) error {
	reference, err := decodeFile(ctx, file, 1, opt.mode, "", dflog.NullProgressBar{})
	if err != nil {
		return fmt.Errorf("reference decode: %w", err)
	}

	for _, n := range opt.workers {
		result, err := decodeFile(ctx, file, n, opt.mode, "", dflog.NullProgressBar{})
		if err != nil {
			return fmt.Errorf("parallel decode (workers=%d): %w", n, err)
		}
		if idx, ok := firstDivergence(reference, result); ok {
			return fmt.Errorf("workers=%d diverges from reference at record %d", n, idx)
		}
		fmt.Printf("workers=%d: identical to reference (%d records)\n", n, len(result))
	}
	return nil
}

// firstDivergence returns the index of the first record where a and b
// differ, comparing column-by-column equality at matching indexes; if the
// shorter slice is a prefix of the longer, the index is the shorter length.
// ok is false when a and b are identical.
func firstDivergence(a, b []*dflog.Record) (int, bool) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if !recordsEqual(a[i], b[i]) {
			return i, true
		}
	}
	if len(a) != len(b) {
		return n, true
	}
	return 0, false
}

func recordsEqual(a, b *dflog.Record) bool {
	ak, bk := a.Keys(), b.Keys()
	if len(ak) != len(bk) {
		return false
	}
	for i, k := range ak {
		if bk[i] != k {
			return false
		}
		av, _ := a.Get(k)
		bv, _ := b.Get(k)
		if !reflect.DeepEqual(av, bv) {
			return false
		}
	}
	return true
}
