package main

import (
	"bufio"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/folbricht/tempfile"
	"github.com/spf13/cobra"

	"github.com/flightlog/dflog"
)

type decodeOptions struct {
	out        string
	format     string
	workers    int
	mode       string
	typeFilter string
}

func newDecodeCommand(ctx context.Context) *cobra.Command {
	var opt decodeOptions

	cmd := &cobra.Command{
		Use:   "decode <file>",
		Short: "Decode a dataflash log into records",
		Long: `Decodes a dataflash log file into typed records, one per line, writing CSV
or newline-delimited JSON to stdout or, with -o, atomically to a file.

Uses the Parallel Driver unless -n 1 is given, in which case the file is
decoded single-threaded.`,
		Example: `  dflog decode -o out.csv flight.bin
  dflog decode --format jsonl -n 1 flight.bin`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(ctx, opt, args[0])
		},
		SilenceUsage: true,
	}
	flags := cmd.Flags()
	flags.StringVarP(&opt.out, "out", "o", "", "output file (default stdout)")
	flags.StringVar(&opt.format, "format", "csv", "output format: csv or jsonl")
	flags.IntVarP(&opt.workers, "workers", "n", 0, "number of workers (default from config)")
	flags.StringVar(&opt.mode, "mode", "", "scheduling mode: process or thread (default from config)")
	flags.StringVar(&opt.typeFilter, "type", "", "restrict output to one record type")
	return cmd
}

func runDecode(ctx context.Context, opt decodeOptions, file string) error {
	if opt.format != "csv" && opt.format != "jsonl" {
		return errors.New("unknown output format, want csv or jsonl")
	}
	workers := opt.workers
	if workers == 0 {
		workers = effectiveDefaults.Workers
	}
	mode := opt.mode
	if mode == "" {
		mode = effectiveDefaults.Mode
	}

	records, err := decodeFile(ctx, file, workers, mode, opt.typeFilter, dflog.NewProgressBar(filepath.Base(file)))
	if err != nil {
		return err
	}

	if opt.out == "" {
		w := bufio.NewWriter(os.Stdout)
		defer w.Flush()
		return writeRecords(w, records, opt.format)
	}
	return writeRecordsAtomic(opt.out, records, opt.format)
}

// decodeFile runs the Parallel Driver (or, for workers<=1, a single-threaded
// Session.Decode) and returns the resulting records in file order.
func decodeFile(ctx context.Context, file string, workers int, mode string, typeFilter string, pb dflog.ProgressBar) ([]*dflog.Record, error) {
	if workers <= 1 {
		sess, err := dflog.Open(file, effectiveCfg)
		if err != nil {
			return nil, err
		}
		defer sess.Close()
		return sess.Decode(typeFilter)
	}

	schedMode := dflog.ProcessParallel
	if mode == "thread" {
		schedMode = dflog.ThreadParallel
	}
	res, err := dflog.RunParallel(ctx, file, effectiveCfg, workers, schedMode, typeFilter, pb)
	if err != nil {
		return nil, err
	}
	return res.Records, nil
}

func writeRecords(w io.Writer, records []*dflog.Record, format string) error {
	switch format {
	case "jsonl":
		enc := json.NewEncoder(w)
		for _, r := range records {
			m := make(map[string]interface{}, len(r.Keys()))
			for _, k := range r.Keys() {
				v, _ := r.Get(k)
				m[k] = v
			}
			if err := enc.Encode(m); err != nil {
				return err
			}
		}
		return nil
	default:
		return writeCSV(csv.NewWriter(w), records)
	}
}

func writeCSV(cw *csv.Writer, records []*dflog.Record) error {
	defer cw.Flush()
	if len(records) == 0 {
		return nil
	}
	header := records[0].Keys()
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, r := range records {
		row := make([]string, len(header))
		for i, k := range header {
			v, _ := r.Get(k)
			row[i] = fmt.Sprint(v)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	return nil
}

// writeRecordsAtomic writes through a tempfile in the output directory and
// renames it into place, the same pattern the teacher uses to assemble
// output blobs without ever leaving a partially-written file at the final
// path.
func writeRecordsAtomic(out string, records []*dflog.Record, format string) error {
	tmp, err := tempfile.New(filepath.Dir(out), ".dflog")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	bw := bufio.NewWriter(tmp)
	if err := writeRecords(bw, records, format); err != nil {
		tmp.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, out); err != nil {
		return err
	}
	return os.Chmod(out, 0644)
}
