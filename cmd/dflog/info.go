package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flightlog/dflog"
)

func newInfoCommand(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file>",
		Short: "Summarize a dataflash log's format dictionary without a full decode",
		Long: `Runs only the FMT-filtered prelude scan over the file, then prints every
learned format definition plus decode statistics and the corruption map
summary. Never decodes data records.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args[0])
		},
		SilenceUsage: true,
	}
	return cmd
}

func runInfo(file string) error {
	sess, err := dflog.Open(file, effectiveCfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	if _, err := sess.Decode("FMT"); err != nil {
		return err
	}

	dict := sess.Dictionary()
	fmt.Printf("%s: %d bytes, %d format definitions\n", file, sess.Len(), dict.Len())

	for id := byte(0); ; id++ {
		if fd, ok := dict.Get(id); ok {
			fmt.Printf("  [%3d] %-16s len=%-4d format=%-16s columns=%s\n",
				fd.TypeID, fd.Name, fd.Length, fd.Format, joinColumns(fd.Columns))
		}
		if id == 255 {
			break
		}
	}

	stats := sess.Stats()
	fmt.Printf("frames_seen=%d format_installed=%d records_emitted=%d bytes_skipped=%d\n",
		stats.FramesSeen, stats.FormatInstalled, stats.RecordsEmitted, stats.BytesSkipped)

	corrupt := sess.Corruption()
	fmt.Printf("corruption: %d bytes skipped (%.4f%% of image)\n",
		corrupt.SkippedCount(), corrupt.Fraction()*100)

	return nil
}

func joinColumns(cols []string) string {
	out := ""
	for i, c := range cols {
		if i > 0 {
			out += ","
		}
		out += c
	}
	return out
}
