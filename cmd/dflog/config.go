package main

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-ini/ini"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/flightlog/dflog"
)

// cliDefaults holds the CLI-level knobs that live alongside the Config
// Table overrides in the same INI file, mirroring the teacher's single
// config struct covering both store behavior and S3 credentials.
type cliDefaults struct {
	Workers int
	Mode    string // "process" or "thread"
}

// effectiveCfg is the package-level default, overridden in place by
// loadConfigIfPresent. Subcommands read it directly, the same way the
// teacher's cmd/desync keeps a package-level cfg merged with flags.
var effectiveCfg = dflog.DefaultConfig()
var effectiveDefaults = cliDefaults{Workers: 4, Mode: "process"}

func configFile() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return filepath.Join(u.HomeDir, ".config", "dflog", "config.ini"), nil
}

// loadConfigIfPresent looks for the config file and, if present, merges its
// overrides into effectiveCfg and effectiveDefaults. Absence of the file is
// not an error: the defaults stand unchanged.
func loadConfigIfPresent() error {
	filename, err := configFile()
	if err != nil {
		return err
	}
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil
	}
	f, err := ini.Load(filename)
	if err != nil {
		return errors.Wrap(err, "reading "+filename)
	}
	return applyINI(f)
}

func applyINI(f *ini.File) error {
	if sec, err := f.GetSection("dflog"); err == nil {
		if k, err := sec.GetKey("sync_bytes"); err == nil {
			parts := strings.Split(k.String(), ",")
			if len(parts) == 2 {
				hi, err1 := strconv.ParseUint(strings.TrimSpace(parts[0]), 0, 8)
				lo, err2 := strconv.ParseUint(strings.TrimSpace(parts[1]), 0, 8)
				if err1 == nil && err2 == nil {
					effectiveCfg.SyncBytes = [2]byte{byte(hi), byte(lo)}
				}
			}
		}
		if k, err := sec.GetKey("format_type_id"); err == nil {
			if v, err := strconv.ParseUint(k.String(), 0, 8); err == nil {
				effectiveCfg.FormatTypeID = byte(v)
			}
		}
		if k, err := sec.GetKey("format_record_length"); err == nil {
			if v, err := k.Int(); err == nil {
				effectiveCfg.FormatRecordLength = v
			}
		}
		if k, err := sec.GetKey("workers"); err == nil {
			if v, err := k.Int(); err == nil {
				effectiveDefaults.Workers = v
			}
		}
		if k, err := sec.GetKey("mode"); err == nil {
			effectiveDefaults.Mode = k.String()
		}
	}

	// [chars] entries are "type:width:signed", e.g. "int:1:true". They
	// install or overwrite a format character's wire shape before
	// scaled_chars/latlon_char reclassify any of them below.
	if sec, err := f.GetSection("chars"); err == nil {
		for _, k := range sec.Keys() {
			name := k.Name()
			if len(name) != 1 {
				continue
			}
			parts := strings.Split(k.String(), ":")
			if len(parts) != 3 {
				continue
			}
			typ, ok := dflog.ParseFieldType(strings.TrimSpace(parts[0]))
			width, err1 := strconv.Atoi(strings.TrimSpace(parts[1]))
			signed, err2 := strconv.ParseBool(strings.TrimSpace(parts[2]))
			if !ok || err1 != nil || err2 != nil {
				continue
			}
			effectiveCfg.SetChar(name[0], typ, width, signed)
		}
	}

	// scaled_chars/latlon_char reclassify a char already present in the
	// char map (whether from the default table or a [chars] override)
	// as FieldCenti/FieldLatLon, preserving its width and signedness.
	if sec, err := f.GetSection("dflog"); err == nil {
		if k, err := sec.GetKey("scaled_chars"); err == nil {
			for _, ch := range strings.Split(k.String(), ",") {
				ch = strings.TrimSpace(ch)
				if len(ch) != 1 {
					continue
				}
				if _, width, signed, ok := effectiveCfg.CharSpec(ch[0]); ok {
					effectiveCfg.SetChar(ch[0], dflog.FieldCenti, width, signed)
				}
			}
		}
		if k, err := sec.GetKey("latlon_char"); err == nil {
			ch := strings.TrimSpace(k.String())
			if len(ch) == 1 {
				if _, width, signed, ok := effectiveCfg.CharSpec(ch[0]); ok {
					effectiveCfg.SetChar(ch[0], dflog.FieldLatLon, width, signed)
				}
			}
		}
	}

	if sec, err := f.GetSection("passthrough"); err == nil {
		for _, k := range sec.Keys() {
			if v, err := k.Bool(); err == nil && v {
				effectiveCfg.PassthroughColumns[k.Name()] = true
			}
		}
	}

	return nil
}

const configUsage = `dflog config

Shows the current effective Config Table and CLI defaults, either the
built-in values or the ones loaded from $HOME/.config/dflog/config.ini. Use
-w to write the current effective configuration to that path as a starting
point for a custom override file.
`

func newConfigCommand(ctx context.Context) *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or write the effective configuration",
		Long:  configUsage,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfig(write)
		},
		SilenceUsage: true,
	}
	cmd.Flags().BoolVarP(&write, "write", "w", false, "write the effective config to the default path")
	return cmd
}

func runConfig(write bool) error {
	f := ini.Empty()
	sec, err := f.NewSection("dflog")
	if err != nil {
		return err
	}
	sec.NewKey("sync_bytes", fmt.Sprintf("0x%02x,0x%02x", effectiveCfg.SyncBytes[0], effectiveCfg.SyncBytes[1]))
	sec.NewKey("format_type_id", fmt.Sprintf("0x%02x", effectiveCfg.FormatTypeID))
	sec.NewKey("format_record_length", strconv.Itoa(effectiveCfg.FormatRecordLength))
	sec.NewKey("workers", strconv.Itoa(effectiveDefaults.Workers))
	sec.NewKey("mode", effectiveDefaults.Mode)

	var scaledChars, latLonChar []string
	for _, ch := range effectiveCfg.CharCodes() {
		typ, _, _, _ := effectiveCfg.CharSpec(ch)
		switch typ {
		case dflog.FieldCenti:
			scaledChars = append(scaledChars, string(ch))
		case dflog.FieldLatLon:
			latLonChar = append(latLonChar, string(ch))
		}
	}
	if len(scaledChars) > 0 {
		sec.NewKey("scaled_chars", strings.Join(scaledChars, ","))
	}
	if len(latLonChar) > 0 {
		sec.NewKey("latlon_char", latLonChar[0])
	}

	chars, err := f.NewSection("chars")
	if err != nil {
		return err
	}
	for _, ch := range effectiveCfg.CharCodes() {
		typ, width, signed, _ := effectiveCfg.CharSpec(ch)
		chars.NewKey(string(ch), fmt.Sprintf("%s:%d:%t", typ, width, signed))
	}

	pt, err := f.NewSection("passthrough")
	if err != nil {
		return err
	}
	for col := range effectiveCfg.PassthroughColumns {
		pt.NewKey(col, "true")
	}

	if !write {
		_, err := f.WriteTo(os.Stdout)
		return err
	}

	filename, err := configFile()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return err
	}
	fmt.Println("Writing config to", filename)
	return f.SaveTo(filename)
}
