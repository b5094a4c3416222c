package main

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/moby/term"
	"github.com/multiplealiases/zfree/pkg/formatter"
	"github.com/multiplealiases/zfree/pkg/procfs"
	"github.com/multiplealiases/zfree/pkg/quantity"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// one-number pride versioning: incremented whenever a release is worth
// being proud of.
const version = "9"

const defaultWidth = 11

type options struct {
	kibi, kilo bool
	mebi, mega bool
	gibi, giga bool
	tebi, tera bool
	human      bool
	si         bool
	decimal    bool

	hideDiskSwap bool
	hideZramSwap bool
	hidePSI      bool

	width   int
	debug   bool
	version bool
}

func newZfreeCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "zfree [OPTIONS]",
		Short:         "A zram-aware free-alike",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.debug {
				logrus.SetLevel(logrus.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.version {
				fmt.Fprintf(cmd.OutOrStdout(), "zfree version %s\n", version)
				return nil
			}
			return runZfree(cmd.OutOrStdout(), opts)
		},
	}
	installFlags(cmd.Flags(), opts)
	return cmd
}

func installFlags(flags *pflag.FlagSet, opts *options) {
	flags.BoolVarP(&opts.kibi, "kibi", "k", false, "Show output in kibibytes")
	flags.BoolVarP(&opts.kilo, "kilo", "K", false, "Show output in kilobytes")
	flags.BoolVarP(&opts.mebi, "mebi", "m", false, "Show output in mebibytes")
	flags.BoolVarP(&opts.mega, "mega", "M", false, "Show output in megabytes")
	flags.BoolVarP(&opts.gibi, "gibi", "g", false, "Show output in gibibytes")
	flags.BoolVarP(&opts.giga, "giga", "G", false, "Show output in gigabytes")
	flags.BoolVar(&opts.tebi, "tebi", false, "Show output in tebibytes")
	flags.BoolVar(&opts.tera, "tera", false, "Show output in terabytes")
	flags.BoolVarP(&opts.human, "human", "h", false, `Autorange units ("human-readable")`)
	flags.BoolVar(&opts.si, "si", false, "Use powers of 1000, not 1024 (-h only)")
	flags.BoolVar(&opts.decimal, "decimal", false, "Alias for --si")
	flags.BoolVarP(&opts.hideDiskSwap, "hide-disk-swap", "S", false, "Do not display disk swap stats")
	flags.BoolVarP(&opts.hideZramSwap, "hide-zram-swap", "Z", false, "Do not display zram swap stats")
	flags.BoolVarP(&opts.hidePSI, "hide-psi", "P", false, "Do not display memory pressure stats")
	flags.IntVarP(&opts.width, "width", "w", defaultWidth, "Output width of each column")
	flags.BoolVarP(&opts.debug, "debug", "D", false, "Enable debug logging")
	flags.BoolVarP(&opts.version, "version", "v", false, "Print version information and quit")

	// -h belongs to --human, as in free(1). Registering our own long-only
	// help flag keeps cobra from claiming the shorthand.
	flags.Bool("help", false, "Print usage")
}

// resolveUnit turns the mutually exclusive unit flags into the display unit.
func resolveUnit(opts *options) (quantity.Unit, error) {
	var selected []quantity.Unit
	for _, choice := range []struct {
		set  bool
		unit quantity.Unit
	}{
		{opts.kibi, quantity.KiB},
		{opts.kilo, quantity.KB},
		{opts.mebi, quantity.MiB},
		{opts.mega, quantity.MB},
		{opts.gibi, quantity.GiB},
		{opts.giga, quantity.GB},
		{opts.tebi, quantity.TiB},
		{opts.tera, quantity.TB},
		{opts.human, quantity.AutoBinary},
	} {
		if choice.set {
			selected = append(selected, choice.unit)
		}
	}
	if len(selected) > 1 {
		return "", errors.New("cannot specify more than 1 unit")
	}

	wantDecimal := opts.si || opts.decimal
	if len(selected) == 0 {
		if wantDecimal {
			return "", errors.New("--si/--decimal only has effect in combination with -h")
		}
		return quantity.MiB, nil
	}

	unit := selected[0]
	if wantDecimal {
		if unit != quantity.AutoBinary {
			return "", errors.New("--si/--decimal only has effect in combination with -h")
		}
		unit = quantity.AutoDecimal
	}
	return unit, nil
}

func runZfree(out io.Writer, opts *options) error {
	unit, err := resolveUnit(opts)
	if err != nil {
		return err
	}
	if runtime.GOOS != "linux" {
		return errors.New("zfree can only run on Linux")
	}

	snap, err := procfs.Gather()
	if err != nil {
		return err
	}
	report, err := buildReport(snap, unit, opts)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, report)
	return nil
}

// buildReport parses the captured snapshot, converts every record into the
// display unit, and assembles the final blocks. Nothing is written until
// the whole report succeeded, so a fatal condition never leaves a partial
// report behind.
func buildReport(snap procfs.Snapshot, unit quantity.Unit, opts *options) (string, error) {
	mem, err := procfs.ParseMeminfo(snap.Meminfo)
	if err != nil {
		return "", err
	}

	var diskSwap quantity.Record
	if !opts.hideDiskSwap && snap.HasSwaps {
		rec, ok, err := procfs.ParseDiskSwap(snap.Swaps)
		if err != nil {
			return "", err
		}
		if ok {
			diskSwap = rec
		} else {
			logrus.Debug("no disk swap device active")
		}
	}

	var zramSwap quantity.Record
	if !opts.hideZramSwap && snap.HasSwaps {
		mmstat, ok, err := procfs.GatherZramMMStat(snap.Swaps)
		if err != nil {
			return "", err
		}
		if ok {
			if zramSwap, err = procfs.ParseZramSwap(mmstat); err != nil {
				return "", err
			}
		} else {
			logrus.Debug("no zram swap device active")
		}
	}

	if mem, err = mem.Convert(unit); err != nil {
		return "", err
	}
	if diskSwap != nil {
		if diskSwap, err = diskSwap.Convert(unit); err != nil {
			return "", err
		}
	}
	if zramSwap != nil {
		if zramSwap, err = zramSwap.Convert(unit); err != nil {
			return "", err
		}
	}

	blocks := []string{formatter.MemoryBlock(mem, diskSwap, opts.width)}
	if zramSwap != nil {
		zb, err := formatter.ZramBlock(zramSwap, mem, opts.width)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, zb)
	}
	if !opts.hidePSI && snap.HasPressure {
		psi, err := procfs.ParsePressure(snap.Pressure)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, formatter.PressureLine(psi))
	}
	return strings.Join(blocks, "\n"), nil
}

func main() {
	// Set terminal emulation based on platform as required.
	_, stdout, stderr := term.StdStreams()
	logrus.SetOutput(stderr)

	cmd := newZfreeCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}
